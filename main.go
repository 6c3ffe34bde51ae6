// Package main is the entry point for the testsmith application: a structural
// source analyzer and heuristic test case synthesizer for JavaScript.
//
//	@title			Testsmith Analysis API
//	@version		1.0.0
//	@description	API for submitting JavaScript source for structural analysis and test case synthesis. The service parses source with tree-sitter, extracts a structural inventory with complexity metrics, and synthesizes deterministic test case descriptors.
//	@host			localhost:8080
//	@BasePath		/
package main

import "testsmith/cmd"

func main() {
	cmd.Execute()
}
