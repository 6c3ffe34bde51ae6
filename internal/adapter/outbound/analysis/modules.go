package analysis

import (
	"testsmith/internal/domain/valueobject"
)

func visitVariableDeclaration(w *walker, node *valueobject.ParseNode) {
	kind := "var"
	if node.Kind == "lexical_declaration" {
		kind = "let"
		if hasTokenChild(node, "const") {
			kind = "const"
		}
	}

	for _, child := range node.Children {
		if child.Kind != "variable_declarator" {
			continue
		}
		name := ""
		if len(child.Children) > 0 {
			// The binding is always the first child, an identifier or a
			// destructuring pattern.
			name = w.nodeText(child.Children[0])
		}
		if name == "" {
			continue
		}
		w.variables = append(w.variables, valueobject.VariableInfo{
			Name:       name,
			Kind:       kind,
			SourceLine: child.Line(),
		})
	}
}

func visitImport(w *walker, node *valueobject.ParseNode) {
	info := valueobject.ImportInfo{
		Bindings:   make([]valueobject.ImportBinding, 0),
		SourceLine: node.Line(),
	}

	if source := node.FirstChildOfKind("string"); source != nil {
		info.ModulePath = trimStringLiteral(w.nodeText(source))
	}

	if clause := node.FirstChildOfKind("import_clause"); clause != nil {
		for _, child := range clause.Children {
			switch child.Kind {
			case "identifier":
				info.Bindings = append(info.Bindings, valueobject.ImportBinding{
					LocalName:    w.nodeText(child),
					ImportedName: "default",
				})
			case "namespace_import":
				if ident := child.FirstChildOfKind("identifier"); ident != nil {
					info.Bindings = append(info.Bindings, valueobject.ImportBinding{
						LocalName:    w.nodeText(ident),
						ImportedName: "*",
					})
				}
			case "named_imports":
				for _, spec := range child.Children {
					if spec.Kind != "import_specifier" {
						continue
					}
					info.Bindings = append(info.Bindings, namedImportBinding(w, spec))
				}
			}
		}
	}

	w.imports = append(w.imports, info)
}

// namedImportBinding reads one import specifier. With an alias the imported
// name comes first and the local binding last; without one they coincide.
func namedImportBinding(w *walker, spec *valueobject.ParseNode) valueobject.ImportBinding {
	idents := make([]*valueobject.ParseNode, 0, 2)
	for _, child := range spec.Children {
		if child.Kind == "identifier" {
			idents = append(idents, child)
		}
	}

	binding := valueobject.ImportBinding{}
	switch len(idents) {
	case 1:
		binding.LocalName = w.nodeText(idents[0])
		binding.ImportedName = binding.LocalName
	case 2:
		binding.ImportedName = w.nodeText(idents[0])
		binding.LocalName = w.nodeText(idents[1])
	}
	return binding
}

func visitExport(w *walker, node *valueobject.ParseNode) {
	isDefault := hasTokenChild(node, "default")
	line := node.Line()

	for _, child := range node.Children {
		switch child.Kind {
		case "function_declaration", "generator_function_declaration", "class_declaration":
			name := valueobject.AnonymousFunctionName
			if ident := child.FirstChildOfKind("identifier"); ident != nil {
				name = w.nodeText(ident)
			}
			w.exports = append(w.exports, valueobject.ExportInfo{
				Name:       name,
				IsDefault:  isDefault,
				SourceLine: line,
			})
			return
		case "lexical_declaration", "variable_declaration":
			for _, declarator := range child.Children {
				if declarator.Kind != "variable_declarator" || len(declarator.Children) == 0 {
					continue
				}
				w.exports = append(w.exports, valueobject.ExportInfo{
					Name:       w.nodeText(declarator.Children[0]),
					IsDefault:  isDefault,
					SourceLine: line,
				})
			}
			return
		case "export_clause":
			for _, spec := range child.Children {
				if spec.Kind != "export_specifier" {
					continue
				}
				w.exports = append(w.exports, valueobject.ExportInfo{
					Name:       exportedName(w, spec),
					IsDefault:  isDefault,
					SourceLine: line,
				})
			}
			return
		}
	}

	if isDefault {
		// export default <expression> with no named declaration.
		w.exports = append(w.exports, valueobject.ExportInfo{
			Name:       "default",
			IsDefault:  true,
			SourceLine: line,
		})
	}
}

// exportedName reads one export specifier, preferring the alias when the
// specifier renames its binding.
func exportedName(w *walker, spec *valueobject.ParseNode) string {
	idents := make([]*valueobject.ParseNode, 0, 2)
	for _, child := range spec.Children {
		if child.Kind == "identifier" {
			idents = append(idents, child)
		}
	}
	if len(idents) == 0 {
		return ""
	}
	return w.nodeText(idents[len(idents)-1])
}
