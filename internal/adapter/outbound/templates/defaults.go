package templates

import "testsmith/internal/domain/valueobject"

// Built-in fallback templates. Unit and edge case tests get a full test body;
// every other kind degrades to a comment stub so rendering stays total.
const (
	defaultUnitTemplate = `test('{{description}}', () => {
  const result = {{owner}}({{input}});
  expect(result).toEqual({{expected}});
});`

	defaultEdgeCaseTemplate = `test('{{description}}', () => {
  expect(() => {{owner}}({{input}})).toThrow();
});`

	defaultStubTemplate = `// {{kind}} test for {{owner}}: {{description}}`
)

// defaultTemplate returns the built-in template for a test kind.
func defaultTemplate(kind valueobject.TestKind) string {
	switch kind {
	case valueobject.TestKindUnit:
		return defaultUnitTemplate
	case valueobject.TestKindEdgeCase:
		return defaultEdgeCaseTemplate
	default:
		return defaultStubTemplate
	}
}
