package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// Language represents a source grammar supported by the analysis pipeline.
// It is a value object: two Language values with the same name are equal.
type Language struct {
	name string
}

// Canonical grammar names.
const (
	languageNameJavaScript = "JavaScript"

	// LanguageUnknown names the zero Language value.
	LanguageUnknown = "Unknown"
)

// LanguageJavaScript is the JavaScript grammar.
var LanguageJavaScript = Language{name: languageNameJavaScript}

// languageAliases maps lowercase spellings accepted on the wire to canonical names.
var languageAliases = map[string]string{
	"javascript": languageNameJavaScript,
	"js":         languageNameJavaScript,
	"ecmascript": languageNameJavaScript,
}

// NewLanguage creates a new Language value object with validation.
func NewLanguage(name string) (Language, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return Language{}, errors.New("language name cannot be empty")
	}

	canonical, ok := languageAliases[strings.ToLower(normalized)]
	if !ok {
		return Language{}, fmt.Errorf("unsupported language: %s", normalized)
	}

	return Language{name: canonical}, nil
}

// MustLanguage creates a Language and panics on invalid input. Test helper
// and wiring for grammars known to be supported at compile time.
func MustLanguage(name string) Language {
	lang, err := NewLanguage(name)
	if err != nil {
		panic(err)
	}
	return lang
}

// Name returns the canonical language name.
func (l Language) Name() string {
	if l.name == "" {
		return LanguageUnknown
	}
	return l.name
}

// Equal reports whether two languages are the same grammar.
func (l Language) Equal(other Language) bool {
	return l.name == other.name
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return l.Name()
}

// IsSupported reports whether a language name resolves to a wired grammar.
func IsSupported(name string) bool {
	_, err := NewLanguage(name)
	return err == nil
}
