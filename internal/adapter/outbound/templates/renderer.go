// Package templates renders test case descriptors into test source code.
// Template text uses {{name}} placeholders; resolution is by language,
// framework, and test kind, with built-in defaults when no stored template
// exists or the store is unreachable.
package templates

import (
	"context"
	"errors"
	"strings"

	"testsmith/internal/application/common/slogger"
	"testsmith/internal/domain/valueobject"
	"testsmith/internal/port/outbound"
)

// ErrTemplateNotFound is returned by template stores when no template matches
// the requested language, framework, and test kind.
var ErrTemplateNotFound = errors.New("template not found")

// Substitute replaces every {{name}} placeholder with its binding. Unmatched
// placeholders are left intact.
func Substitute(templateText string, bindings map[string]string) string {
	rendered := templateText
	for name, value := range bindings {
		rendered = strings.ReplaceAll(rendered, "{{"+name+"}}", value)
	}
	return rendered
}

// Renderer implements the TestCodeRenderer port on top of a template store.
type Renderer struct {
	store outbound.TemplateStore
}

// NewRenderer creates a renderer. A nil store is allowed and means built-in
// defaults only.
func NewRenderer(store outbound.TemplateStore) *Renderer {
	return &Renderer{store: store}
}

// Render resolves a template for the descriptor and substitutes its bindings.
// It never fails on a template miss, only degrades to defaults.
func (r *Renderer) Render(
	ctx context.Context,
	descriptor valueobject.TestCaseDescriptor,
	language, framework string,
) (string, error) {
	templateText := r.resolveTemplate(ctx, descriptor.Kind, language, framework)
	return Substitute(templateText, descriptorBindings(descriptor)), nil
}

func (r *Renderer) resolveTemplate(
	ctx context.Context,
	kind valueobject.TestKind,
	language, framework string,
) string {
	if r.store != nil {
		templateText, err := r.store.FindTemplate(ctx, language, framework, kind)
		if err == nil {
			return templateText
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			slogger.Warn(ctx, "template store lookup failed, using default template", slogger.Fields{
				"language":  language,
				"framework": framework,
				"kind":      string(kind),
				"error":     err.Error(),
			})
		}
	}
	return defaultTemplate(kind)
}

// descriptorBindings exposes a descriptor's fields as template bindings.
func descriptorBindings(descriptor valueobject.TestCaseDescriptor) map[string]string {
	return map[string]string{
		"owner":       descriptor.OwnerName,
		"description": descriptor.Description,
		"input":       FormatArguments(descriptor.InputData),
		"expected":    descriptor.ExpectedOutput,
		"kind":        string(descriptor.Kind),
		"priority":    string(descriptor.Priority),
	}
}
