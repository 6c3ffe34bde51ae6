package analysis

import (
	"testsmith/internal/domain/valueobject"
)

func visitClass(w *walker, node *valueobject.ParseNode) {
	info := valueobject.ClassInfo{
		Name:       className(w, node),
		Methods:    make([]valueobject.MethodInfo, 0),
		Properties: make([]valueobject.PropertyInfo, 0),
		SourceLine: node.Line(),
	}

	if heritage := node.FirstChildOfKind("class_heritage"); heritage != nil {
		info.SuperclassName = superclassName(w, heritage)
	}

	if body := node.FirstChildOfKind("class_body"); body != nil {
		for _, member := range body.Children {
			switch member.Kind {
			case "method_definition":
				info.Methods = append(info.Methods, extractMethod(w, member))
			case "field_definition", "public_field_definition":
				if prop, ok := extractProperty(w, member); ok {
					info.Properties = append(info.Properties, prop)
				}
			}
		}
	}

	w.classes = append(w.classes, info)
}

// className resolves a class's name, falling back to the binding for
// anonymous class expressions.
func className(w *walker, node *valueobject.ParseNode) string {
	if ident := node.FirstChildOfKind("identifier"); ident != nil {
		return w.nodeText(ident)
	}

	if parent := w.parent(1); parent != nil && parent.Kind == "variable_declarator" {
		if ident := parent.FirstChildOfKind("identifier"); ident != nil {
			return w.nodeText(ident)
		}
	}
	return valueobject.AnonymousFunctionName
}

func superclassName(w *walker, heritage *valueobject.ParseNode) string {
	for _, child := range heritage.Children {
		switch child.Kind {
		case "identifier", "member_expression":
			return w.nodeText(child)
		}
	}
	return ""
}

func extractMethod(w *walker, node *valueobject.ParseNode) valueobject.MethodInfo {
	method := valueobject.MethodInfo{
		Role:     valueobject.MethodRoleMethod,
		IsStatic: hasTokenChild(node, "static"),
		IsAsync:  hasTokenChild(node, "async"),
	}

	if name := node.FirstChildOfKind("property_identifier"); name != nil {
		method.Name = w.nodeText(name)
	} else if name := node.FirstChildOfKind("computed_property_name"); name != nil {
		method.Name = w.nodeText(name)
	}

	switch {
	case method.Name == "constructor" && !method.IsStatic:
		method.Role = valueobject.MethodRoleConstructor
	case hasTokenChild(node, "get"):
		method.Role = valueobject.MethodRoleGetter
	case hasTokenChild(node, "set"):
		method.Role = valueobject.MethodRoleSetter
	}

	return method
}

func extractProperty(w *walker, node *valueobject.ParseNode) (valueobject.PropertyInfo, bool) {
	name := node.FirstChildOfKind("property_identifier")
	if name == nil {
		return valueobject.PropertyInfo{}, false
	}
	return valueobject.PropertyInfo{
		Name:     w.nodeText(name),
		IsStatic: hasTokenChild(node, "static"),
	}, true
}
