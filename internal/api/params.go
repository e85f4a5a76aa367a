package api

import "reflect"

// paramTags are the struct tags used for binding request parameters.
var paramTags = []string{"path", "query", "header"}

// hasParamTags reports whether the given type has any fields with
// parameter binding tags.
func hasParamTags(t reflect.Type) bool {
	t = structType(t)
	if t == nil {
		return false
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.IsExported() && isParamField(f) {
			return true
		}
	}
	return false
}

// hasBodyField reports whether the given type has an exported "Body" field.
func hasBodyField(t reflect.Type) bool {
	t = structType(t)
	if t == nil {
		return false
	}
	f, ok := t.FieldByName("Body")
	return ok && f.IsExported()
}

// isParamField reports whether a struct field has parameter binding tags.
func isParamField(f reflect.StructField) bool {
	for _, tag := range paramTags {
		if f.Tag.Get(tag) != "" {
			return true
		}
	}
	return false
}

// structType unwraps a pointer and returns nil for non-struct types.
func structType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
