package api

import (
	"reflect"
	"strings"
	"time"
)

// JSONSchema represents a JSON Schema object (subset for OpenAPI 3.1).
type JSONSchema struct {
	Ref         string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string                `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string                `json:"format,omitempty" yaml:"format,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Minimum     *float64              `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Properties  map[string]JSONSchema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string              `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *JSONSchema           `json:"items,omitempty" yaml:"items,omitempty"`

	// AdditionalProperties describes the values of a string-keyed map.
	AdditionalProperties *JSONSchema `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}

const schemaRefPrefix = "#/components/schemas/"

// schemaRegistry collects named struct schemas so that each is defined once
// under components.schemas and referenced everywhere else.
type schemaRegistry struct {
	defs map[string]JSONSchema
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{defs: make(map[string]JSONSchema)}
}

// ref returns a reference schema pointing at the named component.
func ref(name string) JSONSchema {
	return JSONSchema{Ref: schemaRefPrefix + name}
}

// typeToSchema converts a reflect.Type to a JSONSchema. Named structs are
// registered as components and returned as references.
func (sr *schemaRegistry) typeToSchema(t reflect.Type) JSONSchema {
	if t.Kind() == reflect.Pointer {
		return sr.typeToSchema(t.Elem())
	}

	switch t {
	case reflect.TypeFor[time.Time]():
		return JSONSchema{Type: "string", Format: "date-time"}
	case reflect.TypeFor[time.Duration]():
		return JSONSchema{Type: "string", Format: "duration"}
	case reflect.TypeFor[Void]():
		return JSONSchema{}
	}

	//exhaustive:ignore
	switch t.Kind() {
	case reflect.String:
		return JSONSchema{Type: "string"}
	case reflect.Bool:
		return JSONSchema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return JSONSchema{Type: "integer", Format: "int32"}
	case reflect.Int64:
		return JSONSchema{Type: "integer", Format: "int64"}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		zero := 0.0
		return JSONSchema{Type: "integer", Minimum: &zero}
	case reflect.Float32, reflect.Float64:
		return JSONSchema{Type: "number"}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return JSONSchema{Type: "string", Format: "byte"}
		}
		items := sr.typeToSchema(t.Elem())
		return JSONSchema{Type: "array", Items: &items}
	case reflect.Array:
		items := sr.typeToSchema(t.Elem())
		return JSONSchema{Type: "array", Items: &items}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return JSONSchema{Type: "object"}
		}
		valSchema := sr.typeToSchema(t.Elem())
		return JSONSchema{Type: "object", AdditionalProperties: &valSchema}
	case reflect.Struct:
		name := t.Name()
		if name == "" {
			return sr.structToSchema(t)
		}
		if _, ok := sr.defs[name]; !ok {
			// Placeholder first so self-referencing types terminate.
			sr.defs[name] = JSONSchema{Type: "object"}
			sr.defs[name] = sr.structToSchema(t)
		}
		return ref(name)
	default:
		return JSONSchema{}
	}
}

// structToSchema converts a struct type to an inline JSONSchema with properties.
func (sr *schemaRegistry) structToSchema(t reflect.Type) JSONSchema {
	schema := JSONSchema{
		Type:       "object",
		Properties: make(map[string]JSONSchema),
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || isParamField(f) {
			continue
		}

		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		prop := sr.typeToSchema(f.Type)

		// $ref schemas stay bare.
		if doc := f.Tag.Get("doc"); doc != "" && prop.Ref == "" {
			prop.Description = doc
		}

		schema.Properties[name] = prop

		if f.Tag.Get("required") == "true" {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

// jsonFieldName returns the JSON field name for a struct field.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
