package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"
)

// requestShape describes how a request type should be decoded.
type requestShape int

const (
	shapeVoid     requestShape = iota // Void: no params, no body
	shapeBodyOnly                     // entire struct is the body (no param tags, no Body field)
	shapeParams                       // has param tags but no Body field
	shapeMixed                        // has Body field (params from tagged fields, body from Body)
)

// classifyRequest determines how a request type should be decoded.
func classifyRequest(t reflect.Type) requestShape {
	if t == reflect.TypeFor[Void]() {
		return shapeVoid
	}
	if hasBodyField(t) {
		return shapeMixed
	}
	if hasParamTags(t) {
		return shapeParams
	}
	return shapeBodyOnly
}

var (
	// errEmptyBody is reported when a route that takes a body receives none.
	errEmptyBody    = errors.New("request body is required")
	errNullBody     = errors.New("request body must not be null")
	errMissingField = errors.New("missing required field")
)

// decodeRequest creates a new Req value and populates it from the HTTP request.
func decodeRequest[Req any](r *http.Request, codecs *codecRegistry) (*Req, error) {
	req := new(Req)
	shape := classifyRequest(reflect.TypeFor[Req]())

	switch shape {
	case shapeVoid:
		return req, nil
	case shapeBodyOnly:
		if err := decodeBody(r, codecs, req); err != nil {
			return nil, err
		}
		return req, nil
	case shapeParams, shapeMixed:
	}

	if err := bindParams(req, r); err != nil {
		return nil, err
	}

	if shape == shapeMixed {
		bodyPtr := reflect.ValueOf(req).Elem().FieldByName("Body").Addr().Interface()
		if err := decodeBody(r, codecs, bodyPtr); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// bindParams binds path, query, and header values to struct fields.
func bindParams(target any, r *http.Request) error {
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "Body" {
			continue
		}

		field := v.Field(i)

		if name := f.Tag.Get("path"); name != "" {
			if err := setFieldValue(field, r.PathValue(name)); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrBindPath, name, err)
			}
		}

		if name := f.Tag.Get("query"); name != "" {
			val := r.URL.Query().Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindQuery, name, err)
				}
			}
		}

		if name := f.Tag.Get("header"); name != "" {
			val := r.Header.Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindHeader, name, err)
				}
			}
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value from a string, supporting common types.
func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeFor[time.Duration]() {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}

// decodeBody decodes the request body into target with the decoder
// selected by Content-Type. A null body and a body missing a field tagged
// required:"true" are rejected before target is touched.
func decodeBody(r *http.Request, codecs *codecRegistry, target any) error {
	ct := r.Header.Get("Content-Type")
	dec, ok := codecs.decoderFor(ct)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, ct)
	}

	if r.Body == nil {
		return fmt.Errorf("%w: %w", ErrBindBody, errEmptyBody)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBindBody, err)
	}

	var raw any
	err = dec.Decode(bytes.NewReader(data), &raw)
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrBindBody, errEmptyBody)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBindBody, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: %w", ErrBindBody, errNullBody)
	}
	if err := checkRequired(raw, reflect.TypeOf(target)); err != nil {
		return fmt.Errorf("%w: %w", ErrBindBody, err)
	}

	if err := dec.Decode(bytes.NewReader(data), target); err != nil {
		return fmt.Errorf("%w: %w", ErrBindBody, err)
	}
	return nil
}

// checkRequired reports the first field tagged required:"true" that is
// absent or null in the decoded object. Non-struct targets pass.
func checkRequired(raw any, t reflect.Type) error {
	t = structType(t)
	if t == nil {
		return nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("expected an object, got %T", raw)
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("required") != "true" {
			continue
		}
		name := jsonFieldName(f)
		if v, ok := obj[name]; !ok || v == nil {
			return fmt.Errorf("%w: %s", errMissingField, name)
		}
	}
	return nil
}
