package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// specFormat selects how the cached document is encoded.
type specFormat int

const (
	formatJSON specFormat = iota
	formatJSONIndent
	formatYAML
)

func (f specFormat) encode(spec OpenAPISpec) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case formatJSONIndent:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(spec); err != nil {
			return nil, err
		}
	case formatYAML:
		if err := (yamlCodec{}).Encode(&buf, spec); err != nil {
			return nil, err
		}
	case formatJSON:
		if err := json.NewEncoder(&buf).Encode(spec); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// encodedDoc is one encoding of the document and its strong validator.
type encodedDoc struct {
	body []byte
	etag string
}

// encodedSpec returns the document in the given format. Each format is
// encoded once; later calls return the same bytes.
func (r *Router) encodedSpec(f specFormat) (encodedDoc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc, ok := r.encoded[f]; ok {
		return doc, nil
	}

	b, err := f.encode(r.specLocked())
	if err != nil {
		return encodedDoc{}, err
	}
	sum := sha256.Sum256(b)
	doc := encodedDoc{body: b, etag: `"` + hex.EncodeToString(sum[:8]) + `"`}
	r.encoded[f] = doc
	return doc, nil
}

// serveEncodedSpec serves one encoding of the document. Clients revalidate
// with If-None-Match and get 304 while the document is unchanged.
func (r *Router) serveEncodedSpec(f specFormat, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		doc, err := r.encodedSpec(f)
		if err != nil {
			writeErrorResponse(w, err)
			return
		}

		w.Header().Set("ETag", doc.etag)
		w.Header().Set("Cache-Control", "no-cache")
		if match := req.Header.Get("If-None-Match"); match != "" && (match == "*" || strings.Contains(match, doc.etag)) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", contentType)
		//nolint:errcheck,gosec // best-effort after WriteHeader
		w.Write(doc.body)
	}
}

// ServeSpec registers a GET handler at the given path that serves
// the OpenAPI document as JSON. The endpoint itself is not documented.
func (r *Router) ServeSpec(pattern string) {
	r.mux.HandleFunc("GET "+pattern, r.serveEncodedSpec(formatJSON, contentJSON))
}

// ServeSpecYAML registers a GET handler at the given path that serves
// the OpenAPI document as YAML.
func (r *Router) ServeSpecYAML(pattern string) {
	r.mux.HandleFunc("GET "+pattern, r.serveEncodedSpec(formatYAML, "application/yaml"))
}

// WriteSpec writes the OpenAPI document as indented JSON to w.
func (r *Router) WriteSpec(w io.Writer) error {
	doc, err := r.encodedSpec(formatJSONIndent)
	if err != nil {
		return err
	}
	_, err = w.Write(doc.body)
	return err
}

// WriteSpecYAML writes the OpenAPI document as YAML to w.
func (r *Router) WriteSpecYAML(w io.Writer) error {
	doc, err := r.encodedSpec(formatYAML)
	if err != nil {
		return err
	}
	_, err = w.Write(doc.body)
	return err
}
