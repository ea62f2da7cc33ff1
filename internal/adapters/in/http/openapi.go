package http

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// APIDocument is the validated OpenAPI description of the REST surface.
type APIDocument struct {
	doc  *openapi3.T
	json []byte
}

// LoadAPIDocument parses and validates the embedded OpenAPI document.
func LoadAPIDocument(ctx context.Context) (*APIDocument, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}

	return &APIDocument{doc: doc, json: raw}, nil
}

// ReadDoc satisfies swag.Swagger so the Swagger UI serves the same document.
func (d *APIDocument) ReadDoc() string {
	return string(d.json)
}

// JSON returns the document as served at /openapi.json.
func (d *APIDocument) JSON() []byte {
	return d.json
}

// Version is the info.version of the document.
func (d *APIDocument) Version() string {
	return d.doc.Info.Version
}

// HasOperation reports whether method and path are described by the document.
func (d *APIDocument) HasOperation(method, path string) bool {
	item := d.doc.Paths.Find(path)
	return item != nil && item.GetOperation(method) != nil
}

// register publishes the document under swag's default instance name. swag
// panics on duplicate registration, so repeated calls are ignored.
func (d *APIDocument) register() {
	if swag.GetSwagger(swag.Name) != nil {
		return
	}
	swag.Register(swag.Name, d)
}
