// Package apiconfig builds the huma configuration shared by the server and tests.
package apiconfig

import (
	"github.com/danielgtaylor/huma/v2"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // registers application/cbor
)

const (
	// Title is the OpenAPI document title.
	Title = "Hello CI/CD API"
	// DocsPath serves the interactive API reference.
	DocsPath = "/api-docs"
)

// New returns the huma config for the API.
//
// The default create hook installs the schema link transformer, which adds a
// "$schema" member to every response body and a Link header. Responses here
// must contain exactly the documented fields, so the hook is dropped.
func New(version string) huma.Config {
	cfg := huma.DefaultConfig(Title, version)
	cfg.DocsPath = DocsPath
	cfg.CreateHooks = nil
	cfg.OnAddOperation = append(cfg.OnAddOperation, mirrorCBOR)
	return cfg
}

// mirrorCBOR documents application/cbor wherever application/json is documented,
// since huma negotiates both formats for every operation.
func mirrorCBOR(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}
