// Package openapi generates and serves the OpenAPI 3 document describing
// the routes registered on the REST server.
//
// The document is assembled from an Info block plus per-route metadata
// declared by services. Request and response schemas are inferred from
// sample values using kin-openapi's schema generator.
package openapi

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Info describes the API for the generated document.
type Info struct {
	// Title of the API (required).
	Title string

	// Version of the API (required).
	Version string

	// Description of the API.
	Description string

	// ContactName, ContactURL and ContactEmail fill the document's contact block.
	ContactName  string
	ContactURL   string
	ContactEmail string

	// LicenseName and LicenseURL fill the document's license block.
	LicenseName string
	LicenseURL  string
}

// Operation is the route metadata consumed by the document builder.
//
// Path uses chi's brace syntax ("/users/{id}"), which is also valid OpenAPI
// path templating; parameters are derived from the template.
type Operation struct {
	Method      string
	Path        string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool

	// Request is a sample request body value used to infer the request
	// schema. nil means the operation has no request body.
	Request any

	// Response is a sample response body value used to infer the success
	// response schema. nil documents an empty response.
	Response any

	// ResponseStatus is the success status code; 0 means 200.
	ResponseStatus int
}

// pathParamPattern matches "{name}" segments in a path template.
var pathParamPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Build assembles the OpenAPI 3 document from the API info and operations.
func Build(info Info, ops []Operation) (*openapi3.T, error) {
	if info.Title == "" {
		return nil, fmt.Errorf("openapi: title is required")
	}
	if info.Version == "" {
		return nil, fmt.Errorf("openapi: version is required")
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	if info.ContactName != "" || info.ContactURL != "" || info.ContactEmail != "" {
		doc.Info.Contact = &openapi3.Contact{
			Name:  info.ContactName,
			URL:   info.ContactURL,
			Email: info.ContactEmail,
		}
	}
	if info.LicenseName != "" {
		doc.Info.License = &openapi3.License{
			Name: info.LicenseName,
			URL:  info.LicenseURL,
		}
	}

	gen := openapi3gen.NewGenerator(openapi3gen.UseAllExportedFields())

	for _, op := range ops {
		operation, err := buildOperation(gen, doc.Components.Schemas, op)
		if err != nil {
			return nil, fmt.Errorf("openapi: %s %s: %w", op.Method, op.Path, err)
		}

		item := doc.Paths.Value(op.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(op.Path, item)
		}
		item.SetOperation(strings.ToUpper(op.Method), operation)
	}

	return doc, nil
}

// buildOperation translates one route's metadata into an OpenAPI operation.
func buildOperation(gen *openapi3gen.Generator, schemas openapi3.Schemas, op Operation) (*openapi3.Operation, error) {
	operation := &openapi3.Operation{
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Deprecated:  op.Deprecated,
		Responses:   openapi3.NewResponses(),
	}

	// Path parameters come from the "{name}" segments of the template.
	for _, match := range pathParamPattern.FindAllStringSubmatch(op.Path, -1) {
		param := openapi3.NewPathParameter(match[1]).WithSchema(openapi3.NewStringSchema())
		operation.Parameters = append(operation.Parameters, &openapi3.ParameterRef{Value: param})
	}

	if op.Request != nil {
		schema, err := gen.NewSchemaRefForValue(op.Request, schemas)
		if err != nil {
			return nil, fmt.Errorf("request schema: %w", err)
		}
		body := openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(schema)
		operation.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	status := op.ResponseStatus
	if status == 0 {
		status = 200
	}

	response := openapi3.NewResponse().WithDescription("Success")
	if op.Response != nil {
		schema, err := gen.NewSchemaRefForValue(op.Response, schemas)
		if err != nil {
			return nil, fmt.Errorf("response schema: %w", err)
		}
		response = response.WithJSONSchemaRef(schema)
	}
	operation.Responses.Set(fmt.Sprintf("%d", status), &openapi3.ResponseRef{Value: response})

	// Every operation can also fail with the fixed error envelope.
	errSchema, err := gen.NewSchemaRefForValue(errorEnvelope{}, schemas)
	if err != nil {
		return nil, fmt.Errorf("error schema: %w", err)
	}
	errResponse := openapi3.NewResponse().
		WithDescription("Error envelope").
		WithJSONSchemaRef(errSchema)
	operation.Responses.Set("default", &openapi3.ResponseRef{Value: errResponse})

	return operation, nil
}

// errorEnvelope mirrors the httperr envelope shape for documentation.
type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
