package openapi

import (
	"fmt"
	"html"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// SpecPath is the route the JSON document is served on.
const SpecPath = "/openapi.json"

// DocsPath is the route the interactive documentation page is served on.
const DocsPath = "/docs"

// SpecHandler serves the document as JSON at SpecPath.
//
// The document cannot change after the server router is built, so it is
// marshaled once up front and the handler only serves the cached bytes.
func SpecHandler(doc *openapi3.T) (http.HandlerFunc, error) {
	body, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(body)
	}, nil
}

// docsPage is the Swagger UI shell pointing at the served document.
const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      SwaggerUIBundle({ url: %q, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`

// DocsHandler serves the Swagger UI page at DocsPath, loading the document
// from specURL.
func DocsHandler(title, specURL string) http.HandlerFunc {
	page := []byte(fmt.Sprintf(docsPage, html.EscapeString(title), specURL))

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}
