// Package api содержит OpenAPI спецификацию сервиса (отдаётся роутером
// по /swagger/openapi.json).
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
