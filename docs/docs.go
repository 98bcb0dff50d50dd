// Package docs registers the OpenAPI document served under /swagger.
// Regenerate it from the handler annotations with:
//
//	swag init -g cmd/server/main.go -o docs --v3.1
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {"url": "{{.BasePath}}"}
    ],
    "components": {
        "securitySchemes": {
            "BearerAuth": {
                "type": "http",
                "scheme": "bearer",
                "bearerFormat": "JWT"
            }
        }
    },
    "tags": [
        {"name": "auth"}, {"name": "staff"}, {"name": "roles"}, {"name": "products"},
        {"name": "collections"}, {"name": "product-types"}, {"name": "orders"},
        {"name": "shipments"}, {"name": "customers"}, {"name": "activity"},
        {"name": "finance"}, {"name": "settings"}, {"name": "studio"}, {"name": "public"},
        {"name": "payments"}, {"name": "uploads"}, {"name": "assistant"}, {"name": "admin"},
        {"name": "system"}
    ],
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bayup API",
	Description:      "Multi-tenant e-commerce backend: catalog, orders, finance, page builder and payments",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
