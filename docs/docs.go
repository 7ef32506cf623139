// Package docs registers the OpenAPI document served under /swagger.
// Paths are filled in by `swag init --v3.1 -g cmd/server/main.go`, which reads the
// handler annotations and overwrites this file.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "components": {
        "securitySchemes": {
            "BearerAuth": {
                "description": "Bearer token authentication. Format: \"Bearer {token}\"",
                "type": "apiKey",
                "name": "Authorization",
                "in": "header"
            }
        }
    },
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "{{.BasePath}}"
        }
    ],
    "paths": {},
    "openapi": "3.1.0"
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Rental Back-Office API",
	Description:      "Fleet, rentals, workshop and weekly owner settlement for a vehicle rental agency.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
