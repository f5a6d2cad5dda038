// Package docs registers the OpenAPI document served at /swagger. Regenerate
// the full document with `swag init -g cmd/api/main.go -o internal/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/clients": {
            "get": {"tags": ["clients"], "summary": "List clients", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Clients"}}},
            "post": {"tags": ["clients"], "summary": "Create a client", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created client"}, "422": {"description": "Field errors"}}}
        },
        "/invoices": {
            "get": {"tags": ["invoices"], "summary": "List invoices", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoices"}}},
            "post": {"tags": ["invoices"], "summary": "Create an invoice", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created invoice"}, "422": {"description": "Field errors"}}}
        },
        "/invoices/{id}/paid": {
            "post": {"tags": ["invoices"], "summary": "Mark an invoice paid", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Paid invoice"}, "409": {"description": "Already paid"}}}
        },
        "/reminders": {
            "get": {"tags": ["reminders"], "summary": "List reminders", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Reminders"}}},
            "post": {"tags": ["reminders"], "summary": "Create a reminder", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created reminder"}}}
        },
        "/expenses": {
            "get": {"tags": ["expenses"], "summary": "List expenses", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Expenses"}}},
            "post": {"tags": ["expenses"], "summary": "Create an expense", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created expense"}}}
        },
        "/validate/{entity}": {
            "post": {"tags": ["validation"], "summary": "Validate a form", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Validation result"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Followuply API",
	Description:      "Followuply tracks a freelancer's clients, invoices, follow-up reminders and expenses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
