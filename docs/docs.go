// Package docs registers the OpenAPI description served under /swagger.
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
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/gateway.loginRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/users": {
            "get": {"tags": ["users"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateUserInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/users/{id}": {
            "get": {"tags": ["users"], "summary": "Fetch a user", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["users"], "summary": "Update a user; omitted fields keep their value", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["users"], "summary": "Delete a user", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/users/{id}/orders": {
            "get": {"tags": ["users"], "summary": "List a user's orders", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/products": {
            "get": {"tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["products"], "summary": "Add a product to the catalog", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/products/{id}": {
            "get": {"tags": ["products"], "summary": "Fetch a product", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["products"], "summary": "Update a product", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["products"], "summary": "Delete a product", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/carts": {
            "post": {"tags": ["carts"], "summary": "Open a cart; user_id defaults to the token subject", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/carts/{cart_id}": {
            "get": {"tags": ["carts"], "summary": "Fetch a cart with its items; owner only", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "cart_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["carts"], "summary": "Delete a cart", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "cart_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/carts/{cart_id}/items": {
            "get": {"tags": ["carts"], "summary": "List cart lines at current prices", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "cart_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["carts"], "summary": "Add a product line to a cart", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "cart_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}
        },
        "/carts/{cart_id}/items/{item_id}": {
            "put": {"tags": ["carts"], "summary": "Change a line's quantity", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["carts"], "summary": "Remove a line", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/checkout": {
            "post": {
                "tags": ["checkout"],
                "summary": "Pay for a cart and empty it",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "402": {"description": "Payment Required"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/orders": {
            "get": {"tags": ["orders"], "summary": "List orders", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["orders"], "summary": "Record an order", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/orders/{id}": {
            "get": {"tags": ["orders"], "summary": "Fetch an order", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["orders"], "summary": "Update an order; owner only", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["orders"], "summary": "Delete an order", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/audit/{entity_id}": {
            "get": {
                "tags": ["audit"],
                "summary": "Newest audit entries for an entity (MongoDB audit store only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "entity_id", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query", "minimum": 1, "maximum": 500}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "gateway.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "service.CreateUserInput": {
            "type": "object",
            "required": ["email", "first_name", "last_name", "password"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6, "maxLength": 72},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "postal_code": {"type": "string"},
                "country": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PunkFits API",
	Description:      "Storefront backend: accounts, catalog, carts, checkout and orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
