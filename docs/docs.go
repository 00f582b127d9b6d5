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
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Register", "responses": {"201": {"description": "Created"}, "409": {"description": "EMAIL_TAKEN"}}}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "User login", "responses": {"200": {"description": "OK"}, "401": {"description": "INVALID_CREDENTIALS"}}}},
        "/api/auth/refresh": {"post": {"tags": ["auth"], "summary": "Rotate refresh token", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid, revoked or expired"}}}},
        "/api/auth/logout": {"post": {"tags": ["auth"], "summary": "Logout", "responses": {"204": {"description": "No Content"}}}},
        "/api/me": {
            "get": {"tags": ["user"], "summary": "Current user", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["user"], "summary": "Update profile", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/accounts": {
            "get": {"tags": ["accounts"], "summary": "List accounts", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["accounts"], "summary": "Create account", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/accounts/{id}": {
            "get": {"tags": ["accounts"], "summary": "Get account", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "ACCOUNT_NOT_FOUND"}}},
            "patch": {"tags": ["accounts"], "summary": "Update account", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["accounts"], "summary": "Archive account", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/accounts/{id}/audit": {"get": {"tags": ["accounts"], "summary": "Reconcile balance", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "summary": "Create category", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "CATEGORY_EXISTS"}}}
        },
        "/api/categories/{id}": {
            "patch": {"tags": ["categories"], "summary": "Rename category", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["categories"], "summary": "Delete category", "security": [{"Bearer": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/transactions": {
            "get": {"tags": ["transactions"], "summary": "List transactions", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["transactions"], "summary": "Create transaction", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/transactions/{id}": {
            "get": {"tags": ["transactions"], "summary": "Get transaction", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["transactions"], "summary": "Update transaction", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["transactions"], "summary": "Delete transaction", "security": [{"Bearer": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/ai/parse": {"post": {"tags": ["ai"], "summary": "Parse free text into a draft", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/ai/jobs": {"get": {"tags": ["ai"], "summary": "List suggestion jobs", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "fintrack API",
	Description:      "Personal finance ledger: accounts, categories, transactions and text drafts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
