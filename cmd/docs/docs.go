// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/erp_ledger/main.go -o cmd/docs
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
        "/accounts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Create a new account", "responses": {"201": {"description": "Created"}}}
        },
        "/accounts/{accountID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Get an account by ID", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Deactivate an account", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/journal-entries": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "List journal entries", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Create a draft journal entry", "responses": {"201": {"description": "Created"}}}
        },
        "/journal-entries/{entryID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Get a journal entry with its lines", "parameters": [{"type": "string", "name": "entryID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Delete a draft entry", "parameters": [{"type": "string", "name": "entryID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/journal-entries/{entryID}/lines": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Replace the lines of a draft entry", "parameters": [{"type": "string", "name": "entryID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/journal-entries/{entryID}/post": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Post a draft entry", "parameters": [{"type": "string", "name": "entryID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/journal-entries/{entryID}/cancel": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Cancel a draft entry", "parameters": [{"type": "string", "name": "entryID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/journal-entries/{entryID}/reverse": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Reverse a posted entry", "parameters": [{"type": "string", "name": "entryID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/postings/{eventType}/{eventID}": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["postings"], "summary": "Post a business event to the ledger", "parameters": [{"type": "string", "name": "eventType", "in": "path", "required": true}, {"type": "string", "name": "eventID", "in": "path", "required": true}], "responses": {"200": {"description": "Already posted or skipped"}, "201": {"description": "Entry posted"}}}
        },
        "/posting-intents": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["postings"], "summary": "Queue a business event for posting", "responses": {"202": {"description": "Accepted"}}}
        },
        "/sequences/{series}/next": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["sequences"], "summary": "Issue the next document number of a series", "parameters": [{"type": "string", "name": "series", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/trial-balance": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Generate the trial balance", "responses": {"200": {"description": "OK"}}}
        },
        "/balances/recompute": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Recompute stored account balances", "responses": {"200": {"description": "OK"}}}
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ERP Ledger API",
	Description:      "General ledger posting service: manual journal entries, automatic posting of business events, document numbering and trial balance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
