package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Supportbot API",
    "description": "Member support chat: FAQ answers, human handoff and self-service profile lookups",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/api/chat": {
      "post": {
        "tags": ["chat"],
        "summary": "Send a chat message",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "parameters": [
          {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}
        ],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
      }
    },
    "/api/faq": {
      "get": {"tags": ["faq"], "summary": "List FAQ topics", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
    },
    "/api/hours": {
      "get": {"tags": ["hours"], "summary": "Business hours status", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
    },
    "/api/sessions/{id}/profile": {
      "get": {
        "tags": ["sessions"],
        "summary": "Get the cached session profile",
        "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
        "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
      },
      "delete": {
        "tags": ["sessions"],
        "summary": "Forget the cached session profile",
        "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
        "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
      }
    },
    "/api/sessions/{id}/transcript": {
      "get": {
        "tags": ["sessions"],
        "summary": "Read a session transcript",
        "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
        "responses": {"200": {"description": "OK"}}
      }
    }
  },
  "definitions": {
    "ChatRequest": {
      "type": "object",
      "required": ["message"],
      "properties": {
        "session_id": {"type": "string"},
        "message": {"type": "string"}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
