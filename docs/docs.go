// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/api/board": {"get": {"tags": ["Board"], "summary": "Board layout", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.BoardResponse"}}}}},
        "/api/session": {"post": {"tags": ["Session"], "summary": "Get or create a session", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SessionResponse"}}}}},
        "/api/rooms": {
            "get": {"tags": ["Room"], "summary": "List open rooms", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Room"], "summary": "Create room", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.CreateRoomRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}}}
        },
        "/api/rooms/{code}": {"get": {"tags": ["Room"], "summary": "Get room by code", "produces": ["application/json"],
            "parameters": [{"in": "path", "name": "code", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}}}},
        "/api/rooms/{code}/join": {"post": {"tags": ["Room"], "summary": "Join room", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "path", "name": "code", "required": true, "type": "string"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.JoinRoomRequest"}}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}},
        "/api/room": {"get": {"tags": ["Room"], "summary": "Current room", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/room/leave": {"post": {"tags": ["Room"], "summary": "Leave room", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/api/room/color": {"put": {"tags": ["Room"], "summary": "Change color", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.UpdateColorRequest"}}],
            "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/room/ready": {"post": {"tags": ["Room"], "summary": "Toggle ready", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/api/room/start": {"post": {"tags": ["Game"], "summary": "Start game", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/api/room/roll": {"post": {"tags": ["Game"], "summary": "Roll dice", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/api/room/move": {"post": {"tags": ["Game"], "summary": "Move token", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.MoveRequest"}}],
            "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/api/room/valid-moves": {"get": {"tags": ["Game"], "summary": "Valid moves", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "http.CreateRoomRequest": {"type": "object", "required": ["capacity", "color", "name"], "properties": {
            "capacity": {"type": "integer", "maximum": 4, "minimum": 2},
            "color": {"type": "string", "enum": ["red", "green", "yellow", "blue"]},
            "name": {"type": "string", "maxLength": 20, "minLength": 1}}},
        "http.JoinRoomRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string", "maxLength": 20, "minLength": 1}}},
        "http.UpdateColorRequest": {"type": "object", "required": ["color"], "properties": {"color": {"type": "string", "enum": ["red", "green", "yellow", "blue"]}}},
        "http.MoveRequest": {"type": "object", "required": ["tokenId"], "properties": {"tokenId": {"type": "string"}}},
        "http.SessionResponse": {"type": "object", "properties": {"sessionId": {"type": "string"}, "token": {"type": "string"}}},
        "http.ErrorResponse": {"type": "object", "properties": {"error": {"type": "object", "properties": {
            "kind": {"type": "string"}, "reason": {"type": "string"}, "message": {"type": "string"},
            "metadata": {"type": "object", "additionalProperties": {"type": "string"}}}}}},
        "http.BoardResponse": {"type": "object", "properties": {
            "trackLength": {"type": "integer"}, "laneStart": {"type": "integer"}, "finished": {"type": "integer"},
            "safeCells": {"type": "array", "items": {"type": "integer"}},
            "colors": {"type": "array", "items": {"type": "object", "properties": {
                "color": {"type": "string"}, "start": {"type": "integer"}, "gateway": {"type": "integer"}, "star": {"type": "integer"}}}},
            "limits": {"type": "object", "additionalProperties": {"type": "integer"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ludo Room Server API",
	Description:      "Rooms, lobby and turn-based Ludo games over REST and WebSocket",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
