package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "BunkerPal API",
        "description": "Class attendance tracking with bunk/attend projections",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Accounts and tokens"},
        {"name": "Session", "description": "Load timetable, recalculate, build dashboard"},
        {"name": "Users", "description": "Own account"},
        {"name": "Timetable", "description": "Weekly schedule"},
        {"name": "Attendance", "description": "Daily logs and subject summaries"},
        {"name": "Dashboard", "description": "Percentages and projections"},
        {"name": "Reports", "description": "CSV/PDF attendance exports"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create an account",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Email taken"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login and establish a session",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid token"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke a refresh token",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/session": {
            "post": {
                "tags": ["Session"],
                "summary": "Load timetable, recalculate summaries and return the dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/me": {
            "get": {
                "tags": ["Users"],
                "summary": "Current account",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update profile",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object", "properties": {"full_name": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/me/password": {
            "put": {
                "tags": ["Users"],
                "summary": "Change password",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"type": "object", "properties": {"current_password": {"type": "string"}, "new_password": {"type": "string"}}}}],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Wrong current password"}}
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the weekly schedule",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Timetable"],
                "summary": "Replace the weekly schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/TimetableRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid schedule"}}
            }
        },
        "/timetable/subjects": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Distinct subjects in the schedule",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/attendance/days/{date}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Resolve the plan for a date",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "date", "required": true, "type": "string", "format": "date"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid date"}}
            },
            "put": {
                "tags": ["Attendance"],
                "summary": "Save an ordinary day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "date", "required": true, "type": "string", "format": "date"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SaveDayRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Weekend"}}
            }
        },
        "/attendance/days/{date}/holiday": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark a date as holiday",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "date", "required": true, "type": "string", "format": "date"}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Weekend"}}
            }
        },
        "/attendance/recalculate": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Rebuild subject summaries from daily logs",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List subject summaries",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard with per-subject projections",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/projection": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Ad-hoc projection",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "attended", "type": "integer"},
                    {"in": "query", "name": "total", "type": "integer"},
                    {"in": "query", "name": "target", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid query"}}
            }
        },
        "/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue an attendance export",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ReportRequest"}}],
                "responses": {"202": {"description": "Accepted"}, "404": {"description": "Reports disabled"}}
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export job status",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished export",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"in": "path", "name": "token", "required": true, "type": "string"}],
                "responses": {"200": {"description": "File"}, "401": {"description": "Invalid or expired link"}}
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TimetableRequest": {
            "type": "object",
            "properties": {
                "week": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                }
            }
        },
        "PeriodEntry": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "attended": {"type": "boolean"}
            }
        },
        "SaveDayRequest": {
            "type": "object",
            "properties": {
                "periods": {"type": "object", "additionalProperties": {"$ref": "#/definitions/PeriodEntry"}}
            }
        },
        "ReportRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
