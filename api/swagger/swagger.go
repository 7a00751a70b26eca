package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "VakilDesk API",
        "description": "Case management for legal practitioners",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Practitioner login"},
        {"name": "Cases", "description": "Case records, search and summary"},
        {"name": "Calendar", "description": "Hearing calendar"},
        {"name": "Advisor", "description": "AI-assisted drafting, review and advice"},
        {"name": "Data", "description": "Backup export and import"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate the practitioner",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current practitioner",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cases": {
            "get": {
                "tags": ["Cases"],
                "summary": "Search and list cases",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["Pending", "Decided", "All"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Cases"],
                "summary": "Register a new case",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveCaseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/cases/summary": {
            "get": {
                "tags": ["Cases"],
                "summary": "Case totals for the dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cases/{id}": {
            "get": {
                "tags": ["Cases"],
                "summary": "Get one case",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Cases"],
                "summary": "Replace a case record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveCaseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/cases/{id}/predict-stage": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Suggest the next procedural stage",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Hearing calendar index",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/{date}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Cases listed on one date",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/drafts": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Generate a draft document from instructions",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/drafts/export": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Render draft text to a downloadable PDF",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportDraftRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reviews": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Review an uploaded document (server-sent events)",
                "consumes": ["multipart/form-data"],
                "produces": ["text/event-stream"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Event stream"},
                    "400": {"description": "Unsupported or oversized file"}
                }
            }
        },
        "/chat": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Chat with the advisor (server-sent events)",
                "produces": ["text/event-stream"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "Event stream"}
                }
            }
        },
        "/data/export": {
            "get": {
                "tags": ["Data"],
                "summary": "Download the full case collection as a JSON backup",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Backup attachment"}
                }
            },
            "post": {
                "tags": ["Data"],
                "summary": "Store a backup and return a signed download URL",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/data/import": {
            "post": {
                "tags": ["Data"],
                "summary": "Replace the whole case collection from a backup file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "confirm", "in": "formData", "required": true, "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed payload or missing confirmation"}
                }
            }
        },
        "/files/{token}": {
            "get": {
                "tags": ["Data"],
                "summary": "Download a stored file via signed token",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SaveCaseRequest": {
            "type": "object",
            "required": ["title", "caseNumber", "nature", "status"],
            "properties": {
                "title": {"type": "string"},
                "caseNumber": {"type": "string"},
                "filingYear": {"type": "string"},
                "nature": {"type": "string", "enum": ["Civil", "Criminal"]},
                "caseType": {"type": "string"},
                "side": {"type": "string"},
                "court": {"type": "string"},
                "firNumber": {"type": "string"},
                "policeStation": {"type": "string"},
                "offence": {"type": "string"},
                "stage": {"type": "string"},
                "diaryNote": {"type": "string"},
                "nextDate": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["Pending", "Decided"]},
                "history": {"type": "array", "items": {"$ref": "#/definitions/HistoryEntry"}}
            }
        },
        "HistoryEntry": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "proceedings": {"type": "string"},
                "stage": {"type": "string"},
                "nextDate": {"type": "string", "format": "date"}
            }
        },
        "DraftRequest": {
            "type": "object",
            "required": ["instructions"],
            "properties": {
                "instructions": {"type": "string"}
            }
        },
        "ExportDraftRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"}
            }
        },
        "ChatRequest": {
            "type": "object",
            "required": ["messages"],
            "properties": {
                "messages": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "role": {"type": "string", "enum": ["user", "model"]},
                            "text": {"type": "string"}
                        }
                    }
                }
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
