// Package docs registers the OpenAPI document for the REST API.
// Regenerate with: swag init -g cmd/server/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Host login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/surveys": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["surveys"],
                "summary": "List surveys",
                "parameters": [
                    {"in": "query", "name": "include_inactive", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Survey"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["surveys"],
                "summary": "Create a survey",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateSurveyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Survey"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/surveys/{surveyId}": {
            "get": {
                "tags": ["surveys"],
                "summary": "Get a survey",
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Survey"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["surveys"],
                "summary": "Update a survey",
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.UpdateSurveyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Survey"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["surveys"],
                "summary": "Deactivate a survey",
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/surveys/{surveyId}/responses": {
            "post": {
                "tags": ["responses"],
                "summary": "Submit a response",
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.SubmitResponseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.ResponseRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["responses"],
                "summary": "List responses",
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/surveys/{surveyId}/responses/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["responses"],
                "summary": "Export responses as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/surveys/{surveyId}/responses/{responseId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["responses"],
                "summary": "Get one response",
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"},
                    {"in": "path", "name": "responseId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ResponseRecord"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/surveys/{surveyId}/analytics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Per-question analytics",
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AnalyticsReport"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/surveys/{surveyId}/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Dashboard summary",
                "parameters": [
                    {"in": "path", "name": "surveyId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SurveySummary"}}
                }
            }
        },
        "/ai/generate-questions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ai"],
                "summary": "Generate survey questions from a prompt",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.GenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.GenerationResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "hostId": {"type": "string"}}
        },
        "model.Question": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "type": {"type": "string", "enum": ["text", "multiple_choice", "rating", "yes_no", "number", "audio"]},
                "options": {"type": "array", "items": {"type": "string"}},
                "required": {"type": "boolean"}
            }
        },
        "model.GeneratedQuestion": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "type": {"type": "string", "enum": ["text", "multiple_choice", "rating", "yes_no", "number"]},
                "options": {"type": "array", "items": {"type": "string"}},
                "required": {"type": "boolean"}
            }
        },
        "model.Survey": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.Question"}},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "model.CreateSurveyRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.Question"}}
            }
        },
        "model.UpdateSurveyRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.Question"}},
                "is_active": {"type": "boolean"}
            }
        },
        "model.SubmitResponseRequest": {
            "type": "object",
            "properties": {
                "responses": {"type": "object", "additionalProperties": true},
                "audio_data": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "model.ResponseRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "survey_id": {"type": "string"},
                "responses": {"type": "object", "additionalProperties": true},
                "audio_data": {"type": "object", "additionalProperties": {"type": "string"}},
                "submitted_at": {"type": "string", "format": "date-time"}
            }
        },
        "model.QuestionAnalytics": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "response_count": {"type": "integer"},
                "data": {"description": "type-specific summary, or a marker string"}
            }
        },
        "model.AnalyticsReport": {
            "type": "object",
            "properties": {
                "survey_id": {"type": "string"},
                "title": {"type": "string"},
                "total_responses": {"type": "integer"},
                "analytics": {"type": "object", "additionalProperties": {"$ref": "#/definitions/model.QuestionAnalytics"}}
            }
        },
        "model.SurveySummary": {
            "type": "object",
            "properties": {
                "survey_id": {"type": "string"},
                "title": {"type": "string"},
                "total_questions": {"type": "integer"},
                "total_responses": {"type": "integer"},
                "recent_responses_7d": {"type": "integer"},
                "completion_rate": {"type": "number"},
                "created_at": {"type": "string", "format": "date-time"},
                "is_active": {"type": "boolean"}
            }
        },
        "model.GenerateRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string"},
                "question_count": {"type": "integer", "default": 5}
            }
        },
        "model.GenerationResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.GeneratedQuestion"}},
                "count": {"type": "integer"},
                "error": {"type": "string"},
                "raw_output": {"type": "string"},
                "model": {"type": "string"},
                "prompt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "SurveyPulse API",
	Description:      "Survey management, response analytics and AI question generation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
