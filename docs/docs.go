// Package docs holds the OpenAPI document served under /swagger. It mirrors
// the swag annotations on the handlers in internal/router; keep both in step
// when a route changes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "https://opensource.org/licenses/Apache-2.0"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/gemini-api": {
            "post": {
                "description": "Forwards a prompt, or a complete generateContent payload, to Gemini and returns its response unchanged.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "generate"
                ],
                "summary": "Prompt completion",
                "parameters": [
                    {
                        "description": "Prompt or contents",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.GenerateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {}
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apperr.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apperr.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/news": {
            "get": {
                "description": "Aggregates the latest original posts from the curated accounts of the requested language, filtered by the topic's keywords, newest first.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "news"
                ],
                "summary": "Latest posts for a topic",
                "parameters": [
                    {
                        "type": "string",
                        "example": "labor-market",
                        "description": "Topic id",
                        "name": "topic",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "example": "en",
                        "description": "Language tag, unsupported values fall back to the primary language",
                        "name": "lang",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.NewsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apperr.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apperr.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "apperr.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "dto.GenerateRequest": {
            "type": "object",
            "properties": {
                "contents": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "prompt": {
                    "type": "string",
                    "example": "Summarize today's Saudi labor market headlines"
                }
            }
        },
        "dto.NewsResponse": {
            "type": "object",
            "properties": {
                "has_next_page": {
                    "type": "boolean"
                },
                "lang": {
                    "type": "string",
                    "example": "en"
                },
                "next_cursor": {
                    "type": "string"
                },
                "source_status": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.SourceStatus"
                    }
                },
                "sources": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "AlArabiya_Eng",
                        "arabnews",
                        "alekhbariyaEN"
                    ]
                },
                "topic": {
                    "type": "string",
                    "example": "labor-market"
                },
                "tweets": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "dto.SourceStatus": {
            "type": "object",
            "properties": {
                "account": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "fetched": {
                    "type": "integer"
                },
                "kept": {
                    "type": "integer"
                },
                "ok": {
                    "type": "boolean"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "News Pulse API",
	Description:      "Topical aggregation of the latest original posts from curated news accounts",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
