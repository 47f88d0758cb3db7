// Package docs holds the OpenAPI document served by swaggerkit; regenerate with swag
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/catalog/streams": {
            "get": {
                "summary": "Filtered and sorted streams",
                "operationId": "catalogList",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/catalog/streams/search": {
            "post": {
                "summary": "Filtered and sorted streams from a JSON query",
                "operationId": "catalogSearch",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/catalog/streams/{id}": {
            "get": {
                "summary": "One stream by video id",
                "operationId": "catalogStream",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ]
            }
        },
        "/catalog/tags": {
            "get": {
                "summary": "Known tags and their selection state",
                "operationId": "catalogTags",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            },
            "delete": {
                "summary": "Clear every tag selection",
                "operationId": "catalogResetTags",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/catalog/tags/{name}/cycle": {
            "post": {
                "summary": "Advance a tag unset, include, exclude, unset",
                "operationId": "catalogCycleTag",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "name",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ]
            }
        },
        "/catalog/reload": {
            "post": {
                "summary": "Refetch uploads and tag tables and replace the catalog",
                "operationId": "catalogReload",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/catalog/channel": {
            "get": {
                "summary": "Channel of the loaded catalog",
                "operationId": "catalogChannel",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/catalog/stats": {
            "get": {
                "summary": "Catalog counts and window bounds",
                "operationId": "catalogStats",
                "tags": [
                    "Catalog"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/health": {
            "get": {
                "summary": "Liveness",
                "operationId": "metaHealth",
                "tags": [
                    "Meta"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/ready": {
            "get": {
                "summary": "Readiness with dependency probes; 503 when any probe fails",
                "operationId": "metaReady",
                "tags": [
                    "Meta"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/version": {
            "get": {
                "summary": "Build info",
                "operationId": "metaVersion",
                "tags": [
                    "Meta"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/service": {
            "get": {
                "summary": "Service name and uptime",
                "operationId": "metaService",
                "tags": [
                    "Meta"
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "Envelope": {
                "type": "object",
                "properties": {
                    "status_code": {
                        "type": "integer"
                    },
                    "status": {
                        "type": "string"
                    },
                    "code": {
                        "type": "integer"
                    },
                    "error": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    },
                    "data": {}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported OpenAPI info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "Streamdex API",
	Description:      "Stream catalog reconciliation and filtering",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
