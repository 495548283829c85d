// Package docs registers the Swagger specification served at /api/docs.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new account",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate and open a session",
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Revoke the current refresh token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Return the authenticated user's profile",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            },
            "put": {
                "tags": ["auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Update username or avatar",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange the refresh cookie for a new access token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/verify-email/{token}": {
            "get": {
                "tags": ["auth"],
                "summary": "Confirm an email address",
                "responses": {
                    "302": {"description": "Found"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/auth/resend-email": {
            "post": {
                "tags": ["auth"],
                "summary": "Resend the verification mail",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/auth/forgot-password": {
            "post": {
                "tags": ["auth"],
                "summary": "Send a password reset mail",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Change the password of the authenticated user",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/reset-password": {
            "post": {
                "tags": ["auth"],
                "summary": "Set a new password using a reset token",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/themes/last-five": {
            "get": {
                "tags": ["themes"],
                "summary": "List the five newest themes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/themes/{id}": {
            "get": {
                "tags": ["themes"],
                "summary": "Get a theme by id",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/themes": {
            "post": {
                "tags": ["themes"],
                "security": [{"BearerAuth": []}],
                "summary": "Create a theme",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/themes/{id}/comments": {
            "post": {
                "tags": ["themes"],
                "security": [{"BearerAuth": []}],
                "summary": "Comment on a theme",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/likes": {
            "post": {
                "tags": ["likes"],
                "security": [{"BearerAuth": []}],
                "summary": "Like a theme or comment",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            },
            "delete": {
                "tags": ["likes"],
                "security": [{"BearerAuth": []}],
                "summary": "Remove a like",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/categories": {
            "get": {
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/news": {
            "get": {
                "tags": ["news"],
                "summary": "List latest news",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["news"],
                "security": [{"BearerAuth": []}],
                "summary": "Publish a news article",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/news/{id}": {
            "get": {
                "tags": ["news"],
                "summary": "Get a news article",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["news"],
                "security": [{"BearerAuth": []}],
                "summary": "Edit a news article",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["news"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete a news article",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "ForumHub API",
	Description:      "Forum backend: authentication, themes, comments, likes and news.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
