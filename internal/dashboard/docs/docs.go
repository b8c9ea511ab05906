// Package docs holds the generated swagger specification for the dashboard API.
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
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Build a dashboard snapshot",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma-separated ticker symbols (e.g. AAPL,MSFT)",
                        "name": "tickers",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/tickers/{symbol}/news": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get labeled news for one ticker",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Ticker symbol",
                        "name": "symbol",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Stock Sentinel Dashboard API",
	Description:      "Price history, news sentiment labeling and aggregation per ticker.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
