// internal/models/event.go
package models

import (
	"bytes"
	"encoding/json"
)

// Request is the HTTP-shaped event handed to a function invocation.
// Body is nil when the caller sent no body at all.
type Request struct {
	HTTPMethod string  `json:"httpMethod"`
	Body       *string `json:"body,omitempty"`
}

// Method returns the request method, defaulting to GET when the event carries none.
func (r Request) Method() string {
	if r.HTTPMethod == "" {
		return "GET"
	}
	return r.HTTPMethod
}

// RawBody returns the body string or "" when absent.
func (r Request) RawBody() string {
	if r.Body == nil {
		return ""
	}
	return *r.Body
}

// Response is the HTTP-shaped result of a function invocation.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// ErrorBody is the JSON payload of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSONHeaders are attached to every response that carries a JSON body.
func JSONHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// PreflightHeaders answer a CORS preflight.
func PreflightHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Max-Age":       "86400",
	}
}

// NewJSONResponse encodes v without escaping non-ASCII or HTML characters.
func NewJSONResponse(status int, v interface{}) (Response, error) {
	body, err := MarshalJSON(v)
	if err != nil {
		return Response{}, err
	}
	return Response{
		StatusCode: status,
		Headers:    JSONHeaders(),
		Body:       body,
	}, nil
}

// MarshalJSON is json.Marshal with HTML escaping off. encoding/json never
// escapes non-ASCII runes, so Cyrillic and emoji come out literally.
func MarshalJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
