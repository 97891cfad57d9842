// internal/common/errors/handler.go
package errors

import (
	"cardgen/internal/models"
)

// ErrorHandler turns any error raised inside a function into a response.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ToResponse normalizes err, logs it and renders {"error": message}.
func (h *ErrorHandler) ToResponse(err error, fields map[string]interface{}) (*StandardError, models.Response) {
	stdErr := Normalize(err)
	h.logError(stdErr, fields)
	return stdErr, Render(stdErr)
}

// Render builds the JSON error response for stdErr without logging.
func Render(stdErr *StandardError) models.Response {
	resp, err := models.NewJSONResponse(stdErr.StatusCode(), models.ErrorBody{Error: stdErr.Message})
	if err != nil {
		// unreachable for a string-only struct
		return models.Response{
			StatusCode: stdErr.StatusCode(),
			Headers:    models.JSONHeaders(),
			Body:       `{"error":"internal error"}`,
		}
	}
	return resp
}

func (h *ErrorHandler) logError(stdErr *StandardError, fields map[string]interface{}) {
	if h.logger == nil {
		return
	}

	out := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"statusCode":    stdErr.StatusCode(),
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range fields {
		out[k] = v
	}

	if stdErr.StatusCode() >= 500 {
		h.logger.Error("request failed", out)
		return
	}
	h.logger.Warn("request rejected", out)
}
