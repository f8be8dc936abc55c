package handlers

import (
	"log/slog"
	"net/http"

	"ledger-reports/internal/errors"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// Handlers answer errors through these helpers only:
//
// 1. SendError - client errors (4xx) and report input problems
//    - Bad path/query values: SendError(c, errors.ReportInvalidPeriod, errors.WithDetails("..."))
//    - Missing data: SendError(c, errors.TransactionNotFound)
//
// 2. SendSystemError - storage and unexpected failures (500)
//    The internal error is logged with the trace ID and never sent to the client.
//
// 3. handleServiceError - maps a report service error onto one of the two above.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse wraps every successful payload
type SuccessResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendData writes a 200 response with the standard envelope
func SendData(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, SuccessResponse{Data: data})
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError logs err and answers with a generic SYSTEM_001 response
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internal := errors.WrapSystemError(err, traceID)

	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", internal)

	return c.JSON(http.StatusInternalServerError, errorResponse)
}
