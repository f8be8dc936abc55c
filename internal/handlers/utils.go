package handlers

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"ledger-reports/internal/errors"
	"ledger-reports/internal/ledger"
	"ledger-reports/internal/repositories"
	"ledger-reports/internal/services"
	"ledger-reports/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// bindAndValidate reads path and query values into req and runs its validate tags.
// It writes the error response itself and returns false when the request is rejected.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(bindErrorDetail(err)))
	}

	if err := c.Validate(req); err != nil {
		return false, sendValidationError(c, err)
	}

	return true, nil
}

func bindErrorDetail(err error) string {
	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		if internal := httpErr.Internal; internal != nil {
			return fmt.Sprintf("%v: %v", httpErr.Message, internal)
		}
		return fmt.Sprintf("%v", httpErr.Message)
	}
	return err.Error()
}

// sendValidationError picks the most specific code for the failed tags
func sendValidationError(c echo.Context, err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	code := errors.ValidationGeneral
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "report_year", "report_month":
			code = errors.ReportInvalidPeriod
		case "daily_metric":
			if code == errors.ValidationGeneral {
				code = errors.ReportInvalidMetric
			}
		case "transaction_id":
			if code == errors.ValidationGeneral {
				code = errors.TransactionInvalidID
			}
		}
		details = append(details, fmt.Sprintf("%s: %s", fe.Field(), validation.FieldMessage(fe)))
	}

	return SendError(c, code, errors.WithDetails(details...))
}

func sendReportError(c echo.Context, code errors.ErrorCode, err error) error {
	response := errors.NewReportError(code, err, getTraceID(c))
	return c.JSON(response.GetHTTPStatus(), response)
}

// handleServiceError maps report service errors onto API error codes
func handleServiceError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, ledger.ErrInvalidPeriod):
		return sendReportError(c, errors.ReportInvalidPeriod, err)
	case stderrors.Is(err, ledger.ErrInvalidMetric):
		return sendReportError(c, errors.ReportInvalidMetric, err)
	case stderrors.Is(err, services.ErrMissingTransactionID):
		return sendReportError(c, errors.TransactionInvalidID, nil)
	case stderrors.Is(err, repositories.ErrTransactionNotFound):
		return sendReportError(c, errors.TransactionNotFound, nil)
	case stderrors.Is(err, ledger.ErrInvalidTransaction):
		return sendReportError(c, errors.TransactionValidationFailed, err)
	case stderrors.Is(err, services.ErrCircuitBreakerOpen):
		return sendReportError(c, errors.SystemServiceUnavailable, nil)
	case stderrors.Is(err, ledger.ErrInvalidTolerance), stderrors.Is(err, ledger.ErrInvalidMatchMode):
		slog.Error("report policy misconfigured", "trace_id", getTraceID(c), "error", err)
		return sendReportError(c, errors.ReportInvalidPolicy, nil)
	default:
		return SendSystemError(c, err)
	}
}
