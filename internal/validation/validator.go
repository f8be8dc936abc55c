package validation

import (
	"fmt"
	"reflect"
	"strings"

	"ledger-reports/internal/ledger"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with the report request rules
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var instance *Validator

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a validator with the report rules registered and field
// names reported by their json, param or query tag.
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("report_year", validateReportYear)
	_ = v.RegisterValidation("report_month", validateReportMonth)
	_ = v.RegisterValidation("daily_metric", validateDailyMetric)
	_ = v.RegisterValidation("transaction_id", validateTransactionID)

	v.RegisterTagNameFunc(fieldName)

	return &Validator{validate: v}
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "param", "query"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// validateReportYear accepts the years a report period can address
func validateReportYear(fl validator.FieldLevel) bool {
	if !isInt(fl.Field()) {
		return false
	}
	_, err := ledger.NewPeriod(int(fl.Field().Int()), 1)
	return err == nil
}

// validateReportMonth accepts 1 through 12
func validateReportMonth(fl validator.FieldLevel) bool {
	if !isInt(fl.Field()) {
		return false
	}
	_, err := ledger.NewPeriod(1, int(fl.Field().Int()))
	return err == nil
}

// validateDailyMetric accepts expense, income, net or empty
func validateDailyMetric(fl validator.FieldLevel) bool {
	_, err := ledger.ParseDailyMetric(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	return err == nil
}

// validateTransactionID rejects blank identifiers and ones with path separators
func validateTransactionID(fl validator.FieldLevel) bool {
	id := strings.TrimSpace(fl.Field().String())
	return id != "" && !strings.ContainsAny(id, "/?#")
}

func isInt(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// FieldMessage renders a field error as a short client-facing phrase
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "report_year":
		return "must be between 1 and 9999"
	case "report_month":
		return "must be between 1 and 12"
	case "daily_metric":
		return "must be one of expense, income, net"
	case "transaction_id":
		return "must be a non-empty identifier without path separators"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
