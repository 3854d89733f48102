package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	errs "github.com/matzehuels/algotrace/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidGraph, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeNodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeAlgorithmNotImplemented:
		return http.StatusNotImplemented
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	msg := errs.UserMessage(err)
	if code == errs.ErrCodeInternal {
		msg = "internal error"
	}
	writeJSON(w, statusFor(code), errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}

func invalidInput(format string, args ...any) error {
	return errs.New(errs.ErrCodeInvalidInput, format, args...)
}

func internal(err error, what string) error {
	return errs.Wrap(errs.ErrCodeInternal, err, "%s", what)
}

func invalidBody(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return invalidInput("request body exceeds %d bytes", tooLarge.Limit)
	}
	return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid JSON body: %v", err)
}

// invalidRequest flattens validator errors into one message naming every
// failing field.
func invalidRequest(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request")
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag())
		}
	}
	return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request: %s", strings.Join(parts, "; "))
}

// newValidator returns a validator that reports JSON field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
