package exceptions

import (
	"checkout-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

// ErrorKind classifies a failure so callers can branch on it without
// inspecting HTTP status codes.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindInvalidState   ErrorKind = "INVALID_STATE"
	KindUnauthorized   ErrorKind = "UNAUTHORIZED"
	KindConfiguration  ErrorKind = "CONFIGURATION"
	KindGatewayFailure ErrorKind = "GATEWAY_FAILURE"
	KindInternal       ErrorKind = "INTERNAL"
)

// ErrDuplicateEntry marks a unique constraint violation coming from the store.
var ErrDuplicateEntry = errors.New("duplicate entry")

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Kind          ErrorKind  `json:"-"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err with a client facing message. When err is
// already a CustomError the caller location is appended and the original
// classification is kept.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)

	var existing *CustomError
	if errors.As(err, &existing) {
		return &CustomError{
			StatusCode:    existing.StatusCode,
			ClientMessage: existing.ClientMessage,
			DevMessage:    existing.DevMessage,
			Locations:     append([]Location{location}, existing.Locations...),
			Kind:          existing.Kind,
			cause:         existing.cause,
		}
	}

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
		Kind:          kindFromStatus(statusCode),
		cause:         err,
	}
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(2)},
		Kind:          kindFromStatus(statusCode),
	}
}

func withKind(err *CustomError, kind ErrorKind) *CustomError {
	err.Kind = kind
	return err
}

// KindOf returns the classification carried by err, KindInternal otherwise.
func KindOf(err error) ErrorKind {
	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.Kind != "" {
		return customErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func kindFromStatus(statusCode int) ErrorKind {
	switch statusCode {
	case constvars.StatusNotFound:
		return KindNotFound
	case constvars.StatusUnauthorized, constvars.StatusForbidden:
		return KindUnauthorized
	case constvars.StatusBadRequest, constvars.StatusConflict, constvars.StatusUnprocessableEntity:
		return KindInvalidState
	case constvars.StatusBadGateway, constvars.StatusGatewayTimeout:
		return KindGatewayFailure
	default:
		return KindInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
