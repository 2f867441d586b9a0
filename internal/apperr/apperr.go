package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Code classifies a failure independently of transport. Handlers translate
// codes to HTTP statuses at the edge; services only ever return these.
type Code string

const (
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeNotFound        Code = "NOT_FOUND"
	CodeForbidden       Code = "FORBIDDEN"
	CodeUserRestricted  Code = "USER_RESTRICTED"
	CodeConflict        Code = "CONFLICT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeServerMisconfig Code = "SERVER_MISCONFIGURED"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(message string) *Error    { return New(CodeBadRequest, message) }
func NotFound(message string) *Error      { return New(CodeNotFound, message) }
func Forbidden(message string) *Error     { return New(CodeForbidden, message) }
func Restricted(message string) *Error    { return New(CodeUserRestricted, message) }
func Conflict(message string) *Error      { return New(CodeConflict, message) }
func Unauthorized(message string) *Error  { return New(CodeUnauthorized, message) }
func Misconfigured(message string) *Error { return New(CodeServerMisconfig, message) }

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HTTPStatus maps a code to its conventional HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeBadRequest:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden, CodeUserRestricted:
		return fiber.StatusForbidden
	case CodeConflict:
		return fiber.StatusConflict
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeServerMisconfig:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
