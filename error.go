package blogtext

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"

	// EAMBIGUOUS means a URL looks like a platform URL but does not identify
	// a post. It is not fatal: extraction continues with the original URL.
	EAMBIGUOUS = "ambiguous"

	// ETRANSIENT is a retryable network or anti-bot condition.
	ETRANSIENT = "transient"

	// EBLOCKED means the fetch retry budget is exhausted. Terminal.
	EBLOCKED = "blocked"

	// EEXTRACT means no strategy produced a usable content fragment.
	EEXTRACT = "extraction_empty"

	// ESANITIZE means a fragment was found but no text survived cleaning.
	ESANITIZE = "sanitization_empty"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
