package docplan

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are used to translate domain failures into behavior: the crawl
// orchestrator recovers from per-page extraction codes via the one-shot
// correction retry, while EUNAVAILABLE and ENODISCOVERY surface to the
// caller as run-level failures.
const (
	ECONFLICT     = "conflict"            // resource already exists
	EINTERNAL     = "internal"            // internal error
	EINVALID      = "invalid"             // validation failed
	ENOTFOUND     = "not_found"           // entity does not exist
	EUNAVAILABLE  = "unavailable"         // inference or render backend unreachable
	EPLANNING     = "planning_failed"     // model returned an unparsable or empty plan
	ENODISCOVERY  = "no_pages_discovered" // navigation selector yielded no links
	ENOCONTENT    = "content_not_found"   // content selector matched no node
	EEMPTYCONTENT = "empty_content"       // cleaned output empty or below threshold
	EALLFAILED    = "all_pages_failed"    // every discovered page failed extraction
)

// Error represents an application-specific error. Errors carry a machine
// readable code and a human readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docplan error: code=%s message=%s", e.Code, e.Message)
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
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
