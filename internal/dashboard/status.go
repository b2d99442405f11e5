package dashboard

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the severity of a user-facing status line.
type Kind string

// Status kinds.
const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Status is a one-line outcome shown to the operator.
type Status struct {
	Kind    Kind
	Message string
}

// Success returns a success status.
func Success(format string, args ...any) Status {
	return Status{Kind: KindSuccess, Message: fmt.Sprintf(format, args...)}
}

// Info returns an informational status.
func Info(format string, args ...any) Status {
	return Status{Kind: KindInfo, Message: fmt.Sprintf(format, args...)}
}

// Classify turns a failed action into a status. A 404 is informational
// (notFound is shown as-is); other API errors name the action; anything else
// means the proxy itself could not be reached.
func Classify(action, notFound string, err error) Status {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound && notFound != "":
		return Status{Kind: KindInfo, Message: notFound}
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return Status{Kind: KindError, Message: fmt.Sprintf("Failed to %s: %s", action, msg)}
	default:
		return Status{Kind: KindError, Message: "Failed to connect to API. Is the dashboard server running?"}
	}
}
