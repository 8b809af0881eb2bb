package bank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies API failures structurally so callers do not have to
// parse error text.
type ErrorKind int

const (
	// KindOther is any failure that is not known to be transient
	KindOther ErrorKind = iota
	// KindUnavailable covers 503s and connection-level failures
	KindUnavailable
	// KindTimeout covers request timeouts
	KindTimeout
	// KindBadContentType covers maintenance pages and undecodable bodies
	KindBadContentType
	// KindAuth covers rejected credentials
	KindAuth
)

// APIError is a failure reported by (or while reaching) the bank API
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("bank API error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("bank API error: %s", e.Message)
}

// transientMarkers classify untyped upstream errors by message content.
// Fallback only; typed APIError kinds take precedence.
var transientMarkers = []string{"503", "timeout", "connection", "content type", "mimetype", "unavailable"}

// IsTransient reports whether err looks like a temporary upstream condition
// worth retrying. Typed APIErrors are classified by kind; anything else falls
// back to message matching.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindUnavailable, KindTimeout, KindBadContentType:
			return true
		default:
			return false
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
