package api

import (
	"fmt"
	"net/http"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

// Error describes a failed call to the storefront API. Err is one of the domain
// sentinels so callers can match with errors.Is.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Message)
	}
	return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.Err, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func sentinelForStatus(status int, notFound error) error {
	switch status {
	case http.StatusUnauthorized:
		return domainErrors.ErrNotAuthenticated
	case http.StatusForbidden:
		return domainErrors.ErrForbidden
	case http.StatusNotFound:
		return notFound
	default:
		return domainErrors.ErrOrderRejected
	}
}
