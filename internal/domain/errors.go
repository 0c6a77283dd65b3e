package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("access denied")
	ErrStoreUnavailable = errors.New("document store unavailable")
	ErrPermissionDenied = errors.New("document store permission denied")
	ErrInvalidPath      = errors.New("invalid document path")
	ErrInvalidRate      = errors.New("exchange rate must be a positive finite number")
)

// ProvisionError signals that writing the tenant record failed.
// Fatal to the provisioning call; carries the underlying store error.
type ProvisionError struct {
	TenantID string
	Cause    error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision tenant %s: %v", e.TenantID, e.Cause)
}

func (e *ProvisionError) Unwrap() error { return e.Cause }
