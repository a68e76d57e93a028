package domain

import (
	"errors"
	"fmt"
)

// Auth errors
var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrLinkInvalid    = errors.New("sign-in link is invalid")
	ErrSessionInvalid = errors.New("session is invalid")
	ErrEmailDelivery  = errors.New("email delivery failed")
)

// Billing errors
var (
	ErrUnknownTier         = errors.New("unknown tier")
	ErrInvalidBillingEvent = errors.New("invalid billing event")
)

// Content errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrNotCollectionOwner = errors.New("collection belongs to another user")
	ErrModelNotFound      = errors.New("working model not found")
	ErrCounselNotFound    = errors.New("counsel not found")
)

// TierLimitError signals that an authenticated user's tier denies a feature.
// It carries enough structure for the API layer to render an upgrade prompt
// instead of a generic authorization error.
type TierLimitError struct {
	Feature Feature
	Limit   *int // nil for capability (on/off) denials
}

func (e *TierLimitError) Error() string {
	if e.Limit != nil {
		return fmt.Sprintf("tier limit reached for %s (limit %d)", e.Feature, *e.Limit)
	}
	return fmt.Sprintf("tier does not include %s", e.Feature)
}
