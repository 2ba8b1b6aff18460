package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// Token failures. The access guard reports all of them as ErrUnauthenticated
// but keeps the specific cause in the chain for logging.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrUnknownSubject   = errors.New("token subject not recognised")
)

var (
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrSeriesNotFound      = fmt.Errorf("series %w", ErrNotFound)
	ErrMeasurementNotFound = fmt.Errorf("measurement %w", ErrNotFound)
)

// ErrInvalidRange is returned when a series is given minValue >= maxValue.
var ErrInvalidRange = errors.New("min value must be less than max value")
