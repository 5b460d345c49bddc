package domain

import "errors"

var (
	ErrBusinessNotFound     = errors.New("business not found")
	ErrLocationNotFound     = errors.New("business location not found")
	ErrConfirmationRequired = errors.New("deletion requires explicit confirmation")
	ErrLocationLimitReached = errors.New("location limit reached for subscription tier")
	ErrGeocodeFailed        = errors.New("failed to geocode address")
)
