package domain

import "errors"

var (
	ErrNotFound         = errors.New("itinerary not found")
	ErrInvalidDateRange = errors.New("end date must be after start date")
)
