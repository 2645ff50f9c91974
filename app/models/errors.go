package models

import "errors"

var (
	ErrInvalidSlug     = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrInvalidCutoff   = errors.New("cutoff time must be in HH:MM format")
	ErrInvalidMealType = errors.New("meal type must be breakfast, lunch or dinner")
)
