package service

import "errors"

var (
	// ErrTierNotFound is returned when a tier is not part of the configuration
	ErrTierNotFound = errors.New("tier not found")

	// ErrCustomerNotFound is returned when a customer cannot be found
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrRewardNotFound is returned when a reward cannot be found
	ErrRewardNotFound = errors.New("reward not found")

	// ErrActivityNotFound is returned when an activity cannot be found
	ErrActivityNotFound = errors.New("activity not found")

	// ErrReservationNotFound is returned when a reservation cannot be found
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrTemplateNotFound is returned when a campaign template cannot be found
	ErrTemplateNotFound = errors.New("campaign template not found")

	// ErrAlreadyExists is returned when a record with the same ID already exists
	ErrAlreadyExists = errors.New("record already exists")

	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")
)
