package domain

import "errors"

var (
	ErrInvalidInterval        = errors.New("invalid interval")
	ErrPastBooking            = errors.New("cannot book in the past")
	ErrResourceUnavailable    = errors.New("court or complex unavailable")
	ErrOutsideOperatingHours  = errors.New("outside operating hours")
	ErrSlotConflict           = errors.New("time slot is already booked")
	ErrPricingUnavailable     = errors.New("no price defined for requested time")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrNotFound               = errors.New("not found")

	ErrInvalidRateTable = errors.New("invalid rate table")
	ErrValidation       = errors.New("validation error")
	ErrCourtInUse       = errors.New("court has bookings")
	ErrAlreadyReviewed  = errors.New("complex already reviewed")
)
