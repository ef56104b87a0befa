package services

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUnitNotFound    = errors.New("apartment unit not found")
	ErrLeadNotFound    = errors.New("lead not found")
	ErrUnitConflict    = errors.New("apartment unit was modified concurrently, retry the request")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidTotal    = errors.New("totalUnits must be at least 1")
	ErrInvalidMobile   = errors.New("mobile must be a 10-digit number")
	ErrInvalidStatus   = errors.New("unknown lead status")
)

// InsufficientInventoryError reports a booking that asked for more units than
// the apartment record has available. The record is left untouched.
type InsufficientInventoryError struct {
	UnitID    string
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("unit %s has only %d units available, cannot book %d", e.UnitID, e.Available, e.Requested)
}

// OverReleaseError reports a release of more units than have been sold.
type OverReleaseError struct {
	UnitID    string
	Requested int
	Sold      int
}

func (e *OverReleaseError) Error() string {
	return fmt.Sprintf("unit %s has only %d units sold, cannot release %d", e.UnitID, e.Sold, e.Requested)
}
