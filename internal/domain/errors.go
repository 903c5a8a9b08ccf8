package domain

import "errors"

// Domain errors, matched with errors.Is across layers.

// Not-found errors
var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrVehicleClassNotFound = errors.New("vehicle class not found")
	ErrAddOnNotFound        = errors.New("add-on not found")
	ErrInsuranceNotFound    = errors.New("insurance tier not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrAgreementNotFound    = errors.New("rental agreement not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
)

// Precondition errors
var (
	ErrVehicleClassMismatch = errors.New("vehicle is not of the reserved class")
	ErrVehicleNotAssignable = errors.New("vehicle cannot be assigned")
	ErrNotReturned          = errors.New("cannot calculate charges before vehicle is returned")
	ErrAlreadyReturned      = errors.New("vehicle already returned")
	ErrInvalidTimeWindow    = errors.New("pickup time must be before return time")
	ErrInvalidPickupToken   = errors.New("invalid pickup token")
	ErrInvoiceFinalized     = errors.New("invoice already finalized")
)

// Conflict errors
var (
	ErrExtensionConflict = errors.New("extension conflicts with an existing reservation")
)
