package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ledger operations. Everything here is recoverable
// from the user's point of view: the session reports the problem and keeps
// running, and no state is mutated.
var (
	// ErrCustomerExists is returned when adding a customer whose name is
	// already registered.
	ErrCustomerExists = errors.New("customer already exists")

	// ErrCustomerNotFound is returned when a referenced customer name does
	// not exist in the ledger.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInvalidAmount is returned when an amount string does not parse as a
	// decimal number after thousands separators are stripped.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidSelection is returned when an invoice selection index is out
	// of range for the outstanding list it was chosen from.
	ErrInvalidSelection = errors.New("invalid invoice selection")

	// ErrNoInvoices is returned when a payment is attempted against a
	// customer with no outstanding invoices.
	ErrNoInvoices = errors.New("no outstanding invoices")
)

// OperationError wraps a ledger failure with the operation that produced it.
type OperationError struct {
	// Op is the operation that failed (e.g., "AddCustomer", "RecordPayment").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ledger: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ledger: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is chains.
func (e *OperationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func opErr(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Err: err, Details: details}
}
