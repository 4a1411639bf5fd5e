package errors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	Is     = errors.Is
	As     = errors.As
	New    = errors.New
	Unwrap = errors.Unwrap
)

type ErrorCategory string

const (
	CategoryConfig   ErrorCategory = "CONFIG"   // Invalid configuration
	CategoryLedger   ErrorCategory = "LEDGER"   // Rejected ledger entries
	CategoryStrategy ErrorCategory = "STRATEGY" // A peer broke the round contract
	CategoryStorage  ErrorCategory = "STORAGE"  // Run repository failures
	CategoryContext  ErrorCategory = "CONTEXT"  // Context cancellation
	CategoryUnknown  ErrorCategory = "UNKNOWN"  // Unclassified errors
)

// noRound marks errors that are not tied to a simulation round.
const noRound = -1

// SimError represents an error raised while configuring, running or storing
// a simulation.
type SimError struct {
	Err       error         // Original error
	Category  ErrorCategory // General category
	Round     int           // Round being played, or -1
	Peer      string        // Offending peer, if any
	Timestamp time.Time     // When the error occurred
	Details   map[string]interface{}
}

// Error implements the error interface
func (e *SimError) Error() string {
	switch {
	case e.Round >= 0 && e.Peer != "":
		return fmt.Sprintf("[%s] round %d, peer %s: %v", e.Category, e.Round, e.Peer, e.Err)
	case e.Round >= 0:
		return fmt.Sprintf("[%s] round %d: %v", e.Category, e.Round, e.Err)
	default:
		return fmt.Sprintf("[%s] %v", e.Category, e.Err)
	}
}

// Unwrap provides the underlying cause for error unwrapping (compatible with errors.As)
func (e *SimError) Unwrap() error {
	return e.Err
}

// Common sentinel errors
var (
	ErrOverAllocated     = New("uploads exceed capacity")
	ErrInvalidBandwidth  = New("upload bandwidth must be positive")
	ErrForeignUpload     = New("upload sent on behalf of another peer")
	ErrUnrequestedUpload = New("upload to a peer that sent no request")
	ErrInvalidRequest    = New("invalid block request")
	ErrRunNotFound       = New("run not found")
)

func newSimError(err error, category ErrorCategory, round int, peer string) *SimError {
	return &SimError{
		Err:       err,
		Category:  category,
		Round:     round,
		Peer:      peer,
		Timestamp: time.Now(),
	}
}

// NewConfigError creates a configuration error
func NewConfigError(err error) *SimError {
	return newSimError(err, CategoryConfig, noRound, "")
}

// NewLedgerError creates an error for ledger entries rejected in round
func NewLedgerError(err error, round int) *SimError {
	return newSimError(err, CategoryLedger, round, "")
}

// NewStrategyError creates an error for a peer that broke the round contract
func NewStrategyError(err error, round int, peer string) *SimError {
	return newSimError(err, CategoryStrategy, round, peer)
}

// NewStorageError creates a run repository error
func NewStorageError(err error) *SimError {
	return newSimError(err, CategoryStorage, noRound, "")
}

// NewContextError creates a context cancellation error
func NewContextError(err error, round int) *SimError {
	return newSimError(err, CategoryContext, round, "")
}

// Categorize wraps err as a SimError, keeping existing SimErrors intact.
func Categorize(err error, round int) error {
	if err == nil {
		return nil
	}

	var simErr *SimError
	if As(err, &simErr) {
		return err
	}

	if Is(err, context.Canceled) || Is(err, context.DeadlineExceeded) {
		return NewContextError(err, round)
	}

	return newSimError(err, CategoryUnknown, round, "")
}

// GetCategory extracts the category from an error
func GetCategory(err error) ErrorCategory {
	var simErr *SimError
	if As(err, &simErr) {
		return simErr.Category
	}
	return CategoryUnknown
}

// IsStrategyError determines if the error was caused by a misbehaving peer
func IsStrategyError(err error) bool {
	return GetCategory(err) == CategoryStrategy
}

// IsConfigError determines if the error is a configuration error
func IsConfigError(err error) bool {
	return GetCategory(err) == CategoryConfig
}

// IsStorageError determines if the error came from the run repository
func IsStorageError(err error) bool {
	return GetCategory(err) == CategoryStorage
}

// WithDetails adds additional context to a SimError
func WithDetails(err error, details map[string]interface{}) error {
	var simErr *SimError
	if !As(err, &simErr) {
		return err
	}

	if simErr.Details == nil {
		simErr.Details = make(map[string]interface{})
	}

	for k, v := range details {
		simErr.Details[k] = v
	}

	return simErr
}
