package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Balance tracking (BAL) ----

func ErrMinBalanceViolated(accountID string, amount, minBalance int64) *AppError {
	return New("BAL_001",
		fmt.Sprintf("debit of %d on account %s would violate min balance %d", amount, accountID, minBalance),
		http.StatusPaymentRequired)
}

func ErrInvalidAmount(message string) *AppError {
	return New("BAL_002", message, http.StatusBadRequest)
}

func ErrBalanceStore(err error) *AppError {
	return Wrap("BAL_003", "Balance store failure", http.StatusInternalServerError, err)
}

// ---- Settlement (SET) ----

func ErrAccountNotFoundForEngine(seAccountID string) *AppError {
	return New("SET_001",
		fmt.Sprintf("no account configured for settlement engine account %s", seAccountID),
		http.StatusNotFound)
}

func ErrSettlementEngineNotConfigured(accountID string) *AppError {
	return New("SET_002",
		fmt.Sprintf("account %s has no settlement engine configured", accountID),
		http.StatusConflict)
}

// ErrSettlementFailed wraps a failed settlement-engine interaction with the
// account and engine-side account context the caller needs for its own
// retry policy.
func ErrSettlementFailed(accountID, seAccountID string, err error) *AppError {
	return Wrap("SET_003",
		fmt.Sprintf("settlement failed for account %s (engine account %s)", accountID, seAccountID),
		http.StatusBadGateway, err)
}

func ErrSettlementMessageRelay(accountID string, err error) *AppError {
	return Wrap("SET_004",
		fmt.Sprintf("settlement message relay failed for account %s", accountID),
		http.StatusBadGateway, err)
}

// ---- Configuration (CFG) ----

func ErrAccountNotFound(accountID string) *AppError {
	return New("CFG_001", fmt.Sprintf("account %s not found", accountID), http.StatusNotFound)
}

func ErrAccountExists(accountID string) *AppError {
	return New("CFG_002", fmt.Sprintf("account %s already exists", accountID), http.StatusConflict)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-validation error.
func Validation(message string) *AppError {
	return New("SYS_002", message, http.StatusBadRequest)
}
