// Package errors provides the application error taxonomy for the expense API.
// Services return *AppError values so handlers can map every failure to a
// status code and a stable error code without inspecting driver errors.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Detail returns the raw underlying failure when there is one, otherwise the message.
func (e *AppError) Detail() string {
	if e.Internal != nil {
		return e.Internal.Error()
	}
	return e.Message
}

// Is reports whether target is an AppError with the same code, so wrapped
// copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Store wraps a store failure with an operation-specific message, e.g. "Error fetching expenses".
func Store(message string, internal error) *AppError {
	return &AppError{
		Code:       ErrInternalServer.Code,
		Message:    message,
		StatusCode: ErrInternalServer.StatusCode,
		Internal:   internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Route not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", StatusCode: http.StatusInternalServerError}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
	// The store rejects the delete; surfaced as a server error with a hint, not a generic message.
	ErrCategoryInUse = &AppError{Code: "CATEGORY_IN_USE", Message: "Error deleting category (may be in use by expenses)", StatusCode: http.StatusInternalServerError}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)

// Receipt errors.
var (
	ErrReceiptNotFound    = &AppError{Code: "RECEIPT_NOT_FOUND", Message: "Receipt not found", StatusCode: http.StatusNotFound}
	ErrNoFileUploaded     = &AppError{Code: "NO_FILE_UPLOADED", Message: "No file uploaded", StatusCode: http.StatusBadRequest}
	ErrUnsupportedReceipt = &AppError{Code: "UNSUPPORTED_RECEIPT", Message: "Only image files are allowed", StatusCode: http.StatusBadRequest}
	ErrReceiptTooLarge    = &AppError{Code: "RECEIPT_TOO_LARGE", Message: "Receipt exceeds the maximum upload size", StatusCode: http.StatusRequestEntityTooLarge}
)
