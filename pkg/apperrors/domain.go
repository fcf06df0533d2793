package apperrors

import (
	"net/http"
)

// Factories and predefined errors for common business-logic failures.

// ErrNotFound wraps a repository "not found" into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a duplicate into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the current state
// does not permit.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for an illegal status transition.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Authentication ---

// ErrInvalidCredentials is returned for both an unknown email and a
// wrong password so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken covers malformed, forged and revoked tokens.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email is already registered",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password does not meet the minimum requirements",
	http.StatusBadRequest,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"User not verified",
	http.StatusForbidden,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Account is suspended",
	http.StatusForbidden,
)

var ErrUserBanned = New(
	CodeForbidden,
	"auth",
	"Account is banned",
	http.StatusForbidden,
)

// --- Business logic ---

// ErrInvalidUserRole is returned when an operation is not available
// for the caller's role.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// ErrCannotModifySelf guards admin operations against self-targeting.
var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Payments ---

// ErrBadPaymentSignature is returned when a gateway callback carries a
// signature that does not verify. The callback must not mutate state.
var ErrBadPaymentSignature = New(
	CodeValidationFailed,
	"payments",
	"Payment signature verification failed",
	http.StatusBadRequest,
)

var ErrPaymentAlreadyProcessed = New(
	CodeConflict,
	"payments",
	"Payment has already been processed",
	http.StatusConflict,
)
