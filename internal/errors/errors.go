package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindRateLimited
)

// Error codes returned to clients in the "error" field.
const (
	CodeInvalidCredentials  = "AUTH_001"
	CodeTokenExpired        = "AUTH_002"
	CodeTokenInvalid        = "AUTH_003"
	CodeAccountLocked       = "AUTH_004"
	CodeAccountDeactivated  = "AUTH_005"
	CodeUnauthorized        = "AUTH_006"
	CodeForbidden           = "AUTH_007"
	CodeValidation          = "VAL_001"
	CodeMissingField        = "VAL_002"
	CodeInvalidFormat       = "VAL_003"
	CodeNotFound            = "RES_001"
	CodeAlreadyExists       = "RES_002"
	CodeConflict            = "RES_003"
	CodeDatabase            = "DB_001"
	CodeUniqueViolation     = "DB_002"
	CodeForeignKeyViolation = "DB_003"
	CodeRateLimited         = "RATE_001"
	CodeInternal            = "SRV_001"
)

// PostgreSQL SQLSTATE values handled by FromDatabase.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrInvalidCredentials  = New(KindAuthentication, CodeInvalidCredentials, "invalid email or password")
	ErrTokenExpired        = New(KindAuthentication, CodeTokenExpired, "token expired")
	ErrTokenInvalid        = New(KindAuthentication, CodeTokenInvalid, "token invalid")
	ErrAccountLocked       = New(KindAuthentication, CodeAccountLocked, "account temporarily locked after too many failed login attempts")
	ErrAccountDeactivated  = New(KindAuthentication, CodeAccountDeactivated, "account deactivated")
	ErrUnauthorized        = New(KindAuthentication, CodeUnauthorized, "authentication required")
	ErrForbidden           = New(KindAuthorization, CodeForbidden, "insufficient permissions")
	ErrEmailAlreadyInUse   = New(KindConflict, CodeAlreadyExists, "email already in use")
	ErrInvalidState        = New(KindConflict, CodeConflict, "appointment is in a terminal state")
	ErrSlotUnavailable     = New(KindConflict, CodeConflict, "doctor is not available at the requested time")
	ErrSlotTaken           = New(KindConflict, CodeConflict, "doctor already has an appointment at the requested time")
	ErrUserNotFound        = NotFound("user")
	ErrPatientNotFound     = NotFound("patient")
	ErrDoctorNotFound      = NotFound("doctor")
	ErrAppointmentNotFound = NotFound("appointment")
)

func Validation(message string) *Error {
	return New(KindValidation, CodeValidation, message)
}

func MissingField(field string) *Error {
	return New(KindValidation, CodeMissingField, field+" is required")
}

func InvalidFormat(message string) *Error {
	return New(KindValidation, CodeInvalidFormat, message)
}

func NotFound(resource string) *Error {
	return New(KindNotFound, CodeNotFound, resource+" not found")
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: "internal error", Err: err}
}

// FromDatabase classifies driver errors by SQLSTATE. Errors that are already
// typed, or that are not PostgreSQL errors, are returned unchanged.
func FromDatabase(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &Error{Kind: KindConflict, Code: CodeUniqueViolation, Message: "a record with this value already exists", Err: err}
	case pgForeignKeyViolation:
		return &Error{Kind: KindValidation, Code: CodeForeignKeyViolation, Message: "referenced record does not exist", Err: err}
	case pgNotNullViolation:
		return &Error{Kind: KindValidation, Code: CodeMissingField, Message: "required field is missing", Err: err}
	case pgCheckViolation:
		return &Error{Kind: KindValidation, Code: CodeValidation, Message: "invalid data value", Err: err}
	case pgInvalidText:
		return &Error{Kind: KindValidation, Code: CodeInvalidFormat, Message: "malformed identifier or value", Err: err}
	default:
		return &Error{Kind: KindInternal, Code: CodeDatabase, Message: "database operation failed", Err: err}
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// As unwraps err into *Error. Driver errors are classified by FromDatabase,
// anything else becomes an internal error.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.As(FromDatabase(err), &appErr) {
		return appErr
	}
	return Internal(err)
}
