package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks the permission for the attempted command.
var ErrForbidden = errors.New("permission denied")

// ErrInsufficientFunds indicates a debit that would drive an account balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountBanned indicates a mutation attempt against a banned account.
var ErrAccountBanned = errors.New("account is banned")

// ErrSeriesExhausted indicates the code allocator ran past the last letter.
// Requires operator intervention; codes are never reissued.
var ErrSeriesExhausted = errors.New("account code series exhausted")
