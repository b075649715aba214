package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the reading core. None of them is fatal; callers map
// each to a local recovery or a soft message.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrMissingTitle            = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrInvalidPageCount        = fmt.Errorf("%w: page count must be greater than zero", ErrInvalidInput)
	ErrAlreadyComplete         = errors.New("quest already complete")
	ErrInsufficientFunds       = errors.New("not enough mana")
	ErrItemLocked              = errors.New("item is locked")
	ErrBookNotFound            = errors.New("book not found")
	ErrItemNotFound            = errors.New("shop item not found")
	ErrNotConfirmed            = errors.New("action was not confirmed")
	ErrPersistenceUnavailable  = errors.New("persistence unavailable")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// InputError names the field that failed validation.
type InputError struct {
	Field  string
	Reason string
}

func (e InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// FundsError is returned when a purchase costs more mana than the hero holds.
type FundsError struct {
	Price int
	Mana  int
}

func (e FundsError) Error() string {
	return fmt.Sprintf("not enough mana: item costs %d, you have %d", e.Price, e.Mana)
}

func (e FundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// IsSoft reports whether err is one of the user-facing conditions that are
// shown as a message and leave state untouched.
func IsSoft(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrAlreadyComplete) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrItemLocked) ||
		errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrNotConfirmed) ||
		errors.Is(err, ErrPersistenceUnavailable) ||
		errors.Is(err, ErrCollaboratorUnavailable)
}
