package service

import "errors"

// Ошибки операций над учётными записями. Хендлеры сопоставляют их
// с HTTP-статусами через errors.Is.
var (
	ErrFieldsIncomplete = errors.New("fields incomplete")
	ErrBadEmailDomain   = errors.New("bad email domain")
	ErrAccountExists    = errors.New("account already exists")
	ErrNoAccount        = errors.New("no such account")
	ErrWrongPassword    = errors.New("wrong password")
	ErrNotVerified      = errors.New("email not verified")
)
