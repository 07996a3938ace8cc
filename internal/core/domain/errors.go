package domain

import "errors"

var (
	// ErrEmailTaken signals a registration conflict on an active email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers every login failure cause (unknown email,
	// wrong password, inactive account) so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every token defect (malformed, bad signature,
	// expired, missing subject) with a single undifferentiated signal.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInactiveUser means the token resolved to a recognized identity that
	// is not permitted to act.
	ErrInactiveUser = errors.New("inactive user")

	ErrForbidden    = errors.New("access forbidden")
	ErrUserNotFound = errors.New("user not found")
	ErrUnknownRole  = errors.New("unknown role")
	ErrSelfDelete   = errors.New("cannot delete your own account")
)
