package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrCannotSelectSelf    = errors.New("cannot select yourself")
	ErrStepMismatch        = errors.New("step does not match current onboarding step")
	ErrInvalidSubmission   = errors.New("invalid submission")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidAction       = errors.New("invalid action")
	ErrOTPInvalid          = errors.New("wrong or expired otp")
	ErrOTPRateLimited      = errors.New("otp send limit reached")
)
