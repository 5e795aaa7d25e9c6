package email

import (
	"context"
	"errors"
)

// Sender delivers one-time codes to users.
type Sender interface {
	SendOTP(ctx context.Context, toEmail, code string) error
}

type disabledSender struct {
	reason string
}

// NewDisabledSender returns a Sender that fails every call with the given
// reason. Used when SMTP is not configured.
func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendOTP(_ context.Context, _, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
