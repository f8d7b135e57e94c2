package service

import (
	"context"

	"github.com/winecellar/intake/internal/model"
)

// IntakeService defines the business logic for form submissions.
type IntakeService interface {
	// Submit persists the submission and runs the notification steps.
	// A returned error means nothing useful happened: either the record
	// could not be encoded or the store rejected it. Notification failures
	// are reported inside the result, never as an error.
	Submit(ctx context.Context, sub model.Submission, userAgent string) (*model.SubmitResult, error)
}

// Notifier is one best-effort notification channel.
type Notifier interface {
	Notify(ctx context.Context, n Notification) model.NotificationResult
}

// Notification carries what a channel needs to describe a stored submission.
type Notification struct {
	Key    string
	Record model.StoredRecord
}

// DisabledNotifier stands in for a channel that is switched off.
type DisabledNotifier struct{}

func (DisabledNotifier) Notify(context.Context, Notification) model.NotificationResult {
	return model.NotificationResult{Status: model.NotificationDisabled}
}
