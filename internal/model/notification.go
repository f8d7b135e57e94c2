package model

// NotificationStatus is the outcome of a best-effort notification step.
type NotificationStatus string

const (
	NotificationSuccess  NotificationStatus = "success"
	NotificationFailed   NotificationStatus = "failed"
	NotificationSkipped  NotificationStatus = "skipped"
	NotificationDisabled NotificationStatus = "disabled"
)

// NotificationResult reports what happened to one notification channel.
// It is only ever returned to the client, never persisted.
type NotificationResult struct {
	Status NotificationStatus
	Error  string
}
