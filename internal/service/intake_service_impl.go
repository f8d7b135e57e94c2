package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/winecellar/intake/internal/metrics"
	"github.com/winecellar/intake/internal/model"
	"github.com/winecellar/intake/internal/store"
)

// isoMillis matches the ISO-8601 form used for stored timestamps.
const isoMillis = "2006-01-02T15:04:05.000Z"

// intakeServiceImpl is the production implementation of IntakeService.
type intakeServiceImpl struct {
	store  store.Store
	email  Notifier
	sheets Notifier
	now    func() time.Time
	newKey func(time.Time) string
	logger *slog.Logger
}

// IntakeOption customises an IntakeService.
type IntakeOption func(*intakeServiceImpl)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) IntakeOption {
	return func(s *intakeServiceImpl) { s.now = now }
}

// WithKeyFunc overrides storage key generation.
func WithKeyFunc(fn func(time.Time) string) IntakeOption {
	return func(s *intakeServiceImpl) { s.newKey = fn }
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) IntakeOption {
	return func(s *intakeServiceImpl) { s.logger = l }
}

// WithSheetsNotifier replaces the disabled spreadsheet channel.
func WithSheetsNotifier(n Notifier) IntakeOption {
	return func(s *intakeServiceImpl) { s.sheets = n }
}

// NewIntakeService creates an IntakeService writing to st and notifying by email.
func NewIntakeService(st store.Store, email Notifier, opts ...IntakeOption) IntakeService {
	s := &intakeServiceImpl{
		store:  st,
		email:  email,
		sheets: DisabledNotifier{},
		now:    time.Now,
		newKey: NewKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewKey returns the storage key for a record created at t: epoch
// milliseconds plus a random suffix so that submissions landing in the same
// millisecond do not overwrite each other.
func NewKey(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(t.UnixMilli(), 10) + "-" + suffix
}

// FormatTimestamp renders t as ISO-8601 UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func (s *intakeServiceImpl) Submit(ctx context.Context, sub model.Submission, userAgent string) (*model.SubmitResult, error) {
	now := s.now()
	key := s.newKey(now)

	if userAgent == "" {
		userAgent = model.UnknownUserAgent
	}
	rec := model.StoredRecord{
		Fields:    sub,
		Timestamp: FormatTimestamp(now),
		UserAgent: userAgent,
	}

	s.logger.InfoContext(ctx, "received form data", "key", key, "fields", sub.Keys())

	value, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := s.store.Put(ctx, key, string(value)); err != nil {
		metrics.ObserveSubmission(metrics.OutcomeStoreError)
		s.logger.ErrorContext(ctx, "store write failed", "key", key, "error", err)
		return nil, err
	}
	metrics.ObserveStoreWrite(time.Since(start))
	metrics.ObserveSubmission(metrics.OutcomeStored)

	n := Notification{Key: key, Record: rec}

	email := s.email.Notify(ctx, n)
	metrics.ObserveNotification("email", string(email.Status))

	sheets := s.sheets.Notify(ctx, n)
	metrics.ObserveNotification("sheets", string(sheets.Status))

	return &model.SubmitResult{Key: key, Email: email, Sheets: sheets}, nil
}
