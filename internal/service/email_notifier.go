package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/winecellar/intake/internal/model"
	"github.com/winecellar/intake/pkg/resend"
)

// MissingKeyMessage is reported when no Resend API key is configured.
const MissingKeyMessage = "RESEND_KEY not configured"

var emailTemplate = template.Must(template.New("request").Parse(`
<h2>New Wine Storage Request</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Cases:</strong> {{.Cases}}</p>
<p><strong>Price Estimate:</strong> {{.PriceEstimate}}</p>
<p><strong>Comments:</strong> {{.Comments}}</p>
<p><strong>Submitted:</strong> {{.Submitted}}</p>
<hr>
<details>
	<summary>Raw Data</summary>
	<pre>{{.Raw}}</pre>
</details>
`))

type emailView struct {
	Name          string
	Email         string
	Phone         string
	Cases         string
	PriceEstimate string
	Comments      string
	Submitted     string
	Raw           string
}

// EmailNotifier sends a storage-request summary through Resend.
// A nil client means email is not configured and every Notify is skipped.
type EmailNotifier struct {
	client resend.Client
	from   string
	to     string
	logger *slog.Logger
}

// NewEmailNotifier creates an EmailNotifier. client may be nil.
func NewEmailNotifier(client resend.Client, from, to string, logger *slog.Logger) *EmailNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailNotifier{client: client, from: from, to: to, logger: logger}
}

var _ Notifier = (*EmailNotifier)(nil)

// Notify never fails the request; every problem becomes a failed or skipped result.
func (e *EmailNotifier) Notify(ctx context.Context, n Notification) model.NotificationResult {
	if e.client == nil {
		e.logger.InfoContext(ctx, "skipping email", "reason", MissingKeyMessage)
		return model.NotificationResult{Status: model.NotificationSkipped, Error: MissingKeyMessage}
	}

	html, err := RenderEmailHTML(n.Record)
	if err != nil {
		return model.NotificationResult{
			Status: model.NotificationFailed,
			Error:  "Email sending exception: " + err.Error(),
		}
	}

	e.logger.InfoContext(ctx, "sending notification email", "key", n.Key)
	id, err := e.client.SendEmail(ctx, resend.SendEmailParams{
		From:    e.from,
		To:      []string{e.to},
		Subject: EmailSubject(n.Record.Fields),
		HTML:    html,
	})

	var apiErr *resend.APIError
	switch {
	case err == nil:
		e.logger.InfoContext(ctx, "email sent", "key", n.Key, "email_id", id)
		return model.NotificationResult{Status: model.NotificationSuccess}
	case errors.Is(err, resend.ErrNotConfigured):
		e.logger.InfoContext(ctx, "skipping email", "reason", MissingKeyMessage)
		return model.NotificationResult{Status: model.NotificationSkipped, Error: MissingKeyMessage}
	case errors.As(err, &apiErr):
		msg := fmt.Sprintf("Resend API error %d: %s", apiErr.StatusCode, apiErr.Body)
		e.logger.ErrorContext(ctx, "email sending failed", "key", n.Key, "status", apiErr.StatusCode, "body", apiErr.Body)
		return model.NotificationResult{Status: model.NotificationFailed, Error: msg}
	default:
		e.logger.ErrorContext(ctx, "email sending exception", "key", n.Key, "error", err)
		return model.NotificationResult{
			Status: model.NotificationFailed,
			Error:  "Email sending exception: " + err.Error(),
		}
	}
}

// EmailSubject builds "Wine Storage Request: <first> <last> (<cases> cases)".
func EmailSubject(sub model.Submission) string {
	return fmt.Sprintf("Wine Storage Request: %s (%s cases)",
		fullName(sub), orDefault(sub.Get(model.FieldCases), "unknown"))
}

// RenderEmailHTML renders the notification body for rec. User-supplied
// values are HTML-escaped.
func RenderEmailHTML(rec model.StoredRecord) (string, error) {
	raw, err := json.MarshalIndent(rec.Fields, "", "  ")
	if err != nil {
		return "", err
	}

	submitted := rec.Timestamp
	if t, err := time.Parse(isoMillis, rec.Timestamp); err == nil {
		submitted = t.Format("Mon, 02 Jan 2006 15:04:05 MST")
	}

	sub := rec.Fields
	view := emailView{
		Name:          fullName(sub),
		Email:         orDefault(sub.Get(model.FieldEmail), "Not provided"),
		Phone:         orDefault(sub.Get(model.FieldPhone), "Not provided"),
		Cases:         orDefault(sub.Get(model.FieldCases), "Not selected"),
		PriceEstimate: orDefault(sub.Get(model.FieldPriceEstimate), "Not calculated"),
		Comments:      orDefault(sub.Get(model.FieldComments), "None provided"),
		Submitted:     submitted,
		Raw:           string(raw),
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fullName(sub model.Submission) string {
	return strings.TrimSpace(sub.Get(model.FieldFirstName)) + " " + strings.TrimSpace(sub.Get(model.FieldLastName))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
