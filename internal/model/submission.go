package model

import (
	"encoding/json"
	"maps"
	"slices"
)

// Known submission field names used by the notification email.
const (
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldCases         = "cases"
	FieldComments      = "comments"
	FieldPriceEstimate = "price_estimate"
)

// UnknownUserAgent is recorded when the request carries no User-Agent header.
const UnknownUserAgent = "unknown"

// Submission is the flat field mapping parsed from a form body.
// Keys are caller-controlled; unknown keys are kept as-is.
type Submission map[string]string

// Get returns the value for key, or "" when absent.
func (s Submission) Get(key string) string {
	return s[key]
}

// Keys returns the field names present in the submission, sorted.
func (s Submission) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// StoredRecord is a Submission enriched with creation time and user agent.
// It is written to the key-value store once and never modified afterwards.
type StoredRecord struct {
	Fields    Submission
	Timestamp string // ISO-8601, UTC, millisecond precision
	UserAgent string
}

// MarshalJSON flattens the record into a single JSON object. The derived
// timestamp/userAgent fields take precedence over submitted fields of the same name.
func (r StoredRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(r.Fields)+2)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat["timestamp"] = r.Timestamp
	flat["userAgent"] = r.UserAgent
	return json.Marshal(flat)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *StoredRecord) UnmarshalJSON(data []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	r.Timestamp = flat["timestamp"]
	r.UserAgent = flat["userAgent"]
	delete(flat, "timestamp")
	delete(flat, "userAgent")
	r.Fields = Submission(flat)
	return nil
}
