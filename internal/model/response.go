package model

// SubmitResult is the outcome of a successful intake: the storage key plus
// the per-channel notification results.
type SubmitResult struct {
	Key    string
	Email  NotificationResult
	Sheets NotificationResult
}

// ResponsePayload is the JSON body returned for an accepted submission.
type ResponsePayload struct {
	Success      bool               `json:"success"`
	Message      string             `json:"message"`
	Timestamp    string             `json:"timestamp"`
	EmailStatus  NotificationStatus `json:"emailStatus"`
	EmailError   string             `json:"emailError,omitempty"`
	SheetsStatus NotificationStatus `json:"sheetsStatus"`
	SheetsError  string             `json:"sheetsError,omitempty"`
}

// NewResponsePayload builds the success body from a SubmitResult.
func NewResponsePayload(res *SubmitResult) ResponsePayload {
	return ResponsePayload{
		Success:      true,
		Message:      "Form submitted successfully",
		Timestamp:    res.Key,
		EmailStatus:  res.Email.Status,
		EmailError:   res.Email.Error,
		SheetsStatus: res.Sheets.Status,
		SheetsError:  res.Sheets.Error,
	}
}

// ErrorPayload is the JSON body returned when parsing or persistence fails.
type ErrorPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
