// AngelaMos | 2026
// dto.go

package notification

import (
	"time"
)

type Request struct {
	Type           string `json:"type"`
	BookingID      string `json:"bookingId"`
	RecipientEmail string `json:"recipientEmail,omitempty"`

	// AllowRecipientOverride lets RecipientEmail differ from the guest email.
	AllowRecipientOverride bool `json:"-"`
}

type Result struct {
	Success bool   `json:"success"`
	EmailID string `json:"emailId"`
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

type LogResponse struct {
	ID                string    `json:"id"`
	EmailType         string    `json:"email_type"`
	Recipient         string    `json:"recipient"`
	ProviderMessageID string    `json:"provider_message_id,omitempty"`
	Status            string    `json:"status"`
	Error             string    `json:"error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToLogResponseList(logs []Log) []LogResponse {
	out := make([]LogResponse, len(logs))
	for i, l := range logs {
		out[i] = LogResponse{
			ID:                l.ID,
			EmailType:         l.EmailType,
			Recipient:         l.Recipient,
			ProviderMessageID: l.ProviderMessageID,
			Status:            l.Status,
			Error:             l.Error,
			CreatedAt:         l.CreatedAt,
		}
	}
	return out
}
