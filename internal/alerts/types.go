package alerts

import "time"

// Task type constants
const (
	TaskPasswordEmail = "email:password_delivery"
	TaskBidReceived   = "email:bid_received"
)

// EmailEnvelope is the common shape handed to the mailer.
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// PasswordEmailPayload delivers the generated password after registration.
type PasswordEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// BidReceivedPayload tells a customer a provider bid on their request.
type BidReceivedPayload struct {
	RequestID    uint          `json:"request_id"`
	RequestTitle string        `json:"request_title"`
	ProviderName string        `json:"provider_name"`
	BidPrice     float64       `json:"bid_price"`
	CustomerName string        `json:"customer_name"`
	Email        string        `json:"email"`
	Envelope     EmailEnvelope `json:"envelope"`
	SentAt       time.Time     `json:"sent_at"`
}
