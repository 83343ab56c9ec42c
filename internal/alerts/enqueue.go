package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

func ensureClient() (*asynq.Client, error) {
	if client == nil {
		return nil, fmt.Errorf("alerts not initialized")
	}
	return client, nil
}

// PasswordEmailBody builds the account-credentials mail sent right after
// registration.
func PasswordEmailBody(name, email, password string) (subject, body string) {
	subject = "Welcome to Souq Khadamat"
	body = fmt.Sprintf(
		"Hi %s,\n\nYour account has been created.\n\nEmail: %s\nPassword: %s\n\nPlease keep these credentials somewhere safe.",
		name, email, password)
	return subject, body
}

// BidReceivedBody builds the mail sent to a customer when a new bid lands on
// their request.
func BidReceivedBody(customerName, requestTitle, providerName string, price float64) (subject, body string) {
	subject = fmt.Sprintf("New bid on your request: %s", requestTitle)
	body = fmt.Sprintf(
		"Hi %s,\n\nA new bid was placed on your request.\n\nRequest: %s\nProvider: %s\nOffered price: %.2f KD\n\nYou can review and accept the bid from your requests page.",
		customerName, requestTitle, providerName, price)
	return subject, body
}

// EnqueuePasswordEmail schedules the credentials mail. Best-effort.
func EnqueuePasswordEmail(userID, name, email, password string) error {
	cl, err := ensureClient()
	if err != nil {
		return err
	}

	subject, body := PasswordEmailBody(name, email, password)
	payload := PasswordEmailPayload{
		UserID: userID,
		Name:   name,
		Email:  email,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: subject,
			Body:    body,
		},
		SentAt: time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskPasswordEmail, b)
	_, err = cl.Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueBidReceived schedules the bid notification mail. Best-effort.
func EnqueueBidReceived(requestID uint, requestTitle, providerName string, price float64, customerName, customerEmail string) error {
	cl, err := ensureClient()
	if err != nil {
		return err
	}

	subject, body := BidReceivedBody(customerName, requestTitle, providerName, price)
	payload := BidReceivedPayload{
		RequestID:    requestID,
		RequestTitle: requestTitle,
		ProviderName: providerName,
		BidPrice:     price,
		CustomerName: customerName,
		Email:        customerEmail,
		Envelope: EmailEnvelope{
			To:      customerEmail,
			Subject: subject,
			Body:    body,
		},
		SentAt: time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskBidReceived, b)
	_, err = cl.Enqueue(task, asynq.Queue("emails"))
	return err
}
