package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordEmailBody(t *testing.T) {
	subject, body := PasswordEmailBody("Fatima", "fatima@example.com", "s3cret")

	assert.Equal(t, "Welcome to Souq Khadamat", subject)
	assert.Contains(t, body, "Hi Fatima,")
	assert.Contains(t, body, "Email: fatima@example.com")
	assert.Contains(t, body, "Password: s3cret")
}

func TestBidReceivedBody(t *testing.T) {
	subject, body := BidReceivedBody("Fatima", "Fix AC", "Omar", 25.5)

	assert.Equal(t, "New bid on your request: Fix AC", subject)
	assert.Contains(t, body, "Hi Fatima,")
	assert.Contains(t, body, "Request: Fix AC")
	assert.Contains(t, body, "Provider: Omar")
	assert.Contains(t, body, "Offered price: 25.50 KD")
}

func TestEnqueueWithoutInit(t *testing.T) {
	// the client is nil until Init runs; enqueue must fail, not panic
	err := EnqueuePasswordEmail("u1", "Fatima", "fatima@example.com", "pw")
	assert.Error(t, err)

	err = EnqueueBidReceived(1, "Fix AC", "Omar", 20, "Fatima", "fatima@example.com")
	assert.Error(t, err)
}
