package alerts

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

var (
	client *asynq.Client
	server *asynq.Server
)

// Init starts the Asynq worker and initializes the shared client. The queue
// rides on the same Redis instance the notification fan-out uses.
func Init(redisAddr, redisPassword string) {
	opts := asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword}
	client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPasswordEmail, handlePasswordEmail)
	mux.HandleFunc(TaskBidReceived, handleBidReceived)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails": 10,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Printf("Asynq server stopped: %v", err)
		}
	}()

	log.Printf("Asynq initialized (addr=%s)", redisAddr)
}

// Close releases the client and stops the worker.
func Close() {
	if client != nil {
		_ = client.Close()
	}
	if server != nil {
		server.Shutdown()
	}
}

func handlePasswordEmail(_ context.Context, t *asynq.Task) error {
	var p PasswordEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := SendEmail(p.Envelope.To, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Printf("[alerts][ERROR] PasswordEmail send failed: %v", err)
		return err
	}
	log.Printf("[alerts] PasswordEmail sent -> to=%s user=%s", p.Envelope.To, p.UserID)
	return nil
}

func handleBidReceived(_ context.Context, t *asynq.Task) error {
	var p BidReceivedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := SendEmail(p.Envelope.To, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Printf("[alerts][ERROR] BidReceived send failed: %v", err)
		return err
	}
	log.Printf("[alerts] BidReceived sent -> request=%d to=%s", p.RequestID, p.Envelope.To)
	return nil
}
