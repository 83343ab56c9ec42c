package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/realtime"
)

const channel = "notifications"

// Dispatcher appends notification rows and fans them out to connected
// websocket clients. Fan-out goes through a Redis channel so every API
// replica sees the event, not just the one that wrote the row.
type Dispatcher struct {
	DB  *gorm.DB
	RDB *redis.Client
	Hub *realtime.Hub
}

func NewDispatcher(db *gorm.DB, rdb *redis.Client, hub *realtime.Hub) *Dispatcher {
	return &Dispatcher{DB: db, RDB: rdb, Hub: hub}
}

// Record stores a notification row. tx may be an open transaction so the row
// commits (or rolls back) together with the lifecycle change. Callers publish
// with Publish only after the transaction commits, so connected clients never
// see a notification whose row rolled back.
func (d *Dispatcher) Record(tx *gorm.DB, userID uuid.UUID, message string, typ models.NotificationType, relatedRequestID *uint) (*models.Notification, error) {
	if tx == nil {
		tx = d.DB
	}

	n := models.Notification{
		UserID:           userID,
		Message:          message,
		Type:             typ,
		RelatedRequestID: relatedRequestID,
		IsRead:           false,
	}
	if err := tx.Create(&n).Error; err != nil {
		return nil, err
	}

	return &n, nil
}

// Publish fans a committed notification out over Redis. Best-effort.
func (d *Dispatcher) Publish(n *models.Notification) {
	if d.RDB == nil || n == nil {
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	if err := d.RDB.Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Printf("[notify] publish failed: %v", err)
	}
}

// PublishAll publishes every collected notification.
func (d *Dispatcher) PublishAll(ns []*models.Notification) {
	for _, n := range ns {
		d.Publish(n)
	}
}

// Listen subscribes to the notification channel and forwards each event to
// the recipient's websocket connections. Run in its own goroutine.
func (d *Dispatcher) Listen(ctx context.Context) {
	if d.RDB == nil || d.Hub == nil {
		return
	}

	sub := d.RDB.Subscribe(ctx, channel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var n models.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			log.Printf("[notify] bad payload on %s: %v", channel, err)
			continue
		}

		d.Hub.SendToUser(n.UserID, map[string]interface{}{
			"type":         "notification",
			"notification": n,
		})
	}
}
