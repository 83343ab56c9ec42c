package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/realtime"
)

type NotificationHandler struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewNotificationHandler(db *gorm.DB, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{DB: db, Hub: hub}
}

// ListMine returns the caller's notifications, newest first.
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var notifications []models.Notification
	if err := h.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(100).
		Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load notifications",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    notifications,
	})
}

// MarkRead flags one notification as read. Already-read and missing ids both
// come back success so the client can fire-and-forget.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid id",
		})
	}

	if err := h.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update notification",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Marked as read",
	})
}

// WebSocket registers the connection with the hub and streams pushed
// notifications until the client disconnects.
func (h *NotificationHandler) WebSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		raw, _ := conn.Locals("userId").(string)
		userID, err := uuid.Parse(raw)
		if err != nil {
			log.Printf("[WS] bad userId local %q: %v", raw, err)
			conn.Close()
			return
		}

		client := &realtime.Client{
			ID:     uuid.New().String(),
			UserID: userID,
			Conn:   realtime.NewWebSocketConn(conn),
			Send:   make(chan []byte, 16),
		}
		h.Hub.RegisterClient(client)
		defer h.Hub.UnregisterClient(client)

		// writer drains the hub channel; unregister closes it on the way out
		go func() {
			for payload := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}()

		// read loop only drains pings/closes; clients never send data
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
