package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	ClientIDHeader = "X-Client-ID"
	ClientIDLocal  = "clientID"
)

// EnsureClientID tags every request with a client id so websocket observers
// can be told apart. Clients may send their own id to replace an old socket.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if clientID is already set
		if c.Locals(ClientIDLocal) != nil {
			return c.Next()
		}

		// Check header first
		clientID := c.Get(ClientIDHeader)
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.NewString()
		}

		c.Locals(ClientIDLocal, clientID)
		c.Set(ClientIDHeader, clientID)
		return c.Next()
	}
}

// ClientID reads the id stored by EnsureClientID.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(ClientIDLocal).(string)
	return id
}
