package navigation

import (
	"context"
	"encoding/json"

	"github.com/JhonKenma/backend-tecsupNav/internal/route"
	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// TokenValidator checks the access token presented at connection time.
type TokenValidator interface {
	ValidateAccessToken(token string) (string, error)
}

type inboundMessage struct {
	Type            string            `json:"type"`
	Destination     string            `json:"destination_id"`
	CurrentLocation *geo.Point        `json:"current_location"`
	Preferences     route.Preferences `json:"preferences"`
	Lat             *float64          `json:"lat"`
	Lng             *float64          `json:"lng"`
	Accuracy        float64           `json:"accuracy"`
	Timestamp       int64             `json:"timestamp"`
}

// location extracts the position carried by the message. Lat/lng decode as
// pointers so an absent coordinate is distinguishable from a real 0,0 and
// never reaches the pipeline.
func (m inboundMessage) location() (geo.Point, bool) {
	if m.CurrentLocation != nil {
		return *m.CurrentLocation, true
	}
	if m.Lat == nil || m.Lng == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *m.Lat, Lng: *m.Lng}, true
}

func RegisterRoutes(r fiber.Router, engine *Engine, hub *Hub, tokens TokenValidator, authMiddleware fiber.Handler) {
	r.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(engine.Stats())
	})

	r.Post("/announce", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Message string `json:"message"`
		}
		if err := c.BodyParser(&body); err != nil || body.Message == "" {
			return fiber.NewError(fiber.StatusBadRequest, "message required")
		}
		delivered := engine.Announce(body.Message)
		return c.JSON(fiber.Map{"delivered_to": delivered})
	})

	// Browsers cannot set headers on a websocket upgrade, so the token rides
	// in the query string and is validated before upgrading.
	r.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		userID, err := tokens.ValidateAccessToken(c.Query("token"))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals("user_id", userID)
		return c.Next()
	})

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return
		}
		serveConnection(c, engine, hub, userID)
	}))
}

func serveConnection(c *websocket.Conn, engine *Engine, hub *Hub, userID string) {
	client := hub.Register(userID)

	done := make(chan struct{})
	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
		// Eviction by a newer connection closes Send; tear the socket down
		// too so the stale read loop cannot keep driving the session.
		_ = c.Close()
		close(done)
	}()

	engine.Connected(userID)

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			break
		}
		dispatchMessage(context.Background(), engine, userID, raw)
	}

	hub.Unregister(client)
	// A replacement connection may already own the session; only clean up
	// when this user is fully gone.
	if !hub.Connected(userID) {
		engine.Disconnected(userID)
	}
	<-done
}

func dispatchMessage(ctx context.Context, engine *Engine, userID string, raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		engine.dispatcher.Send(userID, errorEvent(ErrCodeUnknownMessage, "malformed message"))
		return
	}

	switch msg.Type {
	case "start":
		if msg.CurrentLocation == nil {
			engine.dispatcher.Send(userID, errorEvent(ErrCodeInvalidLocation, "current_location required"))
			return
		}
		engine.Start(ctx, userID, StartRequest{
			Destination:     msg.Destination,
			CurrentLocation: *msg.CurrentLocation,
			Preferences:     msg.Preferences,
		})
	case "location_update":
		location, ok := msg.location()
		if !ok {
			engine.dispatcher.Send(userID, errorEvent(ErrCodeInvalidLocation, "lat and lng required"))
			return
		}
		engine.HandleLocation(ctx, userID, location)
	case "pause":
		engine.Pause(userID)
	case "resume":
		engine.Resume(userID)
	case "cancel":
		engine.Cancel(userID)
	case "recalculate":
		location, ok := msg.location()
		if !ok {
			engine.dispatcher.Send(userID, errorEvent(ErrCodeInvalidLocation, "lat and lng required"))
			return
		}
		engine.Recalculate(ctx, userID, location)
	default:
		engine.dispatcher.Send(userID, errorEvent(ErrCodeUnknownMessage, "unknown message type: "+msg.Type))
	}
}
