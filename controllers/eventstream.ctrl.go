package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/wallcal/wallcal.go/lib"
	"github.com/wallcal/wallcal.go/lib/service"
)

// EventStreamController : live-update push channel
type EventStreamController struct {
	svc *service.WallcalService
}

func NewEventStreamController(svc *service.WallcalService) *EventStreamController {
	return &EventStreamController{svc: svc}
}

// StreamEvents upgrades the connection and pushes every committed
// mutation to the client until it disconnects or a write fails.
func (controller *EventStreamController) StreamEvents(c echo.Context) error {
	subId, msgChan := controller.svc.EventPubSub.Subscribe()

	upgrader := websocket.Upgrader{}
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		controller.svc.EventPubSub.Unsubscribe(subId)
		return err
	}
	defer ws.Close()
	controller.svc.Logger.Infof("New websocket connection: %s", lib.ClientAddress(c.Request()))

	// the client never sends messages; reading only detects the close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

SocketLoop:
	for {
		select {
		case <-done:
			break SocketLoop
		case <-ticker.C:
			if err := ws.WriteJSON(&service.Message{Type: "keepalive"}); err != nil {
				controller.svc.Logger.Error(err)
				break SocketLoop
			}
		case msg, ok := <-msgChan:
			if !ok {
				break SocketLoop
			}
			if err := ws.WriteJSON(&msg); err != nil {
				controller.svc.Logger.Error(err)
				break SocketLoop
			}
		}
	}
	controller.svc.EventPubSub.Unsubscribe(subId)
	controller.svc.Logger.Infof("Client disconnected: %s", lib.ClientAddress(c.Request()))
	return nil
}
