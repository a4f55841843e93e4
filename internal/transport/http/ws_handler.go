package http

import (
	"encoding/json"
	"log"
	"net/http"

	"millionaire-service/internal/app"

	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type turnPayload struct {
	GameID string `json:"gameId"`
	Label  string `json:"label"`
}

type gamePayload struct {
	GameID string `json:"gameId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the game
// use cases. One connection, one player; games are single-player, so there
// is no fan-out and the read loop is the only writer.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			view, err := h.service.StartGame(r.Context(), playerID)
			if err != nil {
				h.sendError(conn, err)
				continue
			}
			h.send(conn, outboundMessage[any]{Type: "game", Payload: view})

		case "answer":
			var payload turnPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.send(conn, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			result, err := h.service.Answer(r.Context(), playerID, payload.GameID, payload.Label)
			if err != nil {
				h.sendError(conn, err)
				continue
			}
			h.send(conn, outboundMessage[any]{Type: "turnResult", Payload: result})

		case "cashout":
			var payload gamePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.send(conn, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid cashout payload"}})
				continue
			}
			view, err := h.service.CashOut(r.Context(), playerID, payload.GameID)
			if err != nil {
				h.sendError(conn, err)
				continue
			}
			h.send(conn, outboundMessage[any]{Type: "game", Payload: view})

		case "state":
			var payload gamePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.send(conn, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid state payload"}})
				continue
			}
			view, err := h.service.GameState(r.Context(), playerID, payload.GameID)
			if err != nil {
				h.sendError(conn, err)
				continue
			}
			h.send(conn, outboundMessage[any]{Type: "game", Payload: view})

		default:
			h.send(conn, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}
}

func (h *WSHandler) send(conn *websocket.Conn, msg outboundMessage[any]) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func (h *WSHandler) sendError(conn *websocket.Conn, err error) {
	h.send(conn, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
}
