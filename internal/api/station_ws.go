package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/terra-clan/bridge-console/internal/models"
	"github.com/terra-clan/bridge-console/internal/stations"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 25 * time.Second
	wsWriteWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StationMessage is exchanged over the station websocket
type StationMessage struct {
	Type    string        `json:"type"`
	Station string        `json:"station,omitempty"`
	Panel   *models.Panel `json:"panel,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Message types
const (
	MessagePanel   = "panel"
	MessageRefresh = "refresh"
	MessageError   = "error"
)

func (s *Server) handleStationWS(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "id")

	sc := s.source.Load(r.Context())
	panel, err := s.renderer.Render(stationID, sc)
	if err != nil {
		if errors.Is(err, stations.ErrStationNotFound) {
			respondError(w, http.StatusNotFound, "station_not_found", "station not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to render station")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("station websocket connected", "station", stationID)
	defer slog.Info("station websocket disconnected", "station", stationID)

	if err := s.sendStationMessage(conn, StationMessage{Type: MessagePanel, Station: stationID, Panel: &panel}); err != nil {
		return
	}

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// WriteControl is safe alongside WriteMessage
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			return
		}

		var msg StationMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			slog.Debug("invalid message format", "error", err)
			if s.sendStationError(conn, "invalid message format") != nil {
				return
			}
			continue
		}

		switch msg.Type {
		case MessageRefresh:
			// The scenario is memoized, so a refresh re-renders the same data
			panel, err := s.renderer.Render(stationID, sc)
			if err != nil {
				s.sendStationError(conn, "station not available")
				return
			}
			if s.sendStationMessage(conn, StationMessage{Type: MessagePanel, Station: stationID, Panel: &panel}) != nil {
				return
			}
		default:
			if s.sendStationError(conn, "unknown message type: "+msg.Type) != nil {
				return
			}
		}
	}
}

func (s *Server) sendStationMessage(conn *websocket.Conn, msg StationMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal station message", "error", err)
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send station message", "error", err)
		return err
	}
	return nil
}

func (s *Server) sendStationError(conn *websocket.Conn, message string) error {
	return s.sendStationMessage(conn, StationMessage{
		Type:    MessageError,
		Message: message,
	})
}
