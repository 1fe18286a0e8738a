package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/control"
	"github.com/san-kum/mandelview/internal/viewport"
)

const (
	wsReadLimit  = 512
	wsWriteWait  = time.Second
	maxKeyLength = 64
)

var errEmptyMessage = errors.New("stream: message names no key or command")

type keypressRequest struct {
	Key     string `json:"key"`
	Command string `json:"command,omitempty"`
}

// resolve picks the command a request names. A key token wins over a
// command name.
func (k keypressRequest) resolve() (viewport.Command, error) {
	switch {
	case k.Key != "":
		return control.ParseKey(k.Key)
	case k.Command != "":
		return viewport.ParseCommand(k.Command)
	}
	return 0, errEmptyMessage
}

type commandReply struct {
	Command string `json:"command,omitempty"`
	Move    string `json:"move,omitempty"`
	Zoom    string `json:"zoom,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleKeypress accepts {"key": "j"} from the page's keydown listener.
// Unknown keys leave the viewport untouched.
func (s *Server) handleKeypress(w http.ResponseWriter, r *http.Request) {
	var req keypressRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cmd, err := req.resolve()
	if err == nil {
		err = s.state.Apply(cmd)
	}
	if err != nil {
		s.logger.Warn("command rejected", "key", req.Key, "command", req.Command, "error", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	s.logger.Info("received keypress", "key", req.Key, "command", cmd.String())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, ok := config.GetPreset(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown preset %q (available: %v)", name, config.ListPresets()))
		return
	}
	s.state.Reset(p.Viewport())
	s.logger.Info("jumped to preset", "preset", name, "center_x", p.CenterX, "center_y", p.CenterY, "scale", p.Scale)
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsReadLimit,
	WriteBufferSize: 1024,
}

// parseMessage accepts a bare key token ("j") or a JSON object with a key
// or command field.
func parseMessage(data []byte) (viewport.Command, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var req keypressRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return 0, err
		}
		return req.resolve()
	}
	if len(data) == 0 || len(data) > maxKeyLength {
		return 0, errEmptyMessage
	}
	return control.ParseKey(string(data))
}

// handleWebsocket keeps a control channel open. Each text message is one
// command; the reply carries the resulting intents or the rejection.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	logger := s.logger.With("viewer", uuid.NewString())
	logger.Info("control channel opened", "remote", r.RemoteAddr)
	defer logger.Info("control channel closed")

	go func() {
		<-r.Context().Done()
		conn.Close()
	}()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		var reply commandReply
		cmd, err := parseMessage(data)
		if err == nil {
			err = s.state.Apply(cmd)
		}
		if err != nil {
			logger.Debug("command rejected", "message", string(data), "error", err)
			reply.Error = err.Error()
		} else {
			vp := s.state.Snapshot()
			reply.Command = cmd.String()
			reply.Move = vp.Move.String()
			reply.Zoom = vp.Zoom.String()
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}
