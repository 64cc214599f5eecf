package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"theorie-engine/internal/app"
	"theorie-engine/internal/domain"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
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

type startPayload struct {
	Template domain.QuizTemplate `json:"template"`
}

type answerPayload struct {
	SessionID  string        `json:"sessionId"`
	QuestionID string        `json:"questionId"`
	Answer     domain.Answer `json:"answer"`
}

type questionRefPayload struct {
	SessionID  string `json:"sessionId"`
	QuestionID string `json:"questionId"`
}

type navigatePayload struct {
	SessionID string `json:"sessionId"`
	Index     int    `json:"index"`
}

type sessionRefPayload struct {
	SessionID string `json:"sessionId"`
}

type sessionSnapshot struct {
	Session domain.Session       `json:"session"`
	Report  *app.GenerationReport `json:"report,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives a quiz session
// over them: start/resume, answer, skip, navigate, complete.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	sendErr := func(err error) {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
	}

	// Resuming is offered up front when the client reconnects with a session.
	if sessionID := r.URL.Query().Get("sessionId"); sessionID != "" {
		session, err := h.service.Resume(r.Context(), sessionID)
		if err != nil {
			sendErr(err)
		} else {
			send <- outboundMessage[any]{Type: "session", Payload: sessionSnapshot{Session: session}}
		}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sendErr(errInvalidPayload)
				continue
			}
			session, report, err := h.service.Start(r.Context(), userID, payload.Template)
			if err != nil {
				sendErr(err)
				continue
			}
			send <- outboundMessage[any]{Type: "session", Payload: sessionSnapshot{Session: session, Report: &report}}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sendErr(errInvalidPayload)
				continue
			}
			result, session, err := h.service.Submit(r.Context(), payload.SessionID, payload.QuestionID, payload.Answer)
			if err != nil {
				sendErr(err)
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: result}
			send <- outboundMessage[any]{Type: "session", Payload: sessionSnapshot{Session: session}}
		case "skip":
			var payload questionRefPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sendErr(errInvalidPayload)
				continue
			}
			session, err := h.service.Skip(r.Context(), payload.SessionID, payload.QuestionID)
			if err != nil {
				sendErr(err)
				continue
			}
			send <- outboundMessage[any]{Type: "session", Payload: sessionSnapshot{Session: session}}
		case "navigate":
			var payload navigatePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sendErr(errInvalidPayload)
				continue
			}
			session, err := h.service.Navigate(r.Context(), payload.SessionID, payload.Index)
			if err != nil {
				sendErr(err)
				continue
			}
			send <- outboundMessage[any]{Type: "session", Payload: sessionSnapshot{Session: session}}
		case "complete":
			var payload sessionRefPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sendErr(errInvalidPayload)
				continue
			}
			result, err := h.service.Complete(r.Context(), payload.SessionID)
			if err != nil {
				sendErr(err)
				continue
			}
			send <- outboundMessage[any]{Type: "result", Payload: result}
		default:
			sendErr(errUnsupportedMessage)
		}
	}

	close(send)
	<-writerDone
}
