package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"geotrivia-service/internal/app"
	"geotrivia-service/internal/domain"
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

type answerPayload struct {
	Answer string `json:"answer"`
}

type restartPayload struct {
	Group string `json:"group"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type sessionPayload struct {
	Existing  bool              `json:"existing"`
	SessionID string            `json:"sessionId"`
	State     *domain.GameState `json:"state"`
}

// questionPayload is the display view of a question. The dynamic payload
// stays server-side; only the rendered text crosses the wire.
type questionPayload struct {
	ID          int    `json:"id"`
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Placeholder string `json:"placeholder"`
	Progress    int    `json:"progress"`
	Total       int    `json:"total"`
}

type answerResultPayload struct {
	Correct        bool   `json:"correct"`
	CorrectAnswers int    `json:"correctAnswers"`
	WrongAnswers   int    `json:"wrongAnswers"`
	Progress       int    `json:"progress"`
	Status         string `json:"status"`
}

type gameOverPayload struct {
	Status string         `json:"status"`
	Reward *domain.Reward `json:"reward,omitempty"`
}

// ServeGroups lists the question groups as JSON for the group-selection screen.
func (h *WSHandler) ServeGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListGroups(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(groups)
}

// ServeWS upgrades HTTP requests to websockets and wires them into the game
// use cases: resume-or-create on connect, then an answer/restart loop.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	email := r.URL.Query().Get("email")
	groupID := r.URL.Query().Get("group")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	info, err := h.service.LoadOrCreate(r.Context(), sessionID, email, groupID)
	if err != nil {
		h.writeError(conn, err)
		return
	}
	state := info.State
	h.sendSession(conn, info)
	h.sendQuestion(conn, r, state)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.writeError(conn, errors.New("invalid answer payload"))
				continue
			}
			result, err := h.service.SubmitAnswer(r.Context(), state, payload.Answer)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			h.sendAnswerResult(conn, r, result)
			if result.Finished {
				_ = conn.WriteJSON(outboundMessage[gameOverPayload]{Type: "gameOver", Payload: gameOverPayload{
					Status: string(state.Status),
					Reward: result.Reward,
				}})
			} else {
				h.sendQuestion(conn, r, state)
			}
		case "restart":
			var payload restartPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.writeError(conn, errors.New("invalid restart payload"))
				continue
			}
			fresh, err := h.service.StartNew(r.Context(), email, payload.Group)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			state = fresh.State
			h.sendSession(conn, fresh)
			h.sendQuestion(conn, r, state)
		default:
			h.writeError(conn, errors.New("unsupported message type"))
		}
	}
}

func (h *WSHandler) sendSession(conn *websocket.Conn, info domain.SessionInfo) {
	_ = conn.WriteJSON(outboundMessage[sessionPayload]{Type: "session", Payload: sessionPayload{
		Existing:  info.Existing,
		SessionID: info.SessionID,
		State:     info.State,
	}})
}

func (h *WSHandler) sendQuestion(conn *websocket.Conn, r *http.Request, state *domain.GameState) {
	group, err := h.service.GetGroup(r.Context(), state.GroupID)
	if err != nil {
		h.writeError(conn, err)
		return
	}
	question, err := h.service.CurrentQuestion(r.Context(), state)
	if err != nil {
		h.writeError(conn, err)
		return
	}
	total := len(group.Questions)
	_ = conn.WriteJSON(outboundMessage[questionPayload]{Type: "question", Payload: questionPayload{
		ID:          question.ID,
		Emoji:       question.Emoji,
		Title:       question.Title,
		Description: question.Description,
		Placeholder: question.Placeholder,
		Progress:    app.CalculateProgress(state.CurrentQuestion, total),
		Total:       total,
	}})
}

func (h *WSHandler) sendAnswerResult(conn *websocket.Conn, r *http.Request, result app.SubmitResult) {
	total := 0
	if group, err := h.service.GetGroup(r.Context(), result.State.GroupID); err == nil {
		total = len(group.Questions)
	}
	_ = conn.WriteJSON(outboundMessage[answerResultPayload]{Type: "answerResult", Payload: answerResultPayload{
		Correct:        result.Correct,
		CorrectAnswers: result.State.CorrectAnswers,
		WrongAnswers:   result.State.WrongAnswers,
		Progress:       app.CalculateProgress(result.State.CurrentQuestion, total),
		Status:         string(result.State.Status),
	}})
}

func (h *WSHandler) writeError(conn *websocket.Conn, err error) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
}
