package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"geotrivia-service/internal/app"
	"geotrivia-service/internal/catalog"
	"geotrivia-service/internal/infra/memory"
)

func TestWebSocketAnswerFlow(t *testing.T) {
	server, conn := dialTestServer(t, "/ws?group=coastal-sprint&email=a@b.com")
	defer server.Close()
	defer conn.Close()

	// Expect session then the first question.
	_, session := readNext(conn, t, "session")
	if session["sessionId"] == "" {
		t.Fatalf("expected session ID, got %v", session)
	}
	if session["existing"] == true {
		t.Fatalf("fresh connect must create a new session")
	}
	_, question := readNext(conn, t, "question")
	if question["id"].(float64) != 1 {
		t.Fatalf("expected question 1, got %v", question["id"])
	}

	// A wrong answer keeps the player on the same question.
	writeAnswer(conn, t, "narnia")
	_, result := readNext(conn, t, "answerResult")
	if result["correct"] == true {
		t.Fatalf("expected wrong verdict")
	}
	_, question = readNext(conn, t, "question")
	if question["id"].(float64) != 1 {
		t.Fatalf("expected question 1 again, got %v", question["id"])
	}

	// A correct answer advances.
	writeAnswer(conn, t, "ghana")
	_, result = readNext(conn, t, "answerResult")
	if result["correct"] != true {
		t.Fatalf("expected correct verdict, got %v", result)
	}
	_, question = readNext(conn, t, "question")
	if question["id"].(float64) != 2 {
		t.Fatalf("expected question 2, got %v", question["id"])
	}
}

func TestWebSocketRestart(t *testing.T) {
	server, conn := dialTestServer(t, "/ws?group=coastal-sprint")
	defer server.Close()
	defer conn.Close()

	_, first := readNext(conn, t, "session")
	readNext(conn, t, "question")

	restart := map[string]any{
		"type":    "restart",
		"payload": map[string]any{"group": "african-explorer"},
	}
	if err := conn.WriteJSON(restart); err != nil {
		t.Fatalf("write restart: %v", err)
	}

	_, second := readNext(conn, t, "session")
	if second["sessionId"] == first["sessionId"] {
		t.Fatalf("restart must mint a new session")
	}
	state := second["state"].(map[string]any)
	if state["groupId"] != "african-explorer" {
		t.Fatalf("expected switched group, got %v", state["groupId"])
	}
	readNext(conn, t, "question")
}

func dialTestServer(t *testing.T, path string) (*httptest.Server, *websocket.Conn) {
	t.Helper()
	store := memory.NewSessionStore()
	groups := memory.NewGroupRepository(memory.NewStaticGroupLoader(catalog.BuiltinGroups()), time.Minute)
	service := app.NewGameService(store, groups)
	wsHandler := NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)

	u := "ws" + server.URL[len("http"):] + path
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial: %v", err)
	}
	return server, conn
}

func writeAnswer(conn *websocket.Conn, t *testing.T, answer string) {
	t.Helper()
	msg := map[string]any{
		"type":    "answer",
		"payload": map[string]any{"answer": answer},
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write answer: %v", err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}
