package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/cache"
	"github.com/lingobridge/lingobridge/internal/config"
	"github.com/lingobridge/lingobridge/internal/events"
	"github.com/lingobridge/lingobridge/internal/history"
	"github.com/lingobridge/lingobridge/internal/inference"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/models"
	"github.com/lingobridge/lingobridge/internal/pool"
	"github.com/lingobridge/lingobridge/internal/services"
)

func parseSSE(t *testing.T, body string) []models.StreamEvent {
	t.Helper()
	var events []models.StreamEvent
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event models.StreamEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
			t.Fatalf("Failed to parse SSE event %q: %v", line, err)
		}
		events = append(events, event)
	}
	return events
}

func TestHandler_TranslateStream(t *testing.T) {
	th := newTestHandler()
	th.client.streamTokens = []string{"Hola", " ", "mundo"}
	app := newTestApp(th)

	req := httptest.NewRequest("GET", "/api/translate-stream?text=Hello+world&source_lang=en&target_lang=es", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Expected event-stream content type, got %q", ct)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	events := parseSSE(t, string(bodyBytes))
	if len(events) != 4 {
		t.Fatalf("Expected 3 token events plus Done, got %d events", len(events))
	}
	for i, token := range []string{"Hola", " ", "mundo"} {
		if events[i].Token != token {
			t.Errorf("Event %d: expected token %q, got %q", i, token, events[i].Token)
		}
	}
	final := events[len(events)-1]
	if !final.Done {
		t.Error("Expected final event to be terminal")
	}
	if final.FullText != "Hola mundo" {
		t.Errorf("Expected full text 'Hola mundo', got %q", final.FullText)
	}
	if final.Error != "" {
		t.Errorf("Expected clean completion, got error %q", final.Error)
	}
}

func TestHandler_TranslateStream_EmptyText(t *testing.T) {
	th := newTestHandler()
	app := newTestApp(th)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/translate-stream?target_lang=es", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	bodyBytes, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(bodyBytes, &errResp); err != nil {
		t.Fatalf("Failed to unmarshal error response: %v", err)
	}
	if errResp.Error.Code != "INVALID_REQUEST" {
		t.Errorf("Expected error code INVALID_REQUEST, got %s", errResp.Error.Code)
	}
}

// failAfterWriter accepts a limited number of writes, then reports the
// connection as gone, the way fasthttp's body stream writer does once the
// client disconnects.
type failAfterWriter struct {
	writes int
	limit  int
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.limit {
		return 0, errors.New("connection closed by client")
	}
	return len(p), nil
}

func TestHandler_RunStream_DisconnectReleasesUpstream(t *testing.T) {
	released := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Error("upstream writer does not support flushing")
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for i := 0; i < 3; i++ {
			fmt.Fprintf(w, "data: %s\n\n",
				`{"model":"test-model","choices":[{"delta":{"content":"tok"}}]}`)
			flusher.Flush()
		}
		// Hold the stream open until the gateway abandons the request
		<-r.Context().Done()
		close(released)
	}))
	defer upstream.Close()

	logger := logging.NewDevelopment()
	nodes := pool.New(logger)
	nodes.AddNode(upstream.URL, "Stream Node")
	client := inference.NewClient(config.InferenceConfig{
		RequestTimeout:    30 * time.Second,
		MaxTokens:         512,
		StreamMaxTokens:   2048,
		DocumentMaxTokens: 4096,
		Temperature:       0.2,
	}, logger)
	streamService := services.NewStreamTranslationService(logger,
		cache.New(10, time.Hour, logger), nodes, client,
		history.NewMemoryStore(10), events.NewMemoryPublisher(), "")

	h := &Handler{logger: logger, streamService: streamService}
	h.runStream(&models.TranslateRequest{
		Text:       "Hello world",
		SourceLang: "en",
		TargetLang: "es",
	}, &failAfterWriter{limit: 1})

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("upstream connection still held after the client went away")
	}
}

func TestHandler_TranslateStream_UpstreamFailure(t *testing.T) {
	th := newTestHandler()
	th.client.completeErr = inference.ErrUnavailable
	app := newTestApp(th)

	req := httptest.NewRequest("GET", "/api/translate-stream?text=Hello&source_lang=en&target_lang=es", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	// Headers are already committed, the failure arrives as a terminal event
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	events := parseSSE(t, string(bodyBytes))
	if len(events) != 1 {
		t.Fatalf("Expected a single terminal event, got %d", len(events))
	}
	if !events[0].Done || events[0].Error == "" {
		t.Errorf("Expected terminal error event, got %+v", events[0])
	}
}
