package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/cache"
	"github.com/lingobridge/lingobridge/internal/events"
	"github.com/lingobridge/lingobridge/internal/history"
	"github.com/lingobridge/lingobridge/internal/inference"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/middleware"
	"github.com/lingobridge/lingobridge/internal/pool"
	"github.com/lingobridge/lingobridge/internal/services"
)

// MockInferenceClient is a mock implementation of services.InferenceClient
type MockInferenceClient struct {
	translation  string
	completeErr  error
	streamTokens []string
	streamErr    error
	calls        int
}

func (m *MockInferenceClient) Complete(ctx context.Context, node pool.Node, req inference.Request) (inference.Result, error) {
	m.calls++
	if m.completeErr != nil {
		return inference.Result{Elapsed: time.Millisecond}, m.completeErr
	}
	translation := m.translation
	if translation == "" {
		translation = "translated:" + req.Text
	}
	return inference.Result{
		Translation: translation,
		Model:       "test-model",
		Elapsed:     5 * time.Millisecond,
	}, nil
}

func (m *MockInferenceClient) Stream(ctx context.Context, node pool.Node, req inference.Request) (<-chan inference.StreamChunk, error) {
	m.calls++
	if m.completeErr != nil {
		return nil, m.completeErr
	}
	out := make(chan inference.StreamChunk)
	go func() {
		defer close(out)
		for _, token := range m.streamTokens {
			out <- inference.StreamChunk{Token: token, Model: "test-model"}
		}
		if m.streamErr != nil {
			out <- inference.StreamChunk{Err: m.streamErr}
		}
	}()
	return out, nil
}

// testHandler bundles a handler with the fakes behind it
type testHandler struct {
	handler   *Handler
	client    *MockInferenceClient
	store     history.Store
	publisher *events.MemoryPublisher
	nodes     *pool.Pool
}

func newTestHandler() *testHandler {
	logger := logging.NewDevelopment()
	client := &MockInferenceClient{}
	store := history.NewMemoryStore(100)
	publisher := events.NewMemoryPublisher()
	nodes := pool.New(logger)
	nodes.AddNode("http://127.0.0.1:1", "Test Node")
	cacheStore := cache.New(100, time.Hour, logger)

	translationService := services.NewTranslationService(logger, cacheStore, nodes, client, store, publisher, "")
	streamService := services.NewStreamTranslationService(logger, cacheStore, nodes, client, store, publisher, "")
	fileService := services.NewFileTranslationService(logger, translationService)

	return &testHandler{
		handler: &Handler{
			logger:             logger,
			nodes:              nodes,
			prober:             pool.NewHTTPProber(time.Second),
			cache:              cacheStore,
			translationService: translationService,
			streamService:      streamService,
			fileService:        fileService,
		},
		client:    client,
		store:     store,
		publisher: publisher,
		nodes:     nodes,
	}
}

// httptestModelsHandler answers the node health probe endpoint
func httptestModelsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-model"}]}`))
	})
}

func newTestApp(th *testHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logging.NewDevelopment()),
	})

	app.Get("/health", th.handler.Health)
	app.Get("/", th.handler.Root)
	app.Get("/api/languages", th.handler.Languages)
	app.Post("/api/translate", th.handler.Translate)
	app.Post("/api/batch-translate", th.handler.BatchTranslate)
	app.Get("/api/translate-stream", th.handler.TranslateStream)
	app.Post("/api/detect-language", th.handler.DetectLanguage)
	app.Post("/api/translate-file", th.handler.TranslateFile)
	app.Get("/api/history", th.handler.GetHistory)
	app.Delete("/api/history", th.handler.ClearHistory)
	app.Get("/api/history/export/csv", th.handler.ExportHistoryCSV)
	app.Get("/api/history/export/json", th.handler.ExportHistoryJSON)
	app.Get("/api/stats", th.handler.GetStats)
	app.Get("/api/cluster/status", th.handler.ClusterStatus)
	app.Post("/api/cluster/add", th.handler.AddNode)
	app.Get("/api/status/offline", th.handler.OfflineStatus)
	app.Use(th.handler.NotFound)

	return app
}
