package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lingobridge/lingobridge/internal/cache"
	"github.com/lingobridge/lingobridge/internal/events"
	"github.com/lingobridge/lingobridge/internal/history"
	"github.com/lingobridge/lingobridge/internal/inference"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/models"
	"github.com/lingobridge/lingobridge/internal/pool"
	"github.com/lingobridge/lingobridge/internal/reliability"
)

// StreamWriter defines the interface for writing stream events
type StreamWriter interface {
	WriteEvent(event models.StreamEvent) error
	Flush() error
}

// SSEWriter implements StreamWriter for Server-Sent Events
type SSEWriter struct {
	writer io.Writer
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w io.Writer) *SSEWriter {
	return &SSEWriter{writer: w}
}

// WriteEvent writes one event as a data-only SSE frame
func (w *SSEWriter) WriteEvent(event models.StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stream event: %w", err)
	}

	_, err = fmt.Fprintf(w.writer, "data: %s\n\n", data)
	return err
}

// Flush flushes the underlying writer when it supports flushing
func (w *SSEWriter) Flush() error {
	if flusher, ok := w.writer.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// StreamTranslationService streams translations token by token
type StreamTranslationService struct {
	logger    *logging.Logger
	cache     *cache.Store
	nodes     *pool.Pool
	client    InferenceClient
	store     history.Store
	publisher events.Publisher
	subject   string
}

// NewStreamTranslationService creates a new StreamTranslationService. An
// empty subject falls back to events.SubjectTranslationCompleted.
func NewStreamTranslationService(
	logger *logging.Logger,
	cacheStore *cache.Store,
	nodes *pool.Pool,
	client InferenceClient,
	store history.Store,
	publisher events.Publisher,
	subject string,
) *StreamTranslationService {
	if logger == nil {
		logger = logging.Global()
	}
	if subject == "" {
		subject = events.SubjectTranslationCompleted
	}

	return &StreamTranslationService{
		logger:    logger,
		cache:     cacheStore,
		nodes:     nodes,
		client:    client,
		store:     store,
		publisher: publisher,
		subject:   subject,
	}
}

// TranslateStream runs one streaming translation. Errors before the first
// event are returned to the caller; failures mid-stream are emitted as a
// terminal error event. Exactly one terminal event is written on every
// path that produced output.
func (s *StreamTranslationService) TranslateStream(ctx context.Context, req *models.TranslateRequest, writer StreamWriter) error {
	if err := req.Validate(); err != nil {
		return NewServiceError(CodeInvalidRequest, err.Error())
	}

	langs := resolveLanguages(req.Text, req.SourceLang, req.TargetLang)

	if entry, ok := s.cache.Get(req.Text, langs.SourceName, langs.TargetName); ok {
		event := models.StreamEvent{
			FullText:        entry.Translation,
			Done:            true,
			InferenceTimeMS: 0,
			Model:           entry.Model,
			Cached:          true,
		}
		if err := writer.WriteEvent(event); err != nil {
			return err
		}
		return writer.Flush()
	}

	node, err := s.nodes.Select()
	if err != nil {
		return NewServiceError(CodeUpstreamUnavailable, err.Error())
	}

	s.logger.Info("Streaming translation",
		"source", langs.SourceName,
		"target", langs.TargetName,
		"node_id", node.ID,
		"document", req.IsDocument,
		"characters", utf8.RuneCountInString(req.Text))

	start := time.Now()
	chunks, err := s.client.Stream(ctx, node, inference.Request{
		Text:        req.Text,
		SourceName:  langs.SourceName,
		TargetName:  langs.TargetName,
		ContextText: req.ContextText,
		IsDocument:  req.IsDocument,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return mapInferenceError(err, float64(time.Since(start).Milliseconds()))
	}

	var fullText string
	model := "unknown"

	for chunk := range chunks {
		if chunk.Err != nil {
			s.logger.Error("Stream failed mid-flight",
				"node_id", node.ID, "error", chunk.Err)
			event := models.StreamEvent{Error: chunk.Err.Error(), Done: true}
			if err := writer.WriteEvent(event); err != nil {
				return err
			}
			return writer.Flush()
		}
		if chunk.Model != "" {
			model = chunk.Model
		}

		fullText += chunk.Token
		event := models.StreamEvent{
			Token:    chunk.Token,
			FullText: fullText,
			NodeID:   node.ID,
		}
		if err := writer.WriteEvent(event); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	if ctx.Err() != nil {
		// Client went away; nothing to persist
		return nil
	}

	elapsedMS := float64(time.Since(start).Milliseconds())

	done := models.StreamEvent{
		FullText:        fullText,
		Done:            true,
		InferenceTimeMS: elapsedMS,
		NodeID:          node.ID,
		NodeName:        node.Name,
		Model:           model,
	}
	if reliable, warning := reliability.Check(req.Text, fullText, langs.SourceCode, req.TargetLang); !reliable {
		done.Warning = warning
	}
	if err := writer.WriteEvent(done); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	s.cache.Set(req.Text, langs.SourceName, langs.TargetName, fullText, model)
	s.persist(ctx, history.Record{
		ID:              uuid.New().String(),
		SourceText:      req.Text,
		TranslatedText:  fullText,
		SourceLang:      langs.SourceCode,
		TargetLang:      req.TargetLang,
		InferenceTimeMS: elapsedMS,
		Model:           model,
		Timestamp:       time.Now().UTC(),
	})
	return nil
}

func (s *StreamTranslationService) persist(ctx context.Context, rec history.Record) {
	if err := s.store.Add(ctx, rec); err != nil {
		s.logger.Error("Failed to record streamed translation", "error", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Error("Failed to encode completion event", "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, s.subject, data); err != nil {
		s.logger.Warn("Failed to publish completion event", "error", err)
	}
}
