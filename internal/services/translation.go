package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lingobridge/lingobridge/internal/cache"
	"github.com/lingobridge/lingobridge/internal/events"
	"github.com/lingobridge/lingobridge/internal/history"
	"github.com/lingobridge/lingobridge/internal/inference"
	"github.com/lingobridge/lingobridge/internal/language"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/models"
	"github.com/lingobridge/lingobridge/internal/pool"
	"github.com/lingobridge/lingobridge/internal/reliability"
)

// InferenceClient abstracts the node protocol client
type InferenceClient interface {
	Complete(ctx context.Context, node pool.Node, req inference.Request) (inference.Result, error)
	Stream(ctx context.Context, node pool.Node, req inference.Request) (<-chan inference.StreamChunk, error)
}

// TranslationService orchestrates the blocking translation pipeline:
// language resolution, cache lookup, node dispatch, reliability check,
// and write-through persistence.
type TranslationService struct {
	logger    *logging.Logger
	cache     *cache.Store
	nodes     *pool.Pool
	client    InferenceClient
	store     history.Store
	publisher events.Publisher
	subject   string
}

// NewTranslationService creates a new TranslationService. An empty subject
// falls back to events.SubjectTranslationCompleted.
func NewTranslationService(
	logger *logging.Logger,
	cacheStore *cache.Store,
	nodes *pool.Pool,
	client InferenceClient,
	store history.Store,
	publisher events.Publisher,
	subject string,
) *TranslationService {
	if logger == nil {
		logger = logging.Global()
	}
	if subject == "" {
		subject = events.SubjectTranslationCompleted
	}

	return &TranslationService{
		logger:    logger,
		cache:     cacheStore,
		nodes:     nodes,
		client:    client,
		store:     store,
		publisher: publisher,
		subject:   subject,
	}
}

// resolvedLanguages is the outcome of source language resolution
type resolvedLanguages struct {
	SourceCode   string
	SourceName   string
	TargetName   string
	DetectedName string
}

// resolveLanguages applies auto-detection. A source of "" or "auto" is
// detected from the text; an inconclusive detection falls back to English.
func resolveLanguages(text, sourceLang, targetLang string) resolvedLanguages {
	r := resolvedLanguages{SourceCode: sourceLang}

	if sourceLang == "" || sourceLang == "auto" {
		code := language.Detect(text)
		r.DetectedName = language.Name(code)
		if code == "auto" {
			code = "en"
		}
		r.SourceCode = code
	}

	r.SourceName = language.Name(r.SourceCode)
	r.TargetName = language.Name(targetLang)
	return r
}

// mapInferenceError converts a client error into a ServiceError carrying
// the elapsed time
func mapInferenceError(err error, elapsedMS float64) *ServiceError {
	details := map[string]interface{}{"inference_time_ms": elapsedMS}

	switch {
	case errors.Is(err, inference.ErrTimeout):
		return NewServiceErrorWithDetails(CodeUpstreamTimeout,
			"Translation timed out. Try shorter text or check node performance.", details)
	case errors.Is(err, inference.ErrUnavailable):
		return NewServiceErrorWithDetails(CodeUpstreamUnavailable,
			"Cannot reach the inference node. Ensure the cluster is running.", details)
	default:
		return NewServiceErrorWithDetails(CodeUpstreamError, err.Error(), details)
	}
}

// Translate runs one blocking translation through the full pipeline
func (s *TranslationService) Translate(ctx context.Context, req *models.TranslateRequest) (*models.TranslateResponse, error) {
	return s.translate(ctx, req, true)
}

// translate is the shared pipeline. recordHistory lets the file path skip
// per-chunk history writes.
func (s *TranslationService) translate(ctx context.Context, req *models.TranslateRequest, recordHistory bool) (*models.TranslateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, NewServiceError(CodeInvalidRequest, err.Error())
	}

	langs := resolveLanguages(req.Text, req.SourceLang, req.TargetLang)
	charCount := utf8.RuneCountInString(req.Text)

	if entry, ok := s.cache.Get(req.Text, langs.SourceName, langs.TargetName); ok {
		return &models.TranslateResponse{
			Translation:      entry.Translation,
			InferenceTimeMS:  0,
			Model:            entry.Model,
			SourceLang:       langs.SourceCode,
			TargetLang:       req.TargetLang,
			DetectedLanguage: langs.DetectedName,
			CharacterCount:   charCount,
			Cached:           true,
		}, nil
	}

	node, err := s.nodes.Select()
	if err != nil {
		return nil, NewServiceError(CodeUpstreamUnavailable, err.Error())
	}

	s.logger.Info("Translating",
		"source", langs.SourceName,
		"target", langs.TargetName,
		"node_id", node.ID,
		"characters", charCount)

	result, err := s.client.Complete(ctx, node, inference.Request{
		Text:        req.Text,
		SourceName:  langs.SourceName,
		TargetName:  langs.TargetName,
		ContextText: req.ContextText,
		IsDocument:  req.IsDocument,
		MaxTokens:   req.MaxTokens,
	})
	elapsedMS := float64(result.Elapsed.Milliseconds())
	if err != nil {
		s.logger.Error("Translation failed",
			"node_id", node.ID,
			"error", err,
			"duration_ms", elapsedMS)
		return nil, mapInferenceError(err, elapsedMS)
	}

	reliable, warning := reliability.Check(req.Text, result.Translation, langs.SourceCode, req.TargetLang)

	s.cache.Set(req.Text, langs.SourceName, langs.TargetName, result.Translation, result.Model)

	if recordHistory {
		s.record(ctx, history.Record{
			ID:              uuid.New().String(),
			SourceText:      req.Text,
			TranslatedText:  result.Translation,
			SourceLang:      langs.SourceCode,
			TargetLang:      req.TargetLang,
			InferenceTimeMS: elapsedMS,
			Model:           result.Model,
			Timestamp:       time.Now().UTC(),
		})
	}

	resp := &models.TranslateResponse{
		Translation:      result.Translation,
		InferenceTimeMS:  elapsedMS,
		Model:            result.Model,
		SourceLang:       langs.SourceCode,
		TargetLang:       req.TargetLang,
		DetectedLanguage: langs.DetectedName,
		CharacterCount:   charCount,
		Cached:           false,
		NodeID:           node.ID,
		NodeName:         node.Name,
	}
	if !reliable {
		resp.Warning = warning
	}
	return resp, nil
}

// record persists one completed translation and publishes the completion
// event. Neither failure propagates to the caller.
func (s *TranslationService) record(ctx context.Context, rec history.Record) {
	if err := s.store.Add(ctx, rec); err != nil {
		s.logger.Error("Failed to record translation history", "error", err)
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

// TranslateBatch runs each text through the pipeline concurrently.
// Results preserve input order; failures are isolated per item.
func (s *TranslationService) TranslateBatch(ctx context.Context, req *models.BatchTranslateRequest) (*models.BatchTranslateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, NewServiceError(CodeInvalidRequest, err.Error())
	}

	results := make([]models.BatchItemResult, len(req.Texts))

	var wg sync.WaitGroup
	for i, text := range req.Texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()

			resp, err := s.Translate(ctx, &models.TranslateRequest{
				Text:       text,
				SourceLang: req.SourceLang,
				TargetLang: req.TargetLang,
			})
			if err != nil {
				results[i] = models.BatchItemResult{Text: text, Error: err.Error()}
				return
			}

			results[i] = models.BatchItemResult{
				Text:            text,
				Translation:     resp.Translation,
				InferenceTimeMS: resp.InferenceTimeMS,
				Cached:          resp.Cached,
				Success:         true,
			}
		}(i, text)
	}
	wg.Wait()

	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}

	return &models.BatchTranslateResponse{
		Results:    results,
		Total:      len(results),
		Successful: successful,
	}, nil
}

// ContextFromHistory formats the most recent translations as prompt
// context, oldest first
func (s *TranslationService) ContextFromHistory(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = models.MaxHistoryContext
	}

	recent, err := s.store.Recent(ctx, limit)
	if err != nil {
		return "", err
	}
	if len(recent) == 0 {
		return "", nil
	}

	items := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		r := recent[i]
		items = append(items, fmt.Sprintf("Original (%s): %s\nTranslation (%s): %s",
			r.SourceLang, r.SourceText, r.TargetLang, r.TranslatedText))
	}
	return strings.Join(items, "\n---\n"), nil
}

// Stats aggregates timing over the most recent translations
func (s *TranslationService) Stats(ctx context.Context) (*models.StatsResponse, error) {
	recent, err := s.store.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}

	resp := &models.StatsResponse{Cache: s.cache.Stats()}
	if len(recent) == 0 {
		return resp, nil
	}

	var total float64
	fastest := recent[0].InferenceTimeMS
	slowest := recent[0].InferenceTimeMS
	for _, r := range recent {
		total += r.InferenceTimeMS
		if r.InferenceTimeMS < fastest {
			fastest = r.InferenceTimeMS
		}
		if r.InferenceTimeMS > slowest {
			slowest = r.InferenceTimeMS
		}
	}

	resp.TotalTranslations = len(recent)
	resp.AverageTimeMS = total / float64(len(recent))
	resp.FastestTimeMS = fastest
	resp.SlowestTimeMS = slowest
	return resp, nil
}

// Recent returns history records shaped for the API
func (s *TranslationService) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	records, err := s.store.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = models.HistoryEntry{
			ID:              r.ID,
			SourceText:      r.SourceText,
			TranslatedText:  r.TranslatedText,
			SourceLang:      r.SourceLang,
			TargetLang:      r.TargetLang,
			InferenceTimeMS: r.InferenceTimeMS,
			Model:           r.Model,
			Timestamp:       r.Timestamp,
		}
	}
	return entries, nil
}

// ClearHistory removes all stored translations
func (s *TranslationService) ClearHistory(ctx context.Context) error {
	return s.store.Clear(ctx)
}
