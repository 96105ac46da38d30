// Package models defines the request and response shapes shared by the
// HTTP handlers and the translation services.
package models

import "fmt"

// Request size limits
const (
	MaxTextLength     = 5000
	MaxDocumentLength = 50000
	MaxBatchSize      = 50
	MaxFileLength     = 100000
	MaxHistoryContext = 3
)

// TranslateRequest is the body of a single translation call
type TranslateRequest struct {
	Text        string `json:"text"`
	SourceLang  string `json:"source_lang"`
	TargetLang  string `json:"target_lang"`
	ContextText string `json:"context_text,omitempty"`
	UseContext  bool   `json:"use_context"`
	IsDocument  bool   `json:"is_document"`
	MaxTokens   int    `json:"max_tokens,omitempty"`
}

// Validate checks request limits. Document mode raises the text ceiling.
func (r *TranslateRequest) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("text is required")
	}
	if r.TargetLang == "" {
		return fmt.Errorf("target_lang is required")
	}

	limit := MaxTextLength
	if r.IsDocument {
		limit = MaxDocumentLength
	}
	if len(r.Text) > limit {
		return fmt.Errorf("text exceeds maximum length of %d characters", limit)
	}
	return nil
}

// BatchTranslateRequest translates up to MaxBatchSize texts in one call
type BatchTranslateRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"source_lang"`
	TargetLang string   `json:"target_lang"`
}

// Validate checks batch limits
func (r *BatchTranslateRequest) Validate() error {
	if len(r.Texts) == 0 {
		return fmt.Errorf("texts is required")
	}
	if len(r.Texts) > MaxBatchSize {
		return fmt.Errorf("batch exceeds maximum of %d texts", MaxBatchSize)
	}
	if r.TargetLang == "" {
		return fmt.Errorf("target_lang is required")
	}
	for i, t := range r.Texts {
		if len(t) > MaxTextLength {
			return fmt.Errorf("text %d exceeds maximum length of %d characters", i, MaxTextLength)
		}
	}
	return nil
}

// DetectLanguageRequest asks for script-based language detection
type DetectLanguageRequest struct {
	Text string `json:"text"`
}

// Validate checks that text is present
func (r *DetectLanguageRequest) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

// AddNodeRequest registers a new inference node with the pool
type AddNodeRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Validate checks that the node URL is present
func (r *AddNodeRequest) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}
