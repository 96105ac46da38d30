package models

import "time"

// TranslateResponse is the result of a single translation
type TranslateResponse struct {
	Translation      string  `json:"translation"`
	InferenceTimeMS  float64 `json:"inference_time_ms"`
	Model            string  `json:"model"`
	SourceLang       string  `json:"source_lang"`
	TargetLang       string  `json:"target_lang"`
	DetectedLanguage string  `json:"detected_language,omitempty"`
	CharacterCount   int     `json:"character_count"`
	Cached           bool    `json:"cached"`
	Warning          string  `json:"warning,omitempty"`
	NodeID           string  `json:"node_id,omitempty"`
	NodeName         string  `json:"node_name,omitempty"`
}

// BatchItemResult is one entry in a batch response. Failed items carry an
// error message instead of a translation.
type BatchItemResult struct {
	Text            string  `json:"text"`
	Translation     string  `json:"translation,omitempty"`
	InferenceTimeMS float64 `json:"inference_time_ms"`
	Cached          bool    `json:"cached"`
	Success         bool    `json:"success"`
	Error           string  `json:"error,omitempty"`
}

// BatchTranslateResponse is the result of a batch call
type BatchTranslateResponse struct {
	Results    []BatchItemResult `json:"results"`
	Total      int               `json:"total"`
	Successful int               `json:"successful"`
}

// DetectLanguageResponse reports the detected source language
type DetectLanguageResponse struct {
	LanguageCode string `json:"language_code"`
	LanguageName string `json:"language_name"`
}

// LanguagesResponse lists supported language codes and display names
type LanguagesResponse struct {
	Languages map[string]string `json:"languages"`
	Total     int               `json:"total"`
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	NodesOnline int    `json:"nodes_online"`
	NodesTotal  int    `json:"nodes_total"`
}

// HistoryEntry is one persisted translation record as returned by the API
type HistoryEntry struct {
	ID              string    `json:"id"`
	SourceText      string    `json:"source_text"`
	TranslatedText  string    `json:"translated_text"`
	SourceLang      string    `json:"source_lang"`
	TargetLang      string    `json:"target_lang"`
	InferenceTimeMS float64   `json:"inference_time_ms"`
	Model           string    `json:"model"`
	Timestamp       time.Time `json:"timestamp"`
}

// HistoryResponse wraps a page of history records
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
	Total   int            `json:"total"`
}

// StatsResponse aggregates timing over recent history plus cache counters
type StatsResponse struct {
	TotalTranslations int            `json:"total_translations"`
	AverageTimeMS     float64        `json:"average_time_ms"`
	FastestTimeMS     float64        `json:"fastest_time_ms"`
	SlowestTimeMS     float64        `json:"slowest_time_ms"`
	Cache             map[string]any `json:"cache,omitempty"`
}

// FileTranslateResponse is the result of translating an uploaded file.
// OriginalContent is a truncated preview, not the whole document.
type FileTranslateResponse struct {
	Filename          string  `json:"filename"`
	OriginalContent   string  `json:"original_content"`
	TranslatedContent string  `json:"translated_content"`
	Chunks            int     `json:"chunks"`
	SavingsGenerated  float64 `json:"savings_generated"`
	Success           bool    `json:"success"`
}

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code plus a human message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
