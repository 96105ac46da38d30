package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lingobridge/lingobridge/internal/history"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/models"
)

const (
	// chunkCharLimit keeps each chunk near 500 tokens
	chunkCharLimit = 2000

	// savingsPerMillionChars approximates commercial translation pricing
	savingsPerMillionChars = 20.00

	previewLength = 500
	recordLength  = 200
)

// FileTranslationService translates uploaded plain-text documents by
// chunking them through the standard pipeline
type FileTranslationService struct {
	logger     *logging.Logger
	translator *TranslationService
}

// NewFileTranslationService creates a new FileTranslationService
func NewFileTranslationService(logger *logging.Logger, translator *TranslationService) *FileTranslationService {
	if logger == nil {
		logger = logging.Global()
	}

	return &FileTranslationService{
		logger:     logger,
		translator: translator,
	}
}

// allowedExtension reports whether the filename has a supported extension
func allowedExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range []string{".txt", ".md", ".srt"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// splitChunks groups lines into chunks below the chunk character limit
func splitChunks(text string) []string {
	var chunks []string
	var current strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if current.Len()+len(line) >= chunkCharLimit && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// truncate shortens s for previews and history records
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// TranslateFile chunks and translates one uploaded document. Failed
// chunks are annotated in place rather than failing the whole file; only
// the first successful chunk is recorded to history.
func (s *FileTranslationService) TranslateFile(ctx context.Context, filename string, content []byte, targetLang string) (*models.FileTranslateResponse, error) {
	if !allowedExtension(filename) {
		return nil, NewServiceError(CodeInvalidRequest, "Supported formats: .txt, .md, .srt")
	}
	if !utf8.Valid(content) {
		return nil, NewServiceError(CodeInvalidRequest, "File encoding must be UTF-8")
	}

	text := string(content)
	if strings.TrimSpace(text) == "" {
		return nil, NewServiceError(CodeInvalidRequest, "File is empty or no text found")
	}
	if len(text) > models.MaxFileLength {
		return nil, NewServiceError(CodeInvalidRequest,
			fmt.Sprintf("File too large (max %d characters)", models.MaxFileLength))
	}

	chunks := splitChunks(text)
	s.logger.Info("Translating file",
		"filename", filename,
		"target", targetLang,
		"chunks", len(chunks),
		"characters", len(text))

	translated := make([]string, 0, len(chunks))
	recorded := false

	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			translated = append(translated, chunk)
			continue
		}

		resp, err := s.translator.translate(ctx, &models.TranslateRequest{
			Text:       chunk,
			SourceLang: "auto",
			TargetLang: targetLang,
		}, false)
		if err != nil {
			s.logger.Warn("File chunk translation failed",
				"filename", filename, "error", err)
			translated = append(translated, chunk+" [Error]")
			continue
		}

		translated = append(translated, resp.Translation)

		if !recorded {
			recorded = true
			s.translator.record(ctx, history.Record{
				ID:              uuid.New().String(),
				SourceText:      truncate(chunk, recordLength),
				TranslatedText:  truncate(resp.Translation, recordLength),
				SourceLang:      "auto",
				TargetLang:      targetLang,
				InferenceTimeMS: resp.InferenceTimeMS,
				Model:           resp.Model,
				Timestamp:       time.Now().UTC(),
			})
		}
	}

	return &models.FileTranslateResponse{
		Filename:          "translated_" + filename,
		OriginalContent:   truncate(text, previewLength),
		TranslatedContent: strings.Join(translated, ""),
		Chunks:            len(chunks),
		SavingsGenerated:  float64(len(text)) * (savingsPerMillionChars / 1_000_000),
		Success:           true,
	}, nil
}
