package services

import (
	"context"
	"strings"
	"testing"
)

func newFileFixture(client *fakeClient) (*FileTranslationService, *fixture) {
	f := newFixture(client)
	return NewFileTranslationService(nil, f.svc), f
}

func TestTranslateFileSuccess(t *testing.T) {
	svc, f := newFileFixture(nil)
	ctx := context.Background()

	resp, err := svc.TranslateFile(ctx, "notes.txt", []byte("Hello world\nSecond line\n"), "es")
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	if resp.Filename != "translated_notes.txt" {
		t.Errorf("filename = %q", resp.Filename)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if resp.Chunks != 1 {
		t.Errorf("chunks = %d, want 1", resp.Chunks)
	}
	if !strings.Contains(resp.TranslatedContent, "translated:") {
		t.Errorf("translated content = %q", resp.TranslatedContent)
	}
	if resp.SavingsGenerated <= 0 {
		t.Error("savings should be positive")
	}

	// Only the first chunk is recorded
	if n, _ := f.store.Count(ctx); n != 1 {
		t.Errorf("history count = %d, want 1", n)
	}
}

func TestTranslateFileChunking(t *testing.T) {
	svc, f := newFileFixture(nil)

	// Each line is 100 chars; 2000-char chunk limit forces multiple chunks
	line := strings.Repeat("a", 99)
	content := strings.Repeat(line+"\n", 50)

	resp, err := svc.TranslateFile(context.Background(), "big.md", []byte(content), "fr")
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	if resp.Chunks < 2 {
		t.Errorf("chunks = %d, want multiple", resp.Chunks)
	}

	// First chunk only, regardless of chunk count
	if n, _ := f.store.Count(context.Background()); n != 1 {
		t.Errorf("history count = %d, want 1", n)
	}
}

func TestTranslateFileFailedChunkAnnotated(t *testing.T) {
	svc, f := newFileFixture(&fakeClient{err: context.DeadlineExceeded})

	resp, err := svc.TranslateFile(context.Background(), "notes.txt", []byte("Hello world\n"), "es")
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	if !strings.Contains(resp.TranslatedContent, "[Error]") {
		t.Errorf("failed chunk should be annotated: %q", resp.TranslatedContent)
	}
	if n, _ := f.store.Count(context.Background()); n != 0 {
		t.Error("nothing should be recorded when no chunk succeeds")
	}
}

func TestTranslateFileValidation(t *testing.T) {
	svc, _ := newFileFixture(nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"unsupported extension", "report.pdf", []byte("text")},
		{"invalid utf8", "notes.txt", []byte{0xff, 0xfe, 0xfd}},
		{"empty file", "notes.txt", []byte("   \n  ")},
		{"oversized file", "notes.txt", []byte(strings.Repeat("a", 100001))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.TranslateFile(ctx, tt.filename, tt.content, "es")
			if err == nil {
				t.Fatal("expected error")
			}
			svcErr, ok := err.(*ServiceError)
			if !ok || svcErr.Code != CodeInvalidRequest {
				t.Errorf("expected INVALID_REQUEST, got %v", err)
			}
		})
	}
}

func TestSplitChunks(t *testing.T) {
	chunks := splitChunks("one\ntwo\nthree")
	if len(chunks) != 1 {
		t.Fatalf("small text chunks = %d, want 1", len(chunks))
	}
	if chunks[0] != "one\ntwo\nthree\n" {
		t.Errorf("chunk = %q", chunks[0])
	}

	long := strings.Repeat("x", 1500)
	chunks = splitChunks(long + "\n" + long + "\n" + long)
	if len(chunks) != 3 {
		t.Errorf("chunks = %d, want 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c) >= 2100 {
			t.Errorf("chunk %d too large: %d chars", i, len(c))
		}
	}
}
