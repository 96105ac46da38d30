package models

// StreamEvent is one SSE payload emitted during a streaming translation.
// Token events carry the incremental token plus the text accumulated so
// far; exactly one terminal event follows, either done or error.
type StreamEvent struct {
	Token           string  `json:"token,omitempty"`
	FullText        string  `json:"full_text,omitempty"`
	Done            bool    `json:"done,omitempty"`
	Error           string  `json:"error,omitempty"`
	NodeID          string  `json:"node_id,omitempty"`
	NodeName        string  `json:"node_name,omitempty"`
	Model           string  `json:"model,omitempty"`
	InferenceTimeMS float64 `json:"inference_time_ms,omitempty"`
	Cached          bool    `json:"cached,omitempty"`
	Warning         string  `json:"warning,omitempty"`
}

// IsTerminal reports whether this event ends the stream
func (e StreamEvent) IsTerminal() bool {
	return e.Done || e.Error != ""
}
