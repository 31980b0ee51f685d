package domain

import "github.com/google/uuid"

// Имена стримов Redis
const (
	StreamRenderRequest = "stream:render:request"
	StreamRenderDone    = "stream:render:done"
)

// RenderJobEvent - входящее задание на рендеринг
type RenderJobEvent struct {
	JobID   uuid.UUID     `json:"job_id"`
	Request RenderRequest `json:"request"`
}

// RenderDoneEvent - результат задания
type RenderDoneEvent struct {
	JobID     uuid.UUID `json:"job_id"`
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"`
	DrawingID string    `json:"drawing_id,omitempty"`
	Paths     int       `json:"paths"`
	Empty     bool      `json:"empty,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
