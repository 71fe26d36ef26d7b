package models

import "time"

type ContentType string

const (
	ContentTypeEmail        ContentType = "email"
	ContentTypeNotification ContentType = "notification"
	ContentTypeTranscript   ContentType = "transcript"
	ContentTypeImage        ContentType = "image"
	ContentTypeAudio        ContentType = "audio"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeEmail, ContentTypeNotification, ContentTypeTranscript,
		ContentTypeImage, ContentTypeAudio:
		return true
	}
	return false
}

// ContentItem is a single generation result. Items are immutable after
// creation; the owner may only list and delete them.
type ContentItem struct {
	ID               string
	UserID           string
	Type             ContentType
	Prompt           string
	GeneratedContent string
	CreatedAt        time.Time
}
