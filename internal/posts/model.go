package posts

import (
	"time"

	"github.com/google/uuid"
)

// Post is a published blog entry. Slug is unique and never changes once published.
type Post struct {
	ID    uuid.UUID
	Slug  string
	Title string
	Body  string
	// S3Key is empty when Body is stored inline.
	S3Key       string
	PublishedAt time.Time
}
