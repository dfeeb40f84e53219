package model

import (
	"time"
)

// Media kinds stored on a note. The kind is derived from the uploaded
// file's content type and is never set independently of MediaURL.
const (
	MediaKindImage    = "image"
	MediaKindVideo    = "video"
	MediaKindDocument = "document"
)

type Note struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	MediaURL   string    `bson:"media_url,omitempty" json:"media_url,omitempty"`
	MediaKind  string    `bson:"media_kind,omitempty" json:"media_kind,omitempty"`
	IsPinned   bool      `bson:"is_pinned" json:"is_pinned"`
	Tags       TagList   `bson:"tags" json:"tags"`
	IsArchived bool      `bson:"is_archived" json:"is_archived"`
	IsPublic   bool      `bson:"is_public" json:"is_public"`
	ShareToken string    `bson:"share_token,omitempty" json:"share_token,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMedia reports whether the note carries an attachment.
func (n *Note) HasMedia() bool {
	return n.MediaURL != ""
}
