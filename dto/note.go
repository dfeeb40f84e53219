package dto

import (
	"time"

	"quicknotes/model"
)

type NoteResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	MediaURL   string    `json:"media_url,omitempty"`
	MediaKind  string    `json:"media_kind,omitempty"`
	Tags       []string  `json:"tags"`
	IsPinned   bool      `json:"is_pinned"`
	IsArchived bool      `json:"is_archived"`
	IsPublic   bool      `json:"is_public"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PublicNoteResponse is the anonymous projection of a shared note. It
// deliberately omits the owner identity and the pin/archive flags.
type PublicNoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	MediaURL  string    `json:"media_url,omitempty"`
	MediaKind string    `json:"media_kind,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShareInfoResponse struct {
	IsPublic   bool   `json:"is_public"`
	ShareToken string `json:"share_token,omitempty"`
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		MediaURL:   note.MediaURL,
		MediaKind:  note.MediaKind,
		Tags:       tagsOrEmpty(note.Tags),
		IsPinned:   note.IsPinned,
		IsArchived: note.IsArchived,
		IsPublic:   note.IsPublic,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

// Convert slice of notes to slice of NoteResponse
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}

// ToPublicNoteResponse redacts a note for anonymous share-link access.
func ToPublicNoteResponse(note *model.Note) PublicNoteResponse {
	return PublicNoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		MediaURL:  note.MediaURL,
		MediaKind: note.MediaKind,
		Tags:      tagsOrEmpty(note.Tags),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func ToShareInfoResponse(note *model.Note) ShareInfoResponse {
	return ShareInfoResponse{
		IsPublic:   note.IsPublic,
		ShareToken: note.ShareToken,
	}
}

func tagsOrEmpty(tags model.TagList) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
