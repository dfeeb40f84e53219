package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"quicknotes/model"
)

func sampleNote() *model.Note {
	return &model.Note{
		ID:         "note-1",
		UserID:     "user-1",
		Title:      "T",
		Content:    "C",
		MediaURL:   "https://media.example.com/b/image/upload/v1/quicknotes_media/a.jpg",
		MediaKind:  model.MediaKindImage,
		IsPinned:   true,
		Tags:       model.TagList{"x", "y"},
		IsArchived: true,
		IsPublic:   true,
		ShareToken: "secret-token",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestPublicNoteResponseRedaction(t *testing.T) {
	note := sampleNote()

	data, err := json.Marshal(ToPublicNoteResponse(note))
	if err != nil {
		t.Fatalf("Failed to marshal public response: %v", err)
	}
	body := string(data)

	for _, leaked := range []string{"user_id", "user-1", "is_pinned", "is_archived", "share_token", "secret-token"} {
		if strings.Contains(body, leaked) {
			t.Errorf("Public projection leaks %q: %s", leaked, body)
		}
	}

	for _, kept := range []string{"\"title\":\"T\"", "\"content\":\"C\"", "\"media_url\"", "\"tags\":[\"x\",\"y\"]", "created_at", "updated_at"} {
		if !strings.Contains(body, kept) {
			t.Errorf("Public projection is missing %s: %s", kept, body)
		}
	}
}

func TestToNoteResponseEmptyTags(t *testing.T) {
	note := sampleNote()
	note.Tags = nil

	data, err := json.Marshal(ToNoteResponse(note))
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	if !strings.Contains(string(data), "\"tags\":[]") {
		t.Errorf("Nil tags should serialize as an empty array: %s", data)
	}
}
