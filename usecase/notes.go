package usecase

import (
	"context"
	"errors"
	"strings"

	"quicknotes/model"
	"quicknotes/repository"
)

var (
	ErrTitleRequired   = errors.New("note title is required")
	ErrContentRequired = errors.New("note content is required")
)

// MediaStore is the attachment store as the note lifecycle sees it.
// Upload must complete before a note referencing the attachment is
// persisted; BestEffortDelete never fails the enclosing mutation.
type MediaStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (url string, kind string, err error)
	BestEffortDelete(mediaURL string, mediaKind string)
}

// MediaUpload carries one attachment from a multipart request.
type MediaUpload struct {
	Data        []byte
	ContentType string
}

// NotePatch describes a partial update. Pointer fields and HasTags encode
// presence: absent fields leave the stored value untouched, except tags,
// which are re-normalized from storage when absent so corrupted tag values
// self-heal on every update.
type NotePatch struct {
	Title       *string
	Content     *string
	IsPinned    *bool
	Tags        interface{}
	HasTags     bool
	RemoveMedia bool
	Upload      *MediaUpload
}

type NotesService struct {
	NotesRepo *repository.NotesRepo
	Media     MediaStore
}

// CreateNote validates and persists a new note. When an attachment is
// supplied it is uploaded first; an upload failure means no record is
// created.
func (svc *NotesService) CreateNote(ctx context.Context, note *model.Note, upload *MediaUpload) error {
	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(note.Content) == "" {
		return ErrContentRequired
	}
	note.Tags = model.NormalizeTags(note.Tags)

	if upload != nil {
		if svc.Media == nil {
			return errors.New("media store not configured")
		}
		url, kind, err := svc.Media.Upload(ctx, upload.Data, upload.ContentType)
		if err != nil {
			return err
		}
		note.MediaURL = url
		note.MediaKind = kind
	}

	return svc.NotesRepo.CreateNote(note)
}

// GetUserNotes lists a user's notes for the given lifecycle filter.
func (svc *NotesService) GetUserNotes(ctx context.Context, userID string, filter repository.ListFilter) ([]*model.Note, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return svc.NotesRepo.GetUserNotes(userID, filter)
}

// GetNote fetches one note, owner-scoped.
func (svc *NotesService) GetNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	return svc.NotesRepo.GetNote(noteID, userID)
}

// UpdateNote applies a partial patch. Attachment replacement removes the
// old object first (best-effort) and then uploads the new one; if the new
// upload fails the update is aborted, with the old attachment's removal
// already attempted.
func (svc *NotesService) UpdateNote(ctx context.Context, noteID, userID string, patch *NotePatch) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(noteID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		note.Title = title
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, ErrContentRequired
		}
		note.Content = *patch.Content
	}
	if patch.IsPinned != nil {
		note.IsPinned = *patch.IsPinned
	}

	if patch.HasTags {
		note.Tags = model.NormalizeTags(patch.Tags)
	} else {
		// Re-normalizing the stored tags repairs documents written by
		// clients that serialized the tag array.
		note.Tags = model.NormalizeTags(note.Tags)
	}

	if patch.RemoveMedia {
		if note.HasMedia() && svc.Media != nil {
			svc.Media.BestEffortDelete(note.MediaURL, note.MediaKind)
		}
		note.MediaURL = ""
		note.MediaKind = ""
	}

	if patch.Upload != nil {
		if svc.Media == nil {
			return nil, errors.New("media store not configured")
		}
		if note.HasMedia() && !patch.RemoveMedia {
			svc.Media.BestEffortDelete(note.MediaURL, note.MediaKind)
		}
		url, kind, err := svc.Media.Upload(ctx, patch.Upload.Data, patch.Upload.ContentType)
		if err != nil {
			return nil, err
		}
		note.MediaURL = url
		note.MediaKind = kind
	}

	if err := svc.NotesRepo.UpdateNote(noteID, userID, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote hard-deletes from either lifecycle state and releases the
// attachment, best-effort.
func (svc *NotesService) DeleteNote(ctx context.Context, noteID, userID string) error {
	note, err := svc.NotesRepo.DeleteNote(noteID, userID)
	if err != nil {
		return err
	}
	if note.HasMedia() && svc.Media != nil {
		svc.Media.BestEffortDelete(note.MediaURL, note.MediaKind)
	}
	return nil
}

// DeleteArchivedNote hard-deletes a note that must currently be archived.
func (svc *NotesService) DeleteArchivedNote(ctx context.Context, noteID, userID string) error {
	note, err := svc.NotesRepo.DeleteArchivedNote(noteID, userID)
	if err != nil {
		return err
	}
	if note.HasMedia() && svc.Media != nil {
		svc.Media.BestEffortDelete(note.MediaURL, note.MediaKind)
	}
	return nil
}

// ArchiveNote transitions active -> archived.
func (svc *NotesService) ArchiveNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	return svc.NotesRepo.ArchiveNote(noteID, userID)
}

// RestoreNote transitions archived -> active.
func (svc *NotesService) RestoreNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	return svc.NotesRepo.RestoreNote(noteID, userID)
}
