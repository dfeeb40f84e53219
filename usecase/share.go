package usecase

import (
	"context"
	"errors"

	"quicknotes/model"
	"quicknotes/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxShareTokenAttempts bounds the retry loop; the unique index makes a
// collision between random UUIDs vanishingly rare in the first place.
const maxShareTokenAttempts = 5

var ErrShareTokenExhausted = errors.New("failed to allocate a unique share token")

type ShareService struct {
	NotesRepo *repository.NotesRepo
}

// EnableSharing makes a note publicly readable. A note that already holds
// a share token keeps it (enabling twice is idempotent); otherwise tokens
// are drawn until one persists. The unique index on share_token is the
// actual uniqueness guarantee; the pre-check and the duplicate-key retry
// are the application-level loop around it.
func (svc *ShareService) EnableSharing(ctx context.Context, noteID, userID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(noteID, userID)
	if err != nil {
		return nil, err
	}

	if note.ShareToken != "" {
		if err := svc.NotesRepo.MarkPublic(noteID, userID); err != nil {
			return nil, err
		}
		note.IsPublic = true
		return note, nil
	}

	for attempt := 0; attempt < maxShareTokenAttempts; attempt++ {
		token := uuid.New().String()

		exists, err := svc.NotesRepo.ShareTokenExists(token)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		err = svc.NotesRepo.SetShareToken(noteID, userID, token)
		if mongo.IsDuplicateKeyError(err) {
			// Lost a race for this token; draw again.
			continue
		}
		if err != nil {
			return nil, err
		}

		note.ShareToken = token
		note.IsPublic = true
		return note, nil
	}

	return nil, ErrShareTokenExhausted
}

// DisableSharing revokes public access and clears the token; the next
// enable issues a fresh one.
func (svc *ShareService) DisableSharing(ctx context.Context, noteID, userID string) error {
	return svc.NotesRepo.DisableSharing(noteID, userID)
}

// GetShareInfo returns the note's current sharing state to its owner.
func (svc *ShareService) GetShareInfo(ctx context.Context, noteID, userID string) (*model.Note, error) {
	return svc.NotesRepo.GetNote(noteID, userID)
}

// GetPublicNote resolves a share token for anonymous access. A disabled
// note, a revoked token and an unknown token all yield the same not-found.
func (svc *ShareService) GetPublicNote(ctx context.Context, token string) (*model.Note, error) {
	return svc.NotesRepo.FindByShareToken(token)
}
