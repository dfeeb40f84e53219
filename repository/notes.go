package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"quicknotes/model"
	"quicknotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoteNotFound covers a missing note, an ownership mismatch and an
// invalid lifecycle transition alike. Callers must not be able to tell
// another user's note from a nonexistent one.
var ErrNoteNotFound = errors.New("note not found")

// ListFilter selects which lifecycle states a listing returns.
type ListFilter string

const (
	ListActive   ListFilter = "active"
	ListArchived ListFilter = "archived"
	ListAll      ListFilter = "all"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("notes"),
	}
}

// ownerFilter builds the mandatory owner-scoped predicate. Every query in
// this repository goes through it except the public share-token lookup.
func ownerFilter(noteID, userID string) bson.M {
	return bson.M{
		"_id":     noteID,
		"user_id": userID,
	}
}

// CreateNote inserts a new note, assigning its ID and timestamps.
func (r *NotesRepo) CreateNote(note *model.Note) error {
	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	if note.ID == "" {
		note.ID = utils.GenerateID()
	}
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(context.Background(), note)
	return err
}

// GetUserNotes retrieves notes for a user. Active and archived listings
// sort newest-first; the combined listing sorts pinned notes first.
func (r *NotesRepo) GetUserNotes(userID string, filter ListFilter) ([]*model.Note, error) {
	query := bson.M{"user_id": userID}
	sortSpec := bson.D{{Key: "created_at", Value: -1}}

	switch filter {
	case ListArchived:
		query["is_archived"] = true
	case ListAll:
		sortSpec = bson.D{{Key: "is_pinned", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		query["is_archived"] = false
	}

	opts := options.Find().SetSort(sortSpec)
	cursor, err := r.MongoCollection.Find(context.Background(), query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	notes := []*model.Note{}
	if err = cursor.All(context.Background(), &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote retrieves a note iff it belongs to the user.
func (r *NotesRepo) GetNote(noteID string, userID string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(context.Background(),
		ownerFilter(noteID, userID)).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// UpdateNote persists the mutable fields of a note. Empty media fields are
// unset so that MediaKind is present iff MediaURL is present.
func (r *NotesRepo) UpdateNote(noteID string, userID string, note *model.Note) error {
	note.UpdatedAt = time.Now()

	set := bson.M{
		"title":      note.Title,
		"content":    note.Content,
		"tags":       note.Tags,
		"is_pinned":  note.IsPinned,
		"updated_at": note.UpdatedAt,
	}
	update := bson.M{"$set": set}

	if note.MediaURL != "" {
		set["media_url"] = note.MediaURL
		set["media_kind"] = note.MediaKind
	} else {
		update["$unset"] = bson.M{"media_url": "", "media_kind": ""}
	}

	result, err := r.MongoCollection.UpdateOne(context.Background(),
		ownerFilter(noteID, userID), update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// DeleteNote hard-deletes a note from either lifecycle state and returns
// the deleted document so the caller can release its attachment.
func (r *NotesRepo) DeleteNote(noteID string, userID string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOneAndDelete(context.Background(),
		ownerFilter(noteID, userID)).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// DeleteArchivedNote hard-deletes a note only if it is archived.
func (r *NotesRepo) DeleteArchivedNote(noteID string, userID string) (*model.Note, error) {
	filter := ownerFilter(noteID, userID)
	filter["is_archived"] = true

	var note model.Note
	err := r.MongoCollection.FindOneAndDelete(context.Background(), filter).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// ArchiveNote transitions active -> archived. An already-archived note is
// reported as not found.
func (r *NotesRepo) ArchiveNote(noteID string, userID string) (*model.Note, error) {
	return r.setArchived(noteID, userID, true)
}

// RestoreNote transitions archived -> active. A note that is not archived
// is reported as not found.
func (r *NotesRepo) RestoreNote(noteID string, userID string) (*model.Note, error) {
	return r.setArchived(noteID, userID, false)
}

func (r *NotesRepo) setArchived(noteID string, userID string, archived bool) (*model.Note, error) {
	filter := ownerFilter(noteID, userID)
	filter["is_archived"] = !archived

	update := bson.M{
		"$set": bson.M{
			"is_archived": archived,
			"updated_at":  time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(context.Background(), filter, update, opts).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// SetShareToken stores a freshly drawn share token and marks the note
// public. The unique sparse index on share_token is the real uniqueness
// guarantee; a duplicate key error surfaces to the caller for a retry.
func (r *NotesRepo) SetShareToken(noteID string, userID string, token string) error {
	update := bson.M{
		"$set": bson.M{
			"share_token": token,
			"is_public":   true,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(context.Background(),
		ownerFilter(noteID, userID), update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// MarkPublic re-enables sharing on a note that already holds a token.
func (r *NotesRepo) MarkPublic(noteID string, userID string) error {
	update := bson.M{
		"$set": bson.M{
			"is_public":  true,
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(context.Background(),
		ownerFilter(noteID, userID), update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// DisableSharing clears the share token entirely; the next enable issues a
// fresh token.
func (r *NotesRepo) DisableSharing(noteID string, userID string) error {
	update := bson.M{
		"$set": bson.M{
			"is_public":  false,
			"updated_at": time.Now(),
		},
		"$unset": bson.M{"share_token": ""},
	}

	result, err := r.MongoCollection.UpdateOne(context.Background(),
		ownerFilter(noteID, userID), update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// FindByShareToken is the only query not scoped to an owner. It matches
// only notes that are currently public; a revoked token and an unknown
// token are indistinguishable.
func (r *NotesRepo) FindByShareToken(token string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(context.Background(),
		bson.M{"share_token": token, "is_public": true}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// ShareTokenExists is the best-effort pre-check before drawing a token.
func (r *NotesRepo) ShareTokenExists(token string) (bool, error) {
	count, err := r.MongoCollection.CountDocuments(context.Background(),
		bson.M{"share_token": token})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUserNotes counts the number of notes for a user
func (r *NotesRepo) CountUserNotes(userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(context.Background(),
		bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
