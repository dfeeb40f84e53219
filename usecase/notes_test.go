package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"quicknotes/model"
	"quicknotes/repository"
	"quicknotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupNotesRepo(t *testing.T) *repository.NotesRepo {
	t.Helper()

	uri := utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017")
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	coll := client.Database("quicknotes_test").Collection("usecase_notes_" + utils.GenerateID())
	t.Cleanup(func() {
		coll.Drop(context.Background())
		client.Disconnect(context.Background())
	})

	return &repository.NotesRepo{MongoCollection: coll}
}

// fakeMediaStore records store traffic and optionally fails uploads.
type fakeMediaStore struct {
	uploads    int
	deleted    []string
	failUpload bool
}

func (f *fakeMediaStore) Upload(ctx context.Context, data []byte, contentType string) (string, string, error) {
	if f.failUpload {
		return "", "", errors.New("upload failed")
	}
	f.uploads++
	return fmt.Sprintf("https://media.test/b/image/upload/v1/f/file-%d.jpg", f.uploads), model.MediaKindImage, nil
}

func (f *fakeMediaStore) BestEffortDelete(mediaURL string, mediaKind string) {
	f.deleted = append(f.deleted, mediaURL)
}

func TestCreateNoteValidation(t *testing.T) {
	svc := &NotesService{NotesRepo: setupNotesRepo(t)}

	t.Run("missing title", func(t *testing.T) {
		err := svc.CreateNote(context.Background(), &model.Note{UserID: "u", Content: "c"}, nil)
		if !errors.Is(err, ErrTitleRequired) {
			t.Errorf("Expected ErrTitleRequired, got %v", err)
		}
	})

	t.Run("whitespace content", func(t *testing.T) {
		err := svc.CreateNote(context.Background(), &model.Note{UserID: "u", Title: "t", Content: "   "}, nil)
		if !errors.Is(err, ErrContentRequired) {
			t.Errorf("Expected ErrContentRequired, got %v", err)
		}
	})
}

func TestCreateNoteWithUpload(t *testing.T) {
	store := &fakeMediaStore{}
	svc := &NotesService{NotesRepo: setupNotesRepo(t), Media: store}

	note := &model.Note{UserID: "u", Title: "t", Content: "c"}
	upload := &MediaUpload{Data: []byte("bytes"), ContentType: "image/jpeg"}
	if err := svc.CreateNote(context.Background(), note, upload); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	if !note.HasMedia() || note.MediaKind != model.MediaKindImage {
		t.Errorf("Expected attached media, got %+v", note)
	}
}

func TestCreateNoteUploadFailureCreatesNothing(t *testing.T) {
	repo := setupNotesRepo(t)
	svc := &NotesService{NotesRepo: repo, Media: &fakeMediaStore{failUpload: true}}

	note := &model.Note{UserID: "u", Title: "t", Content: "c"}
	upload := &MediaUpload{Data: []byte("bytes"), ContentType: "image/jpeg"}
	if err := svc.CreateNote(context.Background(), note, upload); err == nil {
		t.Fatal("Expected upload failure to abort creation")
	}

	count, err := repo.CountUserNotes("u")
	if err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no note after failed upload, got %d", count)
	}
}

func TestUpdateNoteReplacesAttachment(t *testing.T) {
	store := &fakeMediaStore{}
	svc := &NotesService{NotesRepo: setupNotesRepo(t), Media: store}

	note := &model.Note{UserID: "u", Title: "t", Content: "c"}
	if err := svc.CreateNote(context.Background(), note, &MediaUpload{Data: []byte("a"), ContentType: "image/png"}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	oldURL := note.MediaURL

	updated, err := svc.UpdateNote(context.Background(), note.ID, "u", &NotePatch{
		Upload: &MediaUpload{Data: []byte("b"), ContentType: "image/png"},
	})
	if err != nil {
		t.Fatalf("Failed to update note: %v", err)
	}
	if updated.MediaURL == oldURL {
		t.Error("Expected a new attachment URL after replacement")
	}
	if len(store.deleted) != 1 || store.deleted[0] != oldURL {
		t.Errorf("Expected the old attachment to be released, got %v", store.deleted)
	}
}

func TestUpdateNoteRemoveMedia(t *testing.T) {
	store := &fakeMediaStore{}
	svc := &NotesService{NotesRepo: setupNotesRepo(t), Media: store}

	note := &model.Note{UserID: "u", Title: "t", Content: "c"}
	if err := svc.CreateNote(context.Background(), note, &MediaUpload{Data: []byte("a"), ContentType: "image/png"}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	updated, err := svc.UpdateNote(context.Background(), note.ID, "u", &NotePatch{RemoveMedia: true})
	if err != nil {
		t.Fatalf("Failed to update note: %v", err)
	}
	if updated.HasMedia() || updated.MediaKind != "" {
		t.Errorf("Expected media to be cleared, got %+v", updated)
	}
	if len(store.deleted) != 1 {
		t.Errorf("Expected one delete, got %v", store.deleted)
	}
}

func TestUpdateNoteSelfHealsTags(t *testing.T) {
	repo := setupNotesRepo(t)
	svc := &NotesService{NotesRepo: repo}

	doc := bson.M{
		"_id":         "legacy",
		"user_id":     "u",
		"title":       "t",
		"content":     "c",
		"tags":        `["x","y"]`,
		"is_archived": false,
		"created_at":  time.Now(),
		"updated_at":  time.Now(),
	}
	if _, err := repo.MongoCollection.InsertOne(context.Background(), doc); err != nil {
		t.Fatalf("Failed to insert legacy document: %v", err)
	}

	// An update that does not touch tags still rewrites them normalized.
	title := "t2"
	if _, err := svc.UpdateNote(context.Background(), "legacy", "u", &NotePatch{Title: &title}); err != nil {
		t.Fatalf("Failed to update note: %v", err)
	}

	var raw bson.M
	if err := repo.MongoCollection.FindOne(context.Background(), bson.M{"_id": "legacy"}).Decode(&raw); err != nil {
		t.Fatalf("Failed to fetch raw document: %v", err)
	}
	if _, isString := raw["tags"].(string); isString {
		t.Error("Expected stored tags to be rewritten as an array")
	}
}

func TestDeleteNoteWithoutAttachmentSkipsStore(t *testing.T) {
	store := &fakeMediaStore{}
	svc := &NotesService{NotesRepo: setupNotesRepo(t), Media: store}

	note := &model.Note{UserID: "u", Title: "t", Content: "c"}
	if err := svc.CreateNote(context.Background(), note, nil); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	if err := svc.DeleteNote(context.Background(), note.ID, "u"); err != nil {
		t.Fatalf("Failed to delete note: %v", err)
	}
	if len(store.deleted) != 0 {
		t.Errorf("Expected no store traffic for a note without an attachment, got %v", store.deleted)
	}
}

func TestDeleteNoteReleasesAttachment(t *testing.T) {
	store := &fakeMediaStore{}
	svc := &NotesService{NotesRepo: setupNotesRepo(t), Media: store}

	note := &model.Note{UserID: "u", Title: "t", Content: "c"}
	if err := svc.CreateNote(context.Background(), note, &MediaUpload{Data: []byte("a"), ContentType: "image/png"}); err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	if err := svc.DeleteNote(context.Background(), note.ID, "u"); err != nil {
		t.Fatalf("Failed to delete note: %v", err)
	}
	if len(store.deleted) != 1 {
		t.Errorf("Expected attachment release on delete, got %v", store.deleted)
	}
}
