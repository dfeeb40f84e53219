package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"quicknotes/dto"
	"quicknotes/middleware"
	"quicknotes/model"
	"quicknotes/repository"
	"quicknotes/services"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

// GetUserNotesHandler lists the caller's notes. Active notes by default;
// ?show_archived=true switches to the archive.
func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")

	filter := repository.ListActive
	switch c.Query("show_archived") {
	case "true":
		filter = repository.ListArchived
	case "all":
		filter = repository.ListAll
	}

	notes, err := notesService.GetUserNotes(c.Request.Context(), userID, filter)
	if err != nil {
		log.Printf("Failed to list notes for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch notes")
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")

	pinned := c.PostForm("is_pinned") == "true"
	tags, _ := tagsFromForm(c)
	note := &model.Note{
		UserID:   userID,
		Title:    c.PostForm("title"),
		Content:  c.PostForm("content"),
		IsPinned: pinned,
		Tags:     model.NormalizeTags(tags),
	}

	upload, err := readMediaUpload(c)
	if err != nil {
		utils.BadRequest(c, "Failed to read attachment")
		return
	}

	if err := notesService.CreateNote(c.Request.Context(), note, upload); err != nil {
		trackMediaUpload(upload, err)
		respondNoteError(c, err)
		return
	}
	trackMediaUpload(upload, nil)

	middleware.TrackNoteOperation("create")
	utils.Created(c, dto.ToNoteResponse(note))
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := notesService.GetNote(c.Request.Context(), noteID, userID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	var patch usecase.NotePatch
	if title, ok := c.GetPostForm("title"); ok {
		patch.Title = &title
	}
	if content, ok := c.GetPostForm("content"); ok {
		patch.Content = &content
	}
	if pinned, ok := c.GetPostForm("is_pinned"); ok {
		value := pinned == "true"
		patch.IsPinned = &value
	}
	if tags, ok := tagsFromForm(c); ok {
		patch.Tags = tags
		patch.HasTags = true
	}
	patch.RemoveMedia = c.PostForm("remove_media") == "true"

	upload, err := readMediaUpload(c)
	if err != nil {
		utils.BadRequest(c, "Failed to read attachment")
		return
	}
	patch.Upload = upload

	note, err := notesService.UpdateNote(c.Request.Context(), noteID, userID, &patch)
	if err != nil {
		trackMediaUpload(upload, err)
		respondNoteError(c, err)
		return
	}
	trackMediaUpload(upload, nil)

	middleware.TrackNoteOperation("update")
	utils.Success(c, dto.ToNoteResponse(note))
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	if err := notesService.DeleteNote(c.Request.Context(), noteID, userID); err != nil {
		respondNoteError(c, err)
		return
	}

	middleware.TrackNoteOperation("delete")
	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}

func ArchiveNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := notesService.ArchiveNote(c.Request.Context(), noteID, userID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	middleware.TrackNoteOperation("archive")
	utils.Success(c, dto.ToNoteResponse(note))
}

func RestoreNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := notesService.RestoreNote(c.Request.Context(), noteID, userID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	middleware.TrackNoteOperation("restore")
	utils.Success(c, dto.ToNoteResponse(note))
}

// DeleteArchivedNoteHandler permanently removes a note from the archive.
// Unlike DeleteNoteHandler it refuses notes that are still active.
func DeleteArchivedNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	if err := notesService.DeleteArchivedNote(c.Request.Context(), noteID, userID); err != nil {
		respondNoteError(c, err)
		return
	}

	middleware.TrackNoteOperation("delete")
	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}

// tagsFromForm reports whether the form carried a tags field at all. A
// single value is passed through as a string so comma-separated and
// serialized-array submissions both reach the normalizer intact.
func tagsFromForm(c *gin.Context) (interface{}, bool) {
	values, ok := c.GetPostFormArray("tags")
	if !ok {
		return nil, false
	}
	if len(values) == 1 {
		return values[0], true
	}
	return values, true
}

// readMediaUpload pulls the optional "media" part out of a multipart
// request. A request without the part, or without a multipart body at
// all, yields a nil upload rather than an error.
func readMediaUpload(c *gin.Context) (*usecase.MediaUpload, error) {
	fileHeader, err := c.FormFile("media")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &usecase.MediaUpload{Data: data, ContentType: contentType}, nil
}

func trackMediaUpload(upload *usecase.MediaUpload, err error) {
	if upload == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	middleware.MediaOperationsTotal.WithLabelValues("upload", status).Inc()
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		utils.NotFound(c, "Note not found")
	case errors.Is(err, usecase.ErrTitleRequired),
		errors.Is(err, usecase.ErrContentRequired),
		errors.Is(err, services.ErrUnsupportedMediaType):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("Note operation failed: %v", err)
		utils.InternalError(c, "Server error")
	}
}
