package handler

import (
	"errors"
	"log"

	"quicknotes/dto"
	"quicknotes/middleware"
	"quicknotes/repository"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

func GetShareInfoHandler(c *gin.Context, shareService *usecase.ShareService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := shareService.GetShareInfo(c.Request.Context(), noteID, userID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, dto.ToShareInfoResponse(note))
}

func EnableShareHandler(c *gin.Context, shareService *usecase.ShareService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := shareService.EnableSharing(c.Request.Context(), noteID, userID)
	if err != nil {
		if errors.Is(err, usecase.ErrShareTokenExhausted) {
			log.Printf("Share token allocation exhausted for note %s: %v", noteID, err)
			utils.InternalError(c, "Failed to enable sharing")
			return
		}
		respondNoteError(c, err)
		return
	}

	middleware.TrackNoteOperation("share")
	utils.Success(c, dto.ToShareInfoResponse(note))
}

func DisableShareHandler(c *gin.Context, shareService *usecase.ShareService) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")
	if !utils.IsValidID(noteID) {
		utils.BadRequest(c, "Invalid note ID format")
		return
	}

	if err := shareService.DisableSharing(c.Request.Context(), noteID, userID); err != nil {
		respondNoteError(c, err)
		return
	}

	middleware.TrackNoteOperation("unshare")
	utils.Success(c, gin.H{"message": "Sharing disabled"})
}

// PublicNoteHandler resolves a share token without authentication. Every
// failure mode is the same 404 so the endpoint leaks nothing about which
// tokens exist.
func PublicNoteHandler(c *gin.Context, shareService *usecase.ShareService) {
	token := c.Param("shareToken")

	note, err := shareService.GetPublicNote(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			utils.NotFound(c, "Note not found")
			return
		}
		log.Printf("Public note lookup failed: %v", err)
		utils.InternalError(c, "Server error")
		return
	}

	utils.Success(c, dto.ToPublicNoteResponse(note))
}
