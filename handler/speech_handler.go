package handler

import (
	"errors"
	"log"
	"path/filepath"

	"quicknotes/middleware"
	"quicknotes/services"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

type speechRequest struct {
	Text string `json:"text"`
}

// TextToSpeechHandler converts note text to audio and streams the result.
// The audio file lives only for the duration of the response.
func TextToSpeechHandler(c *gin.Context, converter *services.SpeechConverter) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	audioPath, cleanup, err := converter.Convert(req.Text)
	if err != nil {
		if errors.Is(err, services.ErrEmptyText) {
			utils.BadRequest(c, err.Error())
			return
		}
		middleware.TrackSpeechConversion("failure")
		log.Printf("Speech conversion failed: %v", err)
		utils.InternalError(c, err.Error())
		return
	}
	defer cleanup()

	middleware.TrackSpeechConversion("success")
	c.Header("Content-Type", "audio/mpeg")
	c.Header("Content-Disposition", "inline; filename="+filepath.Base(audioPath))
	c.File(audioPath)
}
