package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quicknotes/config"
	"quicknotes/services"

	"github.com/gin-gonic/gin"
)

func setupSpeechRouter(t *testing.T, scriptBody string) (*gin.Engine, *services.SpeechConverter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	script := filepath.Join(t.TempDir(), "fake_tts.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"+scriptBody), 0o755); err != nil {
		t.Fatalf("Failed to write fake converter: %v", err)
	}

	converter := services.NewSpeechConverter(config.SpeechConfig{
		Python:    "/bin/sh",
		Script:    script,
		OutputDir: t.TempDir(),
	})

	router := gin.New()
	router.POST("/text-to-speech", func(c *gin.Context) {
		TextToSpeechHandler(c, converter)
	})
	return router, converter
}

func postSpeech(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/text-to-speech", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTextToSpeechHandler(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		router, _ := setupSpeechRouter(t, `exit 0`)
		w := postSpeech(router, `{"text":""}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for empty text, got %d", w.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		router, _ := setupSpeechRouter(t, `exit 0`)
		w := postSpeech(router, `not json`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for invalid body, got %d", w.Code)
		}
	})

	t.Run("streams audio and removes the artifact", func(t *testing.T) {
		router, converter := setupSpeechRouter(t, `printf 'AUDIO' > "$2"`)
		w := postSpeech(router, `{"text":"hello"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "audio/mpeg" {
			t.Errorf("Expected audio/mpeg content type, got %q", ct)
		}
		if w.Body.String() != "AUDIO" {
			t.Errorf("Unexpected audio body: %q", w.Body.String())
		}

		entries, err := os.ReadDir(converter.OutputDir)
		if err != nil {
			t.Fatalf("Failed to read output dir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Audio artifact left behind after response: %v", entries)
		}
	})

	t.Run("converter failure", func(t *testing.T) {
		router, _ := setupSpeechRouter(t, `echo 'boom' >&2; exit 1`)
		w := postSpeech(router, `{"text":"hello"}`)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500 on converter failure, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "boom") {
			t.Errorf("Expected converter stderr in the response, got %s", w.Body.String())
		}
	})
}
