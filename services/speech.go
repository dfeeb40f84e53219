package services

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"quicknotes/config"
	"quicknotes/utils"
)

// ErrEmptyText rejects conversion requests before the converter is spawned.
var ErrEmptyText = errors.New("no text provided for speech conversion")

// SpeechConverter invokes the external text-to-speech process. Each
// conversion writes one transient audio file whose lifetime is exactly one
// request: the returned cleanup removes it on every exit path.
type SpeechConverter struct {
	Python    string
	Script    string
	OutputDir string
}

func NewSpeechConverter(cfg config.SpeechConfig) *SpeechConverter {
	dir := cfg.OutputDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "quicknotes_audio")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Failed to create audio output dir %s: %v", dir, err)
	}

	return &SpeechConverter{
		Python:    cfg.Python,
		Script:    cfg.Script,
		OutputDir: dir,
	}
}

// Convert produces an audio file for the text and returns its path plus a
// cleanup func the caller must run after streaming. A non-zero converter
// exit is reported with the converter's stderr attached, and any partially
// written artifact is removed before returning.
func (s *SpeechConverter) Convert(text string) (string, func(), error) {
	if strings.TrimSpace(text) == "" {
		return "", nil, ErrEmptyText
	}

	audioPath := filepath.Join(s.OutputDir, fmt.Sprintf("speech-%s.mp3", utils.GenerateID()))
	cleanup := func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Error deleting temporary audio file %s: %v", audioPath, err)
		}
	}

	cmd := exec.Command(s.Python, s.Script, text, audioPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cleanup()
		diagnostic := strings.TrimSpace(stderr.String())
		if diagnostic == "" {
			diagnostic = err.Error()
		}
		return "", nil, fmt.Errorf("text-to-speech conversion failed: %s", diagnostic)
	}

	return audioPath, cleanup, nil
}
