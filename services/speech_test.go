package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quicknotes/config"
)

// fakeConverter writes a shell script standing in for the external
// text-to-speech process.
func fakeConverter(t *testing.T, body string) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "fake_tts.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("Failed to write fake converter: %v", err)
	}
	return script
}

func newTestConverter(t *testing.T, script string) *SpeechConverter {
	t.Helper()
	return NewSpeechConverter(config.SpeechConfig{
		Python:    "/bin/sh",
		Script:    script,
		OutputDir: t.TempDir(),
	})
}

func TestConvertSuccess(t *testing.T) {
	script := fakeConverter(t, `printf 'AUDIO:%s' "$1" > "$2"`)
	converter := newTestConverter(t, script)

	audioPath, cleanup, err := converter.Convert("hello world")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		t.Fatalf("Audio file not readable: %v", err)
	}
	if string(data) != "AUDIO:hello world" {
		t.Errorf("Unexpected audio content: %q", data)
	}

	cleanup()
	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Errorf("Cleanup left the audio file behind")
	}
}

func TestConvertEmptyText(t *testing.T) {
	script := fakeConverter(t, `exit 0`)
	converter := newTestConverter(t, script)

	for _, text := range []string{"", "   "} {
		if _, _, err := converter.Convert(text); err != ErrEmptyText {
			t.Errorf("Convert(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
}

func TestConvertFailureReportsStderrAndRemovesPartialArtifact(t *testing.T) {
	// The converter writes a partial file, complains, and fails.
	script := fakeConverter(t, `printf 'partial' > "$2"; echo 'synth backend unreachable' >&2; exit 1`)
	converter := newTestConverter(t, script)

	_, _, err := converter.Convert("some text")
	if err == nil {
		t.Fatal("Convert should fail on non-zero converter exit")
	}
	if !strings.Contains(err.Error(), "synth backend unreachable") {
		t.Errorf("Error should carry converter stderr, got: %v", err)
	}

	// The partial artifact must be gone.
	entries, readErr := os.ReadDir(converter.OutputDir)
	if readErr != nil {
		t.Fatalf("Failed to read output dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Partial artifact left behind: %v", entries)
	}
}

func TestConvertUsesFreshPathPerRequest(t *testing.T) {
	script := fakeConverter(t, `printf 'x' > "$2"`)
	converter := newTestConverter(t, script)

	pathA, cleanupA, err := converter.Convert("a")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	defer cleanupA()

	pathB, cleanupB, err := converter.Convert("b")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	defer cleanupB()

	if pathA == pathB {
		t.Errorf("Consecutive conversions share the artifact path %q", pathA)
	}
}
