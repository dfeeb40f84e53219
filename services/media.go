package services

import (
	"errors"
	"fmt"
	"strings"

	"quicknotes/model"
)

// ErrUnsupportedMediaType rejects attachments that are not images, videos
// or PDF documents.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// KindFromContentType derives the note's media kind from the upload's
// content type. The kind is never set any other way.
func KindFromContentType(contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return model.MediaKindImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return model.MediaKindVideo, nil
	case contentType == "application/pdf":
		return model.MediaKindDocument, nil
	}
	return "", ErrUnsupportedMediaType
}

// ResourceTypeForKind maps a media kind to the store's resource category.
// Unknown kinds fall back to "raw": deleting with the wrong category is a
// silent no-op, never a deletion of the wrong object.
func ResourceTypeForKind(kind string) string {
	switch kind {
	case model.MediaKindImage:
		return "image"
	case model.MediaKindVideo:
		return "video"
	default:
		return "raw"
	}
}

// PublicIDFromURL derives the storage object identifier from a delivery
// URL of the form .../upload/<version>/<folder>/<name>.<ext>. The version
// segment and extension are stripped; the result is <folder>/<name>.
func PublicIDFromURL(mediaURL string) (string, error) {
	parts := strings.Split(mediaURL, "/")

	uploadIdx := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx+2 >= len(parts) {
		return "", fmt.Errorf("malformed media URL %q", mediaURL)
	}

	rest := strings.Join(parts[uploadIdx+2:], "/")
	publicID := strings.SplitN(rest, ".", 2)[0]
	if publicID == "" {
		return "", fmt.Errorf("malformed media URL %q", mediaURL)
	}
	return publicID, nil
}

// extensionFor picks a file extension for the delivery URL. Unknown types
// get none; the resolver strips it again either way.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	case "application/pdf":
		return ".pdf"
	}
	return ""
}
