// utils/files.go
package utils

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveBase64Image decodes a base64 image (with or without a data URI prefix)
// and writes it under dir with a unique filename. Returns the public URL path.
func SaveBase64Image(base64Data, dir, filenamePrefix string) (string, error) {
	// Strip the data:image/jpeg;base64, part if present
	if idx := strings.Index(base64Data, ";base64,"); idx != -1 {
		base64Data = base64Data[idx+len(";base64,"):]
	}
	if base64Data == "" {
		return "", errors.New("invalid base64 image data")
	}

	raw, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", errors.New("invalid base64 image data")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := filenamePrefix + "-" + uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, filename), raw, 0o644); err != nil {
		return "", err
	}

	return "/files/" + filename, nil
}

// DeleteFile removes a previously saved file given its public URL path.
func DeleteFile(publicPath string) bool {
	rel := strings.TrimPrefix(publicPath, "/")
	absolutePath := filepath.Join(".", rel)
	if _, err := os.Stat(absolutePath); err != nil {
		return false
	}
	return os.Remove(absolutePath) == nil
}
