package utils

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxAvatarBytes caps profile image uploads.
const MaxAvatarBytes = 2 << 20

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileTypeInvalid = errors.New("unsupported file type")
)

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// SaveUploadedImage stores an image under baseDir/subDir with a random name and returns its path relative to baseDir.
func SaveUploadedImage(file *multipart.FileHeader, baseDir, subDir string, maxBytes int64) (string, error) {
	if file.Size > maxBytes {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", ErrFileTypeInvalid
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(baseDir, subDir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, maxBytes)); err != nil {
		return "", err
	}
	return path.Join(subDir, name), nil
}

// GetFileURL maps a stored relative path to its public URL.
func GetFileURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "/uploads/" + strings.TrimPrefix(relPath, "/")
}
