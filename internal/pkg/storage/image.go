package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// imageTypes lists the upload formats the image pipeline can decode.
var imageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// ReadImage buffers an upload of at most maxSize bytes and returns it with
// its sniffed MIME type. The client-declared content type is ignored.
func ReadImage(r io.Reader, maxSize int64) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	switch {
	case err != nil:
		return nil, "", fmt.Errorf("read upload: %w", err)
	case len(data) == 0:
		return nil, "", ErrEmptyFile
	case int64(len(data)) > maxSize:
		return nil, "", ErrFileTooLarge
	}

	mimeType, err := sniffImage(data)
	if err != nil {
		return nil, "", err
	}
	return data, mimeType, nil
}

func sniffImage(data []byte) (string, error) {
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "", ErrInvalidMimeType
	}
	if _, ok := imageTypes[mediaType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidMimeType, mediaType)
	}
	return mediaType, nil
}
