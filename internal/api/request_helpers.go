package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/service/auth"
	"github.com/phrazzld/studyai-api/internal/service/tutor"
)

// getUserIDFromContext returns the authenticated user's ID placed in the
// context by the auth middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return auth.UserIDFromContext(r.Context())
}

// decodeImage accepts either a data URL ("data:image/png;base64,...") or raw
// base64. The returned MIME type is empty for raw base64.
func decodeImage(image string) ([]byte, string, error) {
	image = strings.TrimSpace(image)
	mimeType := ""

	if strings.HasPrefix(image, "data:") {
		header, payload, ok := strings.Cut(image, ",")
		if !ok {
			return nil, "", fmt.Errorf("%w: malformed data URL", tutor.ErrInvalidInput)
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return nil, "", fmt.Errorf("%w: data URL must be base64 encoded", tutor.ErrInvalidInput)
		}
		mimeType = strings.TrimSuffix(meta, ";base64")
		image = payload
	}

	if mimeType != "" && !strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return nil, "", fmt.Errorf("%w: %s is not an image", tutor.ErrInvalidInput, mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(image)
	}
	if err != nil || len(data) == 0 {
		return nil, "", fmt.Errorf("%w: image is not valid base64", tutor.ErrInvalidInput)
	}
	return data, mimeType, nil
}

// parsePagination reads limit and offset query parameters. Missing values are
// zero; the store applies its defaults and caps.
func parsePagination(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	if limit, err = parseNonNegative(q.Get("limit"), "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = parseNonNegative(q.Get("offset"), "offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func parseNonNegative(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrValidation, name)
	}
	return n, nil
}

// readUpload parses the multipart form of a document upload and returns the
// file and the prompt field.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (tutor.Document, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			return tutor.Document{}, "", fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, maxBytes)
		}
		return tutor.Document{}, "", fmt.Errorf("%w: file and prompt are required", tutor.ErrInvalidInput)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return tutor.Document{}, "", fmt.Errorf("%w: file and prompt are required", tutor.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return tutor.Document{}, "", fmt.Errorf("failed to read upload: %w", err)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return tutor.Document{Data: data, MIMEType: mimeType, FileName: header.Filename},
		r.FormValue("prompt"), nil
}
