package profileapi

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/quickhire/profile-engine/internal/domain"
)

// DownloadResume fetches the stored resume with bearer auth and returns
// the raw bytes plus the filename to save them under. The stored file name
// wins; when it carries no extension one is sniffed from the content.
func (c *Client) DownloadResume(ctx domain.Context, ref domain.ResumeRef) ([]byte, string, error) {
	if ref.FilePath == "" {
		return nil, "", fmt.Errorf("op=sync.resume: %w", domain.ErrNotFound)
	}
	path := ref.FilePath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Del("Accept")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("op=sync.resume: %w: %v", domain.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to the body
	case http.StatusNotFound:
		return nil, "", fmt.Errorf("op=sync.resume: %w", domain.ErrNotFound)
	case http.StatusUnauthorized:
		return nil, "", fmt.Errorf("op=sync.resume: %w", domain.ErrUnauthorized)
	default:
		return nil, "", fmt.Errorf("op=sync.resume status=%d: %w", resp.StatusCode, domain.ErrInternal)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("op=sync.resume read: %w: %v", domain.ErrNetwork, err)
	}
	return data, resumeFileName(ref, data), nil
}

// resumeFileName prefers the stored name, falls back to the path basename,
// and appends a sniffed extension when neither carries one.
func resumeFileName(ref domain.ResumeRef, data []byte) string {
	name := ref.FileName
	if name == "" {
		name = filepath.Base(ref.FilePath)
	}
	if name == "" || name == "." || name == "/" {
		name = "resume"
	}
	if filepath.Ext(name) == "" {
		if ext := mimetype.Detect(data).Extension(); ext != "" {
			name += ext
		}
	}
	return name
}
