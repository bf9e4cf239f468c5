// Package upload stores media files referenced by profile, project and
// post records.
package upload

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
)

// URLPrefix is where stored files are served from.
const URLPrefix = "/uploads/"

var allowed = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// ErrTooLarge is returned when a file exceeds the configured limit.
var ErrTooLarge = errors.New("file too large")

// File describes a stored upload.
type File struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Service writes uploads below a root directory.
type Service struct {
	root     string
	baseURL  string
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
}

// New returns an upload service.
func New(root, baseURL string, maxBytes int64, logger *slog.Logger) Service {
	return Service{
		root:     root,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Root is the directory files are written to.
func (s Service) Root() string { return s.root }

// MaxBytes is the size limit for a single file.
func (s Service) MaxBytes() int64 { return s.maxBytes }

func sniff(name string, head []byte) string {
	ct := http.DetectContentType(head)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	if _, ok := allowed[ct]; ok {
		return ct
	}
	// DetectContentType reports SVG as text/xml or text/plain.
	if strings.HasPrefix(ct, "text/") && strings.EqualFold(filepath.Ext(name), ".svg") &&
		bytes.Contains(bytes.ToLower(head), []byte("<svg")) {
		return "image/svg+xml"
	}
	return ct
}

// Save stores the content of r under <root>/<yyyy>/<mm>/<uuid><ext>. The
// type is sniffed from the content, not taken from name.
func (s Service) Save(ctx context.Context, name string, r io.Reader) (*File, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(head) == 0 {
		return nil, domain.Invalid("file", "is empty")
	}
	contentType := sniff(name, head)
	ext, ok := allowed[contentType]
	if !ok {
		return nil, domain.Invalid("file", fmt.Sprintf("type %s is not allowed", contentType))
	}

	now := s.now()
	rel := path.Join(now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	dest := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(br, s.maxBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}
	if written > s.maxBytes {
		return nil, ErrTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	file := &File{
		URL:         s.baseURL + URLPrefix + rel,
		Name:        filepath.Base(strings.TrimSpace(name)),
		Size:        written,
		ContentType: contentType,
	}
	s.logger.Info("file uploaded", "path", rel, "size", written, "content_type", contentType)
	return file, nil
}
