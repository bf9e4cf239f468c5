package httpx

import (
	"errors"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/shishir-py/personal-portfolio-sub000/internal/service/upload"
)

// multipartOverhead leaves room for form boundaries and headers around the file.
const multipartOverhead = 1 << 20

func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, r.uploads.MaxBytes()+multipartOverhead)
	file, header, err := req.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		case errors.Is(err, http.ErrMissingFile):
			writeError(w, http.StatusBadRequest, "file field is required")
		default:
			writeError(w, http.StatusBadRequest, "invalid multipart form")
		}
		return
	}
	defer file.Close()
	if req.MultipartForm != nil {
		defer req.MultipartForm.RemoveAll()
	}

	stored, err := r.uploads.Save(req.Context(), header.Filename, file)
	if err != nil {
		r.fail(w, req, "file", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "file", stored)
}

// serveUploads serves stored files without exposing directory listings.
func (r *Router) serveUploads() http.Handler {
	files := http.StripPrefix(upload.URLPrefix, http.FileServer(noListingFS{http.Dir(r.uploads.Root())}))
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if strings.EqualFold(path.Ext(req.URL.Path), ".svg") {
			// SVG can carry script; opened directly it must not run on this origin.
			w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; sandbox")
		}
		files.ServeHTTP(w, req)
	})
}

type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
