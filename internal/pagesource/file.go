package pagesource

import (
	"context"
	"os"

	"golang.org/x/net/html"

	"github.com/trustlens/trustlens/internal/model"
)

// FileSource reads a local HTML file as the active page. It exists for
// offline scanning and tests; the snapshot URL is the one supplied at
// construction so URL-based checks still apply.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given HTML file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// ActiveSnapshot parses the file and returns its snapshot. Read and
// parse failures surface as *PageAccessError.
func (s *FileSource) ActiveSnapshot(ctx context.Context, pageURL string) (model.PageSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.PageSnapshot{}, &PageAccessError{URL: pageURL, Cause: err}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return model.PageSnapshot{}, &PageAccessError{URL: pageURL, Cause: err}
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return model.PageSnapshot{}, &PageAccessError{URL: pageURL, Cause: err}
	}

	text, links := extractContent(doc, pageURL)
	return model.NewPageSnapshot(pageURL, text, links), nil
}
