package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/personal-blog-api/internal/models"
)

// Export formats
const (
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
)

// ErrUnsupportedFormat is returned for an export format other than ndjson or json
var ErrUnsupportedFormat = errors.New("unsupported export format")

// flushEvery is how many records are written between flushes of a streaming response
const flushEvery = 100

// Export streams every article in creation order and returns how many were written
func (s *articleService) Export(ctx context.Context, w io.Writer, format string) (int, error) {
	switch format {
	case FormatNDJSON:
		return s.exportNDJSON(ctx, w)
	case FormatJSON:
		return s.exportJSON(ctx, w)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (s *articleService) exportNDJSON(ctx context.Context, w io.Writer) (int, error) {
	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repo.StreamAll(ctx, func(article *models.Article) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
		count++

		if count%flushEvery == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	return count, err
}

func (s *articleService) exportJSON(ctx context.Context, w io.Writer) (int, error) {
	if _, err := io.WriteString(w, "["); err != nil {
		return 0, err
	}
	count := 0

	err := s.repo.StreamAll(ctx, func(article *models.Article) error {
		if count > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}

		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}

	_, err = io.WriteString(w, "]")
	return count, err
}
