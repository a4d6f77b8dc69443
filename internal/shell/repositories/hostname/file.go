package hostname

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/pyhx/internal/logging"
)

type FileRepository struct {
	path     string
	fallback string
	log      logging.Logger
}

func NewFileRepository(path, fallback string, log logging.Logger) *FileRepository {
	return &FileRepository{path: path, fallback: fallback, log: log}
}

func (r *FileRepository) Get(ctx context.Context) string {
	b, err := os.ReadFile(r.path)
	if err == nil {
		if name := strings.TrimSpace(string(b)); name != "" {
			return name
		}
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		r.log.Warn(ctx, "cannot create hostname directory", "path", r.path, "error", err)
		return r.fallback
	}
	if err := os.WriteFile(r.path, []byte(r.fallback), 0o644); err != nil {
		r.log.Warn(ctx, "cannot write default hostname", "path", r.path, "error", err)
	}
	return r.fallback
}

var _ Repository = (*FileRepository)(nil)
