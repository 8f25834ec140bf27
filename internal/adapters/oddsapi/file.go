package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alejandrodnm/oddsposter/internal/domain"
	"github.com/alejandrodnm/oddsposter/internal/ports"
)

// FileSource lee partidos de un archivo JSON con el mismo formato que la API.
type FileSource struct {
	path string
}

// NewFileSource crea un FileSource para la ruta dada.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchGames implementa ports.GameProvider.
func (f *FileSource) FetchGames(_ context.Context) ([]domain.Game, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &domain.FetchError{Source: f.path, Err: err}
	}

	var raw []oddsEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.FetchError{Source: f.path, Err: fmt.Errorf("decode: %w", err)}
	}
	return mapEvents(raw), nil
}

// NewSource elige la fuente según el string: "http…" es un URL, lo demás una ruta local.
func NewSource(source string) ports.GameProvider {
	if strings.HasPrefix(source, "http") {
		return NewURLClient(source)
	}
	return NewFileSource(source)
}
