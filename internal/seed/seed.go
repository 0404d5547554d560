// Package seed reads the color matrix used to repopulate the canvas.
//
// A seed is comma-separated text: one line per grid row (y), one token per
// cell (x). Tokens are #RRGGBB hex codes or names from domain.NamedColors.
// Unknown tokens, blank lines, short rows and missing rows become white;
// extra rows and columns are ignored. Quotes carry no meaning.
package seed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"pixel-canvas-server/internal/domain"
)

type Source interface {
	Load() (*domain.Matrix, error)
	Name() string
}

type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return s.Path
}

func (s *FileSource) Load() (*domain.Matrix, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a seed matrix from r.
func Parse(r io.Reader) (*domain.Matrix, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}

	m := domain.BlankMatrix()
	scanner := bufio.NewScanner(strings.NewReader(strings.TrimSpace(string(content))))
	scanner.Buffer(make([]byte, 0, 4096), len(content)+1)

	for y := 0; y < domain.GridSize && scanner.Scan(); y++ {
		tokens := strings.Split(strings.TrimRight(scanner.Text(), "\r"), ",")
		for x := 0; x < domain.GridSize && x < len(tokens); x++ {
			m[y][x] = domain.ResolveColor(tokens[x])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan seed: %w", err)
	}

	return m, nil
}
