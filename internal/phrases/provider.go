// Package phrases loads the message list sent in datagrams.
package phrases

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Flarenzy/preghierine/internal/domain"
)

// FileProvider reads the phrase file on every Load; nothing is cached.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Path() string {
	return p.path
}

// Load returns the trimmed, non-empty lines of the file in order.
func (p *FileProvider) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPhraseSourceMissing, p.path)
		}
		return nil, fmt.Errorf("open %s: %w", p.path, err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyPhraseSource, p.path)
	}
	return out, nil
}
