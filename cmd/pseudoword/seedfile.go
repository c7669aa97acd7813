package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/Pseudoword/pkg/pseudoword"
	"github.com/ulikunitz/xz"
)

type seedFile struct {
	io.Reader
	io.Closer
}

// openSeedFile opens a word list for reading. Files ending in .xz are
// decompressed transparently.
func openSeedFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".xz") {
		return f, nil
	}

	xr, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read xz seed file %s: %w", path, err)
	}
	return seedFile{Reader: xr, Closer: f}, nil
}

// readSeedFile returns every word of the seed file at path.
func readSeedFile(path string) ([]string, error) {
	rc, err := openSeedFile(path)
	if err != nil {
		return nil, err
	}
	defer func(rc io.ReadCloser) {
		_ = rc.Close()
	}(rc)

	words, err := pseudoword.NewSeedTokenizer().ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return words, nil
}
