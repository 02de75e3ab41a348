// Package kmer reads k-mer collections from line-oriented sources and
// derives k-mer compositions from raw sequences.
//
// The on-disk format is one k-mer per line with no header or metadata.
// Surrounding whitespace is trimmed and blank lines are skipped, so
// trailing newlines and editor artifacts are harmless.
package kmer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/graphomics/debruijn/pkg/errors"
)

// ReadAll reads k-mers from r, one per line. Lines are trimmed of
// surrounding whitespace; blank lines are skipped. The k-mers are
// returned in input order without any validation (see debruijn.Validate).
func ReadAll(r io.Reader) ([]string, error) {
	var kmers []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		kmers = append(kmers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read k-mers: %w", err)
	}
	return kmers, nil
}

// ReadFile reads k-mers from the file at path. A path of "-" reads
// from stdin. A missing file is reported as a NOT_FOUND error.
func ReadFile(path string) ([]string, error) {
	if path == "-" {
		return ReadAll(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "input file %s does not exist", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	kmers, err := ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return kmers, nil
}

// Composition returns the k-mer composition of text: every overlapping
// length-k substring, in order of appearance. This is the natural
// upstream producer for debruijn.Build when starting from a raw
// sequence instead of a pre-cut k-mer list.
//
// It fails with INVALID_INPUT when k < 2 or k exceeds the text length.
func Composition(text string, k int) ([]string, error) {
	if k < 2 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "k must be at least 2, got %d", k)
	}
	if k > len(text) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"k (%d) exceeds sequence length (%d)", k, len(text))
	}

	kmers := make([]string, 0, len(text)-k+1)
	for i := 0; i+k <= len(text); i++ {
		kmers = append(kmers, text[i:i+k])
	}
	return kmers, nil
}
