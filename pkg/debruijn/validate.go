package debruijn

import (
	apperrors "github.com/graphomics/debruijn/pkg/errors"
)

// Validate checks that every k-mer has the same length and that the
// shared length is at least 2. It fails on the first offending k-mer
// with an INVALID_INPUT error, so callers can abort before building
// any partial state. An empty input is valid.
func Validate(kmers []string) error {
	if len(kmers) == 0 {
		return nil
	}

	k := len(kmers[0])
	for i, kmer := range kmers {
		if len(kmer) < 2 {
			return apperrors.New(apperrors.ErrCodeInvalidInput,
				"k-mer %d (%q): length %d, need at least 2", i, kmer, len(kmer))
		}
		if len(kmer) != k {
			return apperrors.New(apperrors.ErrCodeInvalidInput,
				"k-mer %d (%q): length %d does not match length %d of first k-mer", i, kmer, len(kmer), k)
		}
	}
	return nil
}
