package jsonfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// Compressed dataset suffixes.
const (
	SuffixGzip = ".gz"
	SuffixZstd = ".zst"
)

// Decompress inflates data when name ends in .gz or .zst and returns it
// unchanged otherwise. maxSize caps the inflated size; zero means no cap.
func Decompress(name string, data []byte, maxSize int64) ([]byte, error) {
	switch lower := strings.ToLower(name); {
	case strings.HasSuffix(lower, SuffixGzip):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip dataset: %w: %v", domain.ErrInvalidInput, err)
		}
		defer r.Close()
		return readCapped(r, maxSize)

	case strings.HasSuffix(lower, SuffixZstd):
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zstd dataset: %w: %v", domain.ErrInvalidInput, err)
		}
		defer dec.Close()
		return readCapped(dec, maxSize)

	default:
		return data, nil
	}
}

func readCapped(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing dataset: %w: %v", domain.ErrInvalidInput, err)
	}
	if maxSize > 0 && int64(len(out)) > maxSize {
		return nil, fmt.Errorf("dataset exceeds %d bytes: %w", maxSize, domain.ErrInvalidInput)
	}
	return out, nil
}
