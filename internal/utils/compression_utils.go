package utils

import (
	"bytes"
	"fmt"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Supported export artifact encodings.
const (
	EncodingIdentity = "identity"
	EncodingGzip     = "gzip"
	EncodingBrotli   = "br"
	EncodingZstd     = "zstd"
)

// Compress encodes data with the requested algorithm. "identity" (or empty)
// returns the input untouched.
func Compress(data []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "", EncodingIdentity:
		return data, nil
	case EncodingGzip:
		var buf bytes.Buffer
		w, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
		if err != nil {
			return nil, fmt.Errorf("gzip writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("gzip write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("gzip close: %w", err)
		}
		return buf.Bytes(), nil
	case EncodingBrotli:
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("brotli write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("brotli close: %w", err)
		}
		return buf.Bytes(), nil
	case EncodingZstd:
		w, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		defer w.Close()
		return w.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}

// ContentEncodingHeader maps an encoding identifier to its HTTP
// Content-Encoding value, empty for identity.
func ContentEncodingHeader(encoding string) string {
	switch encoding {
	case EncodingGzip:
		return "gzip"
	case EncodingBrotli:
		return "br"
	case EncodingZstd:
		return "zstd"
	default:
		return ""
	}
}
