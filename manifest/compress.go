package manifest

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a streamed manifest is compressed.
type Compression string

// Supported compression methods.
const (
	None Compression = "none"
	Zstd Compression = "zstd"
	LZ4  Compression = "lz4"
)

// ParseCompression returns the Compression named by s, an empty string
// meaning None.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(s); c {
	case "":
		return None, nil
	case None, Zstd, LZ4:
		return c, nil
	}
	return "", fmt.Errorf("manifest: unknown compression \"%s\"", s)
}

// Extension returns the suffix appended to a compressed file name.
func (c Compression) Extension() string {
	switch c {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	}
	return ""
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// NewWriter wraps w so that anything written is compressed with c. The
// returned writer must be closed to flush any buffered output, it does not
// close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None, "":
		return nopWriteCloser{w}, nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("manifest: unknown compression \"%s\"", c)
}

// NewReader wraps r so that reads are decompressed with c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case None, "":
		return io.NopCloser(r), nil
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("manifest: unknown compression \"%s\"", c)
}
