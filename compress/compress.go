// Package compress wraps gzip for whole byte strings.
package compress

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/overnest/safecrypto-go/cryptoerr"
)

const (
	domain = "compress"

	MinCompressionLevel = gzip.NoCompression
	MaxCompressionLevel = gzip.BestCompression
)

// Compress gzips input at level, which must lie in
// [MinCompressionLevel, MaxCompressionLevel].
func Compress(input []byte, level int) ([]byte, error) {
	if level < MinCompressionLevel || level > MaxCompressionLevel {
		return nil, cryptoerr.Invalid(domain, "compression level %d outside [%d, %d]",
			level, MinCompressionLevel, MaxCompressionLevel)
	}
	out := new(bytes.Buffer)
	w, err := gzip.NewWriterLevel(out, level)
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "creating gzip writer")
	}
	if _, err := w.Write(input); err != nil {
		return nil, cryptoerr.Primitive(domain, err, "compressing %d bytes", len(input))
	}
	if err := w.Close(); err != nil {
		return nil, cryptoerr.Primitive(domain, err, "flushing gzip stream")
	}
	return out.Bytes(), nil
}

// Uncompress reverses Compress. Corrupt, truncated or empty streams fail.
func Uncompress(input []byte) ([]byte, error) {
	return uncompress(input, -1)
}

// UncompressLimit is Uncompress for untrusted input: output longer than limit
// bytes is rejected as invalid input instead of being buffered.
func UncompressLimit(input []byte, limit int64) ([]byte, error) {
	if limit < 0 {
		return nil, cryptoerr.Invalid(domain, "negative output limit %d", limit)
	}
	return uncompress(input, limit)
}

// uncompress reads at most limit bytes of output; a negative limit reads all.
func uncompress(input []byte, limit int64) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "reading gzip header")
	}
	defer r.Close()

	var src io.Reader = r
	if limit >= 0 {
		src = io.LimitReader(r, limit+1)
	}
	out, err := io.ReadAll(src)
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "uncompressing %d bytes", len(input))
	}
	if limit >= 0 && int64(len(out)) > limit {
		return nil, cryptoerr.Invalid(domain, "uncompressed output exceeds %d bytes", limit)
	}
	return out, nil
}
