package tie

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pierrec/lz4/v4"
)

// StdinPath selects standard input explicitly.
const StdinPath = "-"

// lz4Suffix marks LZ4 frame-compressed input files.
const lz4Suffix = ".lz4"

// ErrInputTooLarge is returned when input exceeds the configured size limit.
var ErrInputTooLarge = errors.New("input exceeds maximum size")

// Source identifies where samples are read from.
type Source struct {
	// Path is the input file; empty or StdinPath reads Stdin.
	Path string
	// Stdin is used when Path does not name a file.
	Stdin io.Reader
	// MaxSize caps the decompressed input in bytes. Zero means unlimited.
	MaxSize uint64
}

// Name returns a human-readable label for the source.
func (s Source) Name() string {
	if s.isStdin() {
		return "<stdin>"
	}

	return s.Path
}

func (s Source) isStdin() bool {
	return s.Path == "" || s.Path == StdinPath
}

// Open returns a reader over the source. Files ending in ".lz4" are
// decompressed transparently. The caller must close the reader.
func Open(src Source) (io.ReadCloser, error) {
	if src.isStdin() {
		stdin := src.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}

		return io.NopCloser(limit(stdin, src.MaxSize)), nil
	}

	file, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("could not read file '%s': %w", src.Path, err)
	}

	var reader io.Reader = file
	if strings.HasSuffix(src.Path, lz4Suffix) {
		reader = lz4.NewReader(file)
	}

	return readCloser{Reader: limit(reader, src.MaxSize), Closer: file}, nil
}

// Load opens, parses and closes the source.
func Load(src Source) (Data, error) {
	reader, err := Open(src)
	if err != nil {
		return Data{}, err
	}

	defer reader.Close()

	data, parseErr := Parse(reader)
	if parseErr != nil {
		return Data{}, fmt.Errorf("%s: %w", src.Name(), parseErr)
	}

	return data, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

func limit(r io.Reader, maxSize uint64) io.Reader {
	if maxSize == 0 {
		return r
	}

	return &sizeLimiter{reader: r, remaining: maxSize, maxSize: maxSize}
}

// sizeLimiter fails with ErrInputTooLarge instead of silently truncating.
type sizeLimiter struct {
	reader    io.Reader
	remaining uint64
	maxSize   uint64
}

func (l *sizeLimiter) Read(p []byte) (int, error) {
	if l.remaining == 0 {
		var probe [1]byte

		n, err := l.reader.Read(probe[:])
		if n > 0 {
			return 0, fmt.Errorf("%w: more than %s", ErrInputTooLarge, humanize.IBytes(l.maxSize))
		}

		return 0, err
	}

	if uint64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}

	n, err := l.reader.Read(p)
	l.remaining -= uint64(n)

	return n, err
}
