package emit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/exp/mmap"
)

// ValuesPerLine is the default number of literals written per line.
const ValuesPerLine = 32

// MmapThreshold is the file size from which EmitFile maps the file instead
// of reading it through a buffer.
const MmapThreshold = 64 << 10

const readChunk = 32 << 10

// Options controls literal formatting.
type Options struct {
	Signedness Signedness
	// Indent prefixes every emitted line.
	Indent string
	// PerLine overrides ValuesPerLine when positive.
	PerLine int
}

// ReadError reports a resource that could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("reading resource: %v", e.Err)
	}

	return fmt.Sprintf("reading resource %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

var literalTables = [2][256]string{
	Signed:   buildTable(Signed),
	Unsigned: buildTable(Unsigned),
}

func buildTable(s Signedness) [256]string {
	var table [256]string
	for v := range 256 {
		table[v] = strconv.Itoa(s.Value(byte(v)))
	}

	return table
}

// Literal returns the source literal for b under s.
func Literal(b byte, s Signedness) string {
	if s == Unsigned {
		return literalTables[Unsigned][b]
	}

	return literalTables[Signed][b]
}

// EmitBytes streams r to w as literals and returns the number of bytes
// consumed. Nothing is written for an empty reader. Failures reading r are
// returned as *ReadError.
func EmitBytes(w io.Writer, r io.Reader, opts Options) (int64, error) {
	perLine := opts.PerLine
	if perLine <= 0 {
		perLine = ValuesPerLine
	}

	table := &literalTables[Signed]
	if opts.Signedness == Unsigned {
		table = &literalTables[Unsigned]
	}

	var (
		total int64
		count int
		line  []byte
	)

	flush := func() error {
		line = append(line, '\n')
		_, err := w.Write(line)
		line = line[:0]
		count = 0

		if err != nil {
			return fmt.Errorf("writing literals: %w", err)
		}

		return nil
	}

	chunk := make([]byte, readChunk)

	for {
		n, readErr := r.Read(chunk)

		for _, b := range chunk[:n] {
			if count == 0 {
				line = append(line, opts.Indent...)
			} else {
				line = append(line, ' ')
			}

			line = append(line, table[b]...)
			line = append(line, ',')
			count++

			if count == perLine {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}

		total += int64(n)

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return total, &ReadError{Err: readErr}
		}
	}

	if count > 0 {
		if err := flush(); err != nil {
			return total, err
		}
	}

	return total, nil
}

// EmitFile emits the contents of the file at path. The file is read once,
// sequentially and read-only; large files are memory-mapped.
func EmitFile(w io.Writer, path string, opts Options) (int64, error) {
	r, closeFn, err := open(path)
	if err != nil {
		return 0, &ReadError{Path: path, Err: err}
	}
	defer closeFn()

	n, err := EmitBytes(w, r, opts)

	var readErr *ReadError
	if errors.As(err, &readErr) {
		readErr.Path = path
	}

	return n, err
}

func open(path string) (io.Reader, func(), error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	if info.IsDir() {
		return nil, nil, fmt.Errorf("%s is a directory", path)
	}

	if info.Size() >= MmapThreshold {
		ra, err := mmap.Open(path)
		if err != nil {
			return nil, nil, err
		}

		return io.NewSectionReader(ra, 0, int64(ra.Len())), func() { _ = ra.Close() }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { _ = f.Close() }, nil
}
