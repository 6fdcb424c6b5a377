package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// gzSuffix is appended to output file names when compression is enabled.
const gzSuffix = ".gz"

// outputFile is a buffered report file with optional gzip compression.
type outputFile struct {
	file *os.File
	buf  *bufio.Writer
	gz   *gzip.Writer
	path string
}

// createOutput creates the report file at path, appending .gz and wrapping
// the writer in gzip when compress is set.
func createOutput(path string, compress bool) (*outputFile, error) {
	if compress {
		path += gzSuffix
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	out := &outputFile{
		file: file,
		buf:  bufio.NewWriter(file),
		path: path,
	}

	if compress {
		out.gz = gzip.NewWriter(out.buf)
	}

	return out, nil
}

// Writer returns the destination for report rows.
func (o *outputFile) Writer() io.Writer {
	if o.gz != nil {
		return o.gz
	}

	return o.buf
}

// Close flushes the compression and buffer layers and closes the file.
func (o *outputFile) Close() error {
	if o.gz != nil {
		err := o.gz.Close()
		if err != nil {
			return fmt.Errorf("close gzip %s: %w", o.path, err)
		}
	}

	err := o.buf.Flush()
	if err != nil {
		return fmt.Errorf("flush %s: %w", o.path, err)
	}

	err = o.file.Close()
	if err != nil {
		return fmt.Errorf("close %s: %w", o.path, err)
	}

	return nil
}
