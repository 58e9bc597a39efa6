package table

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/klauspost/compress/gzip"

	"github.com/datakit-dev/datakit/pkg/errors"
)

// ParseFunc materializes a table from raw storage content. Connectors supply
// the reader for the resolved location and pass it through untouched; format
// interpretation belongs entirely to the parse function.
type ParseFunc func(r io.Reader) (*Table, error)

// CompressionGzip selects gzip compression in WriteOptions.
const CompressionGzip = "gzip"

// IndexColumn is the header used for the positional row-identifier column
// when WriteOptions.Index is set.
const IndexColumn = "index"

// WriteOptions enumerates the recognized serialization options. The zero
// value is not useful; start from DefaultWriteOptions.
type WriteOptions struct {
	// Header emits the column names as the first row
	Header bool
	// Index prepends a column of positional row identifiers
	Index bool
	// Compression optionally compresses the output ("" or "gzip")
	Compression string
}

// DefaultWriteOptions returns the conventional options: header on, no index
// column, no compression.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Header: true, Index: false}
}

// ParseCSV reads a CSV document with a header row into a table.
func ParseCSV(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "malformed csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrorTypeData, "csv has no header row")
	}
	return New(records[0], records[1:])
}

// ParseCSVGzip reads a gzip-compressed CSV document into a table.
func ParseCSVGzip(r io.Reader) (*Table, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "malformed gzip stream")
	}
	defer zr.Close()
	return ParseCSV(zr)
}

// WriteCSV serializes a table as CSV according to the given options.
func WriteCSV(w io.Writer, t *Table, opts WriteOptions) error {
	if opts.Compression == CompressionGzip {
		zw := gzip.NewWriter(w)
		if err := writeCSVPlain(zw, t, opts); err != nil {
			_ = zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeIO, "failed to finish gzip stream")
		}
		return nil
	}
	if opts.Compression != "" {
		return errors.Newf(errors.ErrorTypeConfig, "unsupported compression %q", opts.Compression)
	}
	return writeCSVPlain(w, t, opts)
}

func writeCSVPlain(w io.Writer, t *Table, opts WriteOptions) error {
	cw := csv.NewWriter(w)

	if opts.Header {
		header := t.Columns()
		if opts.Index {
			header = append([]string{IndexColumn}, header...)
		}
		if err := cw.Write(header); err != nil {
			return errors.Wrap(err, errors.ErrorTypeIO, "failed to write header")
		}
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if opts.Index {
			row = append([]string{strconv.Itoa(i)}, row...)
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrorTypeIO, "failed to write row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to flush csv")
	}
	return nil
}
