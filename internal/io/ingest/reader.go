// Package ingest reads GenomeHubs config/data file pairs, runs each
// declared field through pkg/ghubs's processing pipeline, resolves the
// taxonomy section of every row against pkg/resolver, and hands
// unresolved-but-placeable rows to pkg/graft. It is the impure
// counterpart to pkg/ghubs and pkg/resolver, streaming rows one at a
// time rather than buffering a whole file.
package ingest

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/blobtoolkit/core/pkg/errcode"
	"github.com/blobtoolkit/core/pkg/gnerr"
)

// gzipMagic is the two leading bytes of every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// openErr wraps an I/O failure with the engine's shared error shape.
func openErr(path string, err error) error {
	return &gnerr.Error{
		Code: errcode.FileNotFound,
		Msg:  "Cannot open <em>%s</em>",
		Vars: []any{path},
		Err:  err,
	}
}

// delimiterFor returns the field delimiter for a declared GenomeHubs
// file format ("csv" or "tsv"), defaulting to comma.
func delimiterFor(format string) rune {
	switch strings.ToLower(format) {
	case "tsv":
		return '\t'
	default:
		return ','
	}
}

// openRows opens path, transparently decompressing it if its first two
// bytes are the gzip magic number regardless of file extension, and
// returns a csv.Reader configured with the format's delimiter plus the
// io.Closer the caller must close once done.
func openRows(path, format string) (*csv.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, openErr(path, err)
	}

	br := bufio.NewReader(f)
	peeked, err := br.Peek(2)
	isGzip := err == nil && len(peeked) == 2 && peeked[0] == gzipMagic[0] && peeked[1] == gzipMagic[1]

	var r io.Reader = br
	var closer io.Closer = f
	if isGzip {
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, nil, &gnerr.Error{
				Code: errcode.ParseError,
				Msg:  "Cannot decompress <em>%s</em>",
				Vars: []any{path},
				Err:  err,
			}
		}
		r = gz
		closer = multiCloser{gz, f}
	}

	cr := csv.NewReader(r)
	cr.Comma = delimiterFor(format)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	return cr, closer, nil
}

// multiCloser closes an inner reader (e.g. a gzip.Reader) before the
// underlying file it wraps.
type multiCloser struct {
	inner io.Closer
	file  io.Closer
}

func (m multiCloser) Close() error {
	if err := m.inner.Close(); err != nil {
		m.file.Close()
		return err
	}
	return m.file.Close()
}
