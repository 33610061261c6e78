package dictionary

import (
	"bufio"
	"errors"
	"io"
)

// recordReader splits a dump into the text between record delimiters
// without holding more than one record in memory.
type recordReader struct {
	br    *bufio.Reader
	limit int
}

func newRecordReader(r io.Reader, limit int) *recordReader {
	return &recordReader{br: bufio.NewReaderSize(r, 64*1024), limit: limit}
}

// next returns the text up to the next delimiter, or up to the end of input
// for the last record. A record longer than limit is read to its delimiter but
// not kept, and oversized is set. io.EOF is returned once nothing is left.
func (rr *recordReader) next() (record string, oversized bool, err error) {
	var (
		buf  []byte
		run  int // trailing '_' bytes seen so far
		read bool
	)
	for {
		chunk, err := rr.br.ReadSlice('_')
		if len(chunk) > 0 {
			read = true

			switch {
			case len(chunk) == 1 && chunk[0] == '_':
				run++
			case chunk[len(chunk)-1] == '_':
				run = 1
			default:
				run = 0
			}

			if !oversized {
				buf = append(buf, chunk...)
				if len(buf) > rr.limit+len(recordDelimiter) {
					oversized = true
					buf = nil
				}
			}

			if run == len(recordDelimiter) {
				if oversized {
					return "", true, nil
				}
				return string(buf[:len(buf)-len(recordDelimiter)]), false, nil
			}
		}

		switch {
		case err == nil, errors.Is(err, bufio.ErrBufferFull):
		case errors.Is(err, io.EOF):
			if !read {
				return "", false, io.EOF
			}
			return string(buf), oversized, nil
		default:
			return "", false, err
		}
	}
}
