package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to every non-nil writer and reports the bytes written by the first one.
// A failing writer does not stop the others.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w == nil {
			continue
		}
		cw.Writers = append(cw.Writers, w)
	}
	return cw
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	if len(cw.Writers) == 0 {
		return len(p), nil
	}

	var err error
	written := -1
	for _, w := range cw.Writers {
		n, werr := w.Write(p)
		err = multierr.Append(err, werr)
		if werr == nil && written < 0 {
			written = n
		}
	}
	if written < 0 {
		written = 0
	}
	return written, err
}
