package stdio

import (
	"bytes"
)

// LineWriter adapts a line-oriented sink to io.Writer. Partial lines are
// buffered until a newline arrives or Flush is called.
type LineWriter struct {
	emit func(string)
	buf  bytes.Buffer
}

// NewLineWriter creates a LineWriter forwarding each complete line to emit.
func NewLineWriter(emit func(string)) *LineWriter {
	return &LineWriter{emit: emit}
}

// Write buffers p and emits every completed line.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		data := w.buf.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := string(data[:i])
		w.buf.Next(i + 1)
		if w.emit != nil {
			w.emit(line)
		}
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *LineWriter) Flush() {
	if w.buf.Len() == 0 {
		return
	}
	line := w.buf.String()
	w.buf.Reset()
	if w.emit != nil {
		w.emit(line)
	}
}
