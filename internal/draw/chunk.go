package draw

import (
	"bytes"
	"io"
	"strconv"
)

// maxChunkSize is the largest single write, sized to fit one network packet.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output and writes it in packet-sized chunks,
// so a frame sent over SSH is not split into many tiny writes.
type ChunkWriter struct {
	buf bytes.Buffer
	out io.Writer
	num [20]byte
}

var (
	_ io.Writer       = (*ChunkWriter)(nil)
	_ io.StringWriter = (*ChunkWriter)(nil)
)

// NewChunkWriter creates a ChunkWriter flushing to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{out: w}
}

// MoveCursor appends a cursor position sequence. col and row are 1-based.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\x1b[")
	cw.buf.Write(strconv.AppendInt(cw.num[:0], int64(row), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.num[:0], int64(col), 10))
	cw.buf.WriteByte('H')
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

func (cw *ChunkWriter) WriteString(s string) (int, error) {
	return cw.buf.WriteString(s)
}

// WriteAt writes s starting at the given 1-based cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Flush writes the buffered frame and empties the buffer, even on error.
func (cw *ChunkWriter) Flush() error {
	defer cw.buf.Reset()
	data := cw.buf.Bytes()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
