package link

import "io"

type pipeEnd struct {
	io.Reader
	io.Writer
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *pipeEnd) Close() error {
	p.w.Close()
	return p.r.Close()
}

// Pipe creates two connected Conns, lines written to one are read
// from the other.
func Pipe() (*Conn, *Conn) {
	r1, w1 := io.Pipe()
	r2, w2 := io.Pipe()
	a := NewConn(&pipeEnd{Reader: r2, Writer: w1, r: r2, w: w1})
	b := NewConn(&pipeEnd{Reader: r1, Writer: w2, r: r1, w: w2})
	return a, b
}
