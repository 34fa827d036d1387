package link

import "context"

// LineReader reads lines.
type LineReader interface {
	// ReadLine blocks until a line is received or ctx is done.
	ReadLine(ctx context.Context) (string, error)
}

// LineWriter writes lines.
type LineWriter interface {
	WriteLine(line string) error
}

// LineReadWriter reads/writes lines.
type LineReadWriter interface {
	LineReader
	LineWriter
}
