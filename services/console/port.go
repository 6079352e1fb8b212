package console

import (
	"context"
	"io"
)

// Port is a byte stream the console reads commands from and writes replies
// to. *uartx.UART satisfies it directly.
type Port interface {
	Write(p []byte) (int, error)
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// StreamPort adapts a blocking reader and a writer (stdin/stdout on a host)
// to Port. A background goroutine owns the reader.
type StreamPort struct {
	w     io.Writer
	chunk chan []byte
	err   chan error

	pending []byte // unread tail of the last chunk, owned by the receiver
}

func NewStreamPort(r io.Reader, w io.Writer) *StreamPort {
	p := &StreamPort{w: w, chunk: make(chan []byte), err: make(chan error, 1)}
	go p.pump(r)
	return p
}

func (p *StreamPort) pump(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			p.chunk <- append([]byte(nil), buf[:n]...)
		}
		if err != nil {
			p.err <- err
			return
		}
	}
}

func (p *StreamPort) Write(b []byte) (int, error) { return p.w.Write(b) }

// RecvSomeContext blocks until some bytes arrive, the reader fails or ctx
// ends. Bytes that do not fit in buf are returned by the next call.
func (p *StreamPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	if len(p.pending) == 0 {
		select {
		case b := <-p.chunk:
			p.pending = b
		case err := <-p.err:
			p.err <- err // sticky
			return 0, err
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	n := copy(buf, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}
