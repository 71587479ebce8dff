package conn

import (
	"bufio"
	"io"
	"net/http/httputil"

	"emperror.dev/errors"
)

func newChunkedReader(rd *bufio.Reader) io.Reader {
	return httputil.NewChunkedReader(rd)
}

// chunkedBody decodes a chunked body and consumes the trailer section once
// the last chunk is read, so the next request starts on a clean line.
type chunkedBody struct {
	conn *Conn
	rd   io.Reader
	done bool
}

func (b *chunkedBody) Read(p []byte) (int, error) {
	if b.done {
		return 0, io.EOF
	}

	n, err := b.rd.Read(p)
	if errors.Is(err, io.EOF) {
		b.done = true

		terr := b.skipTrailer()
		if terr != nil {
			return n, terr
		}

		return n, io.EOF
	}

	return n, err //nolint:wrapcheck // Decoder errors are given as is
}

func (b *chunkedBody) skipTrailer() error {
	for {
		line, err := b.conn.ReadLine()
		if err != nil {
			return err
		}

		if line == "" {
			return nil
		}
	}
}

func (b *chunkedBody) Close() error { return nil }
