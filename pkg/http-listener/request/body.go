package request

import (
	"context"
	"io"
	"net/http"
	"time"

	"emperror.dev/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// HasEntityBody reports whether a body follows the header block.
func (r *Request) HasEntityBody() bool {
	return r.contentLength > 0 || r.chunked
}

// ContentEncoding returns the charset of the body, UTF-8 when not declared.
func (r *Request) ContentEncoding() encoding.Encoding {
	if r.contentEncoding == nil {
		return unicode.UTF8
	}

	return r.contentEncoding
}

// BodyStream returns the body reader. It is opened on first call and the same
// reader is returned afterwards. Requests without body get http.NoBody.
func (r *Request) BodyStream() io.ReadCloser {
	if !r.HasEntityBody() {
		return http.NoBody
	}

	if r.body.stream == nil {
		r.body.stream = r.conn.RequestStream(r.contentLength, r.chunked)
	}

	return r.body.stream
}

// Body reads the whole body. The content is kept so later calls do not read again.
func (r *Request) Body() ([]byte, error) {
	if r.body.content != nil {
		return r.body.content, nil
	}

	if !r.HasEntityBody() {
		r.body.content = []byte{}

		return r.body.content, nil
	}

	var rd io.Reader = r.BodyStream()
	// Chunked framing marks the end by itself
	if !r.chunked {
		rd = io.LimitReader(rd, r.contentLength)
	}

	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Peer went away before the declared length
	if !r.chunked && int64(len(content)) < r.contentLength {
		return nil, errors.WithStack(io.ErrUnexpectedEOF)
	}

	r.body.content = content

	return content, nil
}

// BodyString reads the whole body and decodes it with ContentEncoding.
func (r *Request) BodyString() (string, error) {
	content, err := r.Body()
	if err != nil {
		return "", err
	}

	res, err := r.ContentEncoding().NewDecoder().Bytes(content)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(res), nil
}

type readResult struct {
	n   int
	err error
}

// Drain discards what is left of the body so the connection can serve another
// request. Each read is given DrainPolicy.ReadTimeout to complete: a slow or
// silent client makes Drain return false instead of blocking. A false result
// means the connection must not be reused; the pending read is not cancelled.
func (r *Request) Drain(ctx context.Context) bool {
	if !r.HasEntityBody() {
		return true
	}

	size := r.drainPolicy.BufferSize
	if r.contentLength > 0 && r.contentLength < int64(size) {
		size = int(r.contentLength)
	}

	buff := make([]byte, size)
	stream := r.BodyStream()

	for {
		n, err := readWithTimeout(ctx, stream, buff, r.drainPolicy.ReadTimeout)
		if err != nil {
			return false
		}

		if n <= 0 {
			return true
		}
	}
}

func readWithTimeout(ctx context.Context, rd io.Reader, buff []byte, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so the reader never blocks if nobody waits anymore
	resCh := make(chan readResult, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				resCh <- readResult{err: errors.Errorf("read panicked: %v", rec)}
			}
		}()

		n, err := rd.Read(buff)
		resCh <- readResult{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, errors.WithStack(ctx.Err())
	case res := <-resCh:
		// End of stream is an exhausted body
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return res.n, errors.WithStack(res.err)
		}

		return res.n, nil
	}
}
