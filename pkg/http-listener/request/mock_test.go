//go:build unit

package request

import (
	"bytes"
	"errors"
	"io"
	"net"
)

type connTest struct {
	Local         net.Addr
	Remote        net.Addr
	Secure        bool
	Loopback      bool
	Body          io.ReadCloser
	Out           bytes.Buffer
	WriteErr      error
	StreamCalls   int
	StreamLength  int64
	StreamChunked bool
}

func newConnTest() *connTest {
	return &connTest{
		Local:    &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8080},
		Remote:   &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 50000},
		Loopback: true,
	}
}

func (c *connTest) IsLocal() bool        { return c.Loopback }
func (c *connTest) IsSecure() bool       { return c.Secure }
func (c *connTest) LocalAddr() net.Addr  { return c.Local }
func (c *connTest) RemoteAddr() net.Addr { return c.Remote }

func (c *connTest) RequestStream(contentLength int64, chunked bool) io.ReadCloser {
	c.StreamCalls++
	c.StreamLength = contentLength
	c.StreamChunked = chunked

	return c.Body
}

func (c *connTest) ResponseStream() io.Writer {
	if c.WriteErr != nil {
		return &failingWriter{err: c.WriteErr}
	}

	return &c.Out
}

type failingWriter struct {
	err error
}

func (w *failingWriter) Write(_ []byte) (int, error) { return 0, w.err }

// stalledReader never answers until released.
type stalledReader struct {
	release chan struct{}
}

func (s *stalledReader) Read(_ []byte) (int, error) {
	<-s.release

	return 0, io.EOF
}

func (s *stalledReader) Close() error { return nil }

type brokenReader struct{}

func (brokenReader) Read(_ []byte) (int, error) { return 0, errors.New("connection reset") }
func (brokenReader) Close() error               { return nil }

// buildRequest feeds a request line and header lines then finalizes.
func buildRequest(conn Connection, line string, headers ...string) (*Request, error) {
	r := New(conn)

	err := r.SetRequestLine(line)
	if err != nil {
		return r, err
	}

	for _, h := range headers {
		err = r.AddHeader(h)
		if err != nil {
			return r, err
		}
	}

	return r, r.Finalize()
}
