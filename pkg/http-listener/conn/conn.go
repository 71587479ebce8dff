package conn

import (
	"bufio"
	"bytes"
	"crypto/tls"
	"io"
	"net"
	"time"

	"emperror.dev/errors"
)

// DefaultMaxLineLength Default maximum length of a request or header line.
const DefaultMaxLineLength = 8192

// ErrLineTooLong is returned when a line exceeds the configured maximum length.
var ErrLineTooLong = errors.NewPlain("line too long")

// Conn wraps an accepted connection and exposes what a request needs from it.
type Conn struct {
	raw           net.Conn
	reader        *bufio.Reader
	maxLineLength int
}

// Option customizes a connection.
type Option func(c *Conn)

// WithMaxLineLength sets the maximum line length, terminator excluded.
func WithMaxLineLength(n int) Option {
	return func(c *Conn) {
		if n > 0 {
			c.maxLineLength = n
		}
	}
}

// New wraps the given connection.
func New(raw net.Conn, opts ...Option) *Conn {
	c := &Conn{
		raw:           raw,
		maxLineLength: DefaultMaxLineLength,
	}

	for _, o := range opts {
		o(c)
	}

	c.reader = bufio.NewReader(raw)

	return c
}

// ReadLine reads one line and strips its CRLF or LF terminator.
func (c *Conn) ReadLine() (string, error) {
	var line []byte

	for {
		frag, err := c.reader.ReadSlice('\n')
		line = append(line, frag...)

		// +2 for the terminator
		if len(line) > c.maxLineLength+2 {
			return "", errors.WithStack(ErrLineTooLong)
		}

		if err == nil {
			break
		}

		if !errors.Is(err, bufio.ErrBufferFull) {
			return "", errors.WithStack(err)
		}
	}

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) > c.maxLineLength {
		return "", errors.WithStack(ErrLineTooLong)
	}

	return string(line), nil
}

// ReadRequestLine reads the next non empty line.
// Empty lines sent before a request line are ignored.
func (c *Conn) ReadRequestLine() (string, error) {
	for {
		line, err := c.ReadLine()
		if err != nil {
			return "", err
		}

		if line != "" {
			return line, nil
		}
	}
}

// SetReadDeadline sets the deadline of the next reads.
func (c *Conn) SetReadDeadline(t time.Time) error {
	return errors.WithStack(c.raw.SetReadDeadline(t))
}

// SetWriteDeadline sets the deadline of the next writes.
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return errors.WithStack(c.raw.SetWriteDeadline(t))
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return errors.WithStack(c.raw.Close())
}

// IsLocal reports whether the peer runs on this machine.
func (c *Conn) IsLocal() bool {
	remote := addrIP(c.raw.RemoteAddr())
	if remote == nil {
		return false
	}

	if remote.IsLoopback() {
		return true
	}

	local := addrIP(c.raw.LocalAddr())

	return local != nil && local.Equal(remote)
}

// IsSecure reports whether the connection is a TLS one.
func (c *Conn) IsSecure() bool {
	_, ok := c.raw.(*tls.Conn)

	return ok
}

func (c *Conn) LocalAddr() net.Addr { return c.raw.LocalAddr() }

func (c *Conn) RemoteAddr() net.Addr { return c.raw.RemoteAddr() }

// RequestStream opens a reader over the body following the header block.
// Closing it leaves the connection open.
func (c *Conn) RequestStream(contentLength int64, chunked bool) io.ReadCloser {
	if chunked {
		return &chunkedBody{conn: c, rd: newChunkedReader(c.reader)}
	}

	if contentLength < 0 {
		contentLength = 0
	}

	return io.NopCloser(&lengthBody{rd: c.reader, remaining: contentLength})
}

// lengthBody reads exactly remaining bytes. A peer closing before the end is
// reported as io.ErrUnexpectedEOF.
type lengthBody struct {
	rd        io.Reader
	remaining int64
}

func (b *lengthBody) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		return 0, io.EOF
	}

	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}

	n, err := b.rd.Read(p)
	b.remaining -= int64(n)

	if errors.Is(err, io.EOF) {
		if b.remaining > 0 {
			return n, io.ErrUnexpectedEOF
		}

		return n, nil
	}

	return n, err
}

// ResponseStream returns the raw writer of the connection.
func (c *Conn) ResponseStream() io.Writer {
	return c.raw
}

func addrIP(addr net.Addr) net.IP {
	if addr == nil {
		return nil
	}

	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.IP
	}

	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return nil
	}

	return net.ParseIP(host)
}
