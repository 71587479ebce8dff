package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"emperror.dev/errors"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/version"
)

var errResponseFinished = errors.NewPlain("response already sent")

// responseWriter buffers a response and serializes it as HTTP/1.1 on finish.
// The body is kept in memory so Content-Length is always known.
type responseWriter struct {
	out         io.Writer
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
	finished    bool
	// Suppress the body but keep its length, for HEAD
	head bool
	// Connection header to send
	keepAlive bool
	legacy    bool
}

func newResponseWriter(out io.Writer, head, keepAlive, legacy bool) *responseWriter {
	return &responseWriter{
		out:       out,
		header:    http.Header{},
		head:      head,
		keepAlive: keepAlive,
		legacy:    legacy,
	}
}

func (w *responseWriter) Header() http.Header { return w.header }

func (w *responseWriter) WriteHeader(status int) {
	// First call wins, like net/http
	if w.wroteHeader {
		return
	}

	w.wroteHeader = true
	w.status = status
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.finished {
		return 0, errors.WithStack(errResponseFinished)
	}

	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return w.body.Write(b)
}

// Status returns the status that was or will be sent.
func (w *responseWriter) Status() int {
	if !w.wroteHeader {
		return http.StatusOK
	}

	return w.status
}

// finish writes status line, headers and body to the connection.
// It returns the number of bytes written.
func (w *responseWriter) finish() (int64, error) {
	if w.finished {
		return 0, nil
	}

	w.finished = true
	status := w.Status()

	h := w.header.Clone()
	h.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	h.Set("Server", version.ServerHeader())

	if bodyAllowed(status) {
		h.Set("Content-Length", strconv.Itoa(w.body.Len()))

		if h.Get("Content-Type") == "" && w.body.Len() > 0 {
			h.Set("Content-Type", http.DetectContentType(w.body.Bytes()))
		}
	} else {
		h.Del("Content-Length")
	}

	switch {
	case !w.keepAlive:
		h.Set("Connection", "close")
	case w.legacy:
		// HTTP/1.0 clients need to be told
		h.Set("Connection", "keep-alive")
	default:
		h.Del("Connection")
	}

	buf := &bytes.Buffer{}
	buf.WriteString("HTTP/1.1 " + strconv.Itoa(status) + " " + http.StatusText(status) + "\r\n")

	err := h.Write(buf)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	buf.WriteString("\r\n")

	if !w.head && bodyAllowed(status) {
		buf.Write(w.body.Bytes())
	}

	n, err := buf.WriteTo(w.out)
	if err != nil {
		return n, errors.Wrap(err, "cannot write response")
	}

	return n, nil
}

// bodyAllowed reports whether a response with this status may carry a body.
func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}

	return true
}

// reset drops everything written so far.
func (w *responseWriter) reset() {
	w.header = http.Header{}
	w.body.Reset()
	w.wroteHeader = false
	w.status = 0
}
