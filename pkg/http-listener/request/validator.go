package request

import (
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"emperror.dev/errors"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// continueResponse is written verbatim when a client expects 100-continue.
var continueResponse = []byte("HTTP/1.1 100 Continue\r\n\r\n")

// SetRequestLine parses and stores the request line.
func (r *Request) SetRequestLine(line string) error {
	if r.readOnly {
		return errors.WithStack(ErrReadOnly)
	}

	if r.err != nil {
		return r.err
	}

	rl, err := ParseRequestLine(line)
	if err != nil {
		return r.fail(err)
	}

	r.line = rl

	return nil
}

// AddHeader parses one header line and appends it to the header set.
func (r *Request) AddHeader(line string) error {
	if r.readOnly {
		return errors.WithStack(ErrReadOnly)
	}

	if r.err != nil {
		return r.err
	}

	name, value, err := ParseHeaderLine(line)
	if err != nil {
		return r.fail(err)
	}

	r.headers.Add(name, value)

	return nil
}

// Finalize runs the validation pass once the header block has ended.
// Validation failures are returned as *ValidationError and kept in Err.
// Any other error comes from writing the interim response.
func (r *Request) Finalize() error {
	if r.readOnly {
		return errors.WithStack(ErrReadOnly)
	}

	if r.err != nil {
		return r.err
	}

	// Only one pass is allowed
	if r.finalized {
		return nil
	}

	r.finalized = true

	if r.line == nil {
		return r.fail(newValidationError("Invalid request line (missing)"))
	}

	// Headers with side effects
	err := r.applyHeaderFields()
	if err != nil {
		return err
	}

	// Resolve host
	host := r.headers.Get("Host")
	hasHost := host != ""

	if r.line.Version.GreaterThan(HTTP10) && !hasHost {
		return r.fail(newValidationError("Invalid Host header"))
	}

	if !hasHost {
		host = r.UserHostAddress()
	}

	u, ok := createRequestURL(r.line.Target, host, r.IsWebSocketRequest(), r.conn.IsSecure())
	if !ok {
		return r.fail(newValidationError("Invalid request url"))
	}

	r.url = u

	// Transfer coding
	if te, ok := r.headers.Lookup("Transfer-Encoding"); ok {
		if r.line.Version.LessThan(HTTP11) {
			return r.fail(newValidationError("Invalid Transfer-Encoding header"))
		}

		if !strings.EqualFold(te, "chunked") {
			return r.fail(newStatusError(http.StatusNotImplemented))
		}

		r.chunked = true
	}

	if r.contentLength == -1 && !r.chunked {
		if r.line.Method == http.MethodPost || r.line.Method == http.MethodPut {
			return r.fail(newStatusError(http.StatusLengthRequired))
		}
	}

	// Expect
	expect, ok := r.headers.Lookup("Expect")
	if !r.line.Version.GreaterThan(HTTP10) || !ok {
		return nil
	}

	if !strings.EqualFold(expect, "100-continue") {
		return r.fail(newValidationError("Invalid Expect header"))
	}

	// Written once, never retried
	r.continued = true

	_, err = r.conn.ResponseStream().Write(continueResponse)
	if err != nil {
		return errors.Wrap(err, "cannot write interim response")
	}

	return nil
}

// IsWebSocketRequest reports whether the request asks for a WebSocket upgrade.
// The result is computed once the header block is finalized.
func (r *Request) IsWebSocketRequest() bool {
	if r.line == nil {
		return false
	}

	if r.derived.websocketSet {
		return r.derived.websocket
	}

	ws := r.line.Method == http.MethodGet &&
		r.line.Version.GreaterThan(HTTP10) &&
		r.IsUpgradeRequest("websocket")

	// Headers may still be added
	if r.finalized {
		r.derived.websocket = ws
		r.derived.websocketSet = true
	}

	return ws
}

// IsUpgradeRequest reports whether the Upgrade header lists the given protocol.
func (r *Request) IsUpgradeRequest(protocol string) bool {
	return httpguts.HeaderValuesContainsToken(r.headers.Values("Upgrade"), protocol)
}

// KeepAlive reports whether the client asked for a persistent connection.
func (r *Request) KeepAlive() bool {
	if r.line == nil {
		return false
	}

	conn := r.headers.Values("Connection")

	if r.line.Version.LessThan(HTTP11) {
		return httpguts.HeaderValuesContainsToken(conn, "keep-alive")
	}

	return !httpguts.HeaderValuesContainsToken(conn, "close")
}

func (r *Request) fail(err error) error {
	vErr, ok := IsValidationError(err)
	if !ok {
		vErr = newValidationError(err.Error())
	}

	// First failure wins
	if r.err == nil {
		r.err = vErr
	}

	return r.err
}

// applyHeaderFields computes the fields derived from Content-Length,
// Content-Type and Referer, in header order.
// A bad Content-Type is recorded but the remaining headers are still applied.
func (r *Request) applyHeaderFields() error {
	lengthSet := false

	for _, f := range r.headers.fields {
		for _, val := range f.values {
			switch strings.ToLower(f.name) {
			case "content-length":
				l, err := strconv.ParseInt(val, 10, 64)
				// Negative values are refused, -1 included
				if err != nil || l < 0 {
					return r.fail(newValidationError("Invalid Content-Length header"))
				}

				// Repeated values must agree
				if lengthSet && l != r.contentLength {
					return r.fail(newValidationError("Invalid Content-Length header"))
				}

				r.contentLength = l
				lengthSet = true
			case "content-type":
				ct, enc, err := parseContentType(val)
				if err != nil {
					_ = r.fail(newValidationError("Invalid Content-Type header"))

					continue
				}

				r.contentType = ct
				r.contentEncoding = enc
			case "referer":
				u, err := url.Parse(val)
				if err != nil {
					return r.fail(newValidationError("Invalid Referer header"))
				}

				r.referrer = u
			}
		}
	}

	if r.err != nil {
		return r.err
	}

	return nil
}

func parseContentType(val string) (string, encoding.Encoding, error) {
	mediaType, params, err := mime.ParseMediaType(val)
	if err != nil {
		return "", nil, errors.WithStack(err)
	}

	charset, ok := params["charset"]
	if !ok {
		return mediaType, nil, nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", nil, errors.WithStack(err)
	}

	return mediaType, enc, nil
}

// createRequestURL builds the absolute URL of the request from its target.
// Targets can be in origin form, absolute form, asterisk form or authority form.
func createRequestURL(target, host string, websocket, secure bool) (*url.URL, bool) {
	if target == "" || host == "" {
		return nil, false
	}

	scheme := ""
	path := ""

	switch {
	case strings.HasPrefix(target, "/"):
		path = target
	case strings.Contains(target, "://"):
		u, err := url.Parse(target)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, false
		}

		scheme = strings.ToLower(u.Scheme)
		// Scheme must match the kind of request
		if websocket && !strings.HasPrefix(scheme, "ws") {
			return nil, false
		}

		if !websocket && !strings.HasPrefix(scheme, "http") {
			return nil, false
		}

		host = u.Host
		path = u.RequestURI()
	case target == "*":
	default:
		host = target
	}

	if scheme == "" {
		scheme = "http"
		if websocket {
			scheme = "ws"
		}

		if secure {
			scheme += "s"
		}
	}

	// Host must be a valid authority
	if !httpguts.ValidHostHeader(host) {
		return nil, false
	}

	res, err := url.Parse(scheme + "://" + host + path)
	if err != nil || res.Host == "" {
		return nil, false
	}

	return res, true
}
