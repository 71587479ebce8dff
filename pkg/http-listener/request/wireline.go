package request

import (
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	versionPrefix     = "HTTP/"
	versionTextLength = 8
	requestLineParts  = 3
)

// RequestLine is the first line of a request.
type RequestLine struct {
	Method  string
	Target  string
	Version ProtocolVersion
}

func (rl *RequestLine) String() string {
	return rl.Method + " " + rl.Target + " " + versionPrefix + rl.Version.String()
}

// ParseRequestLine decomposes "METHOD SP TARGET SP HTTP/x.y".
// Checks run in a fixed order and the first failing one is reported.
func ParseRequestLine(line string) (*RequestLine, error) {
	parts := strings.SplitN(line, " ", requestLineParts)
	if len(parts) < requestLineParts {
		return nil, newValidationError("Invalid request line (parts)")
	}

	method := parts[0]
	if method == "" || !isToken(method) {
		return nil, newValidationError("Invalid request line (method)")
	}

	target := parts[1]
	if target == "" {
		return nil, newValidationError("Invalid request line (uri)")
	}

	ver, ok := parseVersionText(parts[2])
	if !ok {
		return nil, newValidationError("Invalid request line (version)")
	}

	return &RequestLine{
		Method:  method,
		Target:  target,
		Version: ver,
	}, nil
}

func parseVersionText(raw string) (ProtocolVersion, bool) {
	if len(raw) != versionTextLength {
		return ProtocolVersion{}, false
	}

	if !strings.HasPrefix(raw, versionPrefix) {
		return ProtocolVersion{}, false
	}

	majorS, minorS, found := strings.Cut(raw[len(versionPrefix):], ".")
	if !found {
		return ProtocolVersion{}, false
	}

	major, ok := parseVersionNumber(majorS)
	if !ok {
		return ProtocolVersion{}, false
	}

	minor, ok := parseVersionNumber(minorS)
	if !ok {
		return ProtocolVersion{}, false
	}

	if major < 1 {
		return ProtocolVersion{}, false
	}

	return ProtocolVersion{Major: major, Minor: minor}, true
}

// parseVersionNumber accepts plain decimal digits only, no sign.
func parseVersionNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

// ParseHeaderLine splits "Name: value" on the first colon.
func ParseHeaderLine(line string) (name, value string, err error) {
	colon := strings.IndexByte(line, ':')
	if colon < 1 {
		return "", "", newValidationError("Invalid header field")
	}

	name = strings.TrimSpace(line[:colon])
	if !isToken(name) {
		return "", "", newValidationError("Invalid header name")
	}

	if colon < len(line)-1 {
		value = strings.TrimSpace(line[colon+1:])
	}

	return name, value, nil
}

func isToken(s string) bool {
	return httpguts.ValidHeaderFieldName(s)
}
