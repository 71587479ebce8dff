package request

import (
	"net/http"
	"net/url"
	"strings"
)

// AcceptTypes returns the media types listed in the Accept header, nil when absent.
func (r *Request) AcceptTypes() []string {
	val, ok := r.headers.Lookup("Accept")
	if !ok {
		return nil
	}

	if r.derived.acceptTypes == nil {
		r.derived.acceptTypes = trimAll(splitHeaderValue(val, ','))
	}

	return r.derived.acceptTypes
}

// UserLanguages returns the languages listed in the Accept-Language header, nil when absent.
func (r *Request) UserLanguages() []string {
	val, ok := r.headers.Lookup("Accept-Language")
	if !ok {
		return nil
	}

	if r.derived.userLanguages == nil {
		r.derived.userLanguages = trimAll(strings.Split(val, ","))
	}

	return r.derived.userLanguages
}

// QueryString returns the query parameters of the resolved URL.
// It is nil until Finalize resolved the URL.
func (r *Request) QueryString() url.Values {
	if r.url == nil {
		return nil
	}

	if r.derived.queryString == nil {
		r.derived.queryString = r.url.Query()
	}

	return r.derived.queryString
}

// Cookies returns the cookies sent by the client, never nil.
func (r *Request) Cookies() []*http.Cookie {
	if r.derived.cookies == nil {
		hr := &http.Request{Header: http.Header{"Cookie": r.headers.Values("Cookie")}}

		r.derived.cookies = hr.Cookies()
		if r.derived.cookies == nil {
			r.derived.cookies = []*http.Cookie{}
		}
	}

	return r.derived.cookies
}

// URL returns the absolute URL resolved by Finalize.
func (r *Request) URL() *url.URL { return r.url }

// RawURL returns the path and query of the resolved URL.
func (r *Request) RawURL() string {
	if r.url == nil {
		return ""
	}

	return r.url.RequestURI()
}

// URLReferrer returns the parsed Referer header, nil when absent.
func (r *Request) URLReferrer() *url.URL { return r.referrer }

// splitHeaderValue splits on sep outside of quoted strings.
func splitHeaderValue(val string, sep byte) []string {
	res := make([]string, 0)
	quoted := false
	escaped := false
	start := 0

	for i := 0; i < len(val); i++ {
		c := val[i]

		switch {
		case escaped:
			escaped = false
		case c == '\\' && quoted:
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == sep && !quoted:
			res = append(res, val[start:i])
			start = i + 1
		}
	}

	return append(res, val[start:])
}

func trimAll(items []string) []string {
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}

	return items
}
