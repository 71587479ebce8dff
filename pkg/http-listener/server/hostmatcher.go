package server

import (
	"net"
	"strings"

	"emperror.dev/errors"
	"github.com/gobwas/glob"
)

// HostMatcher restricts the Host header to a list of names.
// Entries are exact names or glob patterns ("*.example.com").
type HostMatcher struct {
	exact    map[string]struct{}
	patterns []glob.Glob
}

// NewHostMatcher compiles the allowed hosts. An empty list gives a nil matcher
// that lets every host through.
func NewHostMatcher(allowedHosts []string) (*HostMatcher, error) {
	if len(allowedHosts) == 0 {
		return nil, nil //nolint:nilnil // No restriction
	}

	hm := &HostMatcher{exact: map[string]struct{}{}}

	for _, h := range allowedHosts {
		h = strings.ToLower(h)
		hm.exact[h] = struct{}{}

		g, err := glob.Compile(h, '.')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid allowed host %q", h)
		}

		hm.patterns = append(hm.patterns, g)
	}

	return hm, nil
}

// Match reports whether the Host header value is allowed. The port is ignored.
func (hm *HostMatcher) Match(hostHeader string) bool {
	if hm == nil {
		return true
	}

	host := strings.ToLower(stripPort(hostHeader))

	// Check if host is matching directly
	if _, ok := hm.exact[host]; ok {
		return true
	}

	// Check if host is matching wildcard
	for _, g := range hm.patterns {
		if g.Match(host) {
			return true
		}
	}

	return false
}

func stripPort(hostport string) string {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		// No port
		return strings.Trim(hostport, "[]")
	}

	return host
}
