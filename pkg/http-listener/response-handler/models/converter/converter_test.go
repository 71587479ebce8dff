//go:build unit

package converter

import (
	"io"
	"net"
	"strings"
	"testing"

	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type connTest struct{ secure bool }

func (*connTest) IsLocal() bool       { return true }
func (c *connTest) IsSecure() bool    { return c.secure }
func (*connTest) LocalAddr() net.Addr { return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 443} }
func (*connTest) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 50000}
}

func (*connTest) RequestStream(_ int64, _ bool) io.ReadCloser {
	return io.NopCloser(strings.NewReader(""))
}

func (*connTest) ResponseStream() io.Writer { return io.Discard }

func TestConvertRequest(t *testing.T) {
	req := request.New(&connTest{secure: true})
	require.NoError(t, req.SetRequestLine("GET /chat HTTP/1.1"))

	for _, h := range []string{
		"Host: example.com",
		"Upgrade: websocket",
		"Connection: Upgrade",
		"Accept: text/html, application/json;q=0.9",
		"Referer: https://example.com/home",
		"Content-Type: text/plain; charset=iso-8859-1",
		"Cookie: a=1; a=2",
	} {
		require.NoError(t, req.AddHeader(h))
	}

	require.NoError(t, req.Finalize())

	got := ConvertRequest(req, "body")

	assert.Equal(t, "GET", got.Method)
	assert.Equal(t, "HTTP/1.1", got.Protocol)
	assert.Equal(t, "wss://example.com/chat", got.URL)
	assert.Equal(t, "/chat", got.RawURL)
	assert.Equal(t, "https://example.com/home", got.Referrer)
	assert.Equal(t, "windows-1252", got.ContentEncoding)
	assert.Equal(t, []string{"text/html", "application/json;q=0.9"}, got.AcceptTypes)
	assert.Equal(t, map[string]string{"a": "1"}, got.Cookies)
	assert.Equal(t, "127.0.0.1:50000", got.RemoteAddr)
	assert.Equal(t, "127.0.0.1:443", got.UserHostAddress)
	assert.Equal(t, []string{"websocket"}, got.Headers["Upgrade"])
	assert.Nil(t, got.Query)
	assert.EqualValues(t, -1, got.ContentLength)
	assert.True(t, got.IsWebSocket)
	assert.True(t, got.IsSecure)
	assert.True(t, got.IsLocal)
	assert.True(t, got.KeepAlive)
	assert.Equal(t, "body", got.Body)
}

func TestConvertRequestWithoutRequestLine(t *testing.T) {
	req := request.New(&connTest{})
	assert.Error(t, req.SetRequestLine("BROKEN"))

	got := ConvertRequest(req, "")

	assert.Empty(t, got.Method)
	assert.Empty(t, got.Protocol)
	assert.Empty(t, got.URL)
	assert.False(t, got.KeepAlive)
	assert.False(t, got.IsWebSocket)
	assert.Nil(t, got.Cookies)
}

func TestSanitizeRequest(t *testing.T) {
	tests := []struct {
		name  string
		input *models.Request
		want  *models.Request
	}{
		{
			name: "nil",
		},
		{
			name: "strip markup everywhere",
			input: &models.Request{
				Method:        "GET",
				Target:        `/<img src="x" onerror="alert(1)">`,
				UserAgent:     `agent<script src="http://fake.com/fake.js"></script>`,
				Headers:       map[string][]string{"X-Fake": {"<b>bold</b>"}},
				Query:         map[string][]string{"q": {"<i>x</i>"}},
				Cookies:       map[string]string{"c": "<u>v</u>"},
				AcceptTypes:   []string{"<a href='x'>text/html</a>"},
				UserLanguages: []string{"fr"},
				Body:          "<p>hello</p>",
				ContentLength: 12,
			},
			want: &models.Request{
				Method:        "GET",
				Target:        "/",
				UserAgent:     "agent",
				Headers:       map[string][]string{"X-Fake": {"bold"}},
				Query:         map[string][]string{"q": {"x"}},
				Cookies:       map[string]string{"c": "v"},
				AcceptTypes:   []string{"text/html"},
				UserLanguages: []string{"fr"},
				Body:          "hello",
				ContentLength: 12,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeRequest(tt.input))
		})
	}
}

func TestSanitizeRequestDoesNotMutateInput(t *testing.T) {
	in := &models.Request{Headers: map[string][]string{"X": {"<b>a</b>"}}}

	_ = SanitizeRequest(in)

	assert.Equal(t, []string{"<b>a</b>"}, in.Headers["X"])
}
