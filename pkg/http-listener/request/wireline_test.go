//go:build unit

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequestLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *RequestLine
		wantErr string
	}{
		{
			name: "valid HTTP/1.1",
			line: "GET / HTTP/1.1",
			want: &RequestLine{Method: "GET", Target: "/", Version: HTTP11},
		},
		{
			name: "valid HTTP/1.0 with query",
			line: "POST /upload?x=1 HTTP/1.0",
			want: &RequestLine{Method: "POST", Target: "/upload?x=1", Version: HTTP10},
		},
		{
			name: "valid major 2",
			line: "OPTIONS * HTTP/2.0",
			want: &RequestLine{Method: "OPTIONS", Target: "*", Version: ProtocolVersion{Major: 2}},
		},
		{
			name:    "missing version",
			line:    "GET /",
			wantErr: "Invalid request line (parts)",
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: "Invalid request line (parts)",
		},
		{
			name:    "empty method",
			line:    " / HTTP/1.1",
			wantErr: "Invalid request line (method)",
		},
		{
			name:    "method is not a token",
			line:    "GE(T / HTTP/1.1",
			wantErr: "Invalid request line (method)",
		},
		{
			name:    "empty target",
			line:    "GET  HTTP/1.1",
			wantErr: "Invalid request line (uri)",
		},
		{
			name:    "version too long",
			line:    "GET / HTTP/1.10",
			wantErr: "Invalid request line (version)",
		},
		{
			name:    "trailing garbage",
			line:    "GET / HTTP/1.1 extra",
			wantErr: "Invalid request line (version)",
		},
		{
			name:    "wrong prefix",
			line:    "GET / HTTX/1.1",
			wantErr: "Invalid request line (version)",
		},
		{
			name:    "non numeric major",
			line:    "GET / HTTP/a.1",
			wantErr: "Invalid request line (version)",
		},
		{
			name:    "non numeric minor",
			line:    "GET / HTTP/1.x",
			wantErr: "Invalid request line (version)",
		},
		{
			name:    "no dot",
			line:    "GET / HTTP/111",
			wantErr: "Invalid request line (version)",
		},
		{
			name:    "major lower than 1",
			line:    "GET / HTTP/0.9",
			wantErr: "Invalid request line (version)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequestLine(tt.line)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, got)

				vErr, ok := IsValidationError(err)
				assert.True(t, ok)
				assert.Equal(t, 400, vErr.StatusCode())

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHeaderLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantName  string
		wantValue string
		wantErr   string
	}{
		{
			name:      "simple",
			line:      "Host: example.com",
			wantName:  "Host",
			wantValue: "example.com",
		},
		{
			name:      "surrounding spaces are trimmed",
			line:      "  X-Trim  :   value  ",
			wantName:  "X-Trim",
			wantValue: "value",
		},
		{
			name:      "value with colon",
			line:      "Host: localhost:8080",
			wantName:  "Host",
			wantValue: "localhost:8080",
		},
		{
			name:      "colon is the last character",
			line:      "X-Empty:",
			wantName:  "X-Empty",
			wantValue: "",
		},
		{
			name:    "leading colon",
			line:    ":value",
			wantErr: "Invalid header field",
		},
		{
			name:    "no colon",
			line:    "novalue",
			wantErr: "Invalid header field",
		},
		{
			name:    "name with space",
			line:    "Bad Name: value",
			wantErr: "Invalid header name",
		},
		{
			name:    "name with separator",
			line:    "Bad@Name: value",
			wantErr: "Invalid header name",
		},
		{
			name:    "blank name",
			line:    "   : value",
			wantErr: "Invalid header name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, value, err := ParseHeaderLine(tt.line)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestProtocolVersion_Compare(t *testing.T) {
	assert.True(t, HTTP11.GreaterThan(HTTP10))
	assert.True(t, HTTP10.LessThan(HTTP11))
	assert.False(t, HTTP11.GreaterThan(HTTP11))
	assert.True(t, ProtocolVersion{Major: 2}.GreaterThan(HTTP11))
	assert.Equal(t, "1.1", HTTP11.String())
}
