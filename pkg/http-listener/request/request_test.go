//go:build unit

package request

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_ClientCertificate(t *testing.T) {
	r := New(newConnTest())

	cert, err := r.ClientCertificate()
	assert.Nil(t, cert)
	assert.ErrorIs(t, err, ErrNotImplemented)

	res := <-r.ClientCertificateAsync(context.TODO())
	assert.Nil(t, res.Certificate)
	assert.ErrorIs(t, res.Err, ErrNotImplemented)

	_, err = r.ClientCertificateError()
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestRequest_String(t *testing.T) {
	r, err := buildRequest(newConnTest(), "GET /index.html HTTP/1.1", "Host: example.com", "Accept: a", "accept: b")
	require.NoError(t, err)

	assert.Equal(t, "GET /index.html HTTP/1.1\r\nHost: example.com\r\nAccept: a,b\r\n\r\n", r.String())
}

func TestRequest_Accessors(t *testing.T) {
	conn := newConnTest()
	conn.Secure = true
	conn.Loopback = false

	r, err := buildRequest(conn, "GET / HTTP/1.1", "Host: example.com:8443", "User-Agent: test-agent")
	require.NoError(t, err)

	assert.Equal(t, "GET", r.Method())
	assert.Equal(t, "/", r.Target())
	assert.Equal(t, HTTP11, r.ProtocolVersion())
	assert.Equal(t, "test-agent", r.UserAgent())
	assert.Equal(t, "example.com:8443", r.UserHostName())
	assert.Equal(t, "127.0.0.1:8080", r.UserHostAddress())
	assert.Equal(t, "127.0.0.1:50000", r.RemoteEndPoint().String())
	assert.Equal(t, "127.0.0.1:8080", r.LocalEndPoint().String())
	assert.True(t, r.IsSecureConnection())
	assert.False(t, r.IsLocal())
}

func TestRequest_TraceIdentifier(t *testing.T) {
	r1 := New(newConnTest())
	r2 := New(newConnTest())

	assert.NotEqual(t, uuid.Nil, r1.RequestTraceIdentifier())
	assert.NotEqual(t, r1.RequestTraceIdentifier(), r2.RequestTraceIdentifier())
}
