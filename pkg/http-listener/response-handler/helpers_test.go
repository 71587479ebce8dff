//go:build unit

package responsehandler

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	cmocks "github.com/oxyno-zeta/http-listener/pkg/http-listener/config/mocks"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	body io.Reader
	out  bytes.Buffer
}

func (*fakeConn) IsLocal() bool  { return false }
func (*fakeConn) IsSecure() bool { return false }

func (*fakeConn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8080}
}

func (*fakeConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 1234}
}

func (c *fakeConn) RequestStream(_ int64, _ bool) io.ReadCloser {
	if c.body == nil {
		return io.NopCloser(strings.NewReader(""))
	}

	return io.NopCloser(c.body)
}

func (c *fakeConn) ResponseStream() io.Writer { return &c.out }

// newTestRequest feeds the request line and headers then finalizes.
// Validation errors are kept on the request.
func newTestRequest(t *testing.T, line string, headers ...string) *request.Request {
	t.Helper()

	req := request.New(&fakeConn{})
	_ = req.SetRequestLine(line)

	for _, h := range headers {
		_ = req.AddHeader(h)
	}

	_ = req.Finalize()

	return req
}

func testContext() context.Context {
	return log.SetLoggerInContext(context.TODO(), log.NewLogger())
}

func defaultTemplateConfig() *config.TemplateConfig {
	return &config.TemplateConfig{
		Helpers: []string{"../../../templates/_helpers.tpl"},
		Error: &config.TemplateConfigItem{
			Path:    "../../../templates/error.tpl",
			Headers: config.DefaultTemplateErrorHeaders,
		},
		Echo: &config.TemplateConfigItem{
			Path:    "../../../templates/echo.tpl",
			Headers: config.DefaultTemplateEchoHeaders,
		},
	}
}

func newConfigManagerMock(t *testing.T, tplCfg *config.TemplateConfig) config.Manager {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfgManagerMock := cmocks.NewMockManager(ctrl)
	cfgManagerMock.EXPECT().GetConfig().AnyTimes().Return(&config.Config{Templates: tplCfg})

	return cfgManagerMock
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "tpl.tpl")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}
