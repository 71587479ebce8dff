//go:build unit

package server

import (
	"bufio"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/opentracing/opentracing-go"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	cmocks "github.com/oxyno-zeta/http-listener/pkg/http-listener/config/mocks"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	mmocks "github.com/oxyno-zeta/http-listener/pkg/http-listener/metrics/mocks"
	tmocks "github.com/oxyno-zeta/http-listener/pkg/http-listener/tracing/mocks"
	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

func testConfig() *config.Config {
	return &config.Config{
		Log:     &config.LogConfig{Level: "error", Format: "json"},
		Tracing: &config.TracingConfig{},
		Server: &config.ServerConfig{
			ListenAddr: "127.0.0.1",
			Port:       8080,
			Timeouts: &config.ServerTimeoutsConfig{
				ReadHeaderTimeout: "5s",
				IdleTimeout:       "5s",
			},
		},
		InternalServer: &config.ServerConfig{
			ListenAddr: "127.0.0.1",
			Port:       9090,
			Timeouts:   &config.ServerTimeoutsConfig{ReadHeaderTimeout: "5s"},
		},
		Request: &config.RequestConfig{
			DrainBufferSize:  2048,
			DrainReadTimeout: "50ms",
			MaxHeaderLines:   100,
			MaxLineLength:    8192,
		},
		Templates: &config.TemplateConfig{
			Helpers: []string{"../../../templates/_helpers.tpl"},
			Error: &config.TemplateConfigItem{
				Path:    "../../../templates/error.tpl",
				Headers: config.DefaultTemplateErrorHeaders,
			},
			Echo: &config.TemplateConfigItem{
				Path:    "../../../templates/echo.tpl",
				Headers: config.DefaultTemplateEchoHeaders,
			},
		},
	}
}

// allowAllMetrics accepts any metric call.
func allowAllMetrics(m *mmocks.MockClient) {
	m.EXPECT().IncParsedRequests(gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().IncValidationErrors(gomock.Any()).AnyTimes()
	m.EXPECT().IncInterimResponses().AnyTimes()
	m.EXPECT().IncDrains(gomock.Any()).AnyTimes()
	m.EXPECT().ObserveExchange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
}

// newTestServer builds a server on cfg. expectMetrics sets the metric
// expectations, nil accepts everything.
func newTestServer(t *testing.T, cfg *config.Config, expectMetrics func(m *mmocks.MockClient)) *Server {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfgManagerMock := cmocks.NewMockManager(ctrl)
	cfgManagerMock.EXPECT().GetConfig().AnyTimes().Return(cfg)
	cfgManagerMock.EXPECT().AddOnChangeHook(gomock.Any()).AnyTimes()

	metricsMock := mmocks.NewMockClient(ctrl)
	if expectMetrics == nil {
		expectMetrics = allowAllMetrics
	}

	expectMetrics(metricsMock)

	tracingMock := tmocks.NewMockService(ctrl)
	tracingMock.EXPECT().GetTracer().AnyTimes().Return(opentracing.NoopTracer{})

	svr := NewServer(log.NewLogger(), cfgManagerMock, metricsMock, tracingMock)
	require.NoError(t, svr.GenerateServer())

	return svr
}

// pipeClient is the client side of a connection served by serveConn.
type pipeClient struct {
	conn net.Conn
	br   *bufio.Reader
	done chan struct{}
}

func startConn(t *testing.T, svr *Server) *pipeClient {
	t.Helper()

	client, srv := net.Pipe()
	pc := &pipeClient{
		conn: client,
		br:   bufio.NewReader(client),
		done: make(chan struct{}),
	}

	go func() {
		svr.serveConn(srv)
		close(pc.done)
	}()

	t.Cleanup(func() {
		_ = client.Close()
		<-pc.done
	})

	return pc
}

// send writes raw without blocking the test. The pipe is unbuffered.
func (pc *pipeClient) send(raw string) {
	go func() {
		_, _ = pc.conn.Write([]byte(raw))
	}()
}

func (pc *pipeClient) read(t *testing.T, method string) (*http.Response, string) {
	t.Helper()

	require.NoError(t, pc.conn.SetReadDeadline(time.Now().Add(testTimeout)))

	resp, err := http.ReadResponse(pc.br, &http.Request{Method: method})
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func (pc *pipeClient) waitClosed(t *testing.T) {
	t.Helper()

	select {
	case <-pc.done:
	case <-time.After(testTimeout):
		t.Fatal("connection is still served")
	}
}

func decodeEcho(t *testing.T, body string) map[string]interface{} {
	t.Helper()

	res := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(body), &res))

	return res
}
