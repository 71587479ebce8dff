//go:build unit

package tracing

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/opentracing/opentracing-go"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	cmocks "github.com/oxyno-zeta/http-listener/pkg/http-listener/config/mocks"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.TracingConfig
		noop    bool
		wantErr bool
	}{
		{
			name: "disabled",
			cfg:  &config.TracingConfig{Enabled: false},
			noop: true,
		},
		{
			name: "enabled",
			cfg:  &config.TracingConfig{Enabled: true, FlushInterval: "1s", UDPHost: "localhost:6831", QueueSize: 10},
		},
		{
			name:    "invalid flush interval",
			cfg:     &config.TracingConfig{Enabled: true, FlushInterval: "fake"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cfgManagerMock := cmocks.NewMockManager(ctrl)
			cfgManagerMock.EXPECT().GetConfig().Return(&config.Config{Tracing: tt.cfg}).AnyTimes()

			svc, err := New(cfgManagerMock, log.NewLogger(), metrics.NewClient())
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, svc.GetTracer())

			_, isNoop := svc.GetTracer().(*opentracing.NoopTracer)
			assert.Equal(t, tt.noop, isNoop)

			// Reload can be done many times on the same metrics
			require.NoError(t, svc.Reload())
			require.NoError(t, svc.Reload())
		})
	}
}

func TestBuildConfiguration(t *testing.T) {
	t.Run("nil section", func(t *testing.T) {
		jcfg, err := buildConfiguration(nil)
		require.NoError(t, err)

		assert.True(t, jcfg.Disabled)
		assert.Equal(t, ServiceName, jcfg.ServiceName)
		assert.Nil(t, jcfg.Reporter)
	})

	t.Run("enabled", func(t *testing.T) {
		jcfg, err := buildConfiguration(&config.TracingConfig{
			Enabled:       true,
			LogSpan:       true,
			QueueSize:     42,
			UDPHost:       "agent:6831",
			FlushInterval: "2s",
			FixedTags:     map[string]interface{}{"env": "test"},
		})
		require.NoError(t, err)

		assert.False(t, jcfg.Disabled)
		require.NotNil(t, jcfg.Reporter)
		assert.True(t, jcfg.Reporter.LogSpans)
		assert.Equal(t, 42, jcfg.Reporter.QueueSize)
		assert.Equal(t, "agent:6831", jcfg.Reporter.LocalAgentHostPort)
		assert.Equal(t, 2*time.Second, jcfg.Reporter.BufferFlushInterval)
		assert.Equal(t, []opentracing.Tag{{Key: "env", Value: "test"}}, jcfg.Tags)
	})

	t.Run("invalid flush interval", func(t *testing.T) {
		_, err := buildConfiguration(&config.TracingConfig{Enabled: true, FlushInterval: "fake"})
		assert.ErrorContains(t, err, "invalid tracing flush interval")
	})
}
