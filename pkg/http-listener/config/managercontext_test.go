//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
		require.NoError(t, err)
	}

	return dir
}

func Test_managercontext_Load(t *testing.T) {
	tests := []struct {
		name    string
		configs map[string]string
		envs    map[string]string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name: "Not a yaml",
			configs: map[string]string{
				"config.yaml": "notayaml",
			},
			wantErr: true,
		},
		{
			name: "Default values with minimal config",
			configs: map[string]string{
				"config.yaml": "log:\n  level: debug\n",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, &LogConfig{Level: "debug", Format: "json"}, cfg.Log)
				assert.Equal(t, &TracingConfig{Enabled: false}, cfg.Tracing)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "60s", cfg.Server.Timeouts.ReadHeaderTimeout)
				assert.Equal(t, "120s", cfg.Server.Timeouts.IdleTimeout)
				assert.Equal(t, 9090, cfg.InternalServer.Port)
				assert.Equal(t, 2048, cfg.Request.DrainBufferSize)
				assert.Equal(t, "100ms", cfg.Request.DrainReadTimeout)
				assert.Equal(t, 100, cfg.Request.MaxHeaderLines)
				assert.Equal(t, 8192, cfg.Request.MaxLineLength)
				assert.Empty(t, cfg.Request.AllowedHosts)
				assert.Equal(t, []string{DefaultTemplateHelpersPath}, cfg.Templates.Helpers)
				assert.Equal(t, DefaultTemplateErrorPath, cfg.Templates.Error.Path)
				assert.Equal(t, DefaultTemplateEchoPath, cfg.Templates.Echo.Path)
			},
		},
		{
			name: "Multiple files are merged",
			configs: map[string]string{
				"server.yaml":  "server:\n  port: 8181\n",
				"request.yaml": "request:\n  drainBufferSize: 512\n  allowedHosts:\n    - \"*.Example.com\"\n",
				".keep":        "",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8181, cfg.Server.Port)
				assert.Equal(t, 512, cfg.Request.DrainBufferSize)
				assert.Equal(t, []string{"*.example.com"}, cfg.Request.AllowedHosts)
			},
		},
		{
			name: "Invalid drain buffer size",
			configs: map[string]string{
				"config.yaml": "request:\n  drainBufferSize: -1\n",
			},
			wantErr: true,
		},
		{
			name: "Invalid drain read timeout",
			configs: map[string]string{
				"config.yaml": "request:\n  drainReadTimeout: fake\n",
			},
			wantErr: true,
		},
		{
			name: "Invalid allowed host pattern",
			configs: map[string]string{
				"config.yaml": "request:\n  allowedHosts:\n    - \"[a\"\n",
			},
			wantErr: true,
		},
		{
			name: "SSL enabled without certificate",
			configs: map[string]string{
				"config.yaml": "server:\n  ssl:\n    enabled: true\n",
			},
			wantErr: true,
		},
		{
			name: "SSL certificate from environment",
			configs: map[string]string{
				"config.yaml": `
server:
  ssl:
    enabled: true
    certificates:
      - certificate:
          env: TEST_CERT
        privateKey:
          value: key-content
`,
			},
			envs: map[string]string{"TEST_CERT": "cert-content"},
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Server.SSL.Certificates, 1)
				assert.Equal(t, "cert-content", cfg.Server.SSL.Certificates[0].Certificate.Value)
				assert.Equal(t, "key-content", cfg.Server.SSL.Certificates[0].PrivateKey.Value)
			},
		},
		{
			name: "SSL certificate from empty environment",
			configs: map[string]string{
				"config.yaml": `
server:
  ssl:
    enabled: true
    certificates:
      - certificate:
          env: TEST_CERT_EMPTY
        privateKey:
          value: key-content
`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}

			dir := writeConfigFiles(t, tt.configs)

			ctx := &managercontext{logger: log.NewLogger()}

			err := ctx.Load(dir)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			tt.check(t, ctx.GetConfig())
		})
	}
}

func Test_managercontext_Load_MissingFolder(t *testing.T) {
	ctx := &managercontext{logger: log.NewLogger()}

	err := ctx.Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func Test_managercontext_AddOnChangeHook(t *testing.T) {
	ctx := &managercontext{logger: log.NewLogger()}

	called := 0
	ctx.AddOnChangeHook(func() { called++ })
	ctx.AddOnChangeHook(func() { called++ })

	for _, hook := range ctx.onChangeHooks {
		hook()
	}

	assert.Equal(t, 2, called)
}

func Test_loadCredential(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cert.pem")
	require.NoError(t, os.WriteFile(p, []byte("from-file"), 0o600))

	cred := &CredentialConfig{Path: p}
	require.NoError(t, loadCredential(cred))
	assert.Equal(t, "from-file", cred.Value)

	cred = &CredentialConfig{Path: filepath.Join(dir, "missing.pem")}
	assert.Error(t, loadCredential(cred))

	cred = &CredentialConfig{Value: "inline"}
	require.NoError(t, loadCredential(cred))
	assert.Equal(t, "inline", cred.Value)
}

func Test_loadBusinessDefaultValues(t *testing.T) {
	out := &Config{
		Templates: &TemplateConfig{
			Error: &TemplateConfigItem{Path: "error.tpl"},
			Echo:  &TemplateConfigItem{Path: "echo.tpl", Headers: map[string]string{}},
		},
	}

	loadBusinessDefaultValues(out)

	assert.Equal(t, &TracingConfig{Enabled: false}, out.Tracing)
	assert.Equal(t, DefaultRequestDrainBufferSize, out.Request.DrainBufferSize)
	assert.Equal(t, DefaultTemplateErrorHeaders, out.Templates.Error.Headers)
	// Explicit empty headers are kept
	assert.Equal(t, map[string]string{}, out.Templates.Echo.Headers)
}
