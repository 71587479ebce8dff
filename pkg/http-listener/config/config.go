package config

import (
	"emperror.dev/errors"
)

// DefaultPort Default port.
const DefaultPort = 8080

// DefaultInternalPort Default internal port.
const DefaultInternalPort = 9090

// DefaultLogLevel Default log level.
const DefaultLogLevel = "info"

// DefaultLogFormat Default Log format.
const DefaultLogFormat = "json"

// DefaultServerTimeoutsReadHeaderTimeout Server timeouts ReadHeaderTimeout.
const DefaultServerTimeoutsReadHeaderTimeout = "60s"

// DefaultServerTimeoutsIdleTimeout Server timeouts IdleTimeout.
const DefaultServerTimeoutsIdleTimeout = "120s"

// DefaultRequestDrainBufferSize Default size of the buffer used to discard unread bodies.
const DefaultRequestDrainBufferSize = 2048

// DefaultRequestDrainReadTimeout Default time given to each read while discarding unread bodies.
const DefaultRequestDrainReadTimeout = "100ms"

// DefaultRequestMaxHeaderLines Default maximum number of header lines.
const DefaultRequestMaxHeaderLines = 100

// DefaultRequestMaxLineLength Default maximum length of a request or header line.
const DefaultRequestMaxLineLength = 8192

// DefaultTemplateHelpersPath Default template helpers path.
const DefaultTemplateHelpersPath = "templates/_helpers.tpl"

// DefaultTemplateErrorPath Default template error path.
const DefaultTemplateErrorPath = "templates/error.tpl"

// DefaultTemplateEchoPath Default template echo path.
const DefaultTemplateEchoPath = "templates/echo.tpl"

// DefaultTemplateErrorHeaders Default template headers for errors.
var DefaultTemplateErrorHeaders = map[string]string{
	"Content-Type": "{{ template \"main.headers.contentType\" . }}",
}

// DefaultTemplateEchoHeaders Default template headers for echo.
var DefaultTemplateEchoHeaders = map[string]string{
	"Content-Type": "application/json; charset=utf-8",
}

// ErrSSLCertificateRequired Error thrown when ssl is enabled without any certificate source.
var ErrSSLCertificateRequired = errors.NewPlain("at least one certificate or self signed hostname must be set when ssl is enabled")

// TemplateErrLoadingEnvCredentialEmpty Template Error when Loading Environment variable Credentials.
var TemplateErrLoadingEnvCredentialEmpty = "error loading credentials, environment variable %s is empty" //nolint: gosec // No credentials here, false positive

// Config Application Configuration.
type Config struct {
	Log            *LogConfig      `mapstructure:"log"`
	Tracing        *TracingConfig  `mapstructure:"tracing"`
	Server         *ServerConfig   `mapstructure:"server"`
	InternalServer *ServerConfig   `mapstructure:"internalServer"`
	Request        *RequestConfig  `mapstructure:"request"        validate:"required"`
	Templates      *TemplateConfig `mapstructure:"templates"      validate:"required"`
}

// LogConfig Log configuration.
type LogConfig struct {
	Level    string `mapstructure:"level"    validate:"required"`
	Format   string `mapstructure:"format"   validate:"required"`
	FilePath string `mapstructure:"filePath"`
}

// TracingConfig represents the Tracing configuration structure.
type TracingConfig struct {
	FixedTags     map[string]interface{} `mapstructure:"fixedTags"`
	FlushInterval string                 `mapstructure:"flushInterval"`
	UDPHost       string                 `mapstructure:"udpHost"`
	QueueSize     int                    `mapstructure:"queueSize"`
	Enabled       bool                   `mapstructure:"enabled"`
	LogSpan       bool                   `mapstructure:"logSpan"`
}

// ServerConfig Server configuration.
type ServerConfig struct {
	Timeouts   *ServerTimeoutsConfig `mapstructure:"timeouts"   validate:"required"`
	SSL        *ServerSSLConfig      `mapstructure:"ssl"        validate:"omitempty"`
	ListenAddr string                `mapstructure:"listenAddr"`
	Port       int                   `mapstructure:"port"       validate:"required"`
}

// ServerTimeoutsConfig Server timeouts configuration.
type ServerTimeoutsConfig struct {
	ReadTimeout       string `mapstructure:"readTimeout"`
	ReadHeaderTimeout string `mapstructure:"readHeaderTimeout"`
	WriteTimeout      string `mapstructure:"writeTimeout"`
	IdleTimeout       string `mapstructure:"idleTimeout"`
}

// ServerSSLConfig Server SSL configuration.
type ServerSSLConfig struct {
	MinTLSVersion       *string                 `mapstructure:"minTLSVersion"`
	MaxTLSVersion       *string                 `mapstructure:"maxTLSVersion"`
	Certificates        []*ServerSSLCertificate `mapstructure:"certificates"        validate:"omitempty,dive"`
	SelfSignedHostnames []string                `mapstructure:"selfSignedHostnames"`
	CipherSuites        []string                `mapstructure:"cipherSuites"`
	Enabled             bool                    `mapstructure:"enabled"`
}

// ServerSSLCertificate Server SSL certificate.
type ServerSSLCertificate struct {
	Certificate *CredentialConfig `mapstructure:"certificate" validate:"required"`
	PrivateKey  *CredentialConfig `mapstructure:"privateKey"  validate:"required"`
}

// CredentialConfig Credential Configurations.
type CredentialConfig struct {
	Path  string `mapstructure:"path"  validate:"required_without_all=Env Value"`
	Env   string `mapstructure:"env"   validate:"required_without_all=Path Value"`
	Value string `mapstructure:"value" validate:"required_without_all=Path Env"`
}

// RequestConfig Request ingestion configuration.
type RequestConfig struct {
	DrainReadTimeout string   `mapstructure:"drainReadTimeout"`
	AllowedHosts     []string `mapstructure:"allowedHosts"`
	DrainBufferSize  int      `mapstructure:"drainBufferSize"  validate:"gte=1"`
	MaxHeaderLines   int      `mapstructure:"maxHeaderLines"   validate:"gte=1"`
	MaxLineLength    int      `mapstructure:"maxLineLength"    validate:"gte=16"`
}

// TemplateConfigItem Template configuration item.
type TemplateConfigItem struct {
	Headers map[string]string `mapstructure:"headers"`
	Path    string            `mapstructure:"path"    validate:"required"`
}

// TemplateConfig Templates configuration.
type TemplateConfig struct {
	Error   *TemplateConfigItem `mapstructure:"error"   validate:"required"`
	Echo    *TemplateConfigItem `mapstructure:"echo"    validate:"required"`
	Helpers []string            `mapstructure:"helpers" validate:"required,min=1,dive,required"`
}
