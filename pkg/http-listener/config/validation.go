package config

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/gobwas/glob"
)

func validateBusinessConfig(out *Config) error {
	if out.Server != nil {
		err := validateServerConfig(out.Server, "server")
		if err != nil {
			return err
		}
	}

	if out.InternalServer != nil {
		err := validateServerConfig(out.InternalServer, "internalServer")
		if err != nil {
			return err
		}
	}

	if out.Tracing != nil && out.Tracing.FlushInterval != "" {
		_, err := time.ParseDuration(out.Tracing.FlushInterval)
		if err != nil {
			return errors.Wrap(err, "tracing.flushInterval is invalid")
		}
	}

	return validateRequestConfig(out.Request)
}

func validateServerConfig(srv *ServerConfig, section string) error {
	if srv.Timeouts != nil {
		timeouts := map[string]string{
			"readTimeout":       srv.Timeouts.ReadTimeout,
			"readHeaderTimeout": srv.Timeouts.ReadHeaderTimeout,
			"writeTimeout":      srv.Timeouts.WriteTimeout,
			"idleTimeout":       srv.Timeouts.IdleTimeout,
		}

		for name, value := range timeouts {
			err := validatePositiveDuration(value, fmt.Sprintf("%s.timeouts.%s", section, name))
			if err != nil {
				return err
			}
		}
	}

	if srv.SSL != nil {
		return validateSSLConfig(srv.SSL, section)
	}

	return nil
}

func validateRequestConfig(req *RequestConfig) error {
	err := validatePositiveDuration(req.DrainReadTimeout, "request.drainReadTimeout")
	if err != nil {
		return err
	}

	for i, host := range req.AllowedHosts {
		_, err := glob.Compile(host)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("request.allowedHosts[%d] is not a valid pattern", i))
		}
	}

	return nil
}

func validatePositiveDuration(value, component string) error {
	if value == "" {
		return nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("%s is invalid", component))
	}

	if duration < time.Duration(0) {
		return errors.Errorf("%s cannot be negative", component)
	}

	return nil
}

func validateSSLConfig(serverSSL *ServerSSLConfig, section string) error {
	if serverSSL.Enabled {
		if len(serverSSL.Certificates) == 0 && len(serverSSL.SelfSignedHostnames) == 0 {
			return errors.Wrap(ErrSSLCertificateRequired, section)
		}
	}

	if serverSSL.MinTLSVersion != nil && ParseTLSVersion(*serverSSL.MinTLSVersion) == 0 {
		return errors.Errorf(
			"%s.ssl.minTLSVersion %#v must be a valid TLS version: expected \"TLSv1.0\", \"TLSv1.1\", \"TLSv1.2\", or \"TLSv1.3\"",
			section, *serverSSL.MinTLSVersion)
	}

	if serverSSL.MaxTLSVersion != nil && ParseTLSVersion(*serverSSL.MaxTLSVersion) == 0 {
		return errors.Errorf(
			"%s.ssl.maxTLSVersion %#v must be a valid TLS version: expected \"TLSv1.0\", \"TLSv1.1\", \"TLSv1.2\", or \"TLSv1.3\"",
			section, *serverSSL.MaxTLSVersion)
	}

	for _, cipherSuiteName := range serverSSL.CipherSuites {
		if ParseCipherSuite(cipherSuiteName) == 0 {
			var cipherSuiteNames []string

			for _, cipherSuite := range tls.CipherSuites() {
				cipherSuiteNames = append(cipherSuiteNames, fmt.Sprintf(`"%s"`, cipherSuite.Name))
			}

			return errors.Errorf(
				"invalid cipher suite %#v in %s.ssl.cipherSuites; expected one of %s", cipherSuiteName, section,
				strings.Join(cipherSuiteNames, ", "))
		}
	}

	return nil
}

// ParseTLSVersion returns the tls version constant for a name, 0 when unknown.
func ParseTLSVersion(tlsVersionString string) uint16 {
	switch strings.ToLower(tlsVersionString) {
	case "tlsv1.0", "tls1.0", "1.0":
		return tls.VersionTLS10
	case "tlsv1.1", "tls1.1", "1.1":
		return tls.VersionTLS11
	case "tlsv1.2", "tls1.2", "1.2":
		return tls.VersionTLS12
	case "tlsv1.3", "tls1.3", "1.3":
		return tls.VersionTLS13
	default:
		return 0
	}
}

// ParseCipherSuite returns the cipher suite id for a name, 0 when unknown.
func ParseCipherSuite(cipherSuiteName string) uint16 {
	for _, cs := range tls.CipherSuites() {
		if cs.Name == cipherSuiteName {
			return cs.ID
		}
	}

	for _, cs := range tls.InsecureCipherSuites() {
		if cs.Name == cipherSuiteName {
			return cs.ID
		}
	}

	return 0
}
