package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
)

// Recommended suites implemented by Go. TLS 1.2 suites are ECDSA only,
// matching the generated certificates.
var defaultCipherSuites = []uint16{
	tls.TLS_AES_128_GCM_SHA256,
	tls.TLS_AES_256_GCM_SHA384,
	tls.TLS_CHACHA20_POLY1305_SHA256,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
}

const (
	certSerialBits       = 128
	certValidityDuration = 10 * 365 * 24 * time.Hour
)

// Generated certificates are kept per hostname set so reloads do not
// change the certificate presented to clients.
var selfSigned = struct {
	sync.Mutex
	certs map[string]tls.Certificate
}{certs: map[string]tls.Certificate{}}

// generateTLSConfig returns nil when ssl is not enabled.
func generateTLSConfig(sslConfig *config.ServerSSLConfig, logger log.Logger) (*tls.Config, error) {
	if sslConfig == nil || !sslConfig.Enabled {
		return nil, nil //nolint:nilnil // Clear text listener
	}

	if len(sslConfig.SelfSignedHostnames) == 0 && len(sslConfig.Certificates) == 0 {
		return nil, errors.WithStack(config.ErrSSLCertificateRequired)
	}

	res := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		CipherSuites: defaultCipherSuites,
	}

	err := applyTLSVersions(res, sslConfig)
	if err != nil {
		return nil, err
	}

	if len(sslConfig.CipherSuites) > 0 {
		res.CipherSuites, err = parseCipherSuites(sslConfig.CipherSuites)
		if err != nil {
			return nil, err
		}
	}

	if len(sslConfig.SelfSignedHostnames) > 0 {
		cert, err := getSelfSignedCertificate(sslConfig.SelfSignedHostnames)
		if err != nil {
			logger.WithError(err).Error("self signed certificate cannot be generated")

			return nil, err
		}

		res.Certificates = append(res.Certificates, cert)
	}

	for _, certConfig := range sslConfig.Certificates {
		cert, err := getCertificateFromConfig(certConfig)
		if err != nil {
			return nil, errors.Wrap(err, "unable to load certificate")
		}

		res.Certificates = append(res.Certificates, cert)
	}

	return res, nil
}

func applyTLSVersions(res *tls.Config, sslConfig *config.ServerSSLConfig) error {
	for _, it := range []struct {
		value  *string
		target *uint16
	}{
		{value: sslConfig.MinTLSVersion, target: &res.MinVersion},
		{value: sslConfig.MaxTLSVersion, target: &res.MaxVersion},
	} {
		if it.value == nil {
			continue
		}

		v := config.ParseTLSVersion(*it.value)
		if v == 0 {
			return errors.Errorf("invalid TLS version: %v", *it.value)
		}

		*it.target = v
	}

	return nil
}

func parseCipherSuites(names []string) ([]uint16, error) {
	res := make([]uint16, 0, len(names))

	for _, name := range names {
		id := config.ParseCipherSuite(name)
		if id == 0 {
			return nil, errors.Errorf("invalid cipher suite: %v", name)
		}

		res = append(res, id)
	}

	return res, nil
}

// getCertificateFromConfig builds a key pair from credentials already resolved by the configuration manager.
func getCertificateFromConfig(certConfig *config.ServerSSLCertificate) (tls.Certificate, error) {
	if certConfig.Certificate == nil || certConfig.Certificate.Value == "" {
		return tls.Certificate{}, errors.New("expected certificate to be set")
	}

	if certConfig.PrivateKey == nil || certConfig.PrivateKey.Value == "" {
		return tls.Certificate{}, errors.New("expected privateKey to be set")
	}

	cert, err := tls.X509KeyPair([]byte(certConfig.Certificate.Value), []byte(certConfig.PrivateKey.Value))
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "failed to create certificate")
	}

	return cert, nil
}

func getSelfSignedCertificate(hostnames []string) (tls.Certificate, error) {
	sorted := append([]string(nil), hostnames...)
	sort.Strings(sorted)
	key := strings.Join(sorted, ",")

	selfSigned.Lock()
	defer selfSigned.Unlock()

	if cert, ok := selfSigned.certs[key]; ok {
		return cert, nil
	}

	cert, err := generateSelfSignedCertificate(hostnames)
	if err != nil {
		return tls.Certificate{}, err
	}

	selfSigned.certs[key] = cert

	return cert, nil
}

// generateSelfSignedCertificate creates an ECDSA P-256 certificate for hostnames.
// The first hostname is used as common name.
func generateSelfSignedCertificate(hostnames []string) (tls.Certificate, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "failed to generate private key")
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), certSerialBits))
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "failed to generate serial number")
	}

	// One hour back for clock skew
	notBefore := time.Now().UTC().Add(-time.Hour)

	template := x509.Certificate{
		SerialNumber:          serialNumber,
		Subject:               pkix.Name{CommonName: hostnames[0]},
		DNSNames:              hostnames,
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(certValidityDuration),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "failed to create self-signed certificate")
	}

	return tls.Certificate{
		Certificate: [][]byte{certDER},
		PrivateKey:  privateKey,
	}, nil
}
