// описание работы с TLS сертификатами (HTTPS на самом сервисе, без внешнего терминатора)
package config

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"
)

// сертификат валиден, но истекает в ближайшие certExpiryWarning
var ErrCertificateExpiresSoon = errors.New("certificate expires soon")

const certExpiryWarning = 30 * 24 * time.Hour

// LoadTLSCertificate загружает и проверяет TLS сертификат
func LoadTLSCertificate(certFile, keyFile string) (tls.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	if _, err := x509.ParseCertificate(cert.Certificate[0]); err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to parse certificate: %w", err)
	}

	return cert, nil
}

// CheckCertificateValidity проверяет срок действия сертификата.
// Скорое истечение - ErrCertificateExpiresSoon, запуск при этом не прерывается.
func CheckCertificateValidity(certFile string, now time.Time) error {
	data, err := os.ReadFile(certFile)
	if err != nil {
		return fmt.Errorf("failed to read certificate file: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return fmt.Errorf("failed to decode PEM block from certificate")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return fmt.Errorf("failed to parse certificate: %w", err)
	}

	if now.Before(cert.NotBefore) {
		return fmt.Errorf("certificate is not yet valid (valid from: %s)", cert.NotBefore.Format(time.RFC3339))
	}

	if now.After(cert.NotAfter) {
		return fmt.Errorf("certificate has expired (expired at: %s)", cert.NotAfter.Format(time.RFC3339))
	}

	if left := cert.NotAfter.Sub(now); left < certExpiryWarning {
		return fmt.Errorf("%w (in %d days)", ErrCertificateExpiresSoon, int(left.Hours()/24))
	}

	return nil
}

// TLSEnabled - HTTPS включается, когда заданы сертификат и ключ
func (c *ServerConfig) TLSEnabled() bool {
	return c.TLSCertFile != "" || c.TLSKeyFile != ""
}

// ValidateTLS проверяет пару сертификат/ключ до старта сервера
func (c *ServerConfig) ValidateTLS() error {
	if !c.TLSEnabled() {
		return nil
	}
	if c.TLSCertFile == "" || c.TLSKeyFile == "" {
		return &ConfigError{Field: "tls_cert_file/tls_key_file", Msg: "both must be set"}
	}
	if _, err := LoadTLSCertificate(c.TLSCertFile, c.TLSKeyFile); err != nil {
		return err
	}
	if err := CheckCertificateValidity(c.TLSCertFile, time.Now()); err != nil && !errors.Is(err, ErrCertificateExpiresSoon) {
		return err
	}
	return nil
}

// createTLSConfig - TLS 1.2+, только AEAD шифры
func createTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
		},
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		},
	}
}
