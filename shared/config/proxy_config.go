// описание конфига гейтвея: http клиент до сервисов и адреса сервисов
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// настройки http клиента, которым гейтвей ходит в сервисы
type ProxyClientConfig struct {
	DialTimeout           time.Duration `yaml:"dial_timeout"`            // таймаут установки TCP соединения
	MaxIdleConns          int           `yaml:"max_idle_conns"`          // keep-alive соединения на один сервис
	MaxConnPerHost        int           `yaml:"max_conns_per_host"`      // 0 - без ограничения
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout"`       // через сколько закрывать простаивающее соединение
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout"`   // максимальное время TLS handshake
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout"` // ожидание 100-continue для больших тел
}

type ProxyConfig struct {
	ForwardTimeout time.Duration     `yaml:"forward_timeout"` // предел на один проксируемый запрос целиком
	HTTPClient     ProxyClientConfig `yaml:"http_client"`
}

func UseDefaultProxyConfig() *ProxyConfig {
	return &ProxyConfig{
		ForwardTimeout: 10 * time.Second,
		HTTPClient: ProxyClientConfig{
			DialTimeout:           3 * time.Second,
			MaxIdleConns:          32,
			MaxConnPerHost:        0,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   3 * time.Second,
			ExpectContinueTimeout: time.Second,
		},
	}
}

func (c *ProxyConfig) Validate() error {
	if c.ForwardTimeout <= 0 {
		return &ConfigError{Field: "forward_timeout", Msg: "must be positive"}
	}
	if c.HTTPClient.DialTimeout <= 0 {
		return &ConfigError{Field: "http_client.dial_timeout", Msg: "must be positive"}
	}
	if c.HTTPClient.MaxIdleConns < 0 || c.HTTPClient.MaxConnPerHost < 0 {
		return &ConfigError{Field: "http_client", Msg: "connection limits must not be negative"}
	}
	return nil
}

// адреса сервисов за гейтвеем
type UpstreamsConfig struct {
	AuthServiceURL *url.URL
	TaskServiceURL *url.URL
}

// NewUpstreamsConfigFromEnv читает AUTH_SERVICE_URL и TASK_SERVICE_URL
func NewUpstreamsConfigFromEnv() (*UpstreamsConfig, error) {
	var errs []string

	authURL, err := parseUpstreamURL("AUTH_SERVICE_URL", getEnvWithDefault("AUTH_SERVICE_URL", "http://localhost:5001"))
	if err != nil {
		errs = append(errs, err.Error())
	}

	taskURL, err := parseUpstreamURL("TASK_SERVICE_URL", getEnvWithDefault("TASK_SERVICE_URL", "http://localhost:5002"))
	if err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("upstreams configuration errors: %s", strings.Join(errs, "; "))
	}

	return &UpstreamsConfig{
		AuthServiceURL: authURL,
		TaskServiceURL: taskURL,
	}, nil
}

func parseUpstreamURL(key, raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s: scheme must be http or https, got %q", key, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%s: host is empty in %q", key, raw)
	}
	return u, nil
}
