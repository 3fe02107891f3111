package config

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// структура для конфига HTTP сервера (одна и та же у всех сервисов)
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // сколько ждём завершения текущих запросов при остановке
	MaxHeaderBytes  int           `yaml:"max_header_bytes"`
	TLSCertFile     string        `yaml:"tls_cert_file"` // пусто - обычный HTTP
	TLSKeyFile      string        `yaml:"tls_key_file"`
}

// функция для создания конфига сервера по-дефолту
func UseDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:            "0.0.0.0",
		Port:            "8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		MaxHeaderBytes:  1 << 20,
	}
}

// дефолтный конфиг с конкретным портом (у каждого сервиса свой порт по умолчанию)
func DefaultServerConfigOnPort(port string) func() *ServerConfig {
	return func() *ServerConfig {
		conf := UseDefaultServerConfig()
		conf.Port = port
		return conf
	}
}

// метод конфига сервера для формирования адреса
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// собираем *http.Server с таймаутами из конфига
func (c *ServerConfig) NewHTTPServer(handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:           c.Addr(),
		Handler:        handler,
		ReadTimeout:    c.ReadTimeout,
		WriteTimeout:   c.WriteTimeout,
		IdleTimeout:    c.IdleTimeout,
		MaxHeaderBytes: c.MaxHeaderBytes,
	}
	if c.TLSEnabled() {
		srv.TLSConfig = createTLSConfig()
	}
	return srv
}

// LoadServerConfig читает yml сервера поверх дефолтов с портом сервиса и проверяет TLS
func LoadServerConfig(path, defaultPort string) (*ServerConfig, error) {
	conf, err := LoadYAMLConfig(path, DefaultServerConfigOnPort(defaultPort))
	if err != nil {
		return nil, err
	}
	if err := conf.ValidateTLS(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Serve запускает srv по HTTP или HTTPS, в зависимости от конфига
func (c *ServerConfig) Serve(srv *http.Server, logger *slog.Logger) error {
	if !c.TLSEnabled() {
		logger.Info("starting HTTP server", "addr", c.Addr())
		return srv.ListenAndServe()
	}

	if err := CheckCertificateValidity(c.TLSCertFile, time.Now()); errors.Is(err, ErrCertificateExpiresSoon) {
		logger.Warn("certificate warning", "error", err)
	}
	logger.Info("starting HTTPS server", "addr", c.Addr())
	return srv.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
}

// Вспомогательная структура для ошибок конфигурации
type ConfigError struct {
	Field string
	Msg   string
}

// метод вспомогательной структуры для формирования ошибок
func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Msg
}
