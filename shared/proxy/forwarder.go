// прозрачное проксирование запросов по префиксу пути
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"todo_list/shared/config"

	"github.com/gin-gonic/gin"
)

// единственные ответы, которые гейтвей формирует сам
const (
	MsgUpstreamUnavailable = "upstream unavailable"
	MsgUpstreamTimeout     = "upstream timeout"
	MsgNotFound            = "not found"
)

// Route - префикс пути и сервис, которому он принадлежит
type Route struct {
	Name     string
	Prefix   string // "/auth" обслуживает /auth и /auth/**
	Upstream *url.URL
}

type Forwarder struct {
	client  *http.Client
	routes  []Route
	timeout time.Duration
	logger  *slog.Logger
}

// NewHTTPClient - клиент без редиректов и без прозрачной распаковки gzip:
// ответ сервиса должен уйти клиенту как есть
func NewHTTPClient(conf config.ProxyClientConfig) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: conf.DialTimeout}).DialContext,
			MaxConnsPerHost:       conf.MaxConnPerHost,
			MaxIdleConnsPerHost:   conf.MaxIdleConns,
			IdleConnTimeout:       conf.IdleConnTimeout,
			TLSHandshakeTimeout:   conf.TLSHandshakeTimeout,
			ExpectContinueTimeout: conf.ExpectContinueTimeout,
			DisableCompression:    true,
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func NewForwarder(conf *config.ProxyConfig, routes []Route, logger *slog.Logger) (*Forwarder, error) {
	if conf == nil {
		conf = config.UseDefaultProxyConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	for _, r := range routes {
		if r.Upstream == nil || !strings.HasPrefix(r.Prefix, "/") || strings.HasSuffix(r.Prefix, "/") {
			return nil, fmt.Errorf("invalid route %q: prefix must start and not end with '/' and upstream must be set", r.Name)
		}
	}

	return &Forwarder{
		client:  NewHTTPClient(conf.HTTPClient),
		routes:  routes,
		timeout: conf.ForwardTimeout,
		logger:  logger,
	}, nil
}

// Resolve возвращает маршрут для пути запроса
func (f *Forwarder) Resolve(path string) (Route, bool) {
	for _, r := range f.routes {
		if path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/") {
			return r, true
		}
	}
	return Route{}, false
}

// Handle пересылает запрос в сервис по префиксу. Неизвестный путь - 404.
func (f *Forwarder) Handle(c *gin.Context) {
	route, ok := f.Resolve(c.Request.URL.Path)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": MsgNotFound})
		return
	}
	f.forward(c, route)
}

func (f *Forwarder) forward(c *gin.Context, route Route) {
	start := time.Now()
	r := c.Request

	ctx, cancel := context.WithTimeout(r.Context(), f.timeout)
	defer cancel()

	target := upstreamURL(route.Upstream, r.URL)
	upstreamReq, err := http.NewRequestWithContext(ctx, r.Method, target.String(), r.Body)
	if err != nil {
		f.logger.Error("failed to create upstream request", "upstream", route.Name, "error", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": MsgUpstreamUnavailable})
		return
	}
	upstreamReq.ContentLength = r.ContentLength
	// Host не пересылается: у запроса к сервису свой Host из адреса сервиса
	copyHeaders(upstreamReq.Header, r.Header)

	resp, err := f.client.Do(upstreamReq)
	if err != nil {
		f.abortOnTransportError(c, route, err, time.Since(start))
		return
	}
	defer resp.Body.Close()

	dst := c.Writer.Header()
	for key := range resp.Header {
		dst.Del(key)
	}
	copyHeaders(dst, resp.Header)
	c.Status(resp.StatusCode)

	written, err := io.Copy(c.Writer, resp.Body)
	if err != nil {
		f.logger.Warn("response copy interrupted", "upstream", route.Name, "path", r.URL.Path,
			"bytes", written, "error", err)
	}
	c.Abort()

	f.logger.Debug("proxied", "upstream", route.Name, "method", r.Method, "path", r.URL.Path,
		"status", resp.StatusCode, "bytes", written, "duration", time.Since(start))
}

func (f *Forwarder) abortOnTransportError(c *gin.Context, route Route, err error, elapsed time.Duration) {
	// клиент ушёл сам: отвечать некому
	if errors.Is(c.Request.Context().Err(), context.Canceled) {
		f.logger.Info("client cancelled request", "upstream", route.Name, "path", c.Request.URL.Path)
		c.Abort()
		return
	}

	if isTimeout(err) {
		f.logger.Warn("upstream timeout", "upstream", route.Name, "path", c.Request.URL.Path,
			"duration", elapsed, "error", err)
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"error": MsgUpstreamTimeout})
		return
	}

	f.logger.Error("upstream unavailable", "upstream", route.Name, "path", c.Request.URL.Path,
		"duration", elapsed, "error", err)
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": MsgUpstreamUnavailable})
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// адрес сервиса + путь и query входящего запроса
func upstreamURL(upstream, in *url.URL) *url.URL {
	target := *upstream
	target.Path = singleJoiningSlash(upstream.Path, in.Path)
	if in.RawPath != "" {
		target.RawPath = singleJoiningSlash(upstream.EscapedPath(), in.RawPath)
	}
	target.RawQuery = in.RawQuery
	return &target
}

func singleJoiningSlash(a, b string) string {
	aSlash := strings.HasSuffix(a, "/")
	bSlash := strings.HasPrefix(b, "/")
	switch {
	case aSlash && bSlash:
		return a + b[1:]
	case !aSlash && !bSlash:
		return a + "/" + b
	}
	return a + b
}
