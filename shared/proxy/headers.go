package proxy

import (
	"net/http"
	"net/textproto"
	"strings"
)

// заголовки одного соединения, дальше по цепочке не передаются
var hopByHopHeaders = map[string]bool{
	"Connection":          true,
	"Proxy-Connection":    true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

// копирует заголовки без Host, hop-by-hop и перечисленных в Connection
func copyHeaders(dst, src http.Header) {
	connectionScoped := map[string]bool{}
	for _, v := range src.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				connectionScoped[textproto.CanonicalMIMEHeaderKey(name)] = true
			}
		}
	}

	for key, values := range src {
		key = textproto.CanonicalMIMEHeaderKey(key)
		if key == "Host" || hopByHopHeaders[key] || connectionScoped[key] {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
