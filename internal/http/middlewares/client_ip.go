package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// clientIP devuelve el host de RemoteAddr. X-Forwarded-For no se mira: lo
// controla el cliente salvo que venga de un proxy confiable.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// TrustedProxies es la lista de peers cuyo X-Forwarded-For se acepta.
type TrustedProxies struct {
	nets []*net.IPNet
}

// ParseTrustedProxies acepta IPs sueltas o CIDRs. Lista vacía = nil (sólo RemoteAddr).
func ParseTrustedProxies(entries []string) (*TrustedProxies, error) {
	tp := &TrustedProxies{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "/") {
			ip := net.ParseIP(e)
			if ip == nil {
				return nil, fmt.Errorf("trusted proxy %q: invalid IP", e)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			e = fmt.Sprintf("%s/%d", ip.String(), bits)
		}
		_, n, err := net.ParseCIDR(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		tp.nets = append(tp.nets, n)
	}
	if len(tp.nets) == 0 {
		return nil, nil
	}
	return tp, nil
}

func (tp *TrustedProxies) trusts(host string) bool {
	if tp == nil {
		return false
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range tp.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP usa X-Forwarded-For sólo si el peer directo es confiable. Recorre la
// cadena de derecha a izquierda y devuelve la primera IP no confiable.
func (tp *TrustedProxies) ClientIP(r *http.Request) string {
	peer := clientIP(r)
	if !tp.trusts(peer) {
		return peer
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" || net.ParseIP(hop) == nil {
			// valor ilegible: no se puede seguir confiando en la cadena
			return peer
		}
		if !tp.trusts(hop) {
			return hop
		}
		peer = hop
	}
	return peer
}

// IPPathRateKey es IPPathRateKey resolviendo la IP a través de los proxies confiables.
func (tp *TrustedProxies) IPPathRateKey(r *http.Request) string {
	return tp.ClientIP(r) + "|" + r.URL.Path
}
