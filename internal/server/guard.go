package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/CharLedger_Go/internal/logger"
)

// ClientGuard counts requests and failed authentications per client
// address over a fixed window.
type ClientGuard struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int
	now         func() time.Time
	windowStart time.Time
	requests    map[string]int
	failures    map[string]int
}

// NewClientGuard creates a guard using GuardWindow and MaxRequestsPerWindow
func NewClientGuard() *ClientGuard {
	return newClientGuard(GuardWindow, MaxRequestsPerWindow, time.Now)
}

func newClientGuard(window time.Duration, maxRequests int, now func() time.Time) *ClientGuard {
	return &ClientGuard{
		window:      window,
		maxRequests: maxRequests,
		now:         now,
		windowStart: now(),
		requests:    make(map[string]int),
		failures:    make(map[string]int),
	}
}

// Allow records a request from client and reports whether it is within the limit
func (g *ClientGuard) Allow(client string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.roll()
	g.requests[client]++
	n := g.requests[client]
	if n <= g.maxRequests {
		return true
	}
	if n == g.maxRequests+1 {
		slog.Warn(SecurityAlertHighRate, "client", client, "window", g.window)
	}
	return false
}

// FailedAuth records a rejected API key from client
func (g *ClientGuard) FailedAuth(client string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.roll()
	g.failures[client]++
	if n := g.failures[client]; n >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "client", client, "count", n)
	}
}

// roll starts a new window once the current one has elapsed. Caller holds mu.
func (g *ClientGuard) roll() {
	if now := g.now(); now.Sub(g.windowStart) >= g.window {
		clear(g.requests)
		clear(g.failures)
		g.windowStart = now
	}
}

// AuthMiddleware rejects requests without the API key, except for PublicPaths
func AuthMiddleware(apiKey string, trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				client := clientIP(r, trustedProxies)
				guard.FailedAuth(client)
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", provided != "",
					"client", client)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware answers 429 once a client exceeds the guard's limit
func RateLimitMiddleware(trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(clientIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isPublic(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// clientIP returns the connecting address, or the last X-Forwarded-For hop
// when the connection comes from a trusted proxy.
func clientIP(r *http.Request, trustedProxies []string) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remote) {
		return remote
	}
	if fwd := r.Header.Get(HeaderForwardedFor); fwd != "" {
		hops := strings.Split(fwd, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}
	return remote
}
