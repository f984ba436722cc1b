package ratelimit

import (
	"strings"
)

// unlimited marks routes that are never limited.
var unlimited = &EndpointConfig{}

// MatchEndpoint returns the configuration for path and method, or nil when
// the default applies. Health checks and metric scrapes are unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && (path == "/health" || path == "/metrics") {
		return unlimited
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
