package ratelimit

import (
	"net/http"
	"strings"
)

// unlimitedPaths are never throttled so probes and scrapers keep working.
var unlimitedPaths = map[string]bool{
	"/status":  true,
	"/metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/api/users/" matches "/api/users/{id}").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && unlimitedPaths[path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
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
