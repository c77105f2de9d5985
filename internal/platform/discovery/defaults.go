// Package discovery centralizes the local address conventions of the archive
// services.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceWeb is the browser desktop service identity.
	ServiceWeb = "web"
	// ServiceMCP is the MCP HTTP service identity.
	ServiceMCP = "mcp"
)

// defaultHost binds every service to the loopback interface.
const defaultHost = "localhost"

var httpPorts = map[string]int{
	ServiceWeb: 8090,
	ServiceMCP: 8091,
}

// DefaultHTTPAddr returns the local HTTP bind address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// OrDefaultHTTPAddr returns value when set, otherwise the service convention.
func OrDefaultHTTPAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultHTTPAddr(service)
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return defaultHost + ":" + strconv.Itoa(port)
}
