package server

import (
	"fmt"
	"net"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to. Empty binds every interface.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth,
	// which is only accepted on a loopback host.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"1"`
}

// Address returns the listen address for the configured host and port.
func (c Config) Address() string {
	port := c.Port
	if port == "" {
		port = "8080"
	}
	return net.JoinHostPort(c.Host, port)
}

// Loopback reports whether Host only accepts local connections.
func (c Config) Loopback() bool {
	if c.Host == "localhost" {
		return true
	}
	ip := net.ParseIP(c.Host)
	return ip != nil && ip.IsLoopback()
}

// Validate refuses an unauthenticated server reachable from other machines.
// The API reads and copies whatever paths it is sent.
func (c Config) Validate() error {
	if c.ApiKey == "" && !c.Loopback() {
		host := c.Host
		if host == "" {
			host = "all interfaces"
		}
		return fmt.Errorf("server.api_key must be set when listening on %s", host)
	}
	return nil
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 1 << 20
	}
	return c.BodyLimitMB << 20
}
