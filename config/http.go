package config

import (
	"fmt"
	"strings"
)

// HTTPConfig configures the API server started by serve.
type HTTPConfig struct {
	Addr string `json:"addr"`
	// Token, when set, is required as a bearer token on every API request.
	Token string `json:"token"`
	// MaxUploadMB bounds schedule uploads.
	MaxUploadMB int `json:"max_upload_mb"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MaxUploadMB == 0 {
		c.MaxUploadMB = 10
	}
}

// Validate checks the listen address.
func (c HTTPConfig) Validate() error {
	if !strings.Contains(c.Addr, ":") {
		return fmt.Errorf("http: invalid addr %q", c.Addr)
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("http: max_upload_mb must not be negative")
	}
	return nil
}
