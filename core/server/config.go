package server

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the TCP port the server listens on.
	Port int `mapstructure:"port" default:"8080"`
	// DocumentRoot is the directory files are served from.
	DocumentRoot string `mapstructure:"document_root" default:"build-emscripten"`
	// RootDocument is served for requests to exactly "/". Empty disables the mapping.
	RootDocument string `mapstructure:"root_document" default:"index.html"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate reports configuration that can never serve correctly.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.DocumentRoot == "" {
		return errors.New("document root is empty")
	}
	if c.RootDocument != "" {
		clean := filepath.ToSlash(filepath.Clean(c.RootDocument))
		if filepath.IsAbs(c.RootDocument) || clean == ".." || strings.HasPrefix(clean, "../") {
			return fmt.Errorf("root document %q must be relative to the document root", c.RootDocument)
		}
	}
	return nil
}

// WithAbsoluteRoot returns a copy of the config whose DocumentRoot is absolute.
func (c Config) WithAbsoluteRoot() (Config, error) {
	if c.DocumentRoot == "" {
		return c, errors.New("document root is empty")
	}
	abs, err := filepath.Abs(c.DocumentRoot)
	if err != nil {
		return c, fmt.Errorf("failed to resolve document root %q: %w", c.DocumentRoot, err)
	}
	c.DocumentRoot = abs
	return c, nil
}
