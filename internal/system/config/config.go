/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading the deployment configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

const (
	// EnvIdentityPublicURL overrides identity.public_url.
	EnvIdentityPublicURL = "IDUI_IDENTITY_PUBLIC_URL"
	// EnvIdentityBrowserURL overrides identity.browser_url.
	EnvIdentityBrowserURL = "IDUI_IDENTITY_BROWSER_URL"

	defaultPort           = 3000
	defaultRequestTimeout = 10 * time.Second
	defaultProductName    = "MathTrail"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
}

// SecurityConfig holds the TLS configuration details. TLS is enabled only when both files are set.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// TLSEnabled reports whether both a certificate and a key file are configured.
func (s SecurityConfig) TLSEnabled() bool {

	return s.CertFile != "" && s.KeyFile != ""
}

// IdentityConfig holds the identity service endpoints.
type IdentityConfig struct {
	// PublicURL is the base URL this process uses for API calls.
	PublicURL string `yaml:"public_url"`
	// BrowserURL is the base URL the browser is redirected to. Defaults to PublicURL.
	BrowserURL string `yaml:"browser_url"`
	// RequestTimeout bounds every outbound call to the identity service.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// UIConfig holds presentation details.
type UIConfig struct {
	ProductName string `yaml:"product_name"`
}

// PolicyConfig holds the permission service endpoint. Permission checks are
// disabled when CheckURL is empty.
type PolicyConfig struct {
	CheckURL string `yaml:"check_url"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Identity IdentityConfig `yaml:"identity"`
	UI       UIConfig       `yaml:"ui"`
	Policy   PolicyConfig   `yaml:"policy"`
	Log      LogConfig      `yaml:"log"`
}

// LoadConfig loads the configurations from the specified YAML file, applies
// environment overrides and fills in defaults.
func LoadConfig(path string) (*Config, error) {

	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyOverrides()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the mandatory settings are present.
func (c *Config) Validate() error {

	if c.Identity.PublicURL == "" {
		return errors.New("identity.public_url is required")
	}
	if (c.Security.CertFile == "") != (c.Security.KeyFile == "") {
		return errors.New("security.cert_file and security.key_file must be set together")
	}
	return nil
}

func (c *Config) applyOverrides() {

	if v := os.Getenv(EnvIdentityPublicURL); v != "" {
		c.Identity.PublicURL = v
	}
	if v := os.Getenv(EnvIdentityBrowserURL); v != "" {
		c.Identity.BrowserURL = v
	}
}

func (c *Config) applyDefaults() {

	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	c.Identity.PublicURL = strings.TrimRight(c.Identity.PublicURL, "/")
	if c.Identity.BrowserURL == "" {
		c.Identity.BrowserURL = c.Identity.PublicURL
	}
	c.Identity.BrowserURL = strings.TrimRight(c.Identity.BrowserURL, "/")
	if c.Identity.RequestTimeout <= 0 {
		c.Identity.RequestTimeout = defaultRequestTimeout
	}
	c.Policy.CheckURL = strings.TrimRight(c.Policy.CheckURL, "/")
	if c.UI.ProductName == "" {
		c.UI.ProductName = defaultProductName
	}
}
