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

// Package cert loads the optional TLS configuration of the server.
package cert

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/mathtrail/identity-ui/internal/system/config"
)

// GetTLSConfig loads the TLS configuration from the certificate and key files.
// It returns nil when TLS is not configured, in which case the server listens on plain HTTP.
func GetTLSConfig(cfg *config.SecurityConfig, homeDirectory string) (*tls.Config, error) {

	if !cfg.TLSEnabled() {
		return nil, nil
	}

	certFilePath := resolve(homeDirectory, cfg.CertFile)
	keyFilePath := resolve(homeDirectory, cfg.KeyFile)

	if _, err := os.Stat(certFilePath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("certificate file not found at %s", certFilePath)
	}
	if _, err := os.Stat(keyFilePath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("key file not found at %s", keyFilePath)
	}

	certificate, err := tls.LoadX509KeyPair(certFilePath, keyFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load key pair: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{certificate},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func resolve(homeDirectory, file string) string {

	if path.IsAbs(file) {
		return file
	}
	return path.Join(homeDirectory, file)
}
