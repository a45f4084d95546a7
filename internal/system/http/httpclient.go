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

// Package http provides the shared HTTP client used for outbound calls to the identity service.
package http

import (
	"net/http"
	"time"

	"github.com/mathtrail/identity-ui/internal/system/log"
)

// UserAgent identifies this process to the identity and permission services.
const UserAgent = "mathtrail-identity-ui"

// HTTPClientInterface defines the interface for HTTP client operations.
type HTTPClientInterface interface {
	// Do executes an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient implements HTTPClientInterface on top of net/http.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClientWithTimeout creates a new HTTPClient with the given timeout.
// Redirects are never followed: the identity service answers browser-facing
// endpoints with redirects that are meant for the browser, not for this process.
func NewHTTPClientWithTimeout(timeout time.Duration) HTTPClientInterface {
	return &HTTPClient{
		client: &http.Client{
			Timeout:       timeout,
			CheckRedirect: doNotFollow,
		},
	}
}

// NewHTTPClientWithConfig creates a new HTTPClient around a caller supplied client.
func NewHTTPClientWithConfig(client *http.Client) HTTPClientInterface {
	return &HTTPClient{
		client: client,
	}
}

// Do executes the request on a copy carrying the client's User-Agent, and logs the
// outcome at debug level without the query string, which may carry flow ids.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HTTPClient"),
		log.String("method", req.Method), log.String("host", req.URL.Host),
		log.String("path", req.URL.Path), log.Duration("elapsed", time.Since(start)))
	if err != nil {
		logger.Debug("Outbound request failed", log.Error(err))
		return nil, err
	}
	logger.Debug("Outbound request completed", log.Int("status", resp.StatusCode))
	return resp, nil
}

func doNotFollow(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}
