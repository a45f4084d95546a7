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

// Package client talks to the identity service's public self-service API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mathtrail/identity-ui/internal/flow/model"
	"github.com/mathtrail/identity-ui/internal/system/config"
	syshttp "github.com/mathtrail/identity-ui/internal/system/http"
	"github.com/mathtrail/identity-ui/internal/system/log"
)

const maxResponseBytes = 1 << 20

// FlowClientInterface defines the calls made to the identity service.
type FlowClientInterface interface {
	GetFlow(ctx context.Context, kind model.Kind, flowID string, cookies []*http.Cookie) (*model.Flow, error)
	BrowserInitURL(kind model.Kind, returnTo string) string
	Whoami(ctx context.Context, cookies []*http.Cookie) (*model.Session, error)
	CreateLogoutFlow(ctx context.Context, cookies []*http.Cookie, returnTo string) (*model.LogoutFlow, error)
	CheckReadiness(ctx context.Context) error
}

// FlowClient is the default implementation of FlowClientInterface. It performs no
// retries and no caching.
type FlowClient struct {
	publicURL  string
	browserURL string
	httpClient syshttp.HTTPClientInterface
}

// NewFlowClient creates a FlowClient from the identity configuration.
func NewFlowClient(cfg config.IdentityConfig, httpClient syshttp.HTTPClientInterface) *FlowClient {
	return &FlowClient{
		publicURL:  cfg.PublicURL,
		browserURL: cfg.BrowserURL,
		httpClient: httpClient,
	}
}

// ResolveFlow returns the flow identified by flowID. When flowID is empty no flow
// exists yet; a *HandoffError carrying the browser initiation URL is returned and
// the identity service is not contacted.
func ResolveFlow(ctx context.Context, c FlowClientInterface, kind model.Kind, flowID, returnTo string,
	cookies []*http.Cookie) (*model.Flow, error) {
	if flowID == "" {
		return nil, &HandoffError{Kind: kind, RedirectURL: c.BrowserInitURL(kind, returnTo)}
	}
	return c.GetFlow(ctx, kind, flowID, cookies)
}

// BrowserInitURL returns the identity service endpoint that begins a flow of the given kind in a browser.
func (c *FlowClient) BrowserInitURL(kind model.Kind, returnTo string) string {
	u := fmt.Sprintf("%s/self-service/%s/browser", c.browserURL, kind)
	if returnTo != "" {
		u += "?" + url.Values{"return_to": {returnTo}}.Encode()
	}
	return u
}

// GetFlow fetches the flow by id. Every failure is reported as a *FlowFetchError.
func (c *FlowClient) GetFlow(ctx context.Context, kind model.Kind, flowID string,
	cookies []*http.Cookie) (*model.Flow, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowClient"),
		log.String(log.LoggerKeyFlowKind, string(kind)), log.String(log.LoggerKeyFlowID, flowID))

	fetchErr := func(status int, reason string, cause error) error {
		return &FlowFetchError{Kind: kind, FlowID: flowID, StatusCode: status, Reason: reason, Cause: cause}
	}

	if !kind.IsValid() {
		return nil, fetchErr(0, "", fmt.Errorf("unsupported flow kind %q", kind))
	}

	endpoint := fmt.Sprintf("%s/self-service/%s/flows?%s", c.publicURL, kind, url.Values{"id": {flowID}}.Encode())
	resp, err := c.get(ctx, endpoint, cookies)
	if err != nil {
		logger.Error("Failed to reach the identity service", log.Error(err))
		return nil, fetchErr(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fetchErr(resp.StatusCode, "", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		_ = json.Unmarshal(body, &envelope)
		logger.Debug("Identity service rejected the flow fetch", log.Int("status", resp.StatusCode),
			log.String("errorId", envelope.Error.ID))
		return nil, fetchErr(resp.StatusCode, envelope.reason(), nil)
	}

	var flow model.Flow
	if err := json.Unmarshal(body, &flow); err != nil {
		logger.Error("Failed to decode flow", log.Error(err))
		return nil, fetchErr(resp.StatusCode, "malformed flow", err)
	}
	if flow.ID == "" {
		return nil, fetchErr(resp.StatusCode, "malformed flow", errors.New("flow has no id"))
	}
	if _, _, ok := flow.UI.SubmitTarget(); !ok {
		logger.Error("Flow has no usable submission target", log.String("method", flow.UI.Method))
		return nil, fetchErr(resp.StatusCode, "malformed flow", errors.New("flow has no valid action and method"))
	}

	logger.Debug("Fetched flow", log.Int("nodes", len(flow.UI.Nodes)))
	return &flow, nil
}

// Whoami resolves the caller's session from its cookies. ErrNoSession is returned
// when the identity service reports no active session.
func (c *FlowClient) Whoami(ctx context.Context, cookies []*http.Cookie) (*model.Session, error) {
	resp, err := c.get(ctx, c.publicURL+"/sessions/whoami", cookies)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrNoSession
	default:
		return nil, fmt.Errorf("whoami returned status %d", resp.StatusCode)
	}

	var session model.Session
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// CreateLogoutFlow asks the identity service for a browser logout URL for the caller's session.
func (c *FlowClient) CreateLogoutFlow(ctx context.Context, cookies []*http.Cookie,
	returnTo string) (*model.LogoutFlow, error) {
	endpoint := c.publicURL + "/self-service/logout/browser"
	if returnTo != "" {
		endpoint += "?" + url.Values{"return_to": {returnTo}}.Encode()
	}

	resp, err := c.get(ctx, endpoint, cookies)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrNoSession
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logout returned status %d", resp.StatusCode)
	}

	var logout model.LogoutFlow
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&logout); err != nil {
		return nil, fmt.Errorf("failed to decode logout flow: %w", err)
	}
	if logout.LogoutURL == "" {
		return nil, errors.New("logout flow has no logout_url")
	}
	return &logout, nil
}

// CheckReadiness probes the identity service's readiness endpoint.
func (c *FlowClient) CheckReadiness(ctx context.Context) error {
	resp, err := c.get(ctx, c.publicURL+"/health/ready", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity service readiness returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *FlowClient) get(ctx context.Context, endpoint string, cookies []*http.Cookie) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return c.httpClient.Do(req)
}
