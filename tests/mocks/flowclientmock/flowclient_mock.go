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

// Package flowclientmock provides a mock implementation of the identity service flow client.
package flowclientmock

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/flow/model"
)

// GetFlowCall records the arguments passed to GetFlow.
type GetFlowCall struct {
	Kind    model.Kind
	FlowID  string
	Cookies []*http.Cookie
}

// MockFlowClient is a mock implementation of the FlowClientInterface.
type MockFlowClient struct {
	mu sync.Mutex

	// MockGetFlow defines the behavior for the GetFlow method.
	MockGetFlow func(ctx context.Context, kind model.Kind, flowID string) (*model.Flow, error)
	// MockWhoami defines the behavior for the Whoami method.
	MockWhoami func(ctx context.Context, cookies []*http.Cookie) (*model.Session, error)
	// MockCreateLogoutFlow defines the behavior for the CreateLogoutFlow method.
	MockCreateLogoutFlow func(ctx context.Context, cookies []*http.Cookie, returnTo string) (*model.LogoutFlow, error)
	// MockCheckReadiness defines the behavior for the CheckReadiness method.
	MockCheckReadiness func(ctx context.Context) error

	// GetFlowCalls tracks the arguments passed to GetFlow.
	GetFlowCalls []GetFlowCall
	// WhoamiCalls counts the calls to Whoami.
	WhoamiCalls int
}

var _ client.FlowClientInterface = (*MockFlowClient)(nil)

// GetFlow mocks the GetFlow method of the FlowClientInterface.
func (m *MockFlowClient) GetFlow(ctx context.Context, kind model.Kind, flowID string,
	cookies []*http.Cookie) (*model.Flow, error) {
	m.mu.Lock()
	m.GetFlowCalls = append(m.GetFlowCalls, GetFlowCall{Kind: kind, FlowID: flowID, Cookies: cookies})
	m.mu.Unlock()

	if m.MockGetFlow != nil {
		return m.MockGetFlow(ctx, kind, flowID)
	}
	return nil, &client.FlowFetchError{Kind: kind, FlowID: flowID, StatusCode: http.StatusNotFound}
}

// BrowserInitURL mocks the BrowserInitURL method of the FlowClientInterface.
func (m *MockFlowClient) BrowserInitURL(kind model.Kind, returnTo string) string {
	u := fmt.Sprintf("https://id.example.com/self-service/%s/browser", kind)
	if returnTo != "" {
		u += "?return_to=" + returnTo
	}
	return u
}

// Whoami mocks the Whoami method of the FlowClientInterface.
func (m *MockFlowClient) Whoami(ctx context.Context, cookies []*http.Cookie) (*model.Session, error) {
	m.mu.Lock()
	m.WhoamiCalls++
	m.mu.Unlock()

	if m.MockWhoami != nil {
		return m.MockWhoami(ctx, cookies)
	}
	return nil, client.ErrNoSession
}

// CreateLogoutFlow mocks the CreateLogoutFlow method of the FlowClientInterface.
func (m *MockFlowClient) CreateLogoutFlow(ctx context.Context, cookies []*http.Cookie,
	returnTo string) (*model.LogoutFlow, error) {
	if m.MockCreateLogoutFlow != nil {
		return m.MockCreateLogoutFlow(ctx, cookies, returnTo)
	}
	return nil, errors.New("logout not mocked")
}

// CheckReadiness mocks the CheckReadiness method of the FlowClientInterface.
func (m *MockFlowClient) CheckReadiness(ctx context.Context) error {
	if m.MockCheckReadiness != nil {
		return m.MockCheckReadiness(ctx)
	}
	return nil
}

// FetchCount returns the number of GetFlow calls so far.
func (m *MockFlowClient) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetFlowCalls)
}
