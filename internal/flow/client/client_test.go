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

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mathtrail/identity-ui/internal/flow/model"
	"github.com/mathtrail/identity-ui/internal/system/config"
	syshttp "github.com/mathtrail/identity-ui/internal/system/http"
)

const testFlowJSON = `{"id":"f-1","ui":{"action":"https://id.example.com/self-service/login?flow=f-1","method":"POST",
"nodes":[{"type":"input","attributes":{"node_type":"input","name":"csrf_token","type":"hidden","value":"abc"},"meta":{}}]}}`

type FlowClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	mux      *http.ServeMux
	client   *FlowClient
	requests atomic.Int32
}

func TestFlowClientSuite(t *testing.T) {
	suite.Run(t, new(FlowClientTestSuite))
}

func (suite *FlowClientTestSuite) SetupTest() {
	suite.mux = http.NewServeMux()
	suite.requests.Store(0)
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.requests.Add(1)
		suite.mux.ServeHTTP(w, r)
	}))
	suite.client = NewFlowClient(config.IdentityConfig{
		PublicURL:  suite.server.URL,
		BrowserURL: "https://id.example.com",
	}, syshttp.NewHTTPClientWithTimeout(time.Second))
}

func (suite *FlowClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *FlowClientTestSuite) TestBrowserInitURL() {
	assert.Equal(suite.T(), "https://id.example.com/self-service/login/browser",
		suite.client.BrowserInitURL(model.KindLogin, ""))
	assert.Equal(suite.T(), "https://id.example.com/self-service/recovery/browser?return_to=https%3A%2F%2Fapp.example.com%2F",
		suite.client.BrowserInitURL(model.KindRecovery, "https://app.example.com/"))
}

func (suite *FlowClientTestSuite) TestResolveFlowWithoutIDHandsOff() {
	flow, err := ResolveFlow(context.Background(), suite.client, model.KindLogin, "", "", nil)

	assert.Nil(suite.T(), flow)
	var handoff *HandoffError
	require.ErrorAs(suite.T(), err, &handoff)
	assert.Equal(suite.T(), "https://id.example.com/self-service/login/browser", handoff.RedirectURL)
	assert.Equal(suite.T(), int32(0), suite.requests.Load())
}

func (suite *FlowClientTestSuite) TestGetFlowForwardsCookiesAndDecodes() {
	suite.mux.HandleFunc("GET /self-service/login/flows", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "f-1", r.URL.Query().Get("id"))
		cookie, err := r.Cookie("csrf_token_x")
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), "secret", cookie.Value)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testFlowJSON))
	})

	flow, err := ResolveFlow(context.Background(), suite.client, model.KindLogin, "f-1", "",
		[]*http.Cookie{{Name: "csrf_token_x", Value: "secret"}})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "f-1", flow.ID)
	assert.Equal(suite.T(), "POST", flow.UI.Method)
	require.Len(suite.T(), flow.UI.Nodes, 1)
}

func (suite *FlowClientTestSuite) TestGetFlowExpired() {
	suite.mux.HandleFunc("GET /self-service/registration/flows", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
		_, _ = w.Write([]byte(`{"error":{"id":"self_service_flow_expired","code":410,"reason":"The flow has expired."}}`))
	})

	flow, err := suite.client.GetFlow(context.Background(), model.KindRegistration, "f-2", nil)
	assert.Nil(suite.T(), flow)

	var fetchErr *FlowFetchError
	require.ErrorAs(suite.T(), err, &fetchErr)
	assert.True(suite.T(), fetchErr.Expired())
	assert.False(suite.T(), fetchErr.NotFound())
	assert.Equal(suite.T(), "The flow has expired.", fetchErr.Reason)
	assert.Equal(suite.T(), model.KindRegistration, fetchErr.Kind)
}

func (suite *FlowClientTestSuite) TestGetFlowNotFound() {
	suite.mux.HandleFunc("GET /self-service/recovery/flows", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := suite.client.GetFlow(context.Background(), model.KindRecovery, "nope", nil)

	var fetchErr *FlowFetchError
	require.ErrorAs(suite.T(), err, &fetchErr)
	assert.True(suite.T(), fetchErr.NotFound())
}

func (suite *FlowClientTestSuite) TestGetFlowMalformedBody() {
	suite.mux.HandleFunc("GET /self-service/verification/flows", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	})

	_, err := suite.client.GetFlow(context.Background(), model.KindVerification, "f-3", nil)

	var fetchErr *FlowFetchError
	require.ErrorAs(suite.T(), err, &fetchErr)
	assert.Equal(suite.T(), "malformed flow", fetchErr.Reason)
	assert.NotNil(suite.T(), errors.Unwrap(err))
}

func (suite *FlowClientTestSuite) TestGetFlowWithoutID() {
	suite.mux.HandleFunc("GET /self-service/login/flows", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ui":{"action":"x","method":"POST","nodes":[]}}`))
	})

	_, err := suite.client.GetFlow(context.Background(), model.KindLogin, "f-4", nil)

	var fetchErr *FlowFetchError
	assert.ErrorAs(suite.T(), err, &fetchErr)
}

func (suite *FlowClientTestSuite) TestGetFlowWithoutSubmissionTarget() {
	bodies := map[string]string{
		"no-ui":      `{"id":"no-ui","ui":{"nodes":[{"type":"input","attributes":{"node_type":"input","name":"csrf_token","type":"hidden","value":"abc"},"meta":{}}]}}`,
		"no-action":  `{"id":"no-action","ui":{"action":"","method":"POST","nodes":[]}}`,
		"no-method":  `{"id":"no-method","ui":{"action":"https://id.example.com/self-service/login?flow=no-method","method":"","nodes":[]}}`,
		"bad-method": `{"id":"bad-method","ui":{"action":"https://id.example.com/self-service/login?flow=bad-method","method":"DELETE","nodes":[]}}`,
	}
	suite.mux.HandleFunc("GET /self-service/login/flows", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bodies[r.URL.Query().Get("id")]))
	})

	for id := range bodies {
		flow, err := suite.client.GetFlow(context.Background(), model.KindLogin, id, nil)

		assert.Nil(suite.T(), flow, id)
		var fetchErr *FlowFetchError
		require.ErrorAs(suite.T(), err, &fetchErr, id)
		assert.Equal(suite.T(), "malformed flow", fetchErr.Reason, id)
	}
}

func (suite *FlowClientTestSuite) TestGetFlowAcceptsLowerCaseMethod() {
	suite.mux.HandleFunc("GET /self-service/login/flows", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"f-8","ui":{"action":"https://id.example.com/self-service/login?flow=f-8","method":"post","nodes":[]}}`))
	})

	flow, err := suite.client.GetFlow(context.Background(), model.KindLogin, "f-8", nil)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "f-8", flow.ID)
}

func (suite *FlowClientTestSuite) TestGetFlowToleratesMalformedNodes() {
	suite.mux.HandleFunc("GET /self-service/login/flows", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"f-9","ui":{"action":"https://id.example.com/self-service/login?flow=f-9","method":"POST",
"nodes":[42,{"type":"input","attributes":{"node_type":"input","name":"csrf_token","type":"hidden","value":"abc"},"meta":{"label":{"id":"x"}}},
{"type":"input","attributes":{"node_type":"input","name":"csrf_token","type":"hidden","value":"abc"},"meta":{}}]}}`))
	})

	flow, err := suite.client.GetFlow(context.Background(), model.KindLogin, "f-9", nil)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), flow.UI.Nodes, 3)
	assert.IsType(suite.T(), &model.UnknownAttributes{}, flow.UI.Nodes[0].Attributes)
	assert.IsType(suite.T(), &model.UnknownAttributes{}, flow.UI.Nodes[1].Attributes)
	assert.IsType(suite.T(), &model.InputAttributes{}, flow.UI.Nodes[2].Attributes)
}

func (suite *FlowClientTestSuite) TestGetFlowNetworkFailure() {
	suite.server.Close()

	_, err := suite.client.GetFlow(context.Background(), model.KindLogin, "f-5", nil)

	var fetchErr *FlowFetchError
	require.ErrorAs(suite.T(), err, &fetchErr)
	assert.Equal(suite.T(), 0, fetchErr.StatusCode)
	assert.NotNil(suite.T(), fetchErr.Cause)
}

func (suite *FlowClientTestSuite) TestGetFlowUnsupportedKind() {
	_, err := suite.client.GetFlow(context.Background(), model.Kind("settings"), "f-6", nil)

	var fetchErr *FlowFetchError
	assert.ErrorAs(suite.T(), err, &fetchErr)
	assert.Equal(suite.T(), int32(0), suite.requests.Load())
}

func (suite *FlowClientTestSuite) TestWhoami() {
	suite.mux.HandleFunc("GET /sessions/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"s1","active":true,"identity":{"id":"u1","traits":{"email":"a@b.c"}}}`))
	})

	session, err := suite.client.Whoami(context.Background(), nil)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "s1", session.ID)
	assert.Equal(suite.T(), "u1", session.Identity.ID)
}

func (suite *FlowClientTestSuite) TestWhoamiNoSession() {
	suite.mux.HandleFunc("GET /sessions/whoami", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := suite.client.Whoami(context.Background(), nil)
	assert.ErrorIs(suite.T(), err, ErrNoSession)
}

func (suite *FlowClientTestSuite) TestWhoamiServerError() {
	suite.mux.HandleFunc("GET /sessions/whoami", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := suite.client.Whoami(context.Background(), nil)
	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, ErrNoSession)
}

func (suite *FlowClientTestSuite) TestCreateLogoutFlow() {
	suite.mux.HandleFunc("GET /self-service/logout/browser", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "https://app.example.com/", r.URL.Query().Get("return_to"))
		_, _ = w.Write([]byte(`{"logout_url":"https://id.example.com/self-service/logout?token=t","logout_token":"t"}`))
	})

	logout, err := suite.client.CreateLogoutFlow(context.Background(), nil, "https://app.example.com/")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://id.example.com/self-service/logout?token=t", logout.LogoutURL)
}

func (suite *FlowClientTestSuite) TestCreateLogoutFlowWithoutSession() {
	suite.mux.HandleFunc("GET /self-service/logout/browser", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := suite.client.CreateLogoutFlow(context.Background(), nil, "")
	assert.ErrorIs(suite.T(), err, ErrNoSession)
}

func (suite *FlowClientTestSuite) TestCheckReadiness() {
	suite.mux.HandleFunc("GET /health/ready", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	assert.NoError(suite.T(), suite.client.CheckReadiness(context.Background()))
}

func (suite *FlowClientTestSuite) TestCheckReadinessDown() {
	suite.mux.HandleFunc("GET /health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Error(suite.T(), suite.client.CheckReadiness(context.Background()))
}

func (suite *FlowClientTestSuite) TestFlowFetchErrorMessage() {
	err := &FlowFetchError{Kind: model.KindLogin, FlowID: "f", StatusCode: 410, Reason: "expired"}
	assert.Equal(suite.T(), "failed to fetch login flow f: status 410: expired", err.Error())
}
