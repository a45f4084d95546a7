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

package services

import (
	"net/http"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/flow/model"
	"github.com/mathtrail/identity-ui/internal/flow/page"
	"github.com/mathtrail/identity-ui/internal/session"
)

const (
	// LogoutPath ends the caller's session.
	LogoutPath = "/auth/logout"
	// WhoamiPath reports the caller's session state.
	WhoamiPath = "/auth/whoami"
)

// SessionService serves the session endpoints.
type SessionService struct {
	client  client.FlowClientInterface
	handler *session.SessionHandler
}

// NewSessionService creates the session endpoints and registers their routes.
func NewSessionService(mux *http.ServeMux, flowClient client.FlowClientInterface) *SessionService {

	instance := &SessionService{
		client:  flowClient,
		handler: session.NewSessionHandler(flowClient, page.PagePath(model.KindLogin)),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the whoami and logout routes.
func (s *SessionService) RegisterRoutes(mux *http.ServeMux) {

	mux.Handle("GET "+WhoamiPath,
		session.Middleware(s.client, http.HandlerFunc(s.handler.HandleWhoamiRequest)))
	mux.Handle("GET "+LogoutPath,
		session.Middleware(s.client, http.HandlerFunc(s.handler.HandleLogoutRequest)))
}
