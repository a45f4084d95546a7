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

package session

import (
	"errors"
	"net/http"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/system/log"
	"github.com/mathtrail/identity-ui/internal/utils"
)

// Middleware gives every request its own store, initialized before the wrapped
// handler runs so pages are only rendered once loading is false.
func Middleware(flowClient client.FlowClientInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := NewStore(&CookieResolver{Client: flowClient, Cookies: r.Cookies()})
		store.Initialize(r.Context())
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), store)))
	})
}

// WhoamiResponse is the JSON view of the store.
type WhoamiResponse struct {
	Authenticated bool   `json:"authenticated"`
	IdentityID    string `json:"identity_id,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
}

// SessionHandler serves the session endpoints of the UI.
type SessionHandler struct {
	client      client.FlowClientInterface
	loggedOutTo string
}

// NewSessionHandler creates a SessionHandler. loggedOutTo is where the browser
// lands when there is no session to log out of.
func NewSessionHandler(flowClient client.FlowClientInterface, loggedOutTo string) *SessionHandler {
	return &SessionHandler{client: flowClient, loggedOutTo: loggedOutTo}
}

// HandleWhoamiRequest reports the request's session state as JSON.
func (h *SessionHandler) HandleWhoamiRequest(w http.ResponseWriter, r *http.Request) {
	store, ok := FromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "server_error", "session store not available", http.StatusInternalServerError)
		return
	}

	state := store.Snapshot()
	resp := WhoamiResponse{Authenticated: state.IsAuthenticated()}
	if state.Identity != nil {
		resp.IdentityID = state.Identity.ID
		resp.DisplayName = state.Identity.DisplayName()
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// HandleLogoutRequest clears the local session state and sends the browser to the
// identity service's logout URL, which ends the session server-side.
func (h *SessionHandler) HandleLogoutRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SessionHandler"),
		log.String(log.LoggerKeyRequestID, r.Header.Get(log.RequestIDHeader)))

	if store, ok := FromContext(r.Context()); ok {
		store.Logout()
	}

	logout, err := h.client.CreateLogoutFlow(r.Context(), r.Cookies(), r.URL.Query().Get("return_to"))
	if err != nil {
		if errors.Is(err, client.ErrNoSession) {
			logger.Debug("Logout requested without a session")
		} else {
			logger.Error("Failed to create logout flow", log.Error(err))
		}
		http.Redirect(w, r, h.loggedOutTo, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, logout.LogoutURL, http.StatusSeeOther)
}
