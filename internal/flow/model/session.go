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

package model

// Session is the identity service's session record for the current caller.
type Session struct {
	ID              string    `json:"id"`
	Active          bool      `json:"active"`
	ExpiresAt       string    `json:"expires_at,omitempty"`
	AuthenticatedAt string    `json:"authenticated_at,omitempty"`
	Identity        *Identity `json:"identity,omitempty"`
}

// Identity is the subject embedded in a session.
type Identity struct {
	ID       string         `json:"id"`
	SchemaID string         `json:"schema_id,omitempty"`
	State    string         `json:"state,omitempty"`
	Traits   map[string]any `json:"traits,omitempty"`
}

// DisplayName returns the identity's email trait when present, else its id.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	if email, ok := i.Traits["email"].(string); ok && email != "" {
		return email
	}
	return i.ID
}

// LogoutFlow is the identity service's answer to a browser logout request.
type LogoutFlow struct {
	LogoutURL   string `json:"logout_url"`
	LogoutToken string `json:"logout_token"`
}
