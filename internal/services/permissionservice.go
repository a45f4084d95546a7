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
	"github.com/mathtrail/identity-ui/internal/policy"
	"github.com/mathtrail/identity-ui/internal/session"
)

// PermissionPath answers permission checks for the signed-in identity.
const PermissionPath = "/auth/permissions"

// PermissionService serves permission checks.
type PermissionService struct {
	client  client.FlowClientInterface
	handler *policy.PermissionHandler
}

// NewPermissionService creates the permission endpoint and registers its route.
func NewPermissionService(mux *http.ServeMux, flowClient client.FlowClientInterface,
	checker policy.RelationCheckerInterface) *PermissionService {

	instance := &PermissionService{
		client:  flowClient,
		handler: policy.NewPermissionHandler(checker),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the permission route.
func (s *PermissionService) RegisterRoutes(mux *http.ServeMux) {

	mux.Handle("GET "+PermissionPath,
		session.Middleware(s.client, http.HandlerFunc(s.handler.HandlePermissionRequest)))
}
