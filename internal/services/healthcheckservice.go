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

	"github.com/mathtrail/identity-ui/internal/system/healthcheck"
)

// HealthCheckService serves the liveness and readiness probes.
type HealthCheckService struct {
	handler *healthcheck.HealthCheckHandler
}

// NewHealthCheckService creates the probes and registers their routes. Readiness
// probes the identity service.
func NewHealthCheckService(mux *http.ServeMux, identityService healthcheck.DependencyInterface) *HealthCheckService {

	instance := &HealthCheckService{
		handler: healthcheck.NewHealthCheckHandler(
			healthcheck.NewHealthCheckService("IdentityService", identityService)),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the health check routes.
func (s *HealthCheckService) RegisterRoutes(mux *http.ServeMux) {

	mux.HandleFunc("GET /health/liveness", s.handler.HandleLivenessRequest)
	mux.HandleFunc("GET /health/readiness", s.handler.HandleReadinessRequest)
}
