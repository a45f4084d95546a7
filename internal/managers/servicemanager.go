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

// Package managers wires the services onto the server multiplexer.
package managers

import (
	"net/http"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/flow/page"
	"github.com/mathtrail/identity-ui/internal/policy"
	"github.com/mathtrail/identity-ui/internal/services"
	"github.com/mathtrail/identity-ui/internal/system/config"
	syshttp "github.com/mathtrail/identity-ui/internal/system/http"
	"github.com/mathtrail/identity-ui/internal/system/log"
)

// ServiceManagerInterface registers every service of the server.
type ServiceManagerInterface interface {
	RegisterServices() error
}

// ServiceManager is the default implementation of ServiceManagerInterface.
type ServiceManager struct {
	mux        *http.ServeMux
	config     *config.Config
	flowClient client.FlowClientInterface
	httpClient syshttp.HTTPClientInterface
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, cfg *config.Config, flowClient client.FlowClientInterface,
	httpClient syshttp.HTTPClientInterface) ServiceManagerInterface {

	return &ServiceManager{
		mux:        mux,
		config:     cfg,
		flowClient: flowClient,
		httpClient: httpClient,
	}
}

// RegisterServices registers the flow pages, the session endpoints, the health probes
// and, when a permission service is configured, the permission endpoint.
func (sm *ServiceManager) RegisterServices() error {

	views, err := page.NewViews()
	if err != nil {
		return err
	}
	shell := page.Shell{ProductName: sm.config.UI.ProductName, LogoutPath: services.LogoutPath}

	services.NewFlowPageService(sm.mux, sm.flowClient, views, shell)
	services.NewSessionService(sm.mux, sm.flowClient)
	services.NewHealthCheckService(sm.mux, sm.flowClient)

	if sm.config.Policy.CheckURL != "" {
		checker := policy.NewHTTPRelationChecker(sm.config.Policy.CheckURL, sm.httpClient)
		services.NewPermissionService(sm.mux, sm.flowClient, checker)
	} else {
		log.GetLogger().Info("Permission service not configured, permission checks are disabled")
	}

	return nil
}
