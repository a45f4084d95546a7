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

// Package services registers the HTTP routes of each service on the server multiplexer.
package services

import (
	"net/http"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/flow/model"
	"github.com/mathtrail/identity-ui/internal/flow/page"
	"github.com/mathtrail/identity-ui/internal/session"
	"github.com/mathtrail/identity-ui/internal/system/middleware"
)

// FlowPageService serves one page per self-service flow kind.
type FlowPageService struct {
	client      client.FlowClientInterface
	controllers []*page.Controller
}

// NewFlowPageService creates the flow pages and registers their routes.
func NewFlowPageService(mux *http.ServeMux, flowClient client.FlowClientInterface, views *page.Views,
	shell page.Shell) *FlowPageService {

	instance := &FlowPageService{client: flowClient}
	for _, p := range page.DefaultPages(shell.ProductName) {
		instance.controllers = append(instance.controllers, page.NewController(p, flowClient, views, shell))
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the flow pages and the fallback redirect to the login page.
func (s *FlowPageService) RegisterRoutes(mux *http.ServeMux) {

	for _, controller := range s.controllers {
		mux.Handle("GET "+controller.Page().Path,
			middleware.WithPageHeaders(session.Middleware(s.client, controller)))
	}
	mux.HandleFunc("GET /", redirectToLogin)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {

	http.Redirect(w, r, page.PagePath(model.KindLogin), http.StatusFound)
}
