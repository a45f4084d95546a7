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

package page

import (
	"net/http"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/session"
	"github.com/mathtrail/identity-ui/internal/system/log"
)

// Controller serves the page of one flow kind.
type Controller struct {
	page   FlowPage
	client client.FlowClientInterface
	views  *Views
	shell  Shell
}

// NewController creates the controller for the given page.
func NewController(page FlowPage, flowClient client.FlowClientInterface, views *Views, shell Shell) *Controller {
	return &Controller{
		page:   page,
		client: flowClient,
		views:  views,
		shell:  shell,
	}
}

// Page returns the page configuration.
func (c *Controller) Page() FlowPage {
	return c.page
}

// ServeHTTP handles GET requests for the flow page.
func (c *Controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flowID := r.URL.Query().Get(FlowQueryParam)
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowPageController"),
		log.String(log.LoggerKeyFlowKind, string(c.page.Kind)), log.String(log.LoggerKeyFlowID, flowID),
		log.String(log.LoggerKeyRequestID, r.Header.Get(log.RequestIDHeader)))

	state := c.Resolve(r.Context(), flowID, r.URL.Query().Get(ReturnToQueryParam), r.Cookies())

	// The browser went away while the flow was being fetched.
	if r.Context().Err() != nil {
		logger.Debug("Request cancelled before the flow page was rendered")
		return
	}

	data := c.newPageData(r)

	switch state.Kind {
	case StateHandoff:
		logger.Debug("No flow id present, handing off to the identity service")
		http.Redirect(w, r, state.RedirectURL, http.StatusSeeOther)
	case StateReady:
		for _, renderErr := range state.RenderErrors {
			if renderErr.Unrecognized {
				logger.Debug("Skipping node", log.Error(renderErr))
			} else {
				logger.Warn("Skipping malformed node", log.Error(renderErr))
			}
		}
		data.Form = state.Form
		data.Messages = state.Form.Messages
		c.views.Render(w, http.StatusOK, TemplateFlow, data)
	default:
		logger.Error("Failed to obtain the flow", log.Error(state.Err))
		data.Failure = failureMessage(c.page.Kind, state.Err)
		data.StartOverURL = c.client.BrowserInitURL(c.page.Kind, "")
		c.views.Render(w, failureStatus(state.Err), TemplateError, data)
	}
}

func (c *Controller) newPageData(r *http.Request) *PageData {
	data := &PageData{
		ProductName: c.shell.ProductName,
		LogoutPath:  c.shell.LogoutPath,
		Title:       c.page.Title,
		Description: c.page.Description,
		Footer:      c.page.Footer,
	}
	if store, ok := session.FromContext(r.Context()); ok {
		if state := store.Snapshot(); state.IsAuthenticated() {
			data.SignedInAs = state.Identity.DisplayName()
		}
	}
	return data
}
