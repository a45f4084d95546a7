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
	"context"
	"errors"
	"net/http"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/flow/model"
	"github.com/mathtrail/identity-ui/internal/flow/render"
)

// StateKind is the terminal state of one page view.
type StateKind int

const (
	// StateHandoff sends the browser to the identity service to begin a flow.
	StateHandoff StateKind = iota
	// StateReady renders the fetched flow.
	StateReady
	// StateFailed renders no form.
	StateFailed
)

// FormView is the form built from a successfully fetched flow. Action and Method
// always come from that flow.
type FormView struct {
	FlowID   string
	Action   string
	Method   string
	Messages []render.Message
	Elements []render.Element
}

// PageState is the outcome of resolving one page view.
type PageState struct {
	Kind         StateKind
	RedirectURL  string
	Form         *FormView
	Err          error
	RenderErrors []*render.RenderError
}

// newFormView renders the flow. Nodes keep the order they were received in. No
// view is built for a flow without a valid action and method.
func newFormView(flow *model.Flow, opts render.Options) (*FormView, []*render.RenderError, error) {
	action, method, ok := flow.UI.SubmitTarget()
	if !ok {
		return nil, nil, errors.New("flow has no valid action and method")
	}

	elements, renderErrs := render.RenderNodes(flow.UI.Nodes, opts)
	return &FormView{
		FlowID:   flow.ID,
		Action:   action,
		Method:   method,
		Messages: render.RenderFlowMessages(flow.UI.Messages),
		Elements: elements,
	}, renderErrs, nil
}

// failureStatus maps a flow failure onto the HTTP status of the error page.
func failureStatus(err error) int {
	var fetchErr *client.FlowFetchError
	if errors.As(err, &fetchErr) {
		switch {
		case fetchErr.Expired():
			return http.StatusGone
		case fetchErr.NotFound():
			return http.StatusNotFound
		}
	}
	return http.StatusBadGateway
}

// failureMessage is the text shown when no flow could be obtained.
func failureMessage(kind model.Kind, err error) string {
	var fetchErr *client.FlowFetchError
	if errors.As(err, &fetchErr) && (fetchErr.Expired() || fetchErr.NotFound()) {
		return "This " + string(kind) + " request has expired or is no longer valid. Please start over."
	}
	return "Something went wrong, please try again."
}

// Resolve runs the page state machine for one view without touching the response.
func (c *Controller) Resolve(ctx context.Context, flowID, returnTo string, cookies []*http.Cookie) PageState {
	flow, err := client.ResolveFlow(ctx, c.client, c.page.Kind, flowID, returnTo, cookies)
	if err != nil {
		var handoff *client.HandoffError
		if errors.As(err, &handoff) {
			return PageState{Kind: StateHandoff, RedirectURL: handoff.RedirectURL}
		}
		return PageState{Kind: StateFailed, Err: err}
	}

	form, renderErrs, err := newFormView(flow, render.Options{})
	if err != nil {
		return PageState{Kind: StateFailed, Err: &client.FlowFetchError{
			Kind: c.page.Kind, FlowID: flow.ID, Reason: "malformed flow", Cause: err,
		}}
	}
	return PageState{Kind: StateReady, Form: form, RenderErrors: renderErrs}
}
