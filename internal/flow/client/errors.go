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
	"errors"
	"fmt"
	"net/http"

	"github.com/mathtrail/identity-ui/internal/flow/model"
)

// ErrNoSession is returned by Whoami when the caller has no active session.
var ErrNoSession = errors.New("no active session")

// HandoffError signals that no flow exists yet and the browser must be sent to
// the identity service to begin one.
type HandoffError struct {
	Kind        model.Kind
	RedirectURL string
}

func (e *HandoffError) Error() string {
	return fmt.Sprintf("no %s flow id present, browser must be redirected to %s", e.Kind, e.RedirectURL)
}

// FlowFetchError is returned when a flow could not be fetched by id. The flow is
// missing, expired or unreachable; it is terminal for the page view.
type FlowFetchError struct {
	Kind       model.Kind
	FlowID     string
	StatusCode int
	Reason     string
	Cause      error
}

func (e *FlowFetchError) Error() string {
	msg := fmt.Sprintf("failed to fetch %s flow %s", e.Kind, e.FlowID)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FlowFetchError) Unwrap() error {
	return e.Cause
}

// Expired reports whether the identity service no longer knows the flow.
func (e *FlowFetchError) Expired() bool {
	return e.StatusCode == http.StatusGone
}

// NotFound reports whether the flow id is unknown to the identity service.
func (e *FlowFetchError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// errorEnvelope is the identity service's generic JSON error body.
type errorEnvelope struct {
	Error struct {
		ID      string `json:"id"`
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e errorEnvelope) reason() string {
	if e.Error.Reason != "" {
		return e.Error.Reason
	}
	return e.Error.Message
}
