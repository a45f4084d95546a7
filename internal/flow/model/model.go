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

// Package model defines the self-service flow, UI node and session structures
// returned by the identity service.
package model

import (
	"net/http"
	"strings"
)

// Kind identifies a self-service flow.
type Kind string

const (
	// KindLogin is the login flow.
	KindLogin Kind = "login"
	// KindRegistration is the registration flow.
	KindRegistration Kind = "registration"
	// KindRecovery is the account recovery flow.
	KindRecovery Kind = "recovery"
	// KindVerification is the address verification flow.
	KindVerification Kind = "verification"
)

// Kinds lists every supported flow kind.
var Kinds = []Kind{KindLogin, KindRegistration, KindRecovery, KindVerification}

// IsValid reports whether k is one of the supported flow kinds.
func (k Kind) IsValid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Flow is a server-issued, time-boxed description of one self-service operation.
// It is never mutated after being fetched.
type Flow struct {
	ID         string `json:"id"`
	Type       string `json:"type,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	IssuedAt   string `json:"issued_at,omitempty"`
	RequestURL string `json:"request_url,omitempty"`
	ReturnTo   string `json:"return_to,omitempty"`
	State      string `json:"state,omitempty"`
	UI         UI     `json:"ui"`
}

// UI is the presentation descriptor of a flow.
type UI struct {
	Action   string    `json:"action"`
	Method   string    `json:"method"`
	Nodes    []Node    `json:"nodes"`
	Messages []Message `json:"messages,omitempty"`
}

// SubmitTarget returns the form action and the upper-cased form method. ok is
// false when the action is empty or the method is neither GET nor POST.
func (u UI) SubmitTarget() (action, method string, ok bool) {
	method = strings.ToUpper(strings.TrimSpace(u.Method))
	if strings.TrimSpace(u.Action) == "" || (method != http.MethodGet && method != http.MethodPost) {
		return "", "", false
	}
	return u.Action, method, true
}

// Message is a human readable message. ID is only unique within its own list.
type Message struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// Meta carries presentation metadata common to every node.
type Meta struct {
	Label *Message `json:"label,omitempty"`
}

// LabelText returns the label text, or "" when there is no label.
func (m Meta) LabelText() string {
	if m.Label == nil {
		return ""
	}
	return m.Label.Text
}
