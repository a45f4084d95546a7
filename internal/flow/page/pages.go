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

// Package page drives one self-service flow per page view: it reads the flow id,
// fetches the flow or hands off to the identity service, and renders the form.
package page

import "github.com/mathtrail/identity-ui/internal/flow/model"

// FlowQueryParam is the query parameter that carries the flow id.
const FlowQueryParam = "flow"

// ReturnToQueryParam is forwarded to the identity service when a new flow is started.
const ReturnToQueryParam = "return_to"

// Footer is the navigation line shown under a flow's form.
type Footer struct {
	Prompt   string
	LinkText string
	Href     string
}

// FlowPage holds the per-kind configuration of a flow page.
type FlowPage struct {
	Kind        model.Kind
	Path        string
	Title       string
	Description string
	Footer      Footer
}

// PagePath returns the route of the page serving the given kind.
func PagePath(kind model.Kind) string {
	return "/auth/" + string(kind)
}

// DefaultPages returns the four self-service pages.
func DefaultPages(productName string) []FlowPage {
	return []FlowPage{
		{
			Kind:        model.KindLogin,
			Path:        PagePath(model.KindLogin),
			Title:       "Sign In",
			Description: "Sign in to your " + productName + " account",
			Footer:      Footer{Prompt: "Don't have an account?", LinkText: "Sign up", Href: PagePath(model.KindRegistration)},
		},
		{
			Kind:        model.KindRegistration,
			Path:        PagePath(model.KindRegistration),
			Title:       "Create Account",
			Description: "Sign up for a " + productName + " account",
			Footer:      Footer{Prompt: "Already have an account?", LinkText: "Sign in", Href: PagePath(model.KindLogin)},
		},
		{
			Kind:        model.KindRecovery,
			Path:        PagePath(model.KindRecovery),
			Title:       "Account Recovery",
			Description: "Enter your email to recover your account",
			Footer:      Footer{Prompt: "Remember your password?", LinkText: "Sign in", Href: PagePath(model.KindLogin)},
		},
		{
			Kind:        model.KindVerification,
			Path:        PagePath(model.KindVerification),
			Title:       "Verify Your Account",
			Description: "Complete the verification process",
			Footer:      Footer{LinkText: "Back to sign in", Href: PagePath(model.KindLogin)},
		},
	}
}
