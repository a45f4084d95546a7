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
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/net/html"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/flow/model"
	"github.com/mathtrail/identity-ui/internal/session"
	"github.com/mathtrail/identity-ui/tests/mocks/flowclientmock"
)

const testAction = "https://id.example.com/self-service/login?flow=f-1"

type ControllerTestSuite struct {
	suite.Suite
	views      *Views
	flowClient *flowclientmock.MockFlowClient
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (suite *ControllerTestSuite) SetupTest() {
	views, err := NewViews()
	require.NoError(suite.T(), err)
	suite.views = views
	suite.flowClient = &flowclientmock.MockFlowClient{}
	suite.controller = NewController(DefaultPages("MathTrail")[0], suite.flowClient, views,
		Shell{ProductName: "MathTrail", LogoutPath: "/auth/logout"})
}

func input(name, inputType string, value any, required bool) model.Node {
	return model.Node{
		Type:       "input",
		Attributes: &model.InputAttributes{Name: name, Type: inputType, Value: value, Required: required},
	}
}

func loginFlow(nodes ...model.Node) *model.Flow {
	return &model.Flow{
		ID: "f-1",
		UI: model.UI{Action: testAction, Method: "POST", Nodes: nodes},
	}
}

func (suite *ControllerTestSuite) serve(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	suite.controller.ServeHTTP(rec, req)
	return rec
}

func (suite *ControllerTestSuite) returnFlow(flow *model.Flow) {
	suite.flowClient.MockGetFlow = func(ctx context.Context, kind model.Kind, flowID string) (*model.Flow, error) {
		return flow, nil
	}
}

func parse(t *testing.T, body string) *html.Node {
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			found = append(found, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return found
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

// submitForm builds the data a browser would post when the named submit button is pressed.
func submitForm(form *html.Node, typed map[string]string, pressed string) url.Values {
	values := url.Values{}
	for _, control := range findAll(form, func(n *html.Node) bool { return n.Data == "input" || n.Data == "button" }) {
		name, _ := attr(control, "name")
		value, _ := attr(control, "value")
		if _, disabled := attr(control, "disabled"); disabled || name == "" {
			continue
		}
		if control.Data == "button" {
			if name == pressed {
				values.Add(name, value)
			}
			continue
		}
		if entered, ok := typed[name]; ok {
			value = entered
		}
		values.Add(name, value)
	}
	return values
}

func (suite *ControllerTestSuite) TestNoFlowIDHandsOffWithoutFetching() {
	rec := suite.serve("/auth/login")

	assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(suite.T(), "https://id.example.com/self-service/login/browser", rec.Header().Get("Location"))
	assert.Equal(suite.T(), 0, suite.flowClient.FetchCount())
}

func (suite *ControllerTestSuite) TestHandoffForwardsReturnTo() {
	rec := suite.serve("/auth/login?return_to=https%3A%2F%2Fapp")

	assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(suite.T(), "https://id.example.com/self-service/login/browser?return_to=https://app",
		rec.Header().Get("Location"))
}

func (suite *ControllerTestSuite) TestReadyFormSubmitsHiddenValuesUnmodified() {
	suite.returnFlow(loginFlow(
		input("csrf_token", model.InputTypeHidden, "abc", true),
		input("email", "email", nil, true),
		input("method", model.InputTypeSubmit, "password", false),
	))

	rec := suite.serve("/auth/login?flow=f-1")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	require.Len(suite.T(), suite.flowClient.GetFlowCalls, 1)
	assert.Equal(suite.T(), "f-1", suite.flowClient.GetFlowCalls[0].FlowID)
	assert.Equal(suite.T(), model.KindLogin, suite.flowClient.GetFlowCalls[0].Kind)

	forms := findAll(parse(suite.T(), rec.Body.String()), byTag("form"))
	require.Len(suite.T(), forms, 1)

	action, _ := attr(forms[0], "action")
	method, _ := attr(forms[0], "method")
	assert.Equal(suite.T(), testAction, action)
	assert.Equal(suite.T(), "POST", method)

	emailInput := findAll(forms[0], func(n *html.Node) bool {
		name, _ := attr(n, "name")
		return n.Data == "input" && name == "email"
	})
	require.Len(suite.T(), emailInput, 1)
	_, required := attr(emailInput[0], "required")
	assert.True(suite.T(), required)

	submitted := submitForm(forms[0], map[string]string{"email": "user@example.com"}, "method")
	assert.Equal(suite.T(), url.Values{
		"csrf_token": {"abc"},
		"email":      {"user@example.com"},
		"method":     {"password"},
	}, submitted)
}

func (suite *ControllerTestSuite) TestReadyPreservesNodeOrder() {
	suite.returnFlow(loginFlow(
		input("csrf_token", model.InputTypeHidden, "abc", true),
		input("identifier", "text", nil, true),
		input("link_a", model.InputTypeHidden, "1", false),
		input("password", "password", nil, true),
		input("link_b", model.InputTypeHidden, "2", false),
		model.Node{Attributes: &model.UnknownAttributes{Type: "img"}},
		input("method", model.InputTypeSubmit, "password", false),
		input("method", model.InputTypeSubmit, "code", false),
	))

	rec := suite.serve("/auth/login?flow=f-1")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	form := findAll(parse(suite.T(), rec.Body.String()), byTag("form"))[0]
	var names []string
	for _, control := range findAll(form, func(n *html.Node) bool { return n.Data == "input" || n.Data == "button" }) {
		name, _ := attr(control, "name")
		value, _ := attr(control, "value")
		names = append(names, name+"="+value)
	}
	assert.Equal(suite.T(), []string{
		"csrf_token=abc", "identifier=", "link_a=1", "password=", "link_b=2", "method=password", "method=code",
	}, names)
}

func (suite *ControllerTestSuite) TestReadyRendersMessagesInOrder() {
	flow := loginFlow(
		model.Node{
			Attributes: &model.InputAttributes{Name: "identifier", Type: "text"},
			Messages:   []model.Message{{ID: 4000002, Text: "Field message", Type: "error"}},
			Meta:       model.Meta{Label: &model.Message{Text: "Email"}},
		},
		model.Node{Attributes: &model.TextAttributes{Text: &model.Message{Text: "Lookup secret"}}},
		model.Node{Attributes: &model.AnchorAttributes{Href: "/auth/recovery", Title: &model.Message{Text: "Forgot?"}}},
	)
	flow.UI.Messages = []model.Message{
		{ID: 1, Text: "First <b>message</b>", Type: "error"},
		{ID: 1, Text: "Second message", Type: "info"},
	}
	suite.returnFlow(flow)

	rec := suite.serve("/auth/login?flow=f-1")
	body := rec.Body.String()

	first := strings.Index(body, "First &lt;b&gt;message&lt;/b&gt;")
	second := strings.Index(body, "Second message")
	formAt := strings.Index(body, "<form")
	assert.True(suite.T(), first > 0 && first < second && second < formAt)
	assert.Contains(suite.T(), body, "Field message")
	assert.Contains(suite.T(), body, `<label for="identifier">Email</label>`)
	assert.Contains(suite.T(), body, "Lookup secret")
	assert.Contains(suite.T(), body, `href="/auth/recovery"`)
	assert.Contains(suite.T(), body, `data-key="flow-1-0"`)
	assert.Contains(suite.T(), body, `data-key="flow-1-1"`)
	assert.Contains(suite.T(), body, `data-key="node-identifier-4000002-0"`)
	assert.Contains(suite.T(), body, "Don&#39;t have an account?")
}

func (suite *ControllerTestSuite) TestEveryElementKindReachesTheForm() {
	suite.returnFlow(loginFlow(
		input("csrf_token", model.InputTypeHidden, "abc", true),
		input("identifier", "email", nil, true),
		model.Node{Attributes: &model.TextAttributes{Text: &model.Message{Text: "Backup code"}}},
		model.Node{Attributes: &model.AnchorAttributes{Href: "/auth/recovery", Title: &model.Message{Text: "Forgot?"}}},
		input("method", model.InputTypeSubmit, "password", false),
	))

	rec := suite.serve("/auth/login?flow=f-1")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	form := findAll(parse(suite.T(), rec.Body.String()), byTag("form"))[0]
	assert.Len(suite.T(), findAll(form, byTag("input")), 2)
	assert.Len(suite.T(), findAll(form, byTag("button")), 1)
	assert.Len(suite.T(), findAll(form, byTag("a")), 1)
	texts := findAll(form, func(n *html.Node) bool {
		class, _ := attr(n, "class")
		return n.Data == "p" && class == "text"
	})
	assert.Len(suite.T(), texts, 1)
}

func (suite *ControllerTestSuite) TestFetchFailureRendersNoForm() {
	cases := []struct {
		err    error
		status int
	}{
		{&client.FlowFetchError{Kind: model.KindLogin, FlowID: "f-1", StatusCode: http.StatusGone}, http.StatusGone},
		{&client.FlowFetchError{Kind: model.KindLogin, FlowID: "f-1", StatusCode: http.StatusNotFound}, http.StatusNotFound},
		{&client.FlowFetchError{Kind: model.KindLogin, FlowID: "f-1", Cause: errors.New("dial tcp")}, http.StatusBadGateway},
	}

	for _, tc := range cases {
		fetchErr := tc.err
		suite.flowClient.MockGetFlow = func(ctx context.Context, kind model.Kind, flowID string) (*model.Flow, error) {
			return nil, fetchErr
		}

		rec := suite.serve("/auth/login?flow=f-1")
		doc := parse(suite.T(), rec.Body.String())

		assert.Equal(suite.T(), tc.status, rec.Code)
		assert.Empty(suite.T(), findAll(doc, byTag("form")))
		assert.Empty(suite.T(), findAll(doc, byTag("input")))
		assert.NotContains(suite.T(), rec.Body.String(), "self-service/login?flow")

		startOver := findAll(doc, func(n *html.Node) bool {
			class, _ := attr(n, "class")
			return class == "start-over"
		})
		require.Len(suite.T(), startOver, 1)
		href, _ := attr(startOver[0], "href")
		assert.Equal(suite.T(), "https://id.example.com/self-service/login/browser", href)
	}
}

func (suite *ControllerTestSuite) TestFlowWithoutSubmissionTargetRendersNoForm() {
	for _, ui := range []model.UI{
		{},
		{Method: "POST"},
		{Action: testAction},
		{Action: testAction, Method: "PUT"},
	} {
		flow := &model.Flow{ID: "f-1", UI: ui}
		flow.UI.Nodes = []model.Node{input("csrf_token", model.InputTypeHidden, "abc", true)}
		suite.returnFlow(flow)

		rec := suite.serve("/auth/login?flow=f-1")
		doc := parse(suite.T(), rec.Body.String())

		assert.Equal(suite.T(), http.StatusBadGateway, rec.Code)
		assert.Empty(suite.T(), findAll(doc, byTag("form")))
		assert.Empty(suite.T(), findAll(doc, byTag("input")))
		assert.NotContains(suite.T(), rec.Body.String(), "abc")

		state := suite.controller.Resolve(context.Background(), "f-1", "", nil)
		assert.Equal(suite.T(), StateFailed, state.Kind)
		assert.Nil(suite.T(), state.Form)
		var fetchErr *client.FlowFetchError
		require.ErrorAs(suite.T(), state.Err, &fetchErr)
		assert.Equal(suite.T(), "malformed flow", fetchErr.Reason)
	}
}

func (suite *ControllerTestSuite) TestLowerCaseMethodIsNormalized() {
	flow := loginFlow(input("csrf_token", model.InputTypeHidden, "abc", true))
	flow.UI.Method = "post"
	suite.returnFlow(flow)

	rec := suite.serve("/auth/login?flow=f-1")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	forms := findAll(parse(suite.T(), rec.Body.String()), byTag("form"))
	require.Len(suite.T(), forms, 1)
	method, _ := attr(forms[0], "method")
	assert.Equal(suite.T(), "POST", method)
}

func (suite *ControllerTestSuite) TestExpiredFlowMessage() {
	suite.flowClient.MockGetFlow = func(ctx context.Context, kind model.Kind, flowID string) (*model.Flow, error) {
		return nil, &client.FlowFetchError{Kind: kind, FlowID: flowID, StatusCode: http.StatusGone}
	}

	rec := suite.serve("/auth/login?flow=f-1")
	assert.Contains(suite.T(), rec.Body.String(), "has expired or is no longer valid")
}

func (suite *ControllerTestSuite) TestCancelledRequestWritesNothing() {
	ctx, cancel := context.WithCancel(context.Background())
	suite.flowClient.MockGetFlow = func(_ context.Context, kind model.Kind, flowID string) (*model.Flow, error) {
		cancel()
		return loginFlow(), nil
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/login?flow=f-1", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	suite.controller.ServeHTTP(rec, req)

	assert.Empty(suite.T(), rec.Body.String())
	assert.False(suite.T(), rec.Flushed)
}

func (suite *ControllerTestSuite) TestSignedInShell() {
	suite.returnFlow(loginFlow(input("csrf_token", model.InputTypeHidden, "abc", true)))
	store := session.NewStore(&session.CookieResolver{Client: &flowclientmock.MockFlowClient{
		MockWhoami: func(ctx context.Context, cookies []*http.Cookie) (*model.Session, error) {
			return &model.Session{ID: "s1", Identity: &model.Identity{ID: "u1",
				Traits: map[string]any{"email": "teacher@example.com"}}}, nil
		},
	}})
	store.Initialize(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/auth/login?flow=f-1", nil)
	req = req.WithContext(session.NewContext(req.Context(), store))
	rec := httptest.NewRecorder()
	suite.controller.ServeHTTP(rec, req)

	assert.Contains(suite.T(), rec.Body.String(), "Signed in as teacher@example.com")
	assert.Contains(suite.T(), rec.Body.String(), `href="/auth/logout"`)
}

func (suite *ControllerTestSuite) TestResolveStates() {
	state := suite.controller.Resolve(context.Background(), "", "", nil)
	assert.Equal(suite.T(), StateHandoff, state.Kind)
	assert.Nil(suite.T(), state.Form)

	suite.returnFlow(loginFlow(model.Node{Attributes: &model.UnknownAttributes{Type: "script"}}))
	state = suite.controller.Resolve(context.Background(), "f-1", "", nil)
	assert.Equal(suite.T(), StateReady, state.Kind)
	assert.Equal(suite.T(), testAction, state.Form.Action)
	assert.Len(suite.T(), state.RenderErrors, 1)

	suite.flowClient.MockGetFlow = nil
	state = suite.controller.Resolve(context.Background(), "f-1", "", nil)
	assert.Equal(suite.T(), StateFailed, state.Kind)
	assert.Nil(suite.T(), state.Form)
	assert.Error(suite.T(), state.Err)
}

func (suite *ControllerTestSuite) TestDefaultPagesCoverEveryKind() {
	pages := DefaultPages("MathTrail")
	require.Len(suite.T(), pages, len(model.Kinds))
	for i, kind := range model.Kinds {
		assert.Equal(suite.T(), kind, pages[i].Kind)
		assert.Equal(suite.T(), "/auth/"+string(kind), pages[i].Path)
		assert.NotEmpty(suite.T(), pages[i].Footer.Href)
	}
	assert.Equal(suite.T(), "Sign in to your MathTrail account", pages[0].Description)
}
