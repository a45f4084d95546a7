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
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/mathtrail/identity-ui/internal/flow/render"
	"github.com/mathtrail/identity-ui/internal/system/log"
)

const (
	// TemplateFlow renders a fetched flow.
	TemplateFlow = "flow.html"
	// TemplateError renders a page with no form.
	TemplateError = "error.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Shell holds the values shared by every page.
type Shell struct {
	ProductName string
	LogoutPath  string
}

// PageData is the data passed to the page templates.
type PageData struct {
	ProductName  string
	LogoutPath   string
	SignedInAs   string
	Title        string
	Description  string
	Messages     []render.Message
	Form         *FormView
	Failure      string
	StartOverURL string
	Footer       Footer
}

// Views renders the embedded HTML templates.
type Views struct {
	templates map[string]*template.Template
}

// NewViews parses the embedded templates.
func NewViews() (*Views, error) {
	views := &Views{templates: make(map[string]*template.Template)}
	for _, name := range []string{TemplateFlow, TemplateError} {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		views.templates[name] = tmpl
	}
	return views, nil
}

// Render executes the named template and writes it with the given status. Nothing
// but a plain 500 is written when the template fails.
func (v *Views) Render(w http.ResponseWriter, status int, name string, data *PageData) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Views"))

	tmpl, ok := v.templates[name]
	if !ok {
		logger.Error("Unknown template", log.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("Failed to render template", log.String("template", name), log.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Debug("Failed to write response", log.Error(err))
	}
}
