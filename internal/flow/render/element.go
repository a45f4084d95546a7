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

// Package render maps identity service UI nodes onto renderable form elements.
// Every function in this package is pure.
package render

// ElementKind is the outcome of rendering one node.
type ElementKind int

const (
	// ElementNone renders nothing.
	ElementNone ElementKind = iota
	// ElementSubmit is a submit button carrying a name/value pair.
	ElementSubmit
	// ElementHidden is a hidden carrier whose name/value are submitted verbatim.
	ElementHidden
	// ElementField is a labeled input control with its field-level messages.
	ElementField
	// ElementText is a display-only text block.
	ElementText
	// ElementLink is a hyperlink.
	ElementLink
)

var elementKindNames = map[ElementKind]string{
	ElementNone:   "none",
	ElementSubmit: "submit",
	ElementHidden: "hidden",
	ElementField:  "field",
	ElementText:   "text",
	ElementLink:   "link",
}

func (k ElementKind) String() string {
	if name, ok := elementKindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Message is a message ready for display with a key unique across the page.
type Message struct {
	Key  string
	Text string
	Type string
}

// Element is the renderable form of a node. Only the fields relevant to Kind are set.
type Element struct {
	Kind ElementKind

	// Submit, hidden and field.
	Name  string
	Value string

	// Field.
	InputType string
	Label     string
	Required  bool
	Disabled  bool
	Messages  []Message

	// Submit button text, text block content or link text.
	Text string

	// Link.
	Href string
}

// IsSubmit reports whether the element is a submit button.
func (e Element) IsSubmit() bool { return e.Kind == ElementSubmit }

// IsHidden reports whether the element is a hidden carrier.
func (e Element) IsHidden() bool { return e.Kind == ElementHidden }

// IsField reports whether the element is a labeled input control.
func (e Element) IsField() bool { return e.Kind == ElementField }

// IsText reports whether the element is a text block.
func (e Element) IsText() bool { return e.Kind == ElementText }

// IsLink reports whether the element is a hyperlink.
func (e Element) IsLink() bool { return e.Kind == ElementLink }

// Options alter rendering without changing the dispatch.
type Options struct {
	// Disabled disables every interactive control, e.g. while a submission is in flight.
	Disabled bool
}
