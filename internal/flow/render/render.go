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

package render

import (
	"fmt"

	"github.com/mathtrail/identity-ui/internal/flow/model"
)

// DefaultSubmitText labels submit buttons whose node carries no label.
const DefaultSubmitText = "Submit"

// RenderNode produces exactly one element for the node. A nil error is returned
// unless the node degraded to ElementNone because it was unrecognized or malformed.
func RenderNode(node model.Node, opts Options) (Element, error) {
	element, renderErr := renderNode(node, opts)
	if renderErr != nil {
		return element, renderErr
	}
	return element, nil
}

func renderNode(node model.Node, opts Options) (Element, *RenderError) {
	switch attrs := node.Attributes.(type) {
	case *model.InputAttributes:
		return renderInput(node, attrs, opts)
	case *model.TextAttributes:
		return renderText(node, attrs), nil
	case *model.AnchorAttributes:
		return renderAnchor(node, attrs), nil
	case *model.UnknownAttributes:
		if attrs.Malformed || isKnownNodeType(attrs.Type) {
			return Element{Kind: ElementNone}, &RenderError{NodeType: attrs.Type, Reason: "malformed node"}
		}
		return Element{Kind: ElementNone}, &RenderError{
			NodeType: attrs.Type, Reason: "unrecognized node type", Unrecognized: true,
		}
	default:
		return Element{Kind: ElementNone}, &RenderError{Reason: "missing attributes", Unrecognized: true}
	}
}

// RenderNodes renders every node in order. The returned elements are index aligned
// with nodes; failed nodes become ElementNone and are reported in errs.
func RenderNodes(nodes []model.Node, opts Options) (elements []Element, errs []*RenderError) {
	elements = make([]Element, len(nodes))
	for i, node := range nodes {
		element, renderErr := renderNode(node, opts)
		elements[i] = element
		if renderErr != nil {
			renderErr.Index = i
			errs = append(errs, renderErr)
		}
	}
	return elements, errs
}

// RenderFlowMessages prepares the flow's top-level messages for display.
func RenderFlowMessages(messages []model.Message) []Message {
	return renderMessages("flow", messages)
}

func renderInput(node model.Node, attrs *model.InputAttributes, opts Options) (Element, *RenderError) {
	if attrs.Name == "" {
		return Element{Kind: ElementNone}, &RenderError{NodeType: model.NodeTypeInput, Reason: "input without name"}
	}

	switch attrs.Type {
	case model.InputTypeSubmit:
		text := node.Meta.LabelText()
		if text == "" {
			text = DefaultSubmitText
		}
		return Element{
			Kind:     ElementSubmit,
			Name:     attrs.Name,
			Value:    attrs.ValueString(),
			Text:     text,
			Disabled: opts.Disabled,
		}, nil
	case model.InputTypeHidden:
		return Element{
			Kind:  ElementHidden,
			Name:  attrs.Name,
			Value: attrs.ValueString(),
		}, nil
	default:
		return Element{
			Kind:      ElementField,
			Name:      attrs.Name,
			Value:     attrs.ValueString(),
			InputType: attrs.Type,
			Label:     node.Meta.LabelText(),
			Required:  attrs.Required,
			Disabled:  attrs.Disabled || opts.Disabled,
			Messages:  renderMessages("node-"+attrs.Name, node.Messages),
		}, nil
	}
}

func renderText(node model.Node, attrs *model.TextAttributes) Element {
	text := ""
	if attrs.Text != nil {
		text = attrs.Text.Text
	}
	if text == "" {
		text = node.Meta.LabelText()
	}
	if text == "" {
		return Element{Kind: ElementNone}
	}
	return Element{Kind: ElementText, Text: text}
}

func renderAnchor(node model.Node, attrs *model.AnchorAttributes) Element {
	text := ""
	if attrs.Title != nil {
		text = attrs.Title.Text
	}
	if text == "" {
		text = node.Meta.LabelText()
	}
	return Element{Kind: ElementLink, Href: attrs.Href, Text: text}
}

// renderMessages keys each message by its list and position, since message ids
// are only unique within a single list.
func renderMessages(prefix string, messages []model.Message) []Message {
	if len(messages) == 0 {
		return nil
	}
	out := make([]Message, len(messages))
	for i, msg := range messages {
		out[i] = Message{
			Key:  fmt.Sprintf("%s-%d-%d", prefix, msg.ID, i),
			Text: msg.Text,
			Type: msg.Type,
		}
	}
	return out
}

func isKnownNodeType(t model.NodeType) bool {
	return t == model.NodeTypeInput || t == model.NodeTypeText || t == model.NodeTypeAnchor
}
