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

package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NodeType is the variant discriminator carried in a node's attributes.
type NodeType string

const (
	// NodeTypeInput tags InputAttributes.
	NodeTypeInput NodeType = "input"
	// NodeTypeText tags TextAttributes.
	NodeTypeText NodeType = "text"
	// NodeTypeAnchor tags AnchorAttributes.
	NodeTypeAnchor NodeType = "a"
)

const (
	// InputTypeSubmit is the input sub-type of submit buttons.
	InputTypeSubmit = "submit"
	// InputTypeHidden is the input sub-type of hidden carriers.
	InputTypeHidden = "hidden"
)

// Node is one renderable unit of a flow's UI.
type Node struct {
	Type       string         `json:"type,omitempty"`
	Group      string         `json:"group,omitempty"`
	Attributes NodeAttributes `json:"-"`
	Messages   []Message      `json:"messages,omitempty"`
	Meta       Meta           `json:"meta"`
}

// NodeAttributes is the closed set of node attribute variants:
// *InputAttributes, *TextAttributes, *AnchorAttributes and *UnknownAttributes.
type NodeAttributes interface {
	NodeType() NodeType
	isNodeAttributes()
}

// InputAttributes describe a form field.
type InputAttributes struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Required bool   `json:"required,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// TextAttributes describe a display-only text block.
type TextAttributes struct {
	ID   string   `json:"id,omitempty"`
	Text *Message `json:"text,omitempty"`
}

// AnchorAttributes describe a hyperlink.
type AnchorAttributes struct {
	ID    string   `json:"id,omitempty"`
	Href  string   `json:"href"`
	Title *Message `json:"title,omitempty"`
}

// UnknownAttributes hold any variant this client does not render. Malformed is
// set when the node, or the attributes of a known variant, could not be decoded.
type UnknownAttributes struct {
	Type      NodeType
	Raw       json.RawMessage
	Malformed bool
}

// NodeType implements NodeAttributes.
func (*InputAttributes) NodeType() NodeType { return NodeTypeInput }

// NodeType implements NodeAttributes.
func (*TextAttributes) NodeType() NodeType { return NodeTypeText }

// NodeType implements NodeAttributes.
func (*AnchorAttributes) NodeType() NodeType { return NodeTypeAnchor }

// NodeType implements NodeAttributes.
func (u *UnknownAttributes) NodeType() NodeType { return u.Type }

func (*InputAttributes) isNodeAttributes()   {}
func (*TextAttributes) isNodeAttributes()    {}
func (*AnchorAttributes) isNodeAttributes()  {}
func (*UnknownAttributes) isNodeAttributes() {}

// ValueString returns the pre-filled value in its form-encoded string form.
func (a *InputAttributes) ValueString() string {
	switch v := a.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// wireNode is the identity service's node shape.
type wireNode struct {
	Type       string          `json:"type,omitempty"`
	Group      string          `json:"group,omitempty"`
	Attributes json.RawMessage `json:"attributes"`
	Messages   []Message       `json:"messages,omitempty"`
	Meta       Meta            `json:"meta"`
}

// rawNode defers decoding of every part that may be malformed on its own.
type rawNode struct {
	Type       json.RawMessage `json:"type"`
	Group      json.RawMessage `json:"group"`
	Attributes json.RawMessage `json:"attributes"`
	Messages   json.RawMessage `json:"messages"`
	Meta       json.RawMessage `json:"meta"`
}

type attributesTag struct {
	NodeType NodeType `json:"node_type"`
}

// UnmarshalJSON decodes a node, selecting the attribute variant from attributes.node_type.
// It never fails: a node that is malformed anywhere, or is not an object at all, is
// kept as UnknownAttributes so a single bad node never fails the whole flow.
func (n *Node) UnmarshalJSON(data []byte) error {
	*n = Node{}

	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		n.Attributes = &UnknownAttributes{Raw: data, Malformed: true}
		return nil
	}

	n.Attributes = decodeAttributes(raw.Attributes)
	if decodeOptional(raw.Type, &n.Type) != nil ||
		decodeOptional(raw.Group, &n.Group) != nil ||
		decodeOptional(raw.Messages, &n.Messages) != nil ||
		decodeOptional(raw.Meta, &n.Meta) != nil {
		n.Type, n.Group, n.Messages, n.Meta = "", "", nil, Meta{}
		n.Attributes = &UnknownAttributes{Type: n.Attributes.NodeType(), Raw: raw.Attributes, Malformed: true}
	}
	return nil
}

// MarshalJSON encodes the node back into the identity service's wire shape.
func (n Node) MarshalJSON() ([]byte, error) {
	attrs, err := encodeAttributes(n.Attributes)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireNode{
		Type:       n.Type,
		Group:      n.Group,
		Attributes: attrs,
		Messages:   n.Messages,
		Meta:       n.Meta,
	})
}

// decodeOptional decodes data into out unless it is absent or null.
func decodeOptional(data json.RawMessage, out any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, out)
}

func decodeAttributes(data json.RawMessage) NodeAttributes {
	var tag attributesTag
	if len(data) == 0 || string(data) == "null" {
		return &UnknownAttributes{Raw: data}
	}
	if json.Unmarshal(data, &tag) != nil {
		return &UnknownAttributes{Raw: data, Malformed: true}
	}

	var attrs NodeAttributes
	switch tag.NodeType {
	case NodeTypeInput:
		attrs = &InputAttributes{}
	case NodeTypeText:
		attrs = &TextAttributes{}
	case NodeTypeAnchor:
		attrs = &AnchorAttributes{}
	default:
		return &UnknownAttributes{Type: tag.NodeType, Raw: data}
	}

	if err := json.Unmarshal(data, attrs); err != nil {
		return &UnknownAttributes{Type: tag.NodeType, Raw: data, Malformed: true}
	}
	return attrs
}

func encodeAttributes(attrs NodeAttributes) (json.RawMessage, error) {
	switch a := attrs.(type) {
	case nil:
		return json.RawMessage("null"), nil
	case *UnknownAttributes:
		if len(a.Raw) == 0 {
			return json.RawMessage("null"), nil
		}
		return a.Raw, nil
	case *InputAttributes:
		return json.Marshal(struct {
			*InputAttributes
			NodeType NodeType `json:"node_type"`
		}{a, NodeTypeInput})
	case *TextAttributes:
		return json.Marshal(struct {
			*TextAttributes
			NodeType NodeType `json:"node_type"`
		}{a, NodeTypeText})
	case *AnchorAttributes:
		return json.Marshal(struct {
			*AnchorAttributes
			NodeType NodeType `json:"node_type"`
		}{a, NodeTypeAnchor})
	default:
		return nil, fmt.Errorf("unsupported node attributes %T", attrs)
	}
}
