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

// RenderError describes a node that was rendered as nothing.
type RenderError struct {
	// Index is the node's position in the flow's node list.
	Index    int
	NodeType model.NodeType
	Reason   string
	// Unrecognized is set for variants this client does not know, as opposed to
	// malformed nodes of a known variant.
	Unrecognized bool
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("node %d (%s) not rendered: %s", e.Index, e.NodeType, e.Reason)
}
