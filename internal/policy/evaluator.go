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

package policy

import (
	"context"
	"fmt"
)

// RelationTuple is a single membership test: is Subject related to Object by Relation.
type RelationTuple struct {
	Namespace string
	Object    string
	Relation  string
	SubjectID string
}

// String renders the tuple in the namespace:object#relation@subject notation.
func (t RelationTuple) String() string {
	return fmt.Sprintf("%s:%s#%s@%s", t.Namespace, t.Object, t.Relation, t.SubjectID)
}

// RelationCheckerInterface answers relation membership tests.
type RelationCheckerInterface interface {
	CheckRelation(ctx context.Context, tuple RelationTuple) (bool, error)
}

// Evaluate reports whether the subject holds the permission on the object. Granting
// relations are checked in declaration order and evaluation stops at the first match.
func Evaluate(ctx context.Context, checker RelationCheckerInterface, namespace, object, permission,
	subjectID string) (bool, error) {

	relations, err := GrantingRelations(namespace, permission)
	if err != nil {
		return false, err
	}

	for _, relation := range relations {
		allowed, err := checker.CheckRelation(ctx, RelationTuple{
			Namespace: namespace,
			Object:    object,
			Relation:  relation,
			SubjectID: subjectID,
		})
		if err != nil {
			return false, fmt.Errorf("failed to check relation %s: %w", relation, err)
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}
