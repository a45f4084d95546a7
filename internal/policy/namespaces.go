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

// Package policy holds the relationship-based permission model shared with the
// permission service and evaluates permissions against stored relation tuples.
package policy

import (
	"errors"
	"fmt"
)

const (
	// NamespaceUser holds the subjects of relation tuples.
	NamespaceUser = "User"
	// NamespaceClassGroup holds the class groups.
	NamespaceClassGroup = "ClassGroup"

	// RelationTeachers relates a class group to the users who teach it.
	RelationTeachers = "teachers"
	// RelationStudents relates a class group to the users enrolled in it.
	RelationStudents = "students"

	// PermissionViewGrades allows reading grades of a class group.
	PermissionViewGrades = "viewGrades"
	// PermissionManageStudents allows changing a class group's enrolment.
	PermissionManageStudents = "manageStudents"
	// PermissionViewLessonPlans allows reading a class group's lesson plans.
	PermissionViewLessonPlans = "viewLessonPlans"
)

var (
	// ErrUnknownNamespace is returned for a namespace that is not defined.
	ErrUnknownNamespace = errors.New("unknown namespace")
	// ErrUnknownPermission is returned for a permission the namespace does not define.
	ErrUnknownPermission = errors.New("unknown permission")
)

// Namespace is a kind of object that subjects can be related to.
type Namespace struct {
	Name string
	// Relations maps a relation name to the namespace of its subjects.
	Relations map[string]string
	// Permissions maps a permission to the relations that grant it. Holding any one
	// of them is enough.
	Permissions map[string][]string
}

// Namespaces is the static permission model.
var Namespaces = map[string]Namespace{
	NamespaceUser: {Name: NamespaceUser},
	NamespaceClassGroup: {
		Name: NamespaceClassGroup,
		Relations: map[string]string{
			RelationTeachers: NamespaceUser,
			RelationStudents: NamespaceUser,
		},
		Permissions: map[string][]string{
			PermissionViewGrades:      {RelationTeachers, RelationStudents},
			PermissionManageStudents:  {RelationTeachers},
			PermissionViewLessonPlans: {RelationTeachers, RelationStudents},
		},
	},
}

// GrantingRelations returns the relations that grant the permission in the namespace.
func GrantingRelations(namespace, permission string) ([]string, error) {
	ns, ok := Namespaces[namespace]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNamespace, namespace)
	}
	relations, ok := ns.Permissions[permission]
	if !ok {
		return nil, fmt.Errorf("%w: %s#%s", ErrUnknownPermission, namespace, permission)
	}
	return relations, nil
}
