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
	"errors"
	"net/http"

	"github.com/mathtrail/identity-ui/internal/session"
	"github.com/mathtrail/identity-ui/internal/system/log"
	"github.com/mathtrail/identity-ui/internal/utils"
)

// PermissionResponse is the JSON answer of a permission check.
type PermissionResponse struct {
	Namespace  string `json:"namespace"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

// PermissionHandler answers permission checks for the signed-in identity.
type PermissionHandler struct {
	checker RelationCheckerInterface
}

// NewPermissionHandler creates a PermissionHandler.
func NewPermissionHandler(checker RelationCheckerInterface) *PermissionHandler {
	return &PermissionHandler{checker: checker}
}

// HandlePermissionRequest evaluates ?namespace&object&permission for the identity held
// by the request's session store. Anonymous callers get 401.
func (h *PermissionHandler) HandlePermissionRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PermissionHandler"),
		log.String(log.LoggerKeyRequestID, r.Header.Get(log.RequestIDHeader)))

	query := r.URL.Query()
	namespace := query.Get("namespace")
	object := query.Get("object")
	permission := query.Get("permission")
	if namespace == "" || object == "" || permission == "" {
		utils.WriteJSONError(w, "invalid_request", "namespace, object and permission are required",
			http.StatusBadRequest)
		return
	}

	store, ok := session.FromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "server_error", "session store not available", http.StatusInternalServerError)
		return
	}
	state := store.Snapshot()
	if !state.IsAuthenticated() || state.Identity == nil {
		utils.WriteJSONError(w, "unauthorized", "no active session", http.StatusUnauthorized)
		return
	}

	allowed, err := Evaluate(r.Context(), h.checker, namespace, object, permission, state.Identity.ID)
	if err != nil {
		if errors.Is(err, ErrUnknownNamespace) || errors.Is(err, ErrUnknownPermission) {
			utils.WriteJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("Permission check failed", log.String("namespace", namespace),
			log.String("permission", permission), log.Error(err))
		utils.WriteJSONError(w, "server_error", "permission check failed", http.StatusBadGateway)
		return
	}

	utils.WriteJSON(w, http.StatusOK, PermissionResponse{
		Namespace:  namespace,
		Object:     object,
		Permission: permission,
		Allowed:    allowed,
	})
}
