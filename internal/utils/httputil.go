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

// Package utils provides HTTP helper functions shared by the handlers.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/mathtrail/identity-ui/internal/system/log"
)

// WriteJSON writes the value as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, value any) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.GetLogger().Error("Failed to write JSON response", log.Error(err))
	}
}

// WriteJSONError writes a JSON error response with the given details.
func WriteJSONError(w http.ResponseWriter, errorCode, errorDescription string, statusCode int) {

	log.GetLogger().Error("Error in HTTP response", log.String("error", errorCode),
		log.String("description", errorDescription))

	WriteJSON(w, statusCode, map[string]string{
		"error":             errorCode,
		"error_description": errorDescription,
	})
}
