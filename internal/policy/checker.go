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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	syshttp "github.com/mathtrail/identity-ui/internal/system/http"
)

const maxCheckResponseBytes = 64 << 10

type checkResponse struct {
	Allowed bool `json:"allowed"`
}

// HTTPRelationChecker checks relation tuples against the permission service's read API.
type HTTPRelationChecker struct {
	checkURL   string
	httpClient syshttp.HTTPClientInterface
}

// NewHTTPRelationChecker creates a checker calling GET {baseURL}/relation-tuples/check.
func NewHTTPRelationChecker(baseURL string, httpClient syshttp.HTTPClientInterface) *HTTPRelationChecker {
	return &HTTPRelationChecker{checkURL: baseURL + "/relation-tuples/check", httpClient: httpClient}
}

// CheckRelation implements RelationCheckerInterface. A 403 answer is a denial, not an error.
func (c *HTTPRelationChecker) CheckRelation(ctx context.Context, tuple RelationTuple) (bool, error) {
	query := url.Values{}
	query.Set("namespace", tuple.Namespace)
	query.Set("object", tuple.Object)
	query.Set("relation", tuple.Relation)
	query.Set("subject_id", tuple.SubjectID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.checkURL+"?"+query.Encode(), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusForbidden:
	default:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxCheckResponseBytes))
		return false, fmt.Errorf("permission service returned status %d for %s", resp.StatusCode, tuple)
	}

	var body checkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCheckResponseBytes)).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode check response: %w", err)
	}
	return body.Allowed, nil
}
