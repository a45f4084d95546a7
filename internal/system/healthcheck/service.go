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

package healthcheck

import (
	"context"
	"time"

	"github.com/mathtrail/identity-ui/internal/system/log"
)

const readinessTimeout = 3 * time.Second

// DependencyInterface is a dependency probed by the readiness check.
type DependencyInterface interface {
	CheckReadiness(ctx context.Context) error
}

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) ServerStatus
}

// HealthCheckService is the default implementation of the HealthCheckServiceInterface.
type HealthCheckService struct {
	dependencies map[string]DependencyInterface
	order        []string
}

// NewHealthCheckService creates a health check service probing the given dependency.
func NewHealthCheckService(name string, dependency DependencyInterface) *HealthCheckService {
	return &HealthCheckService{
		dependencies: map[string]DependencyInterface{name: dependency},
		order:        []string{name},
	}
}

// CheckReadiness checks the readiness of every dependency.
func (s *HealthCheckService) CheckReadiness(ctx context.Context) ServerStatus {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	overall := StatusUp
	statuses := make([]ServiceStatus, 0, len(s.order))
	for _, name := range s.order {
		status := StatusUp
		if err := s.dependencies[name].CheckReadiness(ctx); err != nil {
			logger.Error("Dependency is not ready", log.String("dependency", name), log.Error(err))
			status = StatusDown
			overall = StatusDown
		}
		statuses = append(statuses, ServiceStatus{ServiceName: name, Status: status})
	}

	return ServerStatus{Status: overall, ServiceStatus: statuses}
}
