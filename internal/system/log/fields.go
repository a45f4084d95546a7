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

package log

import "go.uber.org/zap"

// Field is a structured log field.
type Field = zap.Field

var (
	// String constructs a field with a string value.
	String = zap.String
	// Int constructs a field with an int value.
	Int = zap.Int
	// Bool constructs a field with a bool value.
	Bool = zap.Bool
	// Error constructs a field that carries an error.
	Error = zap.Error
	// Any constructs a field with an arbitrary value.
	Any = zap.Any
	// Duration constructs a field with a time.Duration value.
	Duration = zap.Duration
)
