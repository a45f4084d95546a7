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

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const (
	clfTimeLayout  = "02/Jan/2006:15:04:05 -0700"
	flowQueryParam = "flow"
	maxFlowIDLen   = 128
)

// AccessLogHandler logs one Apache CLF line per request. The query string is
// left out of the line so form values submitted with GET never reach the log;
// the flow id, when present, is logged as a field instead.
func AccessLogHandler(logger *zap.Logger, next http.Handler) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		fields := []Field{
			String(LoggerKeyRequestID, r.Header.Get(RequestIDHeader)),
			Duration("elapsed", time.Since(start)),
		}
		if flowID := r.URL.Query().Get(flowQueryParam); flowID != "" && len(flowID) <= maxFlowIDLen {
			fields = append(fields, String(LoggerKeyFlowID, flowID))
		}

		logger.Info(fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d`,
			remoteHost(r.RemoteAddr),
			start.Format(clfTimeLayout),
			r.Method,
			r.URL.EscapedPath(),
			r.Proto,
			lrw.statusCode,
			lrw.size,
		), fields...)
	})
}

func remoteHost(remoteAddr string) string {

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
		return host
	}
	return remoteAddr
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

// WriteHeader captures the status code and delegates to the original ResponseWriter.
func (lrw *loggingResponseWriter) WriteHeader(code int) {

	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// Write captures the size of the response and delegates to the original ResponseWriter.
func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {

	size, err := lrw.ResponseWriter.Write(b)
	lrw.size += size
	return size, err
}
