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

// Package main is the entry point of the identity UI server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/mathtrail/identity-ui/internal/cert"
	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/managers"
	"github.com/mathtrail/identity-ui/internal/system/config"
	syshttp "github.com/mathtrail/identity-ui/internal/system/http"
	"github.com/mathtrail/identity-ui/internal/system/log"
	"github.com/mathtrail/identity-ui/internal/system/middleware"

	"go.uber.org/zap"
)

const readHeaderTimeout = 10 * time.Second

func main() {

	// Get the server home directory.
	serverHome := getServerHome()

	// Load the configurations before the logger so the configured level applies.
	cfg, err := config.LoadConfig(path.Join(serverHome, "repository/conf/deployment.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configurations: %v\n", err)
		os.Exit(1)
	}

	// Initialize the logger.
	if err := log.InitLogger(cfg.Log.Level); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()
	logger := log.GetLogger()
	logger.Info("Using server home", zap.String("home", serverHome))

	// Initialize the multiplexer and register services.
	mux := initMultiPlexer(logger, cfg)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	startServer(logger, cfg, mux, serverHome)
}

// getServerHome retrieves and returns the server home directory.
func getServerHome() string {

	homeFlag := flag.String("home", "", "Path to the identity UI home directory")
	flag.Parse()

	if *homeFlag != "" {
		return *homeFlag
	}

	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// initMultiPlexer initializes the HTTP multiplexer and registers the services.
func initMultiPlexer(logger *zap.Logger, cfg *config.Config) *http.ServeMux {

	httpClient := syshttp.NewHTTPClientWithTimeout(cfg.Identity.RequestTimeout)
	flowClient := client.NewFlowClient(cfg.Identity, httpClient)

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, cfg, flowClient, httpClient)

	// Register the services.
	if err := serviceManager.RegisterServices(); err != nil {
		logger.Fatal("Failed to register the services", zap.Error(err))
	}

	return mux
}

// startServer starts the HTTP server with the given configurations and multiplexer.
func startServer(logger *zap.Logger, cfg *config.Config, mux *http.ServeMux, serverHome string) {

	// Get TLS configuration from the certificate and key files, if configured.
	tlsConfig, err := cert.GetTLSConfig(&cfg.Security, serverHome)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", zap.Error(err))
	}

	// Build the server address using hostname and port from the configurations.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           middleware.WithRequestID(log.AccessLogHandler(logger, mux)),
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	logger.Info("Starting identity UI...", zap.String("address", serverAddr),
		zap.String("identityService", cfg.Identity.PublicURL), zap.Bool("tls", tlsConfig != nil))

	if tlsConfig != nil {
		err = server.ListenAndServeTLS("", "")
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed to start", zap.Error(err))
	}
}
