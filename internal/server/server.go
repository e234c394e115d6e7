/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"secret-access-api/src/config"
	"secret-access-api/src/internal/catalog"
	"secret-access-api/src/internal/database"
	"secret-access-api/src/internal/handler"
	"secret-access-api/src/internal/middleware"
	"secret-access-api/src/internal/notify"
	"secret-access-api/src/internal/repository"
	"secret-access-api/src/internal/service"
	"secret-access-api/src/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router      *gin.Engine
	requestRepo repository.AccessRequestRepository
	notifier    *notify.Manager
}

// StartAccessAPIServer creates a new server instance with all dependencies
// initialized. Backend selection happens exactly once here: a configured
// database driver gets the durable store, anything else the volatile one.
func StartAccessAPIServer(cfg *config.Server) (*Server, error) {
	utils.SetLogLevel(cfg.LogLevel)

	var requestRepo repository.AccessRequestRepository
	var auditRepo repository.AuditLogRepository

	if cfg.Database.Driver == "" {
		// Volatile fallback; the repository logs the one-time warning.
		requestRepo = repository.NewMemoryAccessRequestRepo()
		auditRepo = repository.NewMemoryAuditLogRepo()
	} else {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return nil, err
		}

		// Initialize schema (skip when ExecuteSchemaDDL is false, e.g. deployed Postgres without DDL access)
		if cfg.Database.ExecuteSchemaDDL {
			if err := db.InitSchema(cfg.DBSchemaDir); err != nil {
				return nil, err
			}
		} else {
			log.Printf("Skipping schema DDL execution (DATABASE_EXECUTE_SCHEMA_DDL=false)\n")
		}

		requestRepo = repository.NewAccessRequestRepo(db)
		auditRepo = repository.NewAuditLogRepo(db)
	}

	// Load the secret catalog
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFromFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load secret catalog: %w", err)
		}
		cat = loaded
	}

	// Initialize notification manager
	notifier := notify.NewManager(notify.ManagerConfig{
		MaxConnections: cfg.Notifications.MaxConnections,
		WriteTimeout:   time.Duration(cfg.Notifications.WriteTimeout) * time.Second,
	})

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	requestService := service.NewRequestService(requestRepo, cat, auditService, notifier)

	// Initialize handlers
	requestHandler := handler.NewRequestHandler(requestService, cfg.Disclosure.RevealTTLSeconds)
	catalogHandler := handler.NewCatalogHandler(cat)
	auditHandler := handler.NewAuditHandler(auditService)
	notificationHandler := handler.NewNotificationHandler(notifier)

	// Setup router
	router := gin.Default()

	// Configure and apply CORS middleware first (before principal middleware)
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", cfg.Auth.RequesterHeader}
	corsConfig.ExposeHeaders = []string{"X-Reveal-Ttl"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Configure and apply principal extraction middleware
	authConfig := middleware.AuthConfig{
		SecretKey:       cfg.Auth.SecretKey,
		TokenIssuer:     cfg.Auth.Issuer,
		SkipPaths:       cfg.Auth.SkipPaths,
		SkipValidation:  cfg.Auth.SkipValidation,
		RequesterHeader: cfg.Auth.RequesterHeader,
	}
	router.Use(middleware.PrincipalMiddleware(authConfig))

	// Register routes
	router.GET("/health", handler.Health)
	requestHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	auditHandler.RegisterRoutes(router)
	notificationHandler.RegisterRoutes(router)

	return &Server{
		router:      router,
		requestRepo: requestRepo,
		notifier:    notifier,
	}, nil
}

// Start starts the HTTP server. TLS termination is left to the
// fronting proxy.
func (s *Server) Start(port string) error {
	if port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: s.router,
	}

	log.Printf("[INFO] Starting HTTP server on :%s", port)
	return server.ListenAndServe()
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown() {
	s.notifier.Shutdown()
}

// GetRouter returns the gin router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
