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

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"secret-access-api/src/internal/catalog"
	"secret-access-api/src/internal/dto"
	"secret-access-api/src/internal/middleware"
	"secret-access-api/src/internal/repository"
	"secret-access-api/src/internal/service"

	"github.com/gin-gonic/gin"
)

const requesterHeader = "X-Requester-Id"

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	auditService := service.NewAuditService(repository.NewMemoryAuditLogRepo())
	requestService := service.NewRequestService(repository.NewMemoryAccessRequestRepo(), catalog.Default(), auditService, nil)

	router := gin.New()
	router.Use(middleware.PrincipalMiddleware(middleware.AuthConfig{
		SkipValidation:  true,
		RequesterHeader: requesterHeader,
	}))

	NewRequestHandler(requestService, 30).RegisterRoutes(router)
	NewCatalogHandler(catalog.Default()).RegisterRoutes(router)
	NewAuditHandler(auditService).RegisterRoutes(router)
	router.GET("/health", Health)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func submitRequest(t *testing.T, router *gin.Engine, requesterID, secretType string) dto.AccessRequest {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/requests", map[string]interface{}{
		"requesterId": requesterID,
		"secretType":  secretType,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit returned %d: %s", w.Code, w.Body.String())
	}
	var out dto.AccessRequest
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode submit response: %v", err)
	}
	return out
}

func TestSubmitDecideRevealFlow(t *testing.T) {
	router := setupTestRouter()

	created := submitRequest(t, router, "u1", "DB_PROD_PASS")
	if created.Status != "PENDING" {
		t.Errorf("expected PENDING, got %s", created.Status)
	}
	if created.SecretValue != nil {
		t.Error("expected null secretValue on creation")
	}

	w := doJSON(t, router, http.MethodPost, "/requests/"+created.ID+"/decision", map[string]interface{}{
		"status":      "GRANTED",
		"secretValue": "s3cr3t",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("decision returned %d: %s", w.Code, w.Body.String())
	}
	var decided map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &decided); err != nil || !decided["ok"] {
		t.Fatalf("expected {ok:true}, got %s", w.Body.String())
	}

	// Owner reveals the secret
	w = doJSON(t, router, http.MethodGet, "/requests/"+created.ID+"/secret", nil,
		map[string]string{requesterHeader: "u1"})
	if w.Code != http.StatusOK {
		t.Fatalf("reveal returned %d: %s", w.Code, w.Body.String())
	}
	var payload dto.SecretPayload
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode secret payload: %v", err)
	}
	if payload.Secret != "s3cr3t" {
		t.Errorf("expected s3cr3t, got %q", payload.Secret)
	}
	if got := w.Header().Get("X-Reveal-Ttl"); got != "30" {
		t.Errorf("expected X-Reveal-Ttl 30, got %q", got)
	}

	// Non-owner is refused
	w = doJSON(t, router, http.MethodGet, "/requests/"+created.ID+"/secret", nil,
		map[string]string{requesterHeader: "u2"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}

	// Anonymous caller is refused
	w = doJSON(t, router, http.MethodGet, "/requests/"+created.ID+"/secret", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without caller identity, got %d", w.Code)
	}
}

func TestSubmitValidation(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode int
	}{
		{"missing requesterId", map[string]interface{}{"secretType": "DB_PROD_PASS"}, http.StatusBadRequest},
		{"missing secretType", map[string]interface{}{"requesterId": "u1"}, http.StatusBadRequest},
		{"unknown secretType", map[string]interface{}{"requesterId": "u1", "secretType": "NOPE"}, http.StatusBadRequest},
		{"valid", map[string]interface{}{"requesterId": "u1", "secretType": "DB_PROD_PASS"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/requests", tt.body, nil)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestDuplicateSubmitConflicts(t *testing.T) {
	router := setupTestRouter()

	submitRequest(t, router, "u1", "DB_PROD_PASS")

	w := doJSON(t, router, http.MethodPost, "/requests", map[string]interface{}{
		"requesterId": "u1",
		"secretType":  "DB_PROD_PASS",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate submit, got %d", w.Code)
	}
}

func TestDecisionErrors(t *testing.T) {
	router := setupTestRouter()
	created := submitRequest(t, router, "u1", "DB_PROD_PASS")

	w := doJSON(t, router, http.MethodPost, "/requests/"+created.ID+"/decision",
		map[string]interface{}{"status": "MAYBE"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/requests/unknown-id/decision",
		map[string]interface{}{"status": "GRANTED"}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/requests/"+created.ID+"/decision",
		map[string]interface{}{"status": "DENIED"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first decision failed: %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/requests/"+created.ID+"/decision",
		map[string]interface{}{"status": "GRANTED", "secretValue": "s"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on re-decision, got %d", w.Code)
	}
}

func TestListRequests(t *testing.T) {
	router := setupTestRouter()

	// Unknown requester: empty array, never 404
	w := doJSON(t, router, http.MethodGet, "/requests/u-unknown", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []dto.AccessRequest
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("expected a JSON array, got %s", w.Body.String())
	}
	if len(list) != 0 {
		t.Fatalf("expected empty array, got %d entries", len(list))
	}

	submitRequest(t, router, "u1", "DB_PROD_PASS")
	submitRequest(t, router, "u1", "ACME_API_KEY")
	submitRequest(t, router, "u2", "LOGGING_DASH")

	w = doJSON(t, router, http.MethodGet, "/requests/u1", nil, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 requests for u1, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].RequestedAt.After(list[i-1].RequestedAt) {
			t.Errorf("list not newest-first at index %d", i)
		}
	}

	// Admin view sees everything
	w = doJSON(t, router, http.MethodGet, "/requests", nil, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode admin list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 requests in the admin view, got %d", len(list))
	}
}

func TestListSecretTypes(t *testing.T) {
	router := setupTestRouter()

	w := doJSON(t, router, http.MethodGet, "/secret-types", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var types []dto.SecretType
	if err := json.Unmarshal(w.Body.Bytes(), &types); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if len(types) != 4 {
		t.Fatalf("expected 4 catalog entries, got %d", len(types))
	}
}

func TestAuditTrailRecordsLifecycle(t *testing.T) {
	router := setupTestRouter()

	created := submitRequest(t, router, "u1", "DB_PROD_PASS")
	doJSON(t, router, http.MethodPost, "/requests/"+created.ID+"/decision",
		map[string]interface{}{"status": "GRANTED", "secretValue": "s3cr3t"}, nil)
	doJSON(t, router, http.MethodGet, "/requests/"+created.ID+"/secret", nil,
		map[string]string{requesterHeader: "u1"})

	w := doJSON(t, router, http.MethodGet, "/audit/u1", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var entries []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode audit entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected submit, decide and reveal entries, got %d", len(entries))
	}
}

func TestHealth(t *testing.T) {
	router := setupTestRouter()

	w := doJSON(t, router, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
