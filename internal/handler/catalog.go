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
	"net/http"

	"secret-access-api/src/internal/catalog"
	"secret-access-api/src/internal/dto"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the static secret catalog to clients.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// RegisterRoutes wires the catalog endpoints
func (h *CatalogHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/secret-types", h.ListSecretTypes)
}

// ListSecretTypes handles GET /secret-types
func (h *CatalogHandler) ListSecretTypes(c *gin.Context) {
	entries := h.catalog.List()
	out := make([]dto.SecretType, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.SecretType{ID: e.ID, Name: e.Name, Description: e.Description})
	}
	c.JSON(http.StatusOK, out)
}
