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

	"secret-access-api/src/internal/model"
	"secret-access-api/src/internal/service"
	"secret-access-api/src/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the audit trail for review.
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes wires the audit endpoints
func (h *AuditHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/audit/:actorId", h.ListByActor)
}

// ListByActor handles GET /audit/:actorId
func (h *AuditHandler) ListByActor(c *gin.Context) {
	actorID := c.Param("actorId")

	entries, err := h.auditService.GetLogsByActor(actorID)
	if err != nil {
		utils.LogErrorWithContext("failed to list audit entries", err,
			map[string]interface{}{"actorId": actorID})
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(500, "Internal Server Error", "storage_error"))
		return
	}
	if entries == nil {
		entries = []*model.AuditLog{}
	}

	c.JSON(http.StatusOK, entries)
}
