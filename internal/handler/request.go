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
	"errors"
	"net/http"
	"strconv"

	"secret-access-api/src/internal/constants"
	"secret-access-api/src/internal/disclosure"
	"secret-access-api/src/internal/dto"
	"secret-access-api/src/internal/middleware"
	"secret-access-api/src/internal/service"
	"secret-access-api/src/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestHandler maps the HTTP surface onto the request lifecycle engine.
// Storage failures surface as an opaque storage_error; full detail is
// logged internally only.
type RequestHandler struct {
	requestService *service.RequestService
	revealTTL      int
}

// NewRequestHandler creates a new request handler. revealTTL is the
// disclosure window in seconds advertised to clients on reveal; zero
// falls back to the session default.
func NewRequestHandler(requestService *service.RequestService, revealTTL int) *RequestHandler {
	if revealTTL <= 0 {
		revealTTL = int(disclosure.DefaultTTL.Seconds())
	}
	return &RequestHandler{
		requestService: requestService,
		revealTTL:      revealTTL,
	}
}

// RegisterRoutes wires the request lifecycle endpoints.
// The list-by-requester route shares the :id segment with the decision and
// secret routes; for GET /requests/:id the id is a requester id.
func (h *RequestHandler) RegisterRoutes(r *gin.Engine) {
	requestGroup := r.Group("/requests")
	{
		requestGroup.POST("", h.CreateRequest)
		requestGroup.GET("", h.ListAllRequests)
		requestGroup.GET("/:id", h.ListRequests)
		requestGroup.POST("/:id/decision", h.DecideRequest)
		requestGroup.GET("/:id/secret", h.RevealSecret)
	}
}

// CreateRequest handles POST /requests
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", err.Error()))
		return
	}

	if req.RequesterID == "" || req.SecretType == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			"requesterId and secretType are required"))
		return
	}

	request, err := h.requestService.SubmitRequest(req.RequesterID, req.SecretType, req.Justification, req.DurationDays)
	if err != nil {
		if errors.Is(err, constants.ErrUnknownSecretType) || errors.Is(err, constants.ErrMissingRequesterID) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", err.Error()))
			return
		}
		if errors.Is(err, constants.ErrDuplicateActiveRequest) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(409, "Conflict", err.Error()))
			return
		}
		utils.LogErrorWithContext("failed to create access request", err,
			map[string]interface{}{"requesterId": req.RequesterID, "secretType": req.SecretType})
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(500, "Internal Server Error", "storage_error"))
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListRequests handles GET /requests/:id where id is the requester id.
// Unknown requesters yield an empty array, never 404.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	requesterID := c.Param("id")

	requests, err := h.requestService.GetRequestsByRequester(requesterID)
	if err != nil {
		utils.LogErrorWithContext("failed to list access requests", err,
			map[string]interface{}{"requesterId": requesterID})
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(500, "Internal Server Error", "storage_error"))
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ListAllRequests handles GET /requests (admin view)
func (h *RequestHandler) ListAllRequests(c *gin.Context) {
	requests, err := h.requestService.ListAllRequests()
	if err != nil {
		utils.LogError("failed to list all access requests", err)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(500, "Internal Server Error", "storage_error"))
		return
	}

	c.JSON(http.StatusOK, requests)
}

// DecideRequest handles POST /requests/:id/decision
func (h *RequestHandler) DecideRequest(c *gin.Context) {
	id := c.Param("id")

	var req dto.DecisionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", err.Error()))
		return
	}

	err := h.requestService.DecideRequest(id, req.Status, req.SecretValue, req.DecisionComment)
	if err != nil {
		if errors.Is(err, constants.ErrInvalidDecision) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", err.Error()))
			return
		}
		if errors.Is(err, constants.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(404, "Not Found", err.Error()))
			return
		}
		if errors.Is(err, constants.ErrRequestAlreadyDecided) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(409, "Conflict", err.Error()))
			return
		}
		utils.LogErrorWithContext("failed to decide access request", err,
			map[string]interface{}{"requestId": id})
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(500, "Internal Server Error", "storage_error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RevealSecret handles GET /requests/:id/secret.
// The caller must be the authenticated requester that owns the record.
func (h *RequestHandler) RevealSecret(c *gin.Context) {
	id := c.Param("id")

	requesterID, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(401, "Unauthorized",
			"caller identity is required to reveal a secret"))
		return
	}

	secret, err := h.requestService.RevealSecret(id, requesterID)
	if err != nil {
		if errors.Is(err, constants.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(404, "Not Found", err.Error()))
			return
		}
		if errors.Is(err, constants.ErrNotRequestOwner) || errors.Is(err, constants.ErrRequestNotGranted) {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(403, "Forbidden", err.Error()))
			return
		}
		utils.LogErrorWithContext("failed to reveal secret", err,
			map[string]interface{}{"requestId": id, "requesterId": requesterID})
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(500, "Internal Server Error", "storage_error"))
		return
	}

	// Clients arm their disclosure session with the server-configured window.
	c.Header("X-Reveal-Ttl", strconv.Itoa(h.revealTTL))
	c.JSON(http.StatusOK, dto.SecretPayload{Secret: secret})
}
