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
	"fmt"
	"net/http"
	"time"

	"secret-access-api/src/internal/middleware"
	"secret-access-api/src/internal/notify"
	"secret-access-api/src/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NotificationHandler upgrades requester connections for decision push.
type NotificationHandler struct {
	manager  *notify.Manager
	upgrader websocket.Upgrader
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(manager *notify.Manager) *NotificationHandler {
	return &NotificationHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Implement proper origin checking in production
				return true
			},
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// RegisterRoutes wires the notification endpoints
func (h *NotificationHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws/notifications", h.Connect)
}

// Connect handles WebSocket upgrade requests at /ws/notifications.
// The connection is keyed by the caller's requester identity.
func (h *NotificationHandler) Connect(c *gin.Context) {
	requesterID, ok := middleware.GetRequesterFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(401, "Unauthorized",
			"caller identity is required for notifications"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		utils.LogWarning(fmt.Sprintf("websocket upgrade failed for %s: %v", requesterID, err))
		return
	}

	if err := h.manager.Register(requesterID, conn); err != nil {
		conn.Close()
		return
	}

	// Drain the connection until the peer goes away; clients never send
	// application messages on this channel.
	go func() {
		defer func() {
			h.manager.Unregister(requesterID, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
