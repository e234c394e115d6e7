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

// Package notify pushes decision events to a requester's open UI sessions
// over WebSocket. Delivery is best-effort: a failed write drops the
// connection, never the decision.
package notify

import (
	"fmt"
	"sync"
	"time"

	"secret-access-api/src/internal/dto"
	"secret-access-api/src/internal/utils"

	"github.com/gorilla/websocket"
)

// Manager keeps the registry of active notification connections keyed by
// requester id. A requester may hold several connections (multiple tabs).
type Manager struct {
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn
	count       int

	maxConnections int
	writeTimeout   time.Duration
	closed         bool
}

// ManagerConfig contains configuration parameters for the manager
type ManagerConfig struct {
	MaxConnections int           // Maximum concurrent connections (default 1000)
	WriteTimeout   time.Duration // Per-message write deadline (default 10s)
}

// DefaultManagerConfig returns sensible default configuration values
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MaxConnections: 1000,
		WriteTimeout:   10 * time.Second,
	}
}

// NewManager creates a new notification manager
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = 1000
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	return &Manager{
		connections:    make(map[string][]*websocket.Conn),
		maxConnections: cfg.MaxConnections,
		writeTimeout:   cfg.WriteTimeout,
	}
}

// Register adds a connection for the requester. Returns an error when the
// manager is shut down or the global connection limit is reached.
func (m *Manager) Register(requesterID string, conn *websocket.Conn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("notification manager is shut down")
	}
	if m.count >= m.maxConnections {
		return fmt.Errorf("notification connection limit reached (%d)", m.maxConnections)
	}

	m.connections[requesterID] = append(m.connections[requesterID], conn)
	m.count++
	return nil
}

// Unregister removes a connection for the requester. Safe to call for a
// connection that was never registered or was already removed.
func (m *Manager) Unregister(requesterID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(requesterID, conn)
}

func (m *Manager) removeLocked(requesterID string, conn *websocket.Conn) {
	conns := m.connections[requesterID]
	for i, c := range conns {
		if c == conn {
			m.connections[requesterID] = append(conns[:i], conns[i+1:]...)
			m.count--
			break
		}
	}
	if len(m.connections[requesterID]) == 0 {
		delete(m.connections, requesterID)
	}
}

// NotifyDecision sends the event to every open connection of the
// requester. Connections that fail to accept the write are dropped.
func (m *Manager) NotifyDecision(requesterID string, n dto.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var dead []*websocket.Conn
	for _, conn := range m.connections[requesterID] {
		conn.SetWriteDeadline(time.Now().Add(m.writeTimeout))
		if err := conn.WriteJSON(n); err != nil {
			utils.LogWarning(fmt.Sprintf("dropping notification connection for %s: %v", requesterID, err))
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		m.removeLocked(requesterID, conn)
		conn.Close()
	}
}

// ConnectionCount returns the number of active connections.
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.count
}

// Shutdown closes every connection and rejects further registrations.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for requesterID, conns := range m.connections {
		for _, conn := range conns {
			conn.Close()
		}
		delete(m.connections, requesterID)
	}
	m.count = 0
}
