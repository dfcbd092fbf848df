package services

import (
	"log"
	"sync"
	"time"
)

// SweepInterval is how often the registry evicts connections whose
// transport has closed without an explicit unregister.
const SweepInterval = 30 * time.Second

// ClientConn is the transport handle the registry tracks. The websocket
// wrapper in the server package implements it.
type ClientConn interface {
	WriteJSON(v interface{}) error
	Close() error
	Closed() bool
}

// ConnectionRegistry maps an authenticated user id to at most one live
// connection. It is constructed once at startup and injected into every
// component that pushes to clients.
type ConnectionRegistry struct {
	mu      sync.RWMutex
	clients map[uint]ClientConn

	stopOnce sync.Once
	done     chan struct{}
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		clients: make(map[uint]ClientConn),
		done:    make(chan struct{}),
	}
}

// Register stores the connection for the user. Last-registered wins: a
// prior connection for the same user is displaced and closed.
func (r *ConnectionRegistry) Register(userID uint, conn ClientConn) {
	r.mu.Lock()
	displaced := r.clients[userID]
	r.clients[userID] = conn
	r.mu.Unlock()

	if displaced != nil && displaced != conn {
		displaced.Close()
	}
}

// Lookup returns the live connection for the user, if any.
func (r *ConnectionRegistry) Lookup(userID uint) (ClientConn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.clients[userID]
	return conn, ok
}

// Unregister removes the user's entry if present; a no-op otherwise.
func (r *ConnectionRegistry) Unregister(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, userID)
}

// UnregisterConn removes the entry only if it still belongs to the given
// connection. Read pumps use this so a displaced connection's shutdown
// cannot evict its replacement.
func (r *ConnectionRegistry) UnregisterConn(userID uint, conn ClientConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.clients[userID]; ok && current == conn {
		delete(r.clients, userID)
	}
}

// StartSweeper runs the periodic liveness scan until Stop is called.
func (r *ConnectionRegistry) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-r.done:
				return
			}
		}
	}()
}

// Sweep evicts every connection whose transport reports closed and logs
// the offline transition. Presence is not broadcast to the social graph.
func (r *ConnectionRegistry) Sweep() {
	r.mu.Lock()
	var offline []uint
	for userID, conn := range r.clients {
		if conn.Closed() {
			delete(r.clients, userID)
			offline = append(offline, userID)
		}
	}
	r.mu.Unlock()

	for _, userID := range offline {
		log.Printf("user %d is now offline", userID)
	}
}

// Stop halts the sweeper.
func (r *ConnectionRegistry) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

// Clear closes and drops every connection. Called on server shutdown.
func (r *ConnectionRegistry) Clear() {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[uint]ClientConn)
	r.mu.Unlock()

	for _, conn := range clients {
		conn.Close()
	}
}

// Len reports the number of registered connections.
func (r *ConnectionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
