package registry

import (
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Connections maps live connection ids to registered display names and back.
// It is used for targeted notification only and does not gate gameplay.
type Connections struct {
	mu      sync.Mutex
	byConn  map[string]string
	byName  map[string]string
	ordered []string
}

func NewConnections() *Connections {
	return &Connections{
		byConn: make(map[string]string),
		byName: make(map[string]string),
	}
}

// Register binds the connection to the name, replacing any prior record for
// that connection. The last registration for a name wins the reverse lookup.
func (that *Connections) Register(connID, name string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if prev, ok := that.byConn[connID]; ok {
		if that.byName[prev] == connID {
			delete(that.byName, prev)
		}
	} else {
		that.ordered = append(that.ordered, connID)
	}

	that.byConn[connID] = name
	that.byName[name] = connID
}

// Unregister removes both directions for the connection. It returns the name
// that was bound, if any.
func (that *Connections) Unregister(connID string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	name, ok := that.byConn[connID]
	if !ok {
		return "", false
	}

	delete(that.byConn, connID)
	if that.byName[name] == connID {
		delete(that.byName, name)
	}

	for i, id := range that.ordered {
		if id == connID {
			that.ordered = append(that.ordered[:i], that.ordered[i+1:]...)
			break
		}
	}

	return name, true
}

// Lookup returns the connection id registered for the name.
func (that *Connections) Lookup(name string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	connID, ok := that.byName[name]

	return connID, ok
}

// Users snapshots the registered users in registration order.
func (that *Connections) Users() []entity.User {
	that.mu.Lock()
	defer that.mu.Unlock()

	users := make([]entity.User, 0, len(that.ordered))
	for _, connID := range that.ordered {
		users = append(users, entity.User{ID: connID, Name: that.byConn[connID]})
	}

	return users
}
