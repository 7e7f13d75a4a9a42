package registry

import (
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// Entry is the lobby-visible projection of a waiting session.
type Entry struct {
	ID      string `json:"id"`
	Creator string `json:"creator"`
}

// Lobby is the set of open one-player sessions awaiting a joiner. Insertion
// order is preserved for listing. At most one open session per creator name.
type Lobby struct {
	mu       sync.Mutex
	order    []string
	entries  map[string]Entry
	creators map[string]string
}

func NewLobby() *Lobby {
	return &Lobby{
		entries:  make(map[string]Entry),
		creators: make(map[string]string),
	}
}

// Publish adds a waiting entry. A creator may hold only one open entry.
func (that *Lobby) Publish(gameID, creator string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.creators[creator]; ok {
		return apperror.ErrGameAlreadyExists
	}

	that.order = append(that.order, gameID)
	that.entries[gameID] = Entry{ID: gameID, Creator: creator}
	that.creators[creator] = gameID

	return nil
}

// Withdraw removes the entry if present. Idempotent.
func (that *Lobby) Withdraw(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.entries[gameID]
	if !ok {
		return
	}

	delete(that.entries, gameID)
	delete(that.creators, entry.Creator)

	for i, id := range that.order {
		if id == gameID {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}
}

// GameByCreator returns the creator's open game id, if any.
func (that *Lobby) GameByCreator(creator string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	gameID, ok := that.creators[creator]

	return gameID, ok
}

// List snapshots the open entries in insertion order.
func (that *Lobby) List() []Entry {
	that.mu.Lock()
	defer that.mu.Unlock()

	list := make([]Entry, 0, len(that.order))
	for _, id := range that.order {
		list = append(list, that.entries[id])
	}

	return list
}
