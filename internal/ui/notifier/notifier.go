// Package notifier fans dashboard updates out to open SSE connections.
package notifier

import "sync"

// Update is a bit set of things that changed.
type Update uint8

// Update kinds.
const (
	// CatalogReloaded is sent after the regulation catalog was swapped.
	CatalogReloaded Update = 1 << iota
	// AssessmentSaved is sent after an assessment was persisted.
	AssessmentSaved

	// All matches every update kind.
	All = CatalogReloaded | AssessmentSaved
)

// Has reports whether u includes kind.
func (u Update) Has(kind Update) bool {
	return u&kind != 0
}

// Notifier broadcasts updates to subscribed listeners. Listeners receive the
// kind that changed and re-read whatever they render from the store.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Update]Update // channel -> kinds it wants
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Update]Update),
	}
}

// Subscribe returns a channel that receives updates matching kinds.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe(kinds Update) chan Update {
	ch := make(chan Update, 1)
	n.mu.Lock()
	n.listeners[ch] = kinds
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Update) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends kind to every listener subscribed to it.
// A listener that still has an unread update is skipped; it re-renders
// everything on the pending one anyway.
func (n *Notifier) Broadcast(kind Update) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch, kinds := range n.listeners {
		if !kinds.Has(kind) {
			continue
		}
		select {
		case ch <- kind:
		default:
		}
	}
}

// Listeners returns the number of subscribed channels.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
