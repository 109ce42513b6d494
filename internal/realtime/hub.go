// Package realtime diffuse les insertions (posts, messages, notifications)
// aux clients abonnés, à la manière des postgres_changes de Supabase.
package realtime

import (
	"sync"
)

const EventInsert = "INSERT"

type Event struct {
	Table   string            `json:"table"`
	Type    string            `json:"type"`
	Record  interface{}       `json:"new"`
	Columns map[string]string `json:"-"`
}

// Filter est une disjonction de conjonctions d'égalités sur les colonnes.
// Un filtre vide laisse passer tous les événements de la table.
type Filter []map[string]string

func Eq(column, value string) Filter {
	return Filter{{column: value}}
}

func (f Filter) Match(e Event) bool {
	if len(f) == 0 {
		return true
	}
	for _, clause := range f {
		if clauseMatches(clause, e.Columns) {
			return true
		}
	}
	return false
}

func clauseMatches(clause, columns map[string]string) bool {
	for column, want := range clause {
		got, ok := columns[column]
		if !ok || got != want {
			return false
		}
	}
	return true
}

type Subscription struct {
	id     uint64
	table  string
	filter Filter
	events chan Event
	hub    *Hub
	once   sync.Once
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s.id)
	})
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	buffer int
}

func NewHub(buffer int) *Hub {
	return &Hub{
		subs:   make(map[uint64]*Subscription),
		buffer: buffer,
	}
}

var Default = NewHub(32)

func (h *Hub) Subscribe(table string, filter Filter) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		id:     h.nextID,
		table:  table,
		filter: filter,
		events: make(chan Event, h.buffer),
		hub:    h,
	}
	h.subs[sub.id] = sub
	return sub
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.events)
	}
}

// Publish ne bloque jamais : un abonné dont le tampon est plein perd l'événement.
// Renvoie le nombre d'abonnés servis.
func (h *Hub) Publish(e Event) int {
	if e.Type == "" {
		e.Type = EventInsert
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, sub := range h.subs {
		if sub.table != e.Table || !sub.filter.Match(e) {
			continue
		}
		select {
		case sub.events <- e:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func Publish(e Event) int {
	return Default.Publish(e)
}
