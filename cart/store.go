package cart

import (
	"encoding/json"
	"fmt"
	"log"
)

// Product is the slice of catalog data a cart line snapshots when it is
// added. The snapshot is never re-fetched afterwards.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Line is one product in the cart together with its add-time snapshot.
// Quantity is always >= 1; dropping below one removes the line.
type Line struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type EventKind int

const (
	// EventChanged fires after a mutation. It carries no payload; subscribers
	// re-read the store instead of trusting event content or ordering.
	EventChanged EventKind = iota
	// EventEmptied fires instead of EventChanged when a mutation leaves the
	// cart empty, so an open cart panel can close itself.
	EventEmptied
)

type Event struct {
	Kind EventKind
}

type subscriber struct {
	id int
	fn func(Event)
}

// Store owns the client-local cart for one browsing session. Every method is
// synchronous over the in-memory lines; the storage write is best-effort and
// a failed write never rolls back a mutation. The in-memory cart is the
// source of truth for the session, persistence only covers reloads.
type Store struct {
	storage Storage
	lines   []Line
	subs    []subscriber
	nextSub int
	logf    func(format string, v ...any)
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage, logf: log.Printf}
}

// Load replaces the in-memory cart with the persisted snapshot. A missing
// slot yields an empty cart and no error. A slot that cannot be decoded also
// yields an empty cart, with the decode error returned for the call site to
// log; the store itself never refuses to start over a bad snapshot.
func (s *Store) Load() ([]Line, error) {
	s.lines = nil
	data, ok, err := s.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("read cart slot: %w", err)
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart slot: %w", err)
	}
	s.lines = lines
	return s.Lines(), nil
}

// Add puts product in the cart, merging into the existing line for the same
// product id. It returns the line's quantity after the add.
func (s *Store) Add(p Product) int {
	for i := range s.lines {
		if s.lines[i].ID == p.ID {
			s.lines[i].Quantity++
			q := s.lines[i].Quantity
			s.persistAndNotify()
			return q
		}
	}
	s.lines = append(s.lines, Line{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image, Quantity: 1})
	s.persistAndNotify()
	return 1
}

// SetQuantity replaces the line's quantity. Anything below one removes the
// line, matching the decrement-to-zero gesture. Unknown product ids are
// ignored.
func (s *Store) SetQuantity(productID string, n int) {
	if n < 1 {
		s.Remove(productID)
		return
	}
	for i := range s.lines {
		if s.lines[i].ID == productID {
			s.lines[i].Quantity = n
			s.persistAndNotify()
			return
		}
	}
}

// Remove drops the line for productID, if present.
func (s *Store) Remove(productID string) {
	kept := make([]Line, 0, len(s.lines))
	for _, l := range s.lines {
		if l.ID != productID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(s.lines) {
		return
	}
	s.lines = kept
	s.persistAndNotify()
}

// Clear drops every line. Used after a fully saved checkout.
func (s *Store) Clear() {
	s.lines = nil
	s.persistAndNotify()
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the sum of price times quantity over all lines.
func (s *Store) Total() float64 {
	var total float64
	for _, l := range s.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Count is the sum of quantities.
func (s *Store) Count() int {
	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Subscribe registers fn for change events. Dispatch is synchronous: fn has
// run for every subscriber by the time the triggering mutation returns. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) persistAndNotify() {
	data, err := json.Marshal(s.marshalLines())
	if err == nil {
		err = s.storage.Save(data)
	}
	if err != nil {
		s.logf("⚠️ Failed to persist cart: %v", err)
	}

	kind := EventChanged
	if len(s.lines) == 0 {
		kind = EventEmptied
	}
	// Dispatch over a copy so a subscriber that unsubscribes (itself or
	// another) during the callback cannot shift the slice under the loop.
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn(Event{Kind: kind})
	}
}

// marshalLines keeps the persisted form an array even when the cart is
// empty, so a fresh load never sees JSON null.
func (s *Store) marshalLines() []Line {
	if s.lines == nil {
		return []Line{}
	}
	return s.lines
}
