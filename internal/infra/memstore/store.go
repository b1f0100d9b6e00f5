// Package memstore provides the process-local, concurrency-safe store
// backing every repository interface. Entities are kept as plain structs in
// maps keyed by their generated IDs; reads hand out copies, so callers can
// stage changes and commit them through Update without racing other callers.
package memstore

import (
	"sync"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// Store holds every entity collection behind a single lock. Cross-entity
// consistency is the orchestration layer's concern; the store only
// guarantees that individual operations never interleave.
type Store struct {
	mu sync.RWMutex

	users    map[uuid.UUID]*entity.User
	products map[uuid.UUID]*entity.Product
	orders   map[uuid.UUID]*entity.Order
	reviews  map[uuid.UUID]*entity.Review
	messages map[uuid.UUID]*entity.Message
	appeals  map[uuid.UUID]*entity.Appeal
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*entity.User),
		products: make(map[uuid.UUID]*entity.Product),
		orders:   make(map[uuid.UUID]*entity.Order),
		reviews:  make(map[uuid.UUID]*entity.Review),
		messages: make(map[uuid.UUID]*entity.Message),
		appeals:  make(map[uuid.UUID]*entity.Appeal),
	}
}

// Dump is the serializable image of the whole store, consumed by the
// snapshot persistence.
type Dump struct {
	Users    []*entity.User    `json:"users"`
	Products []*entity.Product `json:"products"`
	Orders   []*entity.Order   `json:"orders"`
	Reviews  []*entity.Review  `json:"reviews"`
	Messages []*entity.Message `json:"messages"`
	Appeals  []*entity.Appeal  `json:"appeals"`
}

// Dump copies the full store contents into a serializable image.
func (s *Store) Dump() *Dump {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := &Dump{}
	for _, u := range s.users {
		d.Users = append(d.Users, cloneUser(u))
	}
	for _, p := range s.products {
		d.Products = append(d.Products, cloneProduct(p))
	}
	for _, o := range s.orders {
		d.Orders = append(d.Orders, cloneOrder(o))
	}
	for _, r := range s.reviews {
		d.Reviews = append(d.Reviews, cloneReview(r))
	}
	for _, m := range s.messages {
		d.Messages = append(d.Messages, cloneMessage(m))
	}
	for _, a := range s.appeals {
		d.Appeals = append(d.Appeals, cloneAppeal(a))
	}

	return d
}

// Load replaces the store contents with the given image.
func (s *Store) Load(d *Dump) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[uuid.UUID]*entity.User, len(d.Users))
	for _, u := range d.Users {
		s.users[u.ID] = cloneUser(u)
	}
	s.products = make(map[uuid.UUID]*entity.Product, len(d.Products))
	for _, p := range d.Products {
		s.products[p.ID] = cloneProduct(p)
	}
	s.orders = make(map[uuid.UUID]*entity.Order, len(d.Orders))
	for _, o := range d.Orders {
		s.orders[o.ID] = cloneOrder(o)
	}
	s.reviews = make(map[uuid.UUID]*entity.Review, len(d.Reviews))
	for _, r := range d.Reviews {
		s.reviews[r.ID] = cloneReview(r)
	}
	s.messages = make(map[uuid.UUID]*entity.Message, len(d.Messages))
	for _, m := range d.Messages {
		s.messages[m.ID] = cloneMessage(m)
	}
	s.appeals = make(map[uuid.UUID]*entity.Appeal, len(d.Appeals))
	for _, a := range d.Appeals {
		s.appeals[a.ID] = cloneAppeal(a)
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Roles = append(entity.Roles(nil), u.Roles...)

	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p

	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	if o.ConfirmedAt != nil {
		t := *o.ConfirmedAt
		c.ConfirmedAt = &t
	}
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}

	return &c
}

func cloneReview(r *entity.Review) *entity.Review {
	c := *r

	return &c
}

func cloneMessage(m *entity.Message) *entity.Message {
	c := *m

	return &c
}

func cloneAppeal(a *entity.Appeal) *entity.Appeal {
	c := *a
	if a.ResolvedBy != nil {
		id := *a.ResolvedBy
		c.ResolvedBy = &id
	}
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		c.ResolvedAt = &t
	}

	return &c
}
