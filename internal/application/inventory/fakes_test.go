package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/libreria-api/internal/application/inventory"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. memTxRunner serializa las transacciones con un mutex y
// restaura un snapshot si el callback falla: mismas garantías observables que
// el runner real sobre PostgreSQL (aislamiento por bloqueo de fila + rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu          sync.Mutex
	books       map[string]*entity.Book
	entries     map[string]*entity.LedgerEntry
	movements   []*entity.BookMovement
	materials   map[string]*entity.RawMaterial
	mpMovements []*entity.RawMaterialMovement
	pos         map[string]*entity.PointOfSale
	users       map[string]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		books:     make(map[string]*entity.Book),
		entries:   make(map[string]*entity.LedgerEntry),
		materials: make(map[string]*entity.RawMaterial),
		pos:       make(map[string]*entity.PointOfSale),
		users:     make(map[string]*entity.User),
	}
}

type storeSnapshot struct {
	books       map[string]*entity.Book
	entries     map[string]*entity.LedgerEntry
	movements   []*entity.BookMovement
	materials   map[string]*entity.RawMaterial
	mpMovements []*entity.RawMaterialMovement
}

func (s *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		books:       make(map[string]*entity.Book, len(s.books)),
		entries:     make(map[string]*entity.LedgerEntry, len(s.entries)),
		movements:   append([]*entity.BookMovement(nil), s.movements...),
		materials:   make(map[string]*entity.RawMaterial, len(s.materials)),
		mpMovements: append([]*entity.RawMaterialMovement(nil), s.mpMovements...),
	}
	for id, b := range s.books {
		cp := *b
		snap.books[id] = &cp
	}
	for id, e := range s.entries {
		cp := *e
		snap.entries[id] = &cp
	}
	for id, m := range s.materials {
		cp := *m
		snap.materials[id] = &cp
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.books = snap.books
	s.entries = snap.entries
	s.movements = snap.movements
	s.materials = snap.materials
	s.mpMovements = snap.mpMovements
}

// sameLocation compara punteros de punto de venta por valor (nil = bodega central).
func sameLocation(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ─── Ledger ───────────────────────────────────────────────────────────────────

type memLedgerRepo struct {
	s        *memStore
	lockEach bool
}

func (r *memLedgerRepo) lock() func() {
	if !r.lockEach {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memLedgerRepo) Get(_ context.Context, bookID string, posID *string) (*entity.LedgerEntry, error) {
	defer r.lock()()
	for _, e := range r.s.entries {
		if e.BookID == bookID && sameLocation(e.PointOfSaleID, posID) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLedgerRepo) GetForUpdate(ctx context.Context, bookID string, posID *string) (*entity.LedgerEntry, error) {
	return r.Get(ctx, bookID, posID)
}

func (r *memLedgerRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	defer r.lock()()
	e, ok := r.s.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memLedgerRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *memLedgerRepo) CreateIfAbsent(_ context.Context, entry *entity.LedgerEntry) error {
	defer r.lock()()
	for _, e := range r.s.entries {
		if e.BookID == entry.BookID && sameLocation(e.PointOfSaleID, entry.PointOfSaleID) {
			return nil
		}
	}
	cp := *entry
	r.s.entries[entry.ID] = &cp
	return nil
}

func (r *memLedgerRepo) UpdateStock(_ context.Context, id string, stock int) error {
	defer r.lock()()
	e, ok := r.s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Stock = stock
	return nil
}

func (r *memLedgerRepo) view(e *entity.LedgerEntry) *repository.LedgerView {
	v := &repository.LedgerView{
		ID:            e.ID,
		BookID:        e.BookID,
		PointOfSaleID: e.PointOfSaleID,
		Stock:         e.Stock,
		MinStock:      e.MinStock,
		UpdatedAt:     e.UpdatedAt,
	}
	if b, ok := r.s.books[e.BookID]; ok {
		v.BookName = b.Name
		v.BookPrice = b.Price
	}
	if e.PointOfSaleID != nil {
		if p, ok := r.s.pos[*e.PointOfSaleID]; ok {
			name := p.Name
			v.PointOfSaleName = &name
		}
	}
	return v
}

func (r *memLedgerRepo) list(filter func(*entity.LedgerEntry) bool) []*repository.LedgerView {
	var out []*repository.LedgerView
	for _, e := range r.s.entries {
		if filter(e) {
			out = append(out, r.view(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memLedgerRepo) ListGlobal(_ context.Context, _, _ int) ([]*repository.LedgerView, error) {
	defer r.lock()()
	return r.list(func(e *entity.LedgerEntry) bool { return e.PointOfSaleID == nil }), nil
}

func (r *memLedgerRepo) ListByPointOfSale(_ context.Context, posID string, _, _ int) ([]*repository.LedgerView, error) {
	defer r.lock()()
	return r.list(func(e *entity.LedgerEntry) bool {
		return e.PointOfSaleID != nil && *e.PointOfSaleID == posID
	}), nil
}

func (r *memLedgerRepo) ListLocations(_ context.Context, _, _ int) ([]*repository.LedgerView, error) {
	defer r.lock()()
	return r.list(func(e *entity.LedgerEntry) bool { return e.PointOfSaleID != nil }), nil
}

func (r *memLedgerRepo) TotalStock(_ context.Context, bookID string) (int, error) {
	defer r.lock()()
	total := 0
	for _, e := range r.s.entries {
		if e.BookID == bookID {
			total += e.Stock
		}
	}
	return total, nil
}

func (r *memLedgerRepo) DeleteByBook(_ context.Context, bookID string) error {
	defer r.lock()()
	for id, e := range r.s.entries {
		if e.BookID == bookID {
			delete(r.s.entries, id)
		}
	}
	return nil
}

// ─── Movimientos de libros ────────────────────────────────────────────────────

type memBookMovementRepo struct {
	s        *memStore
	lockEach bool
}

func (r *memBookMovementRepo) lock() func() {
	if !r.lockEach {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memBookMovementRepo) Create(_ context.Context, m *entity.BookMovement) error {
	defer r.lock()()
	if _, ok := r.s.entries[m.LedgerEntryID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memBookMovementRepo) ListByLedgerEntry(_ context.Context, ledgerEntryID string, _, _ int) ([]*entity.BookMovement, error) {
	defer r.lock()()
	var out []*entity.BookMovement
	for _, m := range r.s.movements {
		if m.LedgerEntryID == ledgerEntryID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memBookMovementRepo) ListByBook(_ context.Context, bookID string, _, _ int) ([]*entity.BookMovement, error) {
	defer r.lock()()
	var out []*entity.BookMovement
	for _, m := range r.s.movements {
		if e, ok := r.s.entries[m.LedgerEntryID]; ok && e.BookID == bookID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memBookMovementRepo) List(_ context.Context, _, _ int) ([]*entity.BookMovement, error) {
	defer r.lock()()
	return append([]*entity.BookMovement(nil), r.s.movements...), nil
}

func (r *memBookMovementRepo) CountByBook(ctx context.Context, bookID string) (int, error) {
	movs, err := r.ListByBook(ctx, bookID, 0, 0)
	if err != nil {
		return 0, err
	}
	return len(movs), nil
}

// ─── Libros ───────────────────────────────────────────────────────────────────

type memBookRepo struct {
	s        *memStore
	lockEach bool
}

func (r *memBookRepo) lock() func() {
	if !r.lockEach {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memBookRepo) Create(_ context.Context, b *entity.Book) error {
	defer r.lock()()
	cp := *b
	r.s.books[b.ID] = &cp
	return nil
}

func (r *memBookRepo) GetByID(_ context.Context, id string) (*entity.Book, error) {
	defer r.lock()()
	b, ok := r.s.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBookRepo) List(_ context.Context, q string, _, _ int) ([]*entity.Book, error) {
	defer r.lock()()
	var out []*entity.Book
	for _, b := range r.s.books {
		if q == "" || strings.Contains(strings.ToLower(b.Name), strings.ToLower(q)) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memBookRepo) Update(_ context.Context, id string, upd entity.BookUpdate) (*entity.Book, error) {
	defer r.lock()()
	b, ok := r.s.books[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		b.Name = *upd.Name
	}
	if upd.Price != nil {
		b.Price = *upd.Price
	}
	cp := *b
	return &cp, nil
}

func (r *memBookRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	if _, ok := r.s.books[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.books, id)
	return nil
}

// ─── Materias primas ──────────────────────────────────────────────────────────

type memRawMaterialRepo struct {
	s        *memStore
	lockEach bool
}

func (r *memRawMaterialRepo) lock() func() {
	if !r.lockEach {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memRawMaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	defer r.lock()()
	cp := *m
	r.s.materials[m.ID] = &cp
	return nil
}

func (r *memRawMaterialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	defer r.lock()()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memRawMaterialRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, id)
}

func (r *memRawMaterialRepo) List(_ context.Context, _, _ int) ([]*entity.RawMaterial, error) {
	defer r.lock()()
	var out []*entity.RawMaterial
	for _, m := range r.s.materials {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRawMaterialRepo) Update(_ context.Context, id string, upd entity.RawMaterialUpdate) (*entity.RawMaterial, error) {
	defer r.lock()()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		m.Name = *upd.Name
	}
	if upd.Unit != nil {
		m.Unit = *upd.Unit
	}
	if upd.MinStock != nil {
		m.MinStock = *upd.MinStock
	}
	cp := *m
	return &cp, nil
}

func (r *memRawMaterialRepo) UpdateStock(_ context.Context, id string, stock int) error {
	defer r.lock()()
	m, ok := r.s.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	return nil
}

func (r *memRawMaterialRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	if _, ok := r.s.materials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.materials, id)
	return nil
}

// ─── Movimientos de materia prima ─────────────────────────────────────────────

type memRawMaterialMovementRepo struct {
	s        *memStore
	lockEach bool
}

func (r *memRawMaterialMovementRepo) lock() func() {
	if !r.lockEach {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memRawMaterialMovementRepo) Create(_ context.Context, m *entity.RawMaterialMovement) error {
	defer r.lock()()
	if _, ok := r.s.materials[m.RawMaterialID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	r.s.mpMovements = append(r.s.mpMovements, &cp)
	return nil
}

func (r *memRawMaterialMovementRepo) ListByRawMaterial(_ context.Context, rawMaterialID string, _, _ int) ([]*entity.RawMaterialMovement, error) {
	defer r.lock()()
	var out []*entity.RawMaterialMovement
	for _, m := range r.s.mpMovements {
		if m.RawMaterialID == rawMaterialID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRawMaterialMovementRepo) CountByRawMaterial(ctx context.Context, rawMaterialID string) (int, error) {
	movs, err := r.ListByRawMaterial(ctx, rawMaterialID, 0, 0)
	if err != nil {
		return 0, err
	}
	return len(movs), nil
}

// ─── Puntos de venta y usuarios ───────────────────────────────────────────────

type memPointOfSaleRepo struct{ s *memStore }

func (r *memPointOfSaleRepo) Create(_ context.Context, p *entity.PointOfSale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.pos[p.ID] = &cp
	return nil
}

func (r *memPointOfSaleRepo) GetByID(_ context.Context, id string) (*entity.PointOfSale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPointOfSaleRepo) List(_ context.Context, _, _ int) ([]*entity.PointOfSale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PointOfSale
	for _, p := range r.s.pos {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

// ─── TxRunner ─────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	movRepo repository.BookMovementRepository,
	bookRepo repository.BookRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(
		&memLedgerRepo{s: r.s},
		&memBookMovementRepo{s: r.s},
		&memBookRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func (r *memTxRunner) RunRawMaterial(_ context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.RawMaterialMovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(
		&memRawMaterialRepo{s: r.s},
		&memRawMaterialMovementRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}
