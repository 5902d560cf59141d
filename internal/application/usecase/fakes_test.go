package usecase_test

import (
	"context"
	"strings"

	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// Fakes mínimos en memoria para los casos de uso CRUD. Aquí no se ejercita la
// concurrencia (eso vive en los tests del motor de ajustes), así que el runner
// solo encadena los repos sin bloqueo ni rollback.

type memDB struct {
	books       map[string]*entity.Book
	entries     map[string]*entity.LedgerEntry
	movements   []*entity.BookMovement
	materials   map[string]*entity.RawMaterial
	mpMovements []*entity.RawMaterialMovement
	pos         map[string]*entity.PointOfSale
	users       map[string]*entity.User
}

func newMemDB() *memDB {
	return &memDB{
		books:     make(map[string]*entity.Book),
		entries:   make(map[string]*entity.LedgerEntry),
		materials: make(map[string]*entity.RawMaterial),
		pos:       make(map[string]*entity.PointOfSale),
		users:     make(map[string]*entity.User),
	}
}

func sameLoc(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ─── Repos ────────────────────────────────────────────────────────────────────

type dbBookRepo struct{ db *memDB }

func (r *dbBookRepo) Create(_ context.Context, b *entity.Book) error {
	r.db.books[b.ID] = b
	return nil
}

func (r *dbBookRepo) GetByID(_ context.Context, id string) (*entity.Book, error) {
	return r.db.books[id], nil
}

func (r *dbBookRepo) List(_ context.Context, q string, _, _ int) ([]*entity.Book, error) {
	var out []*entity.Book
	for _, b := range r.db.books {
		if q == "" || strings.Contains(strings.ToLower(b.Name), strings.ToLower(q)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *dbBookRepo) Update(_ context.Context, id string, upd entity.BookUpdate) (*entity.Book, error) {
	b, ok := r.db.books[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		b.Name = *upd.Name
	}
	if upd.Price != nil {
		b.Price = *upd.Price
	}
	return b, nil
}

func (r *dbBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.db.books[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.books, id)
	return nil
}

type dbLedgerRepo struct{ db *memDB }

func (r *dbLedgerRepo) Get(_ context.Context, bookID string, posID *string) (*entity.LedgerEntry, error) {
	for _, e := range r.db.entries {
		if e.BookID == bookID && sameLoc(e.PointOfSaleID, posID) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *dbLedgerRepo) GetForUpdate(ctx context.Context, bookID string, posID *string) (*entity.LedgerEntry, error) {
	return r.Get(ctx, bookID, posID)
}

func (r *dbLedgerRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	return r.db.entries[id], nil
}

func (r *dbLedgerRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *dbLedgerRepo) CreateIfAbsent(ctx context.Context, entry *entity.LedgerEntry) error {
	existing, _ := r.Get(ctx, entry.BookID, entry.PointOfSaleID)
	if existing != nil {
		return nil
	}
	r.db.entries[entry.ID] = entry
	return nil
}

func (r *dbLedgerRepo) UpdateStock(_ context.Context, id string, stock int) error {
	e, ok := r.db.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Stock = stock
	return nil
}

func (r *dbLedgerRepo) ListGlobal(_ context.Context, _, _ int) ([]*repository.LedgerView, error) {
	return nil, nil
}

func (r *dbLedgerRepo) ListByPointOfSale(_ context.Context, _ string, _, _ int) ([]*repository.LedgerView, error) {
	return nil, nil
}

func (r *dbLedgerRepo) ListLocations(_ context.Context, _, _ int) ([]*repository.LedgerView, error) {
	return nil, nil
}

func (r *dbLedgerRepo) TotalStock(_ context.Context, bookID string) (int, error) {
	total := 0
	for _, e := range r.db.entries {
		if e.BookID == bookID {
			total += e.Stock
		}
	}
	return total, nil
}

func (r *dbLedgerRepo) DeleteByBook(_ context.Context, bookID string) error {
	for id, e := range r.db.entries {
		if e.BookID == bookID {
			delete(r.db.entries, id)
		}
	}
	return nil
}

type dbMovementRepo struct{ db *memDB }

func (r *dbMovementRepo) Create(_ context.Context, m *entity.BookMovement) error {
	r.db.movements = append(r.db.movements, m)
	return nil
}

func (r *dbMovementRepo) ListByLedgerEntry(_ context.Context, id string, _, _ int) ([]*entity.BookMovement, error) {
	var out []*entity.BookMovement
	for _, m := range r.db.movements {
		if m.LedgerEntryID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *dbMovementRepo) ListByBook(_ context.Context, bookID string, _, _ int) ([]*entity.BookMovement, error) {
	var out []*entity.BookMovement
	for _, m := range r.db.movements {
		if e, ok := r.db.entries[m.LedgerEntryID]; ok && e.BookID == bookID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *dbMovementRepo) List(_ context.Context, _, _ int) ([]*entity.BookMovement, error) {
	return r.db.movements, nil
}

func (r *dbMovementRepo) CountByBook(ctx context.Context, bookID string) (int, error) {
	movs, err := r.ListByBook(ctx, bookID, 0, 0)
	return len(movs), err
}

type dbRawMaterialRepo struct{ db *memDB }

func (r *dbRawMaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	r.db.materials[m.ID] = m
	return nil
}

func (r *dbRawMaterialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	return r.db.materials[id], nil
}

func (r *dbRawMaterialRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, id)
}

func (r *dbRawMaterialRepo) List(_ context.Context, _, _ int) ([]*entity.RawMaterial, error) {
	var out []*entity.RawMaterial
	for _, m := range r.db.materials {
		out = append(out, m)
	}
	return out, nil
}

func (r *dbRawMaterialRepo) Update(_ context.Context, id string, upd entity.RawMaterialUpdate) (*entity.RawMaterial, error) {
	m, ok := r.db.materials[id]
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
	return m, nil
}

func (r *dbRawMaterialRepo) UpdateStock(_ context.Context, id string, stock int) error {
	m, ok := r.db.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	return nil
}

func (r *dbRawMaterialRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.db.materials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.materials, id)
	return nil
}

type dbRawMaterialMovementRepo struct{ db *memDB }

func (r *dbRawMaterialMovementRepo) Create(_ context.Context, m *entity.RawMaterialMovement) error {
	r.db.mpMovements = append(r.db.mpMovements, m)
	return nil
}

func (r *dbRawMaterialMovementRepo) ListByRawMaterial(_ context.Context, id string, _, _ int) ([]*entity.RawMaterialMovement, error) {
	var out []*entity.RawMaterialMovement
	for _, m := range r.db.mpMovements {
		if m.RawMaterialID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *dbRawMaterialMovementRepo) CountByRawMaterial(ctx context.Context, id string) (int, error) {
	movs, err := r.ListByRawMaterial(ctx, id, 0, 0)
	return len(movs), err
}

type dbPointOfSaleRepo struct{ db *memDB }

func (r *dbPointOfSaleRepo) Create(_ context.Context, p *entity.PointOfSale) error {
	r.db.pos[p.ID] = p
	return nil
}

func (r *dbPointOfSaleRepo) GetByID(_ context.Context, id string) (*entity.PointOfSale, error) {
	return r.db.pos[id], nil
}

func (r *dbPointOfSaleRepo) List(_ context.Context, _, _ int) ([]*entity.PointOfSale, error) {
	var out []*entity.PointOfSale
	for _, p := range r.db.pos {
		out = append(out, p)
	}
	return out, nil
}

type dbUserRepo struct{ db *memDB }

func (r *dbUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db.users[u.ID] = u
	return nil
}

func (r *dbUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.db.users[id], nil
}

func (r *dbUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *dbUserRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.db.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *dbUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.db.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.db.users[u.ID] = u
	return nil
}

func (r *dbUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.db.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.db.users, id)
	return nil
}

// ─── TxRunner pasante ─────────────────────────────────────────────────────────

type dbTxRunner struct{ db *memDB }

func (r *dbTxRunner) Run(_ context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	movRepo repository.BookMovementRepository,
	bookRepo repository.BookRepository,
) error) error {
	return fn(&dbLedgerRepo{db: r.db}, &dbMovementRepo{db: r.db}, &dbBookRepo{db: r.db})
}

func (r *dbTxRunner) RunRawMaterial(_ context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.RawMaterialMovementRepository,
) error) error {
	return fn(&dbRawMaterialRepo{db: r.db}, &dbRawMaterialMovementRepo{db: r.db})
}
