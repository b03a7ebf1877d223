package apptest

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

type customerRepo struct{ s *Store }

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	d, unlock := r.s.lock()
	defer unlock()
	c, ok := d.customers.get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type partRepo struct{ s *Store }

func (r *partRepo) GetByID(_ context.Context, id string) (*entity.PartNumber, error) {
	d, unlock := r.s.lock()
	defer unlock()
	p, ok := d.parts.get(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *partRepo) ListRouting(_ context.Context, partNumberID string) ([]entity.PartRouting, error) {
	d, unlock := r.s.lock()
	defer unlock()
	var out []entity.PartRouting
	for _, rt := range d.routings.all() {
		if rt.PartNumberID == partNumberID {
			out = append(out, rt)
		}
	}
	slices.SortStableFunc(out, func(a, b entity.PartRouting) int { return a.SequenceNumber - b.SequenceNumber })
	return out, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	d, unlock := r.s.lock()
	defer unlock()
	u, ok := d.users.get(id)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByBadgeID(_ context.Context, badgeID string) (*entity.User, error) {
	d, unlock := r.s.lock()
	defer unlock()
	for _, u := range d.users.all() {
		if u.IsActive && u.BadgeID != nil && *u.BadgeID == badgeID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetRoleByName(_ context.Context, name string) (*entity.Role, error) {
	d, unlock := r.s.lock()
	defer unlock()
	role, ok := d.roles.get(name)
	if !ok {
		return nil, nil
	}
	return &role, nil
}

type materialRepo struct{ s *Store }

func (r *materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	d, unlock := r.s.lock()
	defer unlock()
	m, ok := d.materials.get(id)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *materialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *materialRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	d, unlock := r.s.lock()
	defer unlock()
	m, ok := d.materials.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	d.materials.put(id, m)
	return nil
}

type batchRepo struct{ s *Store }

func (r *batchRepo) Create(_ context.Context, b *entity.InventoryBatch) error {
	d, unlock := r.s.lock()
	defer unlock()
	for _, o := range d.batches.rows {
		if o.BatchNumber == b.BatchNumber {
			return domain.ErrDuplicate
		}
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	d.batches.put(b.ID, *b)
	return nil
}

func (r *batchRepo) GetByID(_ context.Context, id string) (*entity.InventoryBatch, error) {
	d, unlock := r.s.lock()
	defer unlock()
	b, ok := d.batches.get(id)
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *batchRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *batchRepo) ExistsByNumber(_ context.Context, batchNumber string) (bool, error) {
	d, unlock := r.s.lock()
	defer unlock()
	for _, b := range d.batches.rows {
		if b.BatchNumber == batchNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *batchRepo) UpdateRemaining(_ context.Context, id string, remaining decimal.Decimal) error {
	d, unlock := r.s.lock()
	defer unlock()
	b, ok := d.batches.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	b.RemainingQuantity = remaining
	d.batches.put(id, b)
	return nil
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	d, unlock := r.s.lock()
	defer unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	d.movements.put(m.ID, *m)
	return nil
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	d, unlock := r.s.lock()
	defer unlock()
	all := d.movements.all()
	slices.Reverse(all)
	var out []*entity.InventoryMovement
	for _, m := range all {
		if f.MaterialID != "" && m.MaterialID != f.MaterialID {
			continue
		}
		if f.MovementType != "" && m.MovementType != f.MovementType {
			continue
		}
		out = append(out, &m)
	}
	return page(out, f.Limit, f.Offset), nil
}
