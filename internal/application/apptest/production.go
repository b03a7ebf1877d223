package apptest

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(_ context.Context, po *entity.ProductionOrder) error {
	d, unlock := r.s.lock()
	defer unlock()
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	for _, o := range d.orders.rows {
		if o.PONumber == po.PONumber {
			return domain.ErrDuplicate
		}
	}
	d.orders.put(po.ID, *po)
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.ProductionOrder, error) {
	d, unlock := r.s.lock()
	defer unlock()
	po, ok := d.orders.get(id)
	if !ok {
		return nil, nil
	}
	return &po, nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) Update(_ context.Context, po *entity.ProductionOrder) error {
	d, unlock := r.s.lock()
	defer unlock()
	if _, ok := d.orders.get(po.ID); !ok {
		return domain.ErrNotFound
	}
	d.orders.put(po.ID, *po)
	return nil
}

func (r *orderRepo) List(_ context.Context, f repository.ProductionOrderFilter) ([]*entity.ProductionOrder, error) {
	d, unlock := r.s.lock()
	defer unlock()
	var out []*entity.ProductionOrder
	all := d.orders.all()
	slices.Reverse(all)
	for _, po := range all {
		if f.Status != "" && po.Status != f.Status {
			continue
		}
		if f.PartNumberID != "" && po.PartNumberID != f.PartNumberID {
			continue
		}
		out = append(out, &po)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *orderRepo) ListBySalesOrderAndPart(_ context.Context, salesOrderID, partNumberID string) ([]*entity.ProductionOrder, error) {
	d, unlock := r.s.lock()
	defer unlock()
	var out []*entity.ProductionOrder
	for _, po := range d.orders.all() {
		if po.SalesOrderID != nil && *po.SalesOrderID == salesOrderID && po.PartNumberID == partNumberID {
			out = append(out, &po)
		}
	}
	return out, nil
}

type inspectionRepo struct{ s *Store }

func (r *inspectionRepo) Create(_ context.Context, qi *entity.QualityInspection) error {
	d, unlock := r.s.lock()
	defer unlock()
	if qi.ID == "" {
		qi.ID = uuid.New().String()
	}
	d.inspections.put(qi.ID, *qi)
	return nil
}

func (r *inspectionRepo) GetByID(_ context.Context, id string) (*entity.QualityInspection, error) {
	d, unlock := r.s.lock()
	defer unlock()
	qi, ok := d.inspections.get(id)
	if !ok {
		return nil, nil
	}
	return &qi, nil
}

func (r *inspectionRepo) Update(_ context.Context, qi *entity.QualityInspection) error {
	d, unlock := r.s.lock()
	defer unlock()
	if _, ok := d.inspections.get(qi.ID); !ok {
		return domain.ErrNotFound
	}
	d.inspections.put(qi.ID, *qi)
	return nil
}

func (r *inspectionRepo) Delete(_ context.Context, id string) error {
	d, unlock := r.s.lock()
	defer unlock()
	if !d.inspections.del(id) {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inspectionRepo) ListByProductionOrder(_ context.Context, productionOrderID string) ([]*entity.QualityInspection, error) {
	d, unlock := r.s.lock()
	defer unlock()
	var out []*entity.QualityInspection
	for _, qi := range d.inspections.all() {
		if qi.ProductionOrderID == productionOrderID {
			out = append(out, &qi)
		}
	}
	return out, nil
}

func (r *inspectionRepo) List(_ context.Context, f repository.InspectionFilter) ([]*entity.QualityInspection, error) {
	d, unlock := r.s.lock()
	defer unlock()
	var out []*entity.QualityInspection
	all := d.inspections.all()
	slices.Reverse(all)
	for _, qi := range all {
		if f.Status != "" && qi.Status != f.Status {
			continue
		}
		if f.ProductionOrderID != "" && qi.ProductionOrderID != f.ProductionOrderID {
			continue
		}
		out = append(out, &qi)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *inspectionRepo) ExistsForTravelSheet(_ context.Context, travelSheetID string) (bool, error) {
	d, unlock := r.s.lock()
	defer unlock()
	for _, qi := range d.inspections.rows {
		if qi.TravelSheetID != nil && *qi.TravelSheetID == travelSheetID {
			return true, nil
		}
	}
	return false, nil
}

type travelSheetRepo struct{ s *Store }

func (r *travelSheetRepo) Create(_ context.Context, ts *entity.TravelSheet) error {
	d, unlock := r.s.lock()
	defer unlock()
	if ts.ID == "" {
		ts.ID = uuid.New().String()
	}
	head := *ts
	head.Operations = nil
	d.sheets.put(ts.ID, head)
	for i := range ts.Operations {
		op := &ts.Operations[i]
		if op.ID == "" {
			op.ID = uuid.New().String()
		}
		op.TravelSheetID = ts.ID
		d.operations.put(op.ID, *op)
	}
	return nil
}

func (d *data) sheetWithOps(ts entity.TravelSheet) *entity.TravelSheet {
	for _, op := range d.operations.all() {
		if op.TravelSheetID == ts.ID {
			ts.Operations = append(ts.Operations, op)
		}
	}
	slices.SortStableFunc(ts.Operations, func(a, b entity.TravelSheetOperation) int {
		return a.SequenceNumber - b.SequenceNumber
	})
	return &ts
}

func (r *travelSheetRepo) GetByID(_ context.Context, id string) (*entity.TravelSheet, error) {
	d, unlock := r.s.lock()
	defer unlock()
	ts, ok := d.sheets.get(id)
	if !ok {
		return nil, nil
	}
	return d.sheetWithOps(ts), nil
}

func (r *travelSheetRepo) ListByProductionOrder(ctx context.Context, productionOrderID string) ([]*entity.TravelSheet, error) {
	return r.ListByProductionOrderAndStatus(ctx, productionOrderID, "")
}

func (r *travelSheetRepo) ListByProductionOrderAndStatus(_ context.Context, productionOrderID, status string) ([]*entity.TravelSheet, error) {
	d, unlock := r.s.lock()
	defer unlock()
	var out []*entity.TravelSheet
	for _, ts := range d.sheets.all() {
		if ts.ProductionOrderID != productionOrderID || (status != "" && ts.Status != status) {
			continue
		}
		out = append(out, d.sheetWithOps(ts))
	}
	return out, nil
}

func (r *travelSheetRepo) UpdateStatus(_ context.Context, id, status string) error {
	d, unlock := r.s.lock()
	defer unlock()
	ts, ok := d.sheets.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	ts.Status = status
	d.sheets.put(id, ts)
	return nil
}

func (r *travelSheetRepo) GetOperationByID(_ context.Context, id string) (*entity.TravelSheetOperation, error) {
	d, unlock := r.s.lock()
	defer unlock()
	op, ok := d.operations.get(id)
	if !ok {
		return nil, nil
	}
	return &op, nil
}

func (r *travelSheetRepo) GetOperationByQRCode(_ context.Context, qrCode string) (*entity.TravelSheetOperation, error) {
	d, unlock := r.s.lock()
	defer unlock()
	for _, op := range d.operations.all() {
		if op.QRCode == qrCode {
			return &op, nil
		}
	}
	return nil, nil
}

func (r *travelSheetRepo) GetOperationForUpdate(ctx context.Context, id string) (*entity.TravelSheetOperation, error) {
	return r.GetOperationByID(ctx, id)
}

func (r *travelSheetRepo) StartOperation(_ context.Context, id, operatorID string, at time.Time) (bool, error) {
	d, unlock := r.s.lock()
	defer unlock()
	op, ok := d.operations.get(id)
	if !ok || op.Status != entity.OperationStatusPending {
		return false, nil
	}
	op.Status = entity.OperationStatusInProgress
	op.OperatorID = &operatorID
	op.StartTime = &at
	op.UpdatedAt = at
	d.operations.put(id, op)
	return true, nil
}

func (r *travelSheetRepo) UpdateOperation(_ context.Context, op *entity.TravelSheetOperation) error {
	d, unlock := r.s.lock()
	defer unlock()
	if _, ok := d.operations.get(op.ID); !ok {
		return domain.ErrNotFound
	}
	d.operations.put(op.ID, *op)
	return nil
}

func (r *travelSheetRepo) CountOperationsNotInStatus(_ context.Context, travelSheetID, status string) (int, error) {
	d, unlock := r.s.lock()
	defer unlock()
	n := 0
	for _, op := range d.operations.rows {
		if op.TravelSheetID == travelSheetID && op.Status != status {
			n++
		}
	}
	return n, nil
}
