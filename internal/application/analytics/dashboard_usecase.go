// Package analytics contiene los casos de uso del tablero de planta:
// contadores de órdenes, semáforo de entregas y carga de centros de trabajo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

const (
	defaultDailyDays = 7
	maxDailyDays     = 365
)

// DashboardUseCase arma los widgets del tablero.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	risk fulfillment.RiskClassifier
	log  zerolog.Logger
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso. riskWindowDays es el horizonte Yellow del semáforo.
func NewDashboardUseCase(repo repository.DashboardRepository, riskWindowDays int, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		repo: repo,
		risk: fulfillment.NewRiskClassifier(riskWindowDays),
		log:  log,
		now:  time.Now,
	}
}

// GetStats construye DashboardStatsDTO.
//
// Cinco consultas en paralelo:
//  1. órdenes de venta Open+Partial
//  2. órdenes de venta Completed
//  3. órdenes de venta con al menos un embarque
//  4. órdenes de producción In Progress
//  5. calendario de órdenes activas → semáforo Red/Yellow/Green
//
// Todas las clasificaciones usan el mismo "hoy".
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	today := uc.now()

	type countResult struct {
		n   int
		err error
	}
	type scheduleResult struct {
		rows []repository.ScheduleRow
		err  error
	}

	openCh := make(chan countResult, 1)
	completedCh := make(chan countResult, 1)
	shippedCh := make(chan countResult, 1)
	inProdCh := make(chan countResult, 1)
	scheduleCh := make(chan scheduleResult, 1)

	go func() {
		n, err := uc.repo.CountSalesOrdersByStatus(ctx, entity.SalesOrderStatusOpen, entity.SalesOrderStatusPartial)
		openCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountSalesOrdersByStatus(ctx, entity.SalesOrderStatusCompleted)
		completedCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountShippedSalesOrders(ctx)
		shippedCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountProductionOrdersByStatus(ctx, entity.ProductionStatusInProgress)
		inProdCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.repo.ListOpenSchedule(ctx)
		scheduleCh <- scheduleResult{rows, err}
	}()

	open := <-openCh
	completed := <-completedCh
	shipped := <-shippedCh
	inProd := <-inProdCh
	schedule := <-scheduleCh

	if open.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes abiertas: %w", open.err)
	}
	if completed.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes completadas: %w", completed.err)
	}
	if shipped.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes embarcadas: %w", shipped.err)
	}
	if inProd.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes en producción: %w", inProd.err)
	}
	if schedule.err != nil {
		return nil, fmt.Errorf("dashboard: calendario: %w", schedule.err)
	}

	out := &dto.DashboardStatsDTO{
		TotalOpenOrders:      open.n,
		TotalCompletedOrders: completed.n,
		TotalShippedOrders:   shipped.n,
		TotalInProduction:    inProd.n,
	}
	for _, row := range schedule.rows {
		switch uc.risk.Classify(row.DueDate, row.Status, today) {
		case fulfillment.RiskRed:
			out.TotalDelayed++
		case fulfillment.RiskYellow:
			out.TotalAtRisk++
		default:
			out.TotalOnTime++
		}
	}
	return out, nil
}

// ProductionBoard tablero de órdenes de producción. Estado y cliente filtran en SQL;
// el semáforo se calcula por fila y se filtra sobre la página ya recortada.
func (uc *DashboardUseCase) ProductionBoard(ctx context.Context, f dto.ProductionBoardFilter) ([]dto.ProductionBoardItemDTO, error) {
	if f.RiskStatus != "" && !fulfillment.IsValidRisk(f.RiskStatus) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Invalid risk status. Must be one of: Green, Yellow, Red")
	}
	f.DefaultPage()
	rows, err := uc.repo.ListProductionBoard(ctx, repository.ProductionBoardFilter{
		Status:     f.Status,
		CustomerID: f.CustomerID,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: tablero de producción: %w", err)
	}

	today := uc.now()
	out := make([]dto.ProductionBoardItemDTO, 0, len(rows))
	for _, r := range rows {
		risk := uc.risk.Classify(r.DueDate, r.Status, today)
		if f.RiskStatus != "" && string(risk) != f.RiskStatus {
			continue
		}
		out = append(out, dto.ProductionBoardItemDTO{
			ID:                   r.ID,
			PONumber:             r.PONumber,
			SalesOrderNumber:     r.SalesOrderNumber,
			CustomerName:         r.CustomerName,
			PartNumber:           r.PartNumber,
			PartDescription:      r.PartDescription,
			Quantity:             r.Quantity,
			QuantityCompleted:    r.QuantityCompleted,
			QuantityShipped:      r.QuantityShipped,
			QuantityScrapped:     r.QuantityScrapped,
			Status:               r.Status,
			DueDate:              dto.FormatDate(r.DueDate),
			RiskStatus:           string(risk),
			CompletionPercentage: fulfillment.CompletionPercentage(r.QuantityCompleted, r.Quantity),
		})
	}
	return out, nil
}

// WorkCenterLoad operaciones por estado en cada centro de trabajo.
func (uc *DashboardUseCase) WorkCenterLoad(ctx context.Context) ([]dto.WorkCenterLoadDTO, error) {
	rows, err := uc.repo.WorkCenterLoad(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: carga de centros: %w", err)
	}
	out := make([]dto.WorkCenterLoadDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WorkCenterLoadDTO{
			WorkCenterID:   r.WorkCenterID,
			WorkCenterName: r.WorkCenterName,
			Pending:        r.Pending,
			InProgress:     r.InProgress,
			Completed:      r.Completed,
			Total:          r.Pending + r.InProgress + r.Completed,
		})
	}
	return out, nil
}

// DailyProduction piezas buenas y scrap de operaciones cerradas en los últimos days días.
// days <= 0 usa 7.
func (uc *DashboardUseCase) DailyProduction(ctx context.Context, days int) ([]dto.DailyProductionDTO, error) {
	if days <= 0 {
		days = defaultDailyDays
	}
	if days > maxDailyDays {
		return nil, domain.Errorf(domain.ErrInvalidInput, "days cannot exceed %d", maxDailyDays)
	}
	since := uc.now().AddDate(0, 0, -days)
	rows, err := uc.repo.DailyProduction(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard: producción diaria: %w", err)
	}
	out := make([]dto.DailyProductionDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailyProductionDTO{
			Date:  r.Day.Format(dto.DateLayout),
			Good:  r.Good,
			Scrap: r.Scrap,
		})
	}
	uc.log.Debug().Int("days", days).Int("rows", len(out)).Msg("producción diaria")
	return out, nil
}
