package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aurexia-api/internal/application/analytics"
	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// fakeRepo DashboardRepository en memoria.
type fakeRepo struct {
	salesByStatus map[string]int
	shipped       int
	inProduction  int
	schedule      []repository.ScheduleRow
	board         []repository.ProductionBoardRow
	load          []repository.WorkCenterLoadRow
	daily         []repository.DailyProductionRow
	err           error

	gotBoard repository.ProductionBoardFilter
	gotSince time.Time
}

func (f *fakeRepo) CountSalesOrdersByStatus(_ context.Context, statuses ...string) (int, error) {
	n := 0
	for _, s := range statuses {
		n += f.salesByStatus[s]
	}
	return n, nil
}

func (f *fakeRepo) CountShippedSalesOrders(context.Context) (int, error) { return f.shipped, nil }

func (f *fakeRepo) CountProductionOrdersByStatus(context.Context, string) (int, error) {
	return f.inProduction, nil
}

func (f *fakeRepo) ListOpenSchedule(context.Context) ([]repository.ScheduleRow, error) {
	return f.schedule, f.err
}

func (f *fakeRepo) ListProductionBoard(_ context.Context, filter repository.ProductionBoardFilter) ([]repository.ProductionBoardRow, error) {
	f.gotBoard = filter
	return f.board, f.err
}

func (f *fakeRepo) WorkCenterLoad(context.Context) ([]repository.WorkCenterLoadRow, error) {
	return f.load, f.err
}

func (f *fakeRepo) DailyProduction(_ context.Context, since time.Time) ([]repository.DailyProductionRow, error) {
	f.gotSince = since
	return f.daily, f.err
}

func day(offset int) *time.Time {
	t := time.Now().AddDate(0, 0, offset)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStats_ContadoresYSemaforo(t *testing.T) {
	repo := &fakeRepo{
		salesByStatus: map[string]int{"Open": 3, "Partial": 2, "Completed": 4},
		shipped:       5,
		inProduction:  7,
		schedule: []repository.ScheduleRow{
			{DueDate: day(-2), Status: "In Progress"},
			{DueDate: day(1), Status: "Created"},
			{DueDate: nil, Status: "Released"},
			{DueDate: day(10), Status: "In Progress"},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, fulfillment.DefaultRiskWindowDays, zerolog.Nop())

	stats, err := uc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.DashboardStatsDTO{
		TotalOpenOrders:      5,
		TotalCompletedOrders: 4,
		TotalShippedOrders:   5,
		TotalInProduction:    7,
		TotalDelayed:         1,
		TotalAtRisk:          2,
		TotalOnTime:          1,
	}, *stats)
}

func TestGetStats_ErrorDeRepositorio(t *testing.T) {
	repo := &fakeRepo{err: errors.New("conexión cerrada")}
	uc := analytics.NewDashboardUseCase(repo, fulfillment.DefaultRiskWindowDays, zerolog.Nop())

	_, err := uc.GetStats(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendario")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablero de producción
// ──────────────────────────────────────────────────────────────────────────────

func boardRows() []repository.ProductionBoardRow {
	return []repository.ProductionBoardRow{
		{ID: "po-1", PONumber: "PO-1", PartNumber: "11-1628-01", Quantity: 3, QuantityCompleted: 1, Status: "In Progress", DueDate: day(-1)},
		{ID: "po-2", PONumber: "PO-2", PartNumber: "22-3456-02", Quantity: 0, Status: "Created", DueDate: day(20)},
		{ID: "po-3", PONumber: "PO-3", PartNumber: "22-3456-02", Quantity: 40, QuantityCompleted: 40, QuantityShipped: 10, Status: "Completed", DueDate: day(-5)},
	}
}

func TestProductionBoard_RiesgoYPorcentaje(t *testing.T) {
	repo := &fakeRepo{board: boardRows()}
	uc := analytics.NewDashboardUseCase(repo, fulfillment.DefaultRiskWindowDays, zerolog.Nop())

	items, err := uc.ProductionBoard(context.Background(), dto.ProductionBoardFilter{CustomerID: "cust-1"})

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Red", items[0].RiskStatus)
	assert.Equal(t, 33.33, items[0].CompletionPercentage)
	assert.Equal(t, "Green", items[1].RiskStatus)
	assert.Equal(t, float64(0), items[1].CompletionPercentage)
	assert.Equal(t, "Green", items[2].RiskStatus)
	assert.Equal(t, float64(100), items[2].CompletionPercentage)
	assert.Equal(t, 10, items[2].QuantityShipped)
	assert.Equal(t, "cust-1", repo.gotBoard.CustomerID)
	assert.Equal(t, 20, repo.gotBoard.Limit)
}

func TestProductionBoard_FiltroRiesgoDespuesDePaginar(t *testing.T) {
	repo := &fakeRepo{board: boardRows()}
	uc := analytics.NewDashboardUseCase(repo, fulfillment.DefaultRiskWindowDays, zerolog.Nop())

	items, err := uc.ProductionBoard(context.Background(), dto.ProductionBoardFilter{
		RiskStatus:  "Red",
		PageRequest: dto.PageRequest{Limit: 3},
	})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "po-1", items[0].ID)
	assert.Equal(t, 3, repo.gotBoard.Limit)
}

func TestProductionBoard_RiesgoInvalido(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeRepo{}, fulfillment.DefaultRiskWindowDays, zerolog.Nop())

	_, err := uc.ProductionBoard(context.Background(), dto.ProductionBoardFilter{RiskStatus: "Blue"})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga de centros y producción diaria
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkCenterLoad_Total(t *testing.T) {
	repo := &fakeRepo{load: []repository.WorkCenterLoadRow{
		{WorkCenterID: "wc-1", WorkCenterName: "Torno CNC", Pending: 4, InProgress: 1, Completed: 9},
	}}
	uc := analytics.NewDashboardUseCase(repo, fulfillment.DefaultRiskWindowDays, zerolog.Nop())

	load, err := uc.WorkCenterLoad(context.Background())

	require.NoError(t, err)
	require.Len(t, load, 1)
	assert.Equal(t, 14, load[0].Total)
}

func TestDailyProduction_DiasPorDefecto(t *testing.T) {
	repo := &fakeRepo{daily: []repository.DailyProductionRow{
		{Day: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Good: 120, Scrap: 3},
	}}
	uc := analytics.NewDashboardUseCase(repo, fulfillment.DefaultRiskWindowDays, zerolog.Nop())

	out, err := uc.DailyProduction(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, dto.DailyProductionDTO{Date: "2025-03-04", Good: 120, Scrap: 3}, out[0])
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), repo.gotSince, time.Minute)
}

func TestDailyProduction_DemasiadosDias(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeRepo{}, fulfillment.DefaultRiskWindowDays, zerolog.Nop())

	_, err := uc.DailyProduction(context.Background(), 400)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
