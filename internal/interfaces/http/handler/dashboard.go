package handler

import (
	"context"
	"strconv"
	"time"

	appdashboard "github.com/cashboard/backend/internal/application/dashboard"
	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/cashboard/backend/internal/domain/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultSnapshotListLimit = 20

// SnapshotRepository persists and lists recorded balance snapshots.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot report.Snapshot, recordedBy *uuid.UUID) (*report.SnapshotRecord, error)
	ListForScope(ctx context.Context, scope string, limit int) ([]report.SnapshotRecord, error)
}

// DashboardHandler handles dashboard aggregation API endpoints
type DashboardHandler struct {
	BaseHandler
	service   *appdashboard.Service
	snapshots SnapshotRepository
	now       func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler. snapshots may be nil
// to disable the recorder endpoints.
func NewDashboardHandler(service *appdashboard.Service, snapshots SnapshotRepository) *DashboardHandler {
	return &DashboardHandler{
		service:   service,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// RegisterRoutes registers dashboard routes on the API group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.GetDashboard)
		dashboard.GET("/projections", h.GetProjections)
		dashboard.POST("/snapshots", h.RecordSnapshot)
		dashboard.GET("/snapshots", h.ListSnapshots)
	}
}

// PeriodRequest selects the reporting period, either by preset or by an
// explicit start/end pair.
type PeriodRequest struct {
	Period string `form:"period" example:"last-6-months"`
	Start  string `form:"start" example:"2026-01-01"`
	End    string `form:"end" example:"2026-03-31"`
}

// parseSelector builds the period selector from query parameters. An
// explicit pair wins over the preset; a half-filled pair is passed through
// as-is so period resolution falls back to the default preset.
func (h *DashboardHandler) parseSelector(c *gin.Context) (ledger.Selector, bool) {
	var req PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return ledger.Selector{}, false
	}

	if req.Start != "" || req.End != "" {
		var selector ledger.Selector
		if req.Start != "" {
			start, err := time.Parse("2006-01-02", req.Start)
			if err != nil {
				h.BadRequest(c, "start: invalid date format, expected YYYY-MM-DD")
				return ledger.Selector{}, false
			}
			selector.Start = &start
		}
		if req.End != "" {
			end, err := time.Parse("2006-01-02", req.End)
			if err != nil {
				h.BadRequest(c, "end: invalid date format, expected YYYY-MM-DD")
				return ledger.Selector{}, false
			}
			selector.End = &end
		}
		return selector, true
	}

	if req.Period != "" {
		preset := ledger.Preset(req.Period)
		if !preset.IsValid() {
			h.BadRequest(c, "period: unknown preset")
			return ledger.Selector{}, false
		}
		return ledger.SelectPreset(preset), true
	}

	return ledger.SelectPreset(ledger.PresetLast6Months), true
}

// GetDashboard godoc
// @Summary      Get the cash-flow dashboard
// @Description  Builds the aggregated dashboard for the selected period
// @Tags         dashboard
// @Produce      json
// @Param        period query string false "Period preset (last-30-days, last-3-months, last-6-months, last-12-months)"
// @Param        start query string false "Explicit period start (YYYY-MM-DD)"
// @Param        end query string false "Explicit period end (YYYY-MM-DD)"
// @Param        scope query string false "Set to 'all' for the all-tenants view (admin only)"
// @Success      200 {object} dto.Response{data=report.Dashboard}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	selector, ok := h.parseSelector(c)
	if !ok {
		return
	}

	result, err := h.service.Build(c.Request.Context(), scope, selector, h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetProjections godoc
// @Summary      Get forward-payment projections
// @Description  Sums not-yet-due entries over the 30/60/90-day and unbounded horizons
// @Tags         dashboard
// @Produce      json
// @Param        scope query string false "Set to 'all' for the all-tenants view (admin only)"
// @Success      200 {object} dto.Response{data=report.Projection}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/projections [get]
func (h *DashboardHandler) GetProjections(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	projection, err := h.service.Project(c.Request.Context(), scope, h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, projection)
}

// RecordSnapshot godoc
// @Summary      Record a balance snapshot
// @Description  Computes the period balance figures and persists them with the caller's identity
// @Tags         dashboard
// @Produce      json
// @Param        period query string false "Period preset"
// @Param        start query string false "Explicit period start (YYYY-MM-DD)"
// @Param        end query string false "Explicit period end (YYYY-MM-DD)"
// @Param        scope query string false "Set to 'all' for the all-tenants view (admin only)"
// @Success      201 {object} dto.Response{data=report.SnapshotRecord}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/snapshots [post]
func (h *DashboardHandler) RecordSnapshot(c *gin.Context) {
	if h.snapshots == nil {
		h.InternalError(c, "Snapshot recorder not configured")
		return
	}

	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	selector, ok := h.parseSelector(c)
	if !ok {
		return
	}

	snapshot, err := h.service.BuildSnapshot(c.Request.Context(), scope, selector, h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var recordedBy *uuid.UUID
	if userID, err := getUserID(c); err == nil {
		recordedBy = &userID
	}

	record, err := h.snapshots.Save(c.Request.Context(), *snapshot, recordedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// ListSnapshots godoc
// @Summary      List recorded snapshots
// @Description  Returns the most recent snapshots for the scope, newest first
// @Tags         dashboard
// @Produce      json
// @Param        limit query int false "Maximum number of snapshots (default 20)"
// @Param        scope query string false "Set to 'all' for the all-tenants view (admin only)"
// @Success      200 {object} dto.Response{data=[]report.SnapshotRecord}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/snapshots [get]
func (h *DashboardHandler) ListSnapshots(c *gin.Context) {
	if h.snapshots == nil {
		h.InternalError(c, "Snapshot recorder not configured")
		return
	}

	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}

	limit := defaultSnapshotListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "limit: must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.snapshots.ListForScope(c.Request.Context(), scope.String(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}
