package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gramkosh/internal/charts"
	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/services"
)

// DashboardHandler serves aggregate figures and rendered charts.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	renderer         *charts.Renderer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		renderer:         charts.NewRenderer(),
	}
}

// chartStyles maps each series to its chart shape and title.
var chartStyles = map[string]struct {
	kind  string
	title string
}{
	services.SeriesBudgetsByYear:      {"bar", "Allocation by Year"},
	services.SeriesBudgetsCumulative:  {"line", "Cumulative Allocation"},
	services.SeriesCategoryShares:     {"pie", "Allocation by Category"},
	services.SeriesAllocationByYear:   {"bar", "Allocation by Budget Year"},
	services.SeriesExpensesByCategory: {"bar", "Expenses by Category"},
	services.SeriesExpensesByMonth:    {"line", "Expenses Over Time"},
}

// GetSummary handles the top-level dashboard figures.
// @Summary     Dashboard summary
// @Description Get total allocation, total spend, remaining balance, and entity counts
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardSummary "Summary figures"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetSeries handles the JSON form of a derived chart series.
// @Summary     Dashboard series
// @Description Get a derived chart series as parallel label/value arrays
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Series name"
// @Success     200 {object} map[string]interface{} "Labels and values"
// @Failure     404 {object} ErrorResponse "Unknown series"
// @Router      /dashboard/series/{name} [get]
func (h *DashboardHandler) GetSeries(c *gin.Context) {
	series, err := h.dashboardService.GetSeries(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	values := make([]string, len(series.Values))
	for i, v := range series.Values {
		values[i] = v.String()
	}
	c.JSON(http.StatusOK, gin.H{"labels": series.Labels, "values": values})
}

// GetChart handles the PNG rendering of a derived chart series.
// @Summary     Dashboard chart
// @Description Render a derived chart series as a PNG image
// @Tags        dashboard
// @Produce     png
// @Security    BearerAuth
// @Param       name path string true "Series name"
// @Success     200 {file} png "Chart image"
// @Failure     404 {object} ErrorResponse "Unknown series or no data"
// @Router      /dashboard/charts/{name} [get]
func (h *DashboardHandler) GetChart(c *gin.Context) {
	name := c.Param("name")
	style, ok := chartStyles[name]
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Unknown chart series: "+name))
		return
	}

	series, err := h.dashboardService.GetSeries(name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var png []byte
	switch style.kind {
	case "pie":
		png, err = h.renderer.Pie(style.title, series)
	case "line":
		png, err = h.renderer.Line(style.title, series)
	default:
		png, err = h.renderer.Bar(style.title, series)
	}
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if png == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "No data for chart: "+name))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
