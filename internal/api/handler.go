package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/brokerpulse/internal/analytics"
	"github.com/guttosm/brokerpulse/internal/domain/dto"
	"github.com/guttosm/brokerpulse/internal/middleware"
	"github.com/guttosm/brokerpulse/internal/service"
)

const dateLayout = "2006-01-02"

// Defaults are applied when a request omits top_k or pinned.
type Defaults struct {
	TopK   int
	Pinned string
}

// Handler provides HTTP handlers for the dashboard endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Call the dashboard service with the request context
//   - Translate results into response DTOs
//   - Hand service errors to middleware.ErrorHandler for status mapping
type Handler struct {
	svc      service.DashboardService
	defaults Defaults
	now      func() time.Time
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.DashboardService, defaults Defaults) *Handler {
	return &Handler{svc: svc, defaults: defaults, now: time.Now}
}

// viewParams are the query parameters shared by the dashboard views.
type viewParams struct {
	metric analytics.Metric
	level  analytics.Level
	side   analytics.Side
	start  time.Time
	end    time.Time
	topK   int
	pinned string
	filter analytics.Filter
}

// parseViewParams reads the common query parameters. The period defaults to
// the current calendar year up to today.
func (h *Handler) parseViewParams(c *gin.Context) (viewParams, error) {
	today := h.now().UTC()
	p := viewParams{
		metric: analytics.Metric(c.Query("metric")),
		level:  analytics.Level(c.Query("level")),
		side:   analytics.Side(c.Query("side")),
		start:  time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC),
		end:    time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC),
		topK:   h.defaults.TopK,
		pinned: h.defaults.Pinned,
		filter: analytics.Filter{
			AreaCities:    c.QueryArray("city"),
			Communities:   c.QueryArray("community"),
			BuildingTypes: c.QueryArray("building_type"),
			PropertyTypes: c.QueryArray("property_type"),
			Firms:         c.QueryArray("firm"),
		},
	}

	if s := strings.TrimSpace(c.Query("start")); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return p, errors.New("invalid start format, expected YYYY-MM-DD")
		}
		p.start = d
	}
	if s := strings.TrimSpace(c.Query("end")); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return p, errors.New("invalid end format, expected YYYY-MM-DD")
		}
		p.end = d
	}
	if s := strings.TrimSpace(c.Query("top_k")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, errors.New("invalid top_k, expected an integer")
		}
		p.topK = n
	}
	// An explicit empty pinned disables pinning.
	if v, ok := c.GetQuery("pinned"); ok {
		p.pinned = v
	}
	return p, nil
}

// GetLeaderboard godoc
// @Summary      Leaderboard
// @Description  Ranks firms or agents by a metric over a period and pins one entity
// @Tags         dashboard
// @Produce      json
// @Param        metric         query     string    false  "deal_count, gross_amount, deals_per_agent or market_share"  example(deal_count)
// @Param        level          query     string    false  "firm or agent"  example(firm)
// @Param        side           query     string    false  "combined, listing or buyer"  example(combined)
// @Param        start          query     string    false  "Start date in YYYY-MM-DD"  example(2024-01-01)
// @Param        end            query     string    false  "End date in YYYY-MM-DD"  example(2024-12-31)
// @Param        top_k          query     int       false  "Entries before the pinned one"  example(10)
// @Param        pinned         query     string    false  "Entity always included"
// @Param        city           query     []string  false  "Area/city filter"
// @Param        community      query     []string  false  "Community filter"
// @Param        building_type  query     []string  false  "Building type filter"
// @Param        property_type  query     []string  false  "Property class filter"
// @Param        firm           query     []string  false  "Firm filter"
// @Success      200            {object}  dto.LeaderboardResponse  "Success"
// @Failure      400            {object}  dto.ErrorResponse        "Bad Request"
// @Failure      404            {object}  dto.ErrorResponse        "Not Found"
// @Failure      500            {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/leaderboard [get]
func (h *Handler) GetLeaderboard(c *gin.Context) {
	p, err := h.parseViewParams(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	lb, err := h.svc.Leaderboard(c.Request.Context(), analytics.LeaderboardQuery{
		Metric: p.metric,
		Level:  p.level,
		Side:   p.side,
		Start:  p.start,
		End:    p.end,
		TopK:   p.topK,
		Pinned: p.pinned,
		Filter: p.filter,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromLeaderboard(lb))
}

// GetTimeSeries godoc
// @Summary      Monthly time series
// @Description  Returns one value per entity and month; months without activity are zero
// @Tags         dashboard
// @Produce      json
// @Param        metric         query     string    false  "deal_count, gross_amount, deals_per_agent or market_share"  example(deals_per_agent)
// @Param        level          query     string    false  "firm or agent"  example(firm)
// @Param        side           query     string    false  "combined, listing or buyer"  example(combined)
// @Param        start          query     string    false  "Start date in YYYY-MM-DD"  example(2024-01-01)
// @Param        end            query     string    false  "End date in YYYY-MM-DD"  example(2024-12-31)
// @Param        entity         query     []string  false  "Entities to plot; defaults to the leaderboard"
// @Param        top_k          query     int       false  "Entities plotted when none are given"  example(10)
// @Param        pinned         query     string    false  "Entity always plotted"
// @Param        city           query     []string  false  "Area/city filter"
// @Param        community      query     []string  false  "Community filter"
// @Param        building_type  query     []string  false  "Building type filter"
// @Param        property_type  query     []string  false  "Property class filter"
// @Param        firm           query     []string  false  "Firm filter"
// @Success      200            {object}  dto.TimeSeriesResponse  "Success"
// @Failure      400            {object}  dto.ErrorResponse       "Bad Request"
// @Failure      404            {object}  dto.ErrorResponse       "Not Found"
// @Failure      500            {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/timeseries [get]
func (h *Handler) GetTimeSeries(c *gin.Context) {
	p, err := h.parseViewParams(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ts, err := h.svc.TimeSeries(c.Request.Context(), analytics.TimeSeriesQuery{
		Metric:   p.metric,
		Level:    p.level,
		Side:     p.side,
		Start:    p.start,
		End:      p.end,
		Entities: c.QueryArray("entity"),
		TopK:     p.topK,
		Pinned:   p.pinned,
		Filter:   p.filter,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTimeSeries(ts))
}

// GetActiveAgents godoc
// @Summary      Active agents per firm
// @Description  Counts the distinct agents of each firm with at least one deal per month
// @Tags         dashboard
// @Produce      json
// @Param        start   query     string    false  "Start date in YYYY-MM-DD"  example(2024-01-01)
// @Param        end     query     string    false  "End date in YYYY-MM-DD"  example(2024-12-31)
// @Param        entity  query     []string  false  "Firms; defaults to the deal count leaderboard"
// @Param        top_k   query     int       false  "Firms shown when none are given"  example(10)
// @Param        pinned  query     string    false  "Firm always shown"
// @Success      200     {object}  dto.ActiveAgentsResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse         "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse         "Not Found"
// @Failure      500     {object}  dto.ErrorResponse         "Internal Error"
// @Router       /api/v1/active-agents [get]
func (h *Handler) GetActiveAgents(c *gin.Context) {
	p, err := h.parseViewParams(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	aa, err := h.svc.ActiveAgents(c.Request.Context(), analytics.ActiveAgentsQuery{
		Start:    p.start,
		End:      p.end,
		Entities: c.QueryArray("entity"),
		TopK:     p.topK,
		Pinned:   p.pinned,
		Filter:   p.filter,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromActiveAgents(aa))
}

// GetEntities godoc
// @Summary      Entity universe
// @Description  Lists every firm or agent found on either side of a transaction
// @Tags         dashboard
// @Produce      json
// @Param        level  query     string  false  "firm or agent"  example(firm)
// @Success      200    {object}  dto.EntitiesResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse     "Bad Request"
// @Failure      404    {object}  dto.ErrorResponse     "Not Found"
// @Failure      500    {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/entities [get]
func (h *Handler) GetEntities(c *gin.Context) {
	level, err := analytics.ParseLevel(c.Query("level"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	names, report, err := h.svc.Entities(c.Request.Context(), level)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.EntitiesResponse{
		Level:    string(level),
		Entities: names,
		Report:   dto.FromReport(report),
	})
}
