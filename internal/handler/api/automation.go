package api

import (
	"net/http"

	reqdto "applytrack/internal/handler/dto/request"
	resdto "applytrack/internal/handler/dto/response"
	"applytrack/internal/handler/httperr"
	"applytrack/internal/handler/middleware"
	"applytrack/internal/usecase/automation"
	"applytrack/internal/usecase/commands"
	"applytrack/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AutomationHandler struct {
	cmds  commands.RuleCommands
	q     queries.RuleQueries
	ticks automation.TickRunner
}

func NewAutomationHandler(cmds commands.RuleCommands, q queries.RuleQueries, ticks automation.TickRunner) *AutomationHandler {
	return &AutomationHandler{cmds: cmds, q: q, ticks: ticks}
}

// @Summary Create automation rule
// @Description Create a rule owned by the caller. Schedule defaults to now and enabled to true.
// @Tags automation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRuleRequest true "Create rule request"
// @Success 201 {object} resdto.RuleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/automation/rules [post]
func (h *AutomationHandler) CreateRule(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateRule(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		httperr.AbortWithClassified(c, err)
		return
	}
	c.Header("Location", "/api/automation/rules/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromRuleView(view))
}

// @Summary List automation rules
// @Description List the caller's rules
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RuleListResponse
// @Failure 401 {object} httperr.Response
// @Router /api/automation/rules [get]
func (h *AutomationHandler) ListRules(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}

	views, err := h.q.ListRules(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRuleViews(views))
}

// @Summary Get automation rule
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 200 {object} resdto.RuleResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/automation/rules/{id} [get]
func (h *AutomationHandler) GetRule(c *gin.Context) {
	userID, id, ok := ownedResource(c)
	if !ok {
		return
	}

	view, err := h.q.GetRule(c.Request.Context(), id, userID)
	if err != nil {
		httperr.AbortWithClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRuleView(view))
}

// @Summary Reset automation rule
// @Description Clear last run and retry state so the rule fires on the next tick after its schedule
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 200 {object} resdto.RuleResponse
// @Failure 404 {object} httperr.Response
// @Router /api/automation/rules/{id}/reset [post]
func (h *AutomationHandler) ResetRule(c *gin.Context) {
	userID, id, ok := ownedResource(c)
	if !ok {
		return
	}

	view, err := h.cmds.ResetRule(c.Request.Context(), id, userID)
	if err != nil {
		httperr.AbortWithClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRuleView(view))
}

// @Summary Enable automation rule
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 200 {object} resdto.RuleResponse
// @Failure 404 {object} httperr.Response
// @Router /api/automation/rules/{id}/enable [post]
func (h *AutomationHandler) EnableRule(c *gin.Context) {
	h.setEnabled(c, true)
}

// @Summary Disable automation rule
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 200 {object} resdto.RuleResponse
// @Failure 404 {object} httperr.Response
// @Router /api/automation/rules/{id}/disable [post]
func (h *AutomationHandler) DisableRule(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *AutomationHandler) setEnabled(c *gin.Context, enabled bool) {
	userID, id, ok := ownedResource(c)
	if !ok {
		return
	}

	view, err := h.cmds.SetRuleEnabled(c.Request.Context(), id, userID, enabled)
	if err != nil {
		httperr.AbortWithClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRuleView(view))
}

// @Summary Run scheduler tick
// @Description Run one polling pass now across all owners (admin only)
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.TickReportResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/automation/ticks [post]
func (h *AutomationHandler) RunTick(c *gin.Context) {
	report, err := h.ticks.Tick(c.Request.Context())
	if err != nil {
		httperr.AbortWithClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTickReport(report))
}

// @Summary Scheduler stats
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SchedulerStatsResponse
// @Failure 403 {object} httperr.Response
// @Router /api/automation/scheduler [get]
func (h *AutomationHandler) SchedulerStats(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromStats(h.ticks.Stats()))
}

// ownedResource reads the caller and the :id path parameter, aborting the
// request when either is missing.
func ownedResource(c *gin.Context) (userID, id uuid.UUID, ok bool) {
	userID, ok = middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
