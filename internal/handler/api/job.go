package api

import (
	"net/http"

	reqdto "applytrack/internal/handler/dto/request"
	resdto "applytrack/internal/handler/dto/response"
	"applytrack/internal/handler/httperr"
	"applytrack/internal/handler/middleware"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/usecase/commands"
	"applytrack/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errUnauthorized = errs.New("missing user in context")

type JobHandler struct {
	cmds commands.JobCommands
	q    queries.JobQueries
}

func NewJobHandler(cmds commands.JobCommands, q queries.JobQueries) *JobHandler {
	return &JobHandler{cmds: cmds, q: q}
}

// @Summary Create job record
// @Description Create a job record owned by the caller
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateJobRequest true "Create job request"
// @Success 201 {object} resdto.JobResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateJob(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		httperr.AbortWithClassified(c, err)
		return
	}
	c.Header("Location", "/api/jobs/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromJobView(view))
}

// @Summary Get job record
// @Description Get the caller's job record with its automation trail
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} resdto.JobResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	userID, id, ok := ownedResource(c)
	if !ok {
		return
	}

	view, err := h.q.GetJob(c.Request.Context(), id, userID)
	if err != nil {
		httperr.AbortWithClassified(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromJobView(view))
}
