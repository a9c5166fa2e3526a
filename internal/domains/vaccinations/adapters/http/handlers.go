// Package httpapi exposes the vaccination workflow to the admin dashboard.
package httpapi

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/adapters/http/mapper"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application"
	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/ports"
	sharederrors "github.com/davidnguyen27/sep490-PVSM-sub000/internal/shared/errors"
)

// WorkflowAPI wires HTTP transport with the workflow service port.
type WorkflowAPI struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewWorkflowAPI creates a WorkflowAPI backed by the provided service.
func NewWorkflowAPI(service ports.Service) WorkflowAPI {
	return WorkflowAPI{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapWorkflowError),
	}
}

// NewRouter builds the gin engine with all workflow routes registered.
func NewRouter(api WorkflowAPI) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	workflow := router.Group("/v1/workflow")
	{
		workflow.POST("/sessions", api.OpenSession)
		workflow.GET("/sessions/:sessionId", api.GetSession)
		workflow.DELETE("/sessions/:sessionId", api.CloseSession)
		workflow.POST("/sessions/:sessionId/refresh", api.RefreshSession)
		workflow.PUT("/sessions/:sessionId/view", api.SetViewStage)
		workflow.PUT("/sessions/:sessionId/draft/disease", api.SetDisease)
		workflow.PUT("/sessions/:sessionId/draft/vet", api.SetVetSelection)
		workflow.PUT("/sessions/:sessionId/draft/health", api.SetHealth)
		workflow.PUT("/sessions/:sessionId/draft/result", api.SetResult)
		workflow.PUT("/sessions/:sessionId/draft/vaccine", api.SetVaccineBatch)
		workflow.POST("/sessions/:sessionId/transitions", api.SubmitTransition)
		workflow.POST("/sessions/:sessionId/rejection", api.RejectAppointment)
	}
	return router
}

// Post /v1/workflow/sessions
// Opens a view session over one appointment.
func (api *WorkflowAPI) OpenSession(c *gin.Context) {
	var payload mapper.OpenSessionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	state, err := api.service.OpenSession(c.Request.Context(), vactypes.OpenSessionInput{AppointmentID: payload.AppointmentID})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromSessionState(state))
}

// Get /v1/workflow/sessions/:sessionId
func (api *WorkflowAPI) GetSession(c *gin.Context) {
	state, err := api.service.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSessionState(state))
}

// Delete /v1/workflow/sessions/:sessionId
func (api *WorkflowAPI) CloseSession(c *gin.Context) {
	if err := api.service.CloseSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/workflow/sessions/:sessionId/refresh
// Refetches the record and reconciles the draft. Also invoked when the
// payment collaborator reports a payment status change.
func (api *WorkflowAPI) RefreshSession(c *gin.Context) {
	state, err := api.service.RefreshSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSessionState(state))
}

// Put /v1/workflow/sessions/:sessionId/view
func (api *WorkflowAPI) SetViewStage(c *gin.Context) {
	var payload mapper.ViewStageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	state, err := api.service.SetViewStage(c.Request.Context(), c.Param("sessionId"), vactypes.ViewStageInput{Stage: payload.Stage})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSessionState(state))
}

// Put /v1/workflow/sessions/:sessionId/draft/disease
func (api *WorkflowAPI) SetDisease(c *gin.Context) {
	var payload mapper.DiseaseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	state, err := api.service.SetDisease(c.Request.Context(), c.Param("sessionId"), vactypes.DiseaseInput{DiseaseID: payload.DiseaseID})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSessionState(state))
}

// Put /v1/workflow/sessions/:sessionId/draft/vet
func (api *WorkflowAPI) SetVetSelection(c *gin.Context) {
	var payload mapper.VetSelectionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	state, err := api.service.SetVetSelection(c.Request.Context(), c.Param("sessionId"), mapper.ToVetSelectionInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSessionState(state))
}

// Put /v1/workflow/sessions/:sessionId/draft/health
func (api *WorkflowAPI) SetHealth(c *gin.Context) {
	var payload mapper.HealthRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	state, err := api.service.SetHealth(c.Request.Context(), c.Param("sessionId"), mapper.ToHealthInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSessionState(state))
}

// Put /v1/workflow/sessions/:sessionId/draft/result
func (api *WorkflowAPI) SetResult(c *gin.Context) {
	var payload mapper.ResultRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	state, err := api.service.SetResult(c.Request.Context(), c.Param("sessionId"), mapper.ToResultInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSessionState(state))
}

// Put /v1/workflow/sessions/:sessionId/draft/vaccine
func (api *WorkflowAPI) SetVaccineBatch(c *gin.Context) {
	var payload mapper.VaccineBatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	state, err := api.service.SetVaccineBatch(c.Request.Context(), c.Param("sessionId"), vactypes.VaccineBatchInput{VaccineBatchID: payload.VaccineBatchID})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSessionState(state))
}

// Post /v1/workflow/sessions/:sessionId/transitions
func (api *WorkflowAPI) SubmitTransition(c *gin.Context) {
	var payload mapper.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	outcome, err := api.service.SubmitTransition(c.Request.Context(), c.Param("sessionId"), vactypes.SubmitTransitionInput{TargetStatus: payload.TargetStatus})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromTransitionOutcome(outcome))
}

// Post /v1/workflow/sessions/:sessionId/rejection
func (api *WorkflowAPI) RejectAppointment(c *gin.Context) {
	var payload mapper.RejectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	outcome, err := api.service.RejectAppointment(c.Request.Context(), c.Param("sessionId"), vactypes.RejectInput{Notes: payload.Notes})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromTransitionOutcome(outcome))
}

// mapWorkflowError converts workflow sentinels to problem details. Anything
// unrecognized is a failed clinic backend call surfaced with its message so
// the dashboard can show it in a notification.
func mapWorkflowError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case stderrors.Is(err, application.ErrSessionNotFound),
		stderrors.Is(err, ports.ErrAppointmentNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case stderrors.Is(err, application.ErrNoAppointment),
		stderrors.Is(err, application.ErrViewAheadOfPersisted):
		return sharederrors.ErrBadRequest.WithDetail(err.Error()), true
	case stderrors.Is(err, application.ErrStageNotEditable),
		stderrors.Is(err, application.ErrTransitionPending),
		stderrors.Is(err, application.ErrSessionTerminal),
		stderrors.Is(err, application.ErrInvalidTarget),
		stderrors.Is(err, application.ErrNotRejectable):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	case stderrors.Is(err, application.ErrValidatorFailed):
		return sharederrors.ErrUnprocessable.WithDetail(err.Error()), true
	default:
		return sharederrors.ErrUpstream.WithDetail(err.Error()), true
	}
}
