package celltechserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	salehttpmapper "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/http/mapper"
	salestypes "github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	salesports "github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	apierrors "github.com/Apurer/cell-tech-api/internal/shared/errors"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

// SalesAPI serves the sale processor, the listing and the statistics aggregator.
type SalesAPI struct {
	service   salesports.Service
	workflows salesports.WorkflowOrchestrator
	responder *apierrors.ChainedResponder
}

// NewSalesAPI wires dependencies. Recording goes through the orchestrator so it can run as a workflow.
func NewSalesAPI(service salesports.Service, workflows salesports.WorkflowOrchestrator, responder *apierrors.ChainedResponder) SalesAPI {
	return SalesAPI{service: service, workflows: workflows, responder: responder}
}

// Post /api/v1/sale
func (api *SalesAPI) RecordSale(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		api.responder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	var payload salehttpmapper.RecordSaleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrValidation.WithCause(err))
		return
	}
	input, err := salehttpmapper.ToRecordSaleInput(payload, caller.UserID, ref.New())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	sale, err := api.workflows.RecordSale(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusCreated, "Sale added successfully!", salehttpmapper.FromDomainSale(sale))
}

// Get /api/v1/sales
// Optional query: days, currentYear, currentMonth, currentWeek, userId
func (api *SalesAPI) ListSales(c *gin.Context) {
	query, ok := api.bindWindow(c)
	if !ok {
		return
	}
	sales, err := api.service.ListSales(c.Request.Context(), query)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "Data Found!", salehttpmapper.FromSaleDetails(sales))
}

// Get /api/v1/statistics/sales
// Same window parameters as the listing. Content is the zero-filled daily series, today first.
func (api *SalesAPI) SalesStatistics(c *gin.Context) {
	query, ok := api.bindWindow(c)
	if !ok {
		return
	}
	stats, err := api.service.SalesStatistics(c.Request.Context(), query)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	series, summary := salehttpmapper.FromStatistics(stats)
	api.responder.SuccessWithSummary(c, http.StatusOK, "Data Found!", series, summary)
}

func (api *SalesAPI) bindWindow(c *gin.Context) (salestypes.SalesQuery, bool) {
	var params salehttpmapper.WindowParams
	values := c.Request.URL.Query()
	for _, p := range []struct {
		name string
		dest **string
	}{
		{"days", &params.Days},
		{"currentYear", &params.CurrentYear},
		{"currentMonth", &params.CurrentMonth},
		{"currentWeek", &params.CurrentWeek},
		{"userId", &params.UserID},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, values, p.dest); err != nil {
			api.responder.Respond(c, apierrors.ErrValidation.WithCause(err))
			return salestypes.SalesQuery{}, false
		}
	}
	query, err := salehttpmapper.ToSalesQuery(params)
	if err != nil {
		api.responder.RespondError(c, err)
		return salestypes.SalesQuery{}, false
	}
	return query, true
}
