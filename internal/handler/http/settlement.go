package http

import (
	"net/http"

	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/remittance"
	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/settlements-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/settlements-backend-go/internal/service/settlement"
)

type SettlementHandler struct {
	settlementService settlement.SettlementService
}

func NewSettlementHandler(settlementService settlement.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
	}
}

// GenerateRemittances handles POST /api/v1/settlements/generate-remittances-for-all-users
func (h *SettlementHandler) GenerateRemittances(w http.ResponseWriter, r *http.Request) {
	generated, err := h.settlementService.GenerateRemittancesForAllUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, remittance.GenerateRemittancesResponse{
		Status:    "success",
		Generated: generated,
	})
}

// ListWorkLogs handles GET /api/v1/settlements/list-all-worklogs
func (h *SettlementHandler) ListWorkLogs(w http.ResponseWriter, r *http.Request) {
	var req worklog.ListWorkLogsRequest
	// A present-but-empty value is still a filter and must fail validation.
	if r.URL.Query().Has("remittanceStatus") {
		v := r.URL.Query().Get("remittanceStatus")
		req.RemittanceStatus = &v
	}

	resp, err := h.settlementService.ListWorkLogs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}
