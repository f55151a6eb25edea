package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/wage"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/handler/http/response"
)

type WageHandler interface {
	RecordChange(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type wageHandlerImpl struct {
	wageService wage.WageService
}

func NewWageHandler(wageService wage.WageService) WageHandler {
	return &wageHandlerImpl{wageService: wageService}
}

func (h *wageHandlerImpl) RecordChange(w http.ResponseWriter, r *http.Request) {
	var req wage.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.wageService.RecordChange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Wage change recorded", result)
}

func (h *wageHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	result, err := h.wageService.GetHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
