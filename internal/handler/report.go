package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crediteval/credit-engine/internal/domain"
	"github.com/crediteval/credit-engine/internal/service"
	"github.com/crediteval/credit-engine/pkg/response"
)

type ReportHandler struct {
	service   *service.ReportService
	validator *validator.Validate
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{
		service:   service,
		validator: validator.New(),
	}
}

// ListReports lists reports, filtered by ?status= or scoped by
// ?user_id=&role=. Without filters the full listing is returned.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if statusToken := query.Get("status"); statusToken != "" {
		status, err := domain.ParseReportStatus(statusToken)
		if err != nil {
			response.BadRequest(w, "invalid status filter", err)
			return
		}

		reports, err := h.service.ListByStatus(r.Context(), status)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		response.Success(w, reports)
		return
	}

	role := domain.RoleBankManager
	if roleToken := query.Get("role"); roleToken != "" {
		parsed, err := domain.ParseUserRole(roleToken)
		if err != nil {
			response.BadRequest(w, "invalid role filter", err)
			return
		}
		role = parsed
	}

	reports, err := h.service.ReportsForUser(r.Context(), query.Get("user_id"), role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, reports)
}

// GetReport returns a single report by id.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["reportId"])
	if err != nil {
		response.BadRequest(w, "invalid report id", err)
		return
	}

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, report)
}

// UpdateStatus dispositions a report. A missing report is a no-op result,
// not an error, so the reviewer UI can re-render without losing state.
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["reportId"])
	if err != nil {
		response.BadRequest(w, "invalid report id", err)
		return
	}

	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	status, err := domain.ParseReportStatus(req.Status)
	if err != nil {
		response.BadRequest(w, "invalid status", err)
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, status, req.ActorID, req.ActorName, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, &domain.TransitionResponse{ReportID: id.String(), Updated: updated})
}

// EditScoring overwrites the scoring snapshot; the report always lands in
// needs_correction.
func (h *ReportHandler) EditScoring(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["reportId"])
	if err != nil {
		response.BadRequest(w, "invalid report id", err)
		return
	}

	var req domain.EditScoringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	attractiveness, err := domain.ParseAttractiveness(req.Attractiveness)
	if err != nil {
		response.BadRequest(w, "invalid attractiveness", err)
		return
	}

	risk, err := domain.ParseRiskLevel(req.RiskLevel)
	if err != nil {
		response.BadRequest(w, "invalid risk level", err)
		return
	}

	updated, err := h.service.ModifyReport(r.Context(), id, req.MaxLoanAmount, attractiveness, risk, req.ActorID, req.ActorName, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, &domain.TransitionResponse{ReportID: id.String(), Updated: updated})
}

// SendReport delivers an approved or corrected report to the originating
// officer.
func (h *ReportHandler) SendReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["reportId"])
	if err != nil {
		response.BadRequest(w, "invalid report id", err)
		return
	}

	var req domain.SendReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	updated, err := h.service.SendToOfficer(r.Context(), id, req.ActorID, req.ActorName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, &domain.TransitionResponse{ReportID: id.String(), Updated: updated})
}

// Statistics returns the aggregated review outcomes.
func (h *ReportHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, stats)
}
