package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crediteval/credit-engine/internal/domain"
	"github.com/crediteval/credit-engine/internal/service"
	apperrors "github.com/crediteval/credit-engine/pkg/errors"
	"github.com/crediteval/credit-engine/pkg/response"
)

type BorrowerHandler struct {
	service   *service.CreditService
	validator *validator.Validate
}

func NewBorrowerHandler(service *service.CreditService) *BorrowerHandler {
	return &BorrowerHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateBorrower runs the full application workflow: create the borrower,
// score it and persist the dispositioned report.
func (h *BorrowerHandler) CreateBorrower(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBorrowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	result, err := h.service.ProcessApplication(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, result)
}

// AnalyzeBorrower scores the posted applicant data without persisting
// anything, so officers can preview an outcome.
func (h *BorrowerHandler) AnalyzeBorrower(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBorrowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	borrower := domain.NewBorrower(&req, req.ActorID)

	result, listed, reason, err := h.service.AnalyzeBorrower(r.Context(), borrower)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, &domain.AnalyzeResponse{
		Result:          result,
		Blacklisted:     listed,
		BlacklistReason: reason,
	})
}

// GetBorrower returns a stored borrower by id.
func (h *BorrowerHandler) GetBorrower(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["borrowerId"])
	if err != nil {
		response.BadRequest(w, "invalid borrower id", err)
		return
	}

	borrower, err := h.service.GetBorrower(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, borrower)
}

// writeServiceError maps the error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var businessErr *apperrors.BusinessError
	if errors.As(err, &businessErr) {
		switch businessErr.Code {
		case apperrors.ErrCodeValidation, apperrors.ErrCodeUnknownStatus, apperrors.ErrCodeUnknownRole:
			response.BadRequest(w, businessErr.Message, err)
			return
		case apperrors.ErrCodeBorrowerNotFound, apperrors.ErrCodeReportNotFound, apperrors.ErrCodeUserNotFound:
			response.NotFound(w, businessErr.Message)
			return
		case apperrors.ErrCodeUserExists:
			response.Error(w, http.StatusConflict, businessErr.Message, err)
			return
		}
	}

	response.InternalServerError(w, "internal error", err)
}
