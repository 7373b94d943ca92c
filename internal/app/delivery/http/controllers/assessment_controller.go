package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/dto/requests"
	"sepsis-service/internal/pkg/exceptions"
	"sepsis-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

type AssessmentController struct {
	Log               *zap.Logger
	AssessmentUsecase contracts.AssessmentUsecase
}

func NewAssessmentController(logger *zap.Logger, assessmentUsecase contracts.AssessmentUsecase) *AssessmentController {
	return &AssessmentController{
		Log:               logger,
		AssessmentUsecase: assessmentUsecase,
	}
}

func (ctrl *AssessmentController) CalculateAssessment(w http.ResponseWriter, r *http.Request) {
	// Bind body to request. An empty body is fine, every field is optional.
	request := new(requests.CalculateAssessment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil && err != io.EOF {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PatientID = chi.URLParam(r, constvars.URLParamPatientID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.CalculateAssessment(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CalculateAssessmentSuccessMessage, response)
}

func (ctrl *AssessmentController) CalculateBatchAssessment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.BatchAssessment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.CalculateBatchAssessment(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CalculateBatchAssessmentSuccessMessage, response)
}

func (ctrl *AssessmentController) CalculateDirectAssessment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.DirectAssessment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.CalculateDirectAssessment(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CalculateAssessmentSuccessMessage, response)
}

func (ctrl *AssessmentController) GetLatestAssessment(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.GetLatestAssessment(ctx, patientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetLatestAssessmentSuccessMessage, response)
}

func (ctrl *AssessmentController) GetAssessmentHistory(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	limit := 0
	if rawLimit := r.URL.Query().Get(constvars.QueryParamLimit); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.GetAssessmentHistory(ctx, patientID, limit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAssessmentHistorySuccessMessage, response)
}
