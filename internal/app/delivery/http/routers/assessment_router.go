package routers

import (
	"sepsis-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAssessmentRoutes(router chi.Router, assessmentController *controllers.AssessmentController) {
	// Fixed paths first so chi does not shadow them with {patientID}.
	router.Post("/batch", assessmentController.CalculateBatchAssessment)
	router.Post("/direct", assessmentController.CalculateDirectAssessment)
	router.Post("/{patientID}", assessmentController.CalculateAssessment)
	router.Get("/{patientID}/latest", assessmentController.GetLatestAssessment)
	router.Get("/{patientID}/history", assessmentController.GetAssessmentHistory)
}
