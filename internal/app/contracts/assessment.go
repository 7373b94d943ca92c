package contracts

import (
	"context"
	"sepsis-service/internal/app/models"
	"sepsis-service/internal/pkg/dto/requests"
	"sepsis-service/internal/pkg/dto/responses"
)

type AssessmentRepository interface {
	InsertAssessment(ctx context.Context, assessment *models.Assessment) error
	FindAssessmentsByPatientID(ctx context.Context, patientID string, limit int) ([]models.Assessment, error)
}

type AssessmentUsecase interface {
	CalculateAssessment(ctx context.Context, request *requests.CalculateAssessment) (*responses.Assessment, error)
	CalculateBatchAssessment(ctx context.Context, request *requests.BatchAssessment) (*responses.BatchAssessment, error)
	CalculateDirectAssessment(ctx context.Context, request *requests.DirectAssessment) (*responses.Assessment, error)
	GetLatestAssessment(ctx context.Context, patientID string) (*responses.Assessment, error)
	GetAssessmentHistory(ctx context.Context, patientID string, limit int) ([]responses.AssessmentHistoryEntry, error)
}
