package contracts

import (
	"context"
	"sepsis-service/internal/app/models"
)

type AlertQueueService interface {
	PublishHighRiskAlert(ctx context.Context, alert models.HighRiskAlert) error
}
