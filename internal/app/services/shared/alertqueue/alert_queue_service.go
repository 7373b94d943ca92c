package alertqueue

import (
	"context"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/app/models"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Service publishes high-risk alerts to a durable RabbitMQ queue so
// downstream clinical-notification consumers can pick them up.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName string) (contracts.AlertQueueService, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrQueueDeclare(err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, exceptions.ErrQueueDeclare(err)
	}

	return &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
	}, nil
}

func (s *Service) PublishHighRiskAlert(ctx context.Context, alert models.HighRiskAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = s.ch.PublishWithContext(ctx,
		"",          // exchange
		s.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	s.log.Info("published high-risk alert",
		zap.String(constvars.LoggingQueueKey, s.queueName),
		zap.String(constvars.LoggingPatientIDKey, alert.PatientID),
		zap.String(constvars.LoggingRiskLevelKey, alert.RiskLevel),
	)
	return nil
}
