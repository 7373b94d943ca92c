package reportstorage

import (
	"bytes"
	"context"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioReportStorage struct {
	client     *minio.Client
	log        *zap.Logger
	bucketName string
}

func NewMinioReportStorage(client *minio.Client, log *zap.Logger, bucketName string) contracts.ReportStorage {
	return &minioReportStorage{
		client:     client,
		log:        log,
		bucketName: bucketName,
	}
}

func (s *minioReportStorage) StoreJSONObject(ctx context.Context, objectName string, data []byte) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return exceptions.ErrMinioPutObject(err, s.bucketName)
	}
	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return exceptions.ErrMinioPutObject(err, s.bucketName)
		}
	}

	_, err = s.client.PutObject(ctx, s.bucketName, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		return exceptions.ErrMinioPutObject(err, s.bucketName)
	}

	s.log.Info("archived batch report",
		zap.String(constvars.LoggingBucketKey, s.bucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return nil
}
