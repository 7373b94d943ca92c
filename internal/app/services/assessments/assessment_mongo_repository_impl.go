package assessments

import (
	"context"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/app/models"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssessmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAssessmentMongoRepository(client *mongo.Client, dbName string) contracts.AssessmentRepository {
	return &AssessmentMongoRepository{
		Collection: client.Database(dbName).Collection(constvars.MongoCollectionAssessments),
	}
}

func (repo *AssessmentMongoRepository) InsertAssessment(ctx context.Context, assessment *models.Assessment) error {
	_, err := repo.Collection.InsertOne(ctx, assessment)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *AssessmentMongoRepository) FindAssessmentsByPatientID(ctx context.Context, patientID string, limit int) ([]models.Assessment, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := repo.Collection.Find(ctx, bson.M{"patient_id": patientID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	assessments := make([]models.Assessment, 0)
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return assessments, nil
}
