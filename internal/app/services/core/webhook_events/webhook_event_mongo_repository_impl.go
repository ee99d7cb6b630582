package webhookEvents

import (
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/exceptions"
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type webhookEventMongoRepository struct {
	Collection *mongo.Collection
}

func NewWebhookEventMongoRepository(db *mongo.Client, dbName, collectionName string) contracts.WebhookEventRepository {
	return &webhookEventMongoRepository{
		Collection: db.Database(dbName).Collection(collectionName),
	}
}

func (repo *webhookEventMongoRepository) Insert(ctx context.Context, event *models.WebhookEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	_, err := repo.Collection.InsertOne(ctx, event)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}
