package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kvinchris/GymManagement/internal/models"
)

type AuditLogger struct {
	Collection *mongo.Collection
}

func (l *AuditLogger) Log(ctx context.Context, entity, action, performedBy string, data any) error {
	if performedBy == "" {
		performedBy = "system"
	}
	entry := models.AuditLog{
		Timestamp:   time.Now(),
		Entity:      entity,
		Action:      action,
		PerformedBy: performedBy,
		Data:        data,
	}
	_, err := l.Collection.InsertOne(ctx, entry)
	return err
}
