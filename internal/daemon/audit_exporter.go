package daemon

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kvinchris/GymManagement/internal/models"
)

// AuditExporter periodically drains unexported audit log entries,
// emits them to the structured log, and marks them exported.
type AuditExporter struct {
	Coll     *mongo.Collection
	Logger   zerolog.Logger
	Interval time.Duration

	stop chan struct{}
}

func NewAuditExporter(coll *mongo.Collection, logger zerolog.Logger) *AuditExporter {
	return &AuditExporter{
		Coll:     coll,
		Logger:   logger,
		Interval: 30 * time.Second,
		stop:     make(chan struct{}),
	}
}

func (e *AuditExporter) Start() {
	go func() {
		ticker := time.NewTicker(e.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.exportBatch(context.Background())
			case <-e.stop:
				return
			}
		}
	}()
}

func (e *AuditExporter) Stop() {
	close(e.stop)
}

func (e *AuditExporter) exportBatch(ctx context.Context) {
	cursor, err := e.Coll.Find(ctx, bson.M{"exported": false})
	if err != nil {
		e.Logger.Error().Err(err).Msg("audit export query failed")
		return
	}

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		e.Logger.Error().Err(err).Msg("audit export decode failed")
		return
	}
	if len(logs) == 0 {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(logs))
	for _, entry := range logs {
		e.Logger.Info().
			Time("timestamp", entry.Timestamp).
			Str("entity", entry.Entity).
			Str("action", entry.Action).
			Str("performed_by", entry.PerformedBy).
			Interface("data", entry.Data).
			Msg("audit")
		ids = append(ids, entry.ID)
	}

	if _, err := e.Coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"exported": true}},
	); err != nil {
		e.Logger.Error().Err(err).Msg("audit export mark failed")
	}
}
