package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/kvinchris/GymManagement/internal/models"
	"github.com/kvinchris/GymManagement/internal/repositories"
)

func TestAttendanceRepository_Record(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("missing member reference rejected", func(mt *mtest.T) {
		repo := repositories.NewAttendanceRepository(mt.Coll, mt.Coll)

		_, err := repo.Record(context.Background(), repositories.CheckInInput{
			Method: models.CheckInManual,
		})
		require.ErrorIs(t, err, repositories.ErrValidation)
	})

	mt.Run("invalid method rejected", func(mt *mtest.T) {
		repo := repositories.NewAttendanceRepository(mt.Coll, mt.Coll)

		_, err := repo.Record(context.Background(), repositories.CheckInInput{
			MemberID: primitive.NewObjectID(),
			Method:   "kiosk",
		})
		require.ErrorIs(t, err, repositories.ErrValidation)
	})

	mt.Run("enrichment lookup failure does not block check-in", func(mt *mtest.T) {
		repo := repositories.NewAttendanceRepository(mt.Coll, mt.Coll)

		// Member lookup fails; the insert still goes through. The
		// error code is retryable, so the mock must answer the
		// driver's automatic retry as well.
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11600,
				Message: "interrupted",
				Name:    "Interrupted",
			}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11600,
				Message: "interrupted",
				Name:    "Interrupted",
			}),
			mtest.CreateSuccessResponse(),
		)

		id, err := repo.Record(context.Background(), repositories.CheckInInput{
			MemberID: primitive.NewObjectID(),
			Method:   models.CheckInQR,
		})
		require.NoError(t, err)
		require.False(t, id.IsZero())
	})

	mt.Run("display fields already set skip the lookup", func(mt *mtest.T) {
		repo := repositories.NewAttendanceRepository(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Record(context.Background(), repositories.CheckInInput{
			MemberID:   primitive.NewObjectID(),
			MemberName: "Jamie Cruz",
			MemberCode: "GM-3F2A91",
			Method:     models.CheckInManual,
		})
		require.NoError(t, err)
		require.False(t, id.IsZero())
	})
}

func TestAttendanceRepository_Checkout(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("open record checked out", func(mt *mtest.T) {
		repo := repositories.NewAttendanceRepository(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.Checkout(context.Background(), primitive.NewObjectID())
		require.NoError(t, err)
	})

	mt.Run("missing or already closed record maps to not found", func(mt *mtest.T) {
		repo := repositories.NewAttendanceRepository(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Checkout(context.Background(), primitive.NewObjectID())
		require.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
