package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/kvinchris/GymManagement/internal/models"
	"github.com/kvinchris/GymManagement/internal/repositories"
)

func TestMemberRepository_GetByCode(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("absent code maps to not found", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym.members", mtest.FirstBatch))

		_, err := repo.GetByCode(context.Background(), "GM-ZZZZZZ")
		require.ErrorIs(t, err, repositories.ErrNotFound)
	})

	mt.Run("single match returned", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "gym.members", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "member_code", Value: "GM-3F2A91"},
			{Key: "name", Value: "Jamie Cruz"},
		}))

		member, err := repo.GetByCode(context.Background(), "GM-3F2A91")
		require.NoError(t, err)
		require.Equal(t, id, member.ID)
		require.Equal(t, "Jamie Cruz", member.Name)
	})
}

func TestMemberRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("missing package fails with not found", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym.packages", mtest.FirstBatch))

		_, err := repo.Create(context.Background(), models.Member{
			Name:      "Jamie Cruz",
			PackageID: primitive.NewObjectID(),
			StartDate: time.Now(),
		})
		require.ErrorIs(t, err, repositories.ErrNotFound)
	})

	mt.Run("package resolved and member inserted", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)
		pkgID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "gym.packages", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: pkgID},
				{Key: "name", Value: "Monthly"},
				{Key: "price", Value: 49.0},
				{Key: "duration", Value: 30},
			}),
			mtest.CreateSuccessResponse(),
		)

		id, err := repo.Create(context.Background(), models.Member{
			Name:      "Jamie Cruz",
			PackageID: pkgID,
			StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.False(t, id.IsZero())
	})
}

func TestMemberRepository_UpdateContact(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("empty update rejected", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)

		err := repo.UpdateContact(context.Background(), primitive.NewObjectID(), repositories.MemberContactUpdate{})
		require.ErrorIs(t, err, repositories.ErrValidation)
	})

	mt.Run("unknown id maps to not found", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)
		name := "New Name"

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.UpdateContact(context.Background(), primitive.NewObjectID(), repositories.MemberContactUpdate{Name: &name})
		require.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestMemberRepository_ExpiringWithin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("queries the inclusive window sorted by expiry", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)
		now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym.members", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "member_code", Value: "GM-3F2A91"},
				{Key: "expiry_date", Value: now.AddDate(0, 0, 5)},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "member_code", Value: "GM-7B01CD"},
				{Key: "expiry_date", Value: now.AddDate(0, 0, 20)},
			},
		))

		members, err := repo.ExpiringWithin(context.Background(), now, 30)
		require.NoError(t, err)
		require.Len(t, members, 2)

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		require.Equal(t, "find", evt.CommandName)

		gte := evt.Command.Lookup("filter", "expiry_date", "$gte").Time()
		lte := evt.Command.Lookup("filter", "expiry_date", "$lte").Time()
		require.WithinDuration(t, now, gte, time.Second)
		require.WithinDuration(t, now.AddDate(0, 0, 30), lte, time.Second)

		sort, ok := evt.Command.Lookup("sort", "expiry_date").AsInt64OK()
		require.True(t, ok)
		require.EqualValues(t, 1, sort)
	})

	mt.Run("empty window yields no members and no error", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym.members", mtest.FirstBatch))

		members, err := repo.ExpiringWithin(context.Background(), time.Now(), 7)
		require.NoError(t, err)
		require.Empty(t, members)
	})
}

func TestMemberRepository_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("deleting a missing id does not fail", func(mt *mtest.T) {
		repo := repositories.NewMemberRepository(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID())
		require.NoError(t, err)
	})
}
