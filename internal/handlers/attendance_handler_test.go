package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/kvinchris/GymManagement/internal/handlers"
	"github.com/kvinchris/GymManagement/internal/repositories"
	"github.com/kvinchris/GymManagement/internal/utils"
)

func newAttendanceRouter(mt *mtest.T) *mux.Router {
	attendanceRepo := repositories.NewAttendanceRepository(mt.Coll, mt.Coll)
	memberRepo := repositories.NewMemberRepository(mt.Coll, mt.Coll)
	handler := handlers.NewAttendanceHandler(attendanceRepo, memberRepo, utils.AuditLogger{Collection: mt.Coll})

	router := mux.NewRouter()
	router.HandleFunc("/attendance/checkin", handler.CheckIn).Methods("POST")
	router.HandleFunc("/attendance/daily", handler.GetDailyAttendance).Methods("GET")
	return router
}

func TestAttendanceHandler_CheckIn(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("missing member reference", func(mt *mtest.T) {
		router := newAttendanceRouter(mt)

		req := httptest.NewRequest(http.MethodPost, "/attendance/checkin", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("invalid method", func(mt *mtest.T) {
		router := newAttendanceRouter(mt)

		body := []byte(`{"member_code":"GM-3F2A91","method":"kiosk"}`)
		req := httptest.NewRequest(http.MethodPost, "/attendance/checkin", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})

	mt.Run("unknown member code", func(mt *mtest.T) {
		router := newAttendanceRouter(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym.members", mtest.FirstBatch))

		body := []byte(`{"member_code":"GM-ZZZZZZ","method":"manual"}`)
		req := httptest.NewRequest(http.MethodPost, "/attendance/checkin", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", res.Status)
		}
	})
}

func TestAttendanceHandler_CheckInWithDate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("explicit date stored as its day bucket", func(mt *mtest.T) {
		router := newAttendanceRouter(mt)
		memberID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "gym.members", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: memberID},
				{Key: "member_code", Value: "GM-3F2A91"},
				{Key: "name", Value: "Jamie Cruz"},
			}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		body := []byte(`{"member_code":"GM-3F2A91","method":"manual","date":"2024-01-15T09:30:00Z"}`)
		req := httptest.NewRequest(http.MethodPost, "/attendance/checkin", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusCreated {
			t.Fatalf("expected status Created, got %v", res.Status)
		}

		find := mt.GetStartedEvent()
		if find == nil || find.CommandName != "find" {
			t.Fatalf("expected a member lookup first, got %+v", find)
		}

		insert := mt.GetStartedEvent()
		if insert == nil || insert.CommandName != "insert" {
			t.Fatalf("expected an attendance insert, got %+v", insert)
		}
		stored := insert.Command.Lookup("documents").Array().Index(0).Value().Document().Lookup("date").Time()
		want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
		if !stored.Equal(want) {
			t.Errorf("stored date %v, want day bucket %v", stored, want)
		}
	})
}

func TestAttendanceHandler_GetDailyAttendance(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("bad date parameter", func(mt *mtest.T) {
		router := newAttendanceRouter(mt)

		req := httptest.NewRequest(http.MethodGet, "/attendance/daily?date=01-10-2024", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", res.Status)
		}
	})
}
