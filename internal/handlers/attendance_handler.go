package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvinchris/GymManagement/internal/constants"
	"github.com/kvinchris/GymManagement/internal/middleware"
	"github.com/kvinchris/GymManagement/internal/models"
	"github.com/kvinchris/GymManagement/internal/repositories"
	"github.com/kvinchris/GymManagement/internal/utils"
)

type AttendanceHandler struct {
	Attendance  *repositories.AttendanceRepository
	Members     *repositories.MemberRepository
	AuditLogger utils.AuditLogger
}

func NewAttendanceHandler(attendance *repositories.AttendanceRepository, members *repositories.MemberRepository, logger utils.AuditLogger) *AttendanceHandler {
	return &AttendanceHandler{Attendance: attendance, Members: members, AuditLogger: logger}
}

type checkInRequest struct {
	MemberID   string    `json:"member_id"`
	MemberCode string    `json:"member_code"`
	ClassID    string    `json:"class_id"`
	Date       time.Time `json:"date"` // optional; zero means now
	Method     string    `json:"method"`
	Notes      string    `json:"notes"`
}

// POST /attendance/checkin
//
// Accepts either the storage id or the human-readable member code (the
// QR payload). Code lookups resolve to a member first; id check-ins go
// straight to the attendance repository, which backfills display
// fields best-effort.
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if req.Method == "" {
		req.Method = string(models.CheckInManual)
	}
	if !models.IsValidCheckInMethod(req.Method) {
		utils.JSONError(w, "Invalid check-in method", http.StatusBadRequest)
		return
	}

	in := repositories.CheckInInput{Date: req.Date, Method: models.CheckInMethod(req.Method), Notes: req.Notes}

	switch {
	case req.MemberCode != "":
		member, err := h.Members.GetByCode(r.Context(), req.MemberCode)
		if err != nil {
			utils.RepositoryError(w, err)
			return
		}
		in.MemberID = member.ID
		in.MemberName = member.Name
		in.MemberCode = member.MemberCode
	case req.MemberID != "":
		id, err := primitive.ObjectIDFromHex(req.MemberID)
		if err != nil {
			utils.JSONError(w, "Invalid member ID", http.StatusBadRequest)
			return
		}
		in.MemberID = id
	default:
		utils.JSONError(w, "member_id or member_code is required", http.StatusBadRequest)
		return
	}

	if req.ClassID != "" {
		classID, err := primitive.ObjectIDFromHex(req.ClassID)
		if err != nil {
			utils.JSONError(w, "Invalid class ID", http.StatusBadRequest)
			return
		}
		in.ClassID = &classID
	}

	id, err := h.Attendance.Record(r.Context(), in)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.AttendanceEntity, constants.CheckIn,
		middleware.UserIDFromContext(r.Context()), in.MemberID.Hex())

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id.Hex()})
}

// PATCH /attendance/{id}/checkout
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid attendance ID", http.StatusBadRequest)
		return
	}

	if err := h.Attendance.Checkout(r.Context(), id); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.AttendanceEntity, constants.CheckOut,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	json.NewEncoder(w).Encode(map[string]string{"message": "Checked out"})
}

// GET /attendance/daily?date=2024-01-10
func (h *AttendanceHandler) GetDailyAttendance(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.JSONError(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day = parsed
	}

	records, err := h.Attendance.ForDay(r.Context(), day)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if records == nil {
		records = []models.Attendance{}
	}
	json.NewEncoder(w).Encode(records)
}

// GET /members/{id}/attendance
func (h *AttendanceHandler) GetMemberAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	records, err := h.Attendance.ByMember(r.Context(), id)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if records == nil {
		records = []models.Attendance{}
	}
	json.NewEncoder(w).Encode(records)
}
