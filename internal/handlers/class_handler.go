package handlers

import (
	"encoding/json"
	"fmt"
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

type ClassHandler struct {
	Classes     *repositories.ClassRepository
	AuditLogger utils.AuditLogger
}

func NewClassHandler(classes *repositories.ClassRepository, logger utils.AuditLogger) *ClassHandler {
	return &ClassHandler{Classes: classes, AuditLogger: logger}
}

// GET /classes
func (h *ClassHandler) GetClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.Classes.List(r.Context())
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if classes == nil {
		classes = []models.TrainerClass{}
	}
	json.NewEncoder(w).Encode(classes)
}

// GET /classes/upcoming?limit=N
func (h *ClassHandler) GetUpcomingClasses(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &limit); err != nil || limit <= 0 {
			utils.JSONError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
	}

	classes, err := h.Classes.UpcomingFrom(r.Context(), time.Now(), limit)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if classes == nil {
		classes = []models.TrainerClass{}
	}
	json.NewEncoder(w).Encode(classes)
}

// GET /classes/{id}
func (h *ClassHandler) GetClass(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid class ID", http.StatusBadRequest)
		return
	}

	class, err := h.Classes.GetByID(r.Context(), id)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	json.NewEncoder(w).Encode(class)
}

type createClassRequest struct {
	TrainerID     string    `json:"trainer_id"`
	ClassName     string    `json:"class_name"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Capacity      int       `json:"capacity"`
	Location      string    `json:"location"`
	Price         float64   `json:"price"`
	IsRecurring   bool      `json:"is_recurring"`
	RecurringDays []string  `json:"recurring_days"`
}

// POST /classes
func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		utils.JSONError(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	class := models.TrainerClass{
		TrainerID:     trainerID,
		ClassName:     req.ClassName,
		Description:   req.Description,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Capacity:      req.Capacity,
		Location:      req.Location,
		Price:         req.Price,
		IsRecurring:   req.IsRecurring,
		RecurringDays: req.RecurringDays,
		CreatedBy:     middleware.UserIDFromContext(r.Context()),
	}

	id, err := h.Classes.Create(r.Context(), class)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.ClassEntity, constants.Create,
		middleware.UserIDFromContext(r.Context()), class.ClassName)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id.Hex()})
}

type updateClassRequest struct {
	ClassName     *string    `json:"class_name"`
	Description   *string    `json:"description"`
	Date          *time.Time `json:"date"`
	StartTime     *string    `json:"start_time"`
	EndTime       *string    `json:"end_time"`
	Capacity      *int       `json:"capacity"`
	Location      *string    `json:"location"`
	Price         *float64   `json:"price"`
	IsRecurring   *bool      `json:"is_recurring"`
	RecurringDays *[]string  `json:"recurring_days"`
}

// PUT /classes/{id}
func (h *ClassHandler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid class ID", http.StatusBadRequest)
		return
	}

	var req updateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	update := repositories.ClassDetailsUpdate{
		ClassName:     req.ClassName,
		Description:   req.Description,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Capacity:      req.Capacity,
		Location:      req.Location,
		Price:         req.Price,
		IsRecurring:   req.IsRecurring,
		RecurringDays: req.RecurringDays,
	}
	if err := h.Classes.UpdateDetails(r.Context(), id, update); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.ClassEntity, constants.Update,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	json.NewEncoder(w).Encode(map[string]string{"message": "Class updated"})
}

type enrollmentRequest struct {
	Enrolled int `json:"enrolled"`
}

// PATCH /classes/{id}/enrollment
func (h *ClassHandler) UpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid class ID", http.StatusBadRequest)
		return
	}

	var req enrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Classes.SetEnrolled(r.Context(), id, req.Enrolled); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.ClassEntity, constants.Update,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Enrollment updated",
		"enrolled": req.Enrolled,
	})
}

// DELETE /classes/{id}
func (h *ClassHandler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid class ID", http.StatusBadRequest)
		return
	}

	if err := h.Classes.Delete(r.Context(), id); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.ClassEntity, constants.Delete,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	w.WriteHeader(http.StatusNoContent)
}
