package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvinchris/GymManagement/internal/constants"
	"github.com/kvinchris/GymManagement/internal/middleware"
	"github.com/kvinchris/GymManagement/internal/models"
	"github.com/kvinchris/GymManagement/internal/repositories"
	"github.com/kvinchris/GymManagement/internal/utils"
)

type TrainerHandler struct {
	Trainers    *repositories.TrainerRepository
	Classes     *repositories.ClassRepository
	AuditLogger utils.AuditLogger
}

func NewTrainerHandler(trainers *repositories.TrainerRepository, classes *repositories.ClassRepository, logger utils.AuditLogger) *TrainerHandler {
	return &TrainerHandler{Trainers: trainers, Classes: classes, AuditLogger: logger}
}

// GET /trainers
func (h *TrainerHandler) GetTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.Trainers.List(r.Context())
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if trainers == nil {
		trainers = []models.Trainer{}
	}
	json.NewEncoder(w).Encode(trainers)
}

// GET /trainers/{id}
func (h *TrainerHandler) GetTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	trainer, err := h.Trainers.GetByID(r.Context(), id)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	json.NewEncoder(w).Encode(trainer)
}

// GET /trainers/by-user/{userId} — resolves the trainer profile for a
// logged-in trainer account.
func (h *TrainerHandler) GetTrainerByUser(w http.ResponseWriter, r *http.Request) {
	trainer, err := h.Trainers.GetByUserID(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	json.NewEncoder(w).Encode(trainer)
}

// GET /trainers/{id}/classes
func (h *TrainerHandler) GetTrainerClasses(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	classes, err := h.Classes.ByTrainer(r.Context(), id)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if classes == nil {
		classes = []models.TrainerClass{}
	}
	json.NewEncoder(w).Encode(classes)
}

// POST /trainers
func (h *TrainerHandler) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var trainer models.Trainer
	if err := json.NewDecoder(r.Body).Decode(&trainer); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	id, err := h.Trainers.Create(r.Context(), trainer)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.TrainerEntity, constants.Create,
		middleware.UserIDFromContext(r.Context()), trainer.Name)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id.Hex()})
}

type updateTrainerRequest struct {
	Name           *string                    `json:"name"`
	Email          *string                    `json:"email"`
	Phone          *string                    `json:"phone"`
	Specialization *string                    `json:"specialization"`
	Bio            *string                    `json:"bio"`
	HourlyRate     *float64                   `json:"hourly_rate"`
	Availability   *[]models.AvailabilitySlot `json:"availability"`
	IsActive       *bool                      `json:"is_active"`
}

// PUT /trainers/{id}
func (h *TrainerHandler) UpdateTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	var req updateTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	update := repositories.TrainerUpdate{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		HourlyRate:     req.HourlyRate,
		Availability:   req.Availability,
		IsActive:       req.IsActive,
	}
	if err := h.Trainers.Update(r.Context(), id, update); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.TrainerEntity, constants.Update,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	json.NewEncoder(w).Encode(map[string]string{"message": "Trainer updated"})
}

// PATCH /trainers/{id}/deactivate
func (h *TrainerHandler) DeactivateTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	if err := h.Trainers.Deactivate(r.Context(), id); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.TrainerEntity, constants.Deactivate,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	json.NewEncoder(w).Encode(map[string]string{"message": "Trainer deactivated"})
}

// DELETE /trainers/{id}
func (h *TrainerHandler) DeleteTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	if err := h.Trainers.Delete(r.Context(), id); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.TrainerEntity, constants.Delete,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	w.WriteHeader(http.StatusNoContent)
}
