package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kvinchris/GymManagement/internal/constants"
	"github.com/kvinchris/GymManagement/internal/middleware"
	"github.com/kvinchris/GymManagement/internal/models"
	"github.com/kvinchris/GymManagement/internal/repositories"
	"github.com/kvinchris/GymManagement/internal/utils"
)

type AuthHandler struct {
	Users       *repositories.UserRepository
	AuditLogger utils.AuditLogger
}

func NewAuthHandler(users *repositories.UserRepository, logger utils.AuditLogger) *AuthHandler {
	return &AuthHandler{Users: users, AuditLogger: logger}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), req.Email)
	if err != nil || !a.Users.CheckPassword(user, req.Password) {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), string(user.Role))
	if err != nil {
		utils.JSONError(w, "Token generation failed", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(LoginResponse{Token: token, Role: string(user.Role)})
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a new staff account. Admin only; the default role
// is trainer.
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Role == "" {
		req.Role = string(models.RoleTrainer)
	}
	if !models.IsValidUserRole(req.Role) {
		utils.JSONError(w, "Invalid role", http.StatusBadRequest)
		return
	}

	id, err := a.Users.Create(r.Context(), req.Email, req.Password, models.UserRole(req.Role))
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	a.AuditLogger.Log(r.Context(), models.UserEntity, constants.Register,
		middleware.UserIDFromContext(r.Context()), req.Email)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id.Hex()})
}
