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

type PackageHandler struct {
	Packages    *repositories.PackageRepository
	AuditLogger utils.AuditLogger
}

func NewPackageHandler(packages *repositories.PackageRepository, logger utils.AuditLogger) *PackageHandler {
	return &PackageHandler{Packages: packages, AuditLogger: logger}
}

// GET /packages
func (h *PackageHandler) GetPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.Packages.List(r.Context())
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if packages == nil {
		packages = []models.Package{}
	}
	json.NewEncoder(w).Encode(packages)
}

// GET /packages/{id}
func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid package ID", http.StatusBadRequest)
		return
	}

	pkg, err := h.Packages.GetByID(r.Context(), id)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	json.NewEncoder(w).Encode(pkg)
}

// POST /packages
func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var pkg models.Package
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	id, err := h.Packages.Create(r.Context(), pkg)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.PackageEntity, constants.Create,
		middleware.UserIDFromContext(r.Context()), pkg.Name)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id.Hex()})
}

type updatePackageRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Duration    *int      `json:"duration"`
	Features    *[]string `json:"features"`
}

// PUT /packages/{id}
func (h *PackageHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid package ID", http.StatusBadRequest)
		return
	}

	var req updatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	update := repositories.PackageUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Features:    req.Features,
	}
	if err := h.Packages.Update(r.Context(), id, update); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.PackageEntity, constants.Update,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	json.NewEncoder(w).Encode(map[string]string{"message": "Package updated"})
}

// DELETE /packages/{id}
func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid package ID", http.StatusBadRequest)
		return
	}

	if err := h.Packages.Delete(r.Context(), id); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.PackageEntity, constants.Delete,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	w.WriteHeader(http.StatusNoContent)
}
