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

type MemberHandler struct {
	Members     *repositories.MemberRepository
	AuditLogger utils.AuditLogger
	Config      struct {
		ExpiringSoonDays   int
		ExpiringWindowDays int
	}
}

func NewMemberHandler(members *repositories.MemberRepository, logger utils.AuditLogger, expiringSoonDays, expiringWindowDays int) *MemberHandler {
	h := &MemberHandler{Members: members, AuditLogger: logger}
	h.Config.ExpiringSoonDays = expiringSoonDays
	h.Config.ExpiringWindowDays = expiringWindowDays
	return h
}

type memberResponse struct {
	models.Member
	Status models.MembershipState `json:"status"`
}

func (h *MemberHandler) withStatus(m models.Member, now time.Time) memberResponse {
	return memberResponse{Member: m, Status: models.MembershipStatus(m.ExpiryDate, now, h.Config.ExpiringSoonDays)}
}

// GET /members
func (h *MemberHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.List(r.Context())
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	now := time.Now()
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, h.withStatus(m, now))
	}
	json.NewEncoder(w).Encode(out)
}

// GET /members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	member, err := h.Members.GetByID(r.Context(), id)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	json.NewEncoder(w).Encode(h.withStatus(*member, time.Now()))
}

// GET /members/by-code/{code}
func (h *MemberHandler) GetMemberByCode(w http.ResponseWriter, r *http.Request) {
	member, err := h.Members.GetByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	json.NewEncoder(w).Encode(h.withStatus(*member, time.Now()))
}

type createMemberRequest struct {
	MemberCode string    `json:"member_code"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	PackageID  string    `json:"package_id"`
	StartDate  time.Time `json:"start_date"`
	Notes      string    `json:"notes"`
}

// POST /members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	packageID, err := primitive.ObjectIDFromHex(req.PackageID)
	if err != nil {
		utils.JSONError(w, "Invalid package ID", http.StatusBadRequest)
		return
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now()
	}

	member := models.Member{
		MemberCode: req.MemberCode,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PackageID:  packageID,
		StartDate:  req.StartDate,
		Notes:      req.Notes,
	}

	id, err := h.Members.Create(r.Context(), member)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.MemberEntity, constants.Create,
		middleware.UserIDFromContext(r.Context()), member.Name)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id.Hex()})
}

type updateMemberRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// PUT /members/{id} — contact fields only; the membership window is
// changed through /renew.
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	var req updateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	update := repositories.MemberContactUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := h.Members.UpdateContact(r.Context(), id, update); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.MemberEntity, constants.Update,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	json.NewEncoder(w).Encode(map[string]string{"message": "Member updated"})
}

type renewRequest struct {
	PackageID string    `json:"package_id"`
	StartDate time.Time `json:"start_date"`
}

// POST /members/{id}/renew
func (h *MemberHandler) RenewMembership(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	var req renewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	packageID, err := primitive.ObjectIDFromHex(req.PackageID)
	if err != nil {
		utils.JSONError(w, "Invalid package ID", http.StatusBadRequest)
		return
	}

	expiry, err := h.Members.Renew(r.Context(), id, repositories.MemberRenewal{
		PackageID: packageID,
		StartDate: req.StartDate,
	})
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.MemberEntity, constants.Renew,
		middleware.UserIDFromContext(r.Context()), id.Hex())

	json.NewEncoder(w).Encode(map[string]string{
		"message":     "Membership renewed",
		"expiry_date": expiry.Format(time.RFC3339),
	})
}

// DELETE /members/{id}
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	if err := h.Members.Delete(r.Context(), id); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.MemberEntity, constants.Delete,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	w.WriteHeader(http.StatusNoContent)
}

// GET /members/expiring?days=N
func (h *MemberHandler) GetExpiringMembers(w http.ResponseWriter, r *http.Request) {
	days := h.Config.ExpiringWindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &days); err != nil || days <= 0 {
			utils.JSONError(w, "Invalid days parameter", http.StatusBadRequest)
			return
		}
	}

	now := time.Now()
	members, err := h.Members.ExpiringWithin(r.Context(), now, days)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, h.withStatus(m, now))
	}
	json.NewEncoder(w).Encode(out)
}
