package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kvinchris/GymManagement/internal/repositories"
	"github.com/kvinchris/GymManagement/internal/utils"
)

type DashboardHandler struct {
	Members  *repositories.MemberRepository
	Trainers *repositories.TrainerRepository
	Classes  *repositories.ClassRepository
	Config   struct {
		ExpiringWindowDays int
	}
}

func NewDashboardHandler(members *repositories.MemberRepository, trainers *repositories.TrainerRepository, classes *repositories.ClassRepository, expiringWindowDays int) *DashboardHandler {
	h := &DashboardHandler{Members: members, Trainers: trainers, Classes: classes}
	h.Config.ExpiringWindowDays = expiringWindowDays
	return h
}

// GET /admin/dashboard
//
// Four independent count queries; no snapshot guarantee across them.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()

	totalMembers, err := h.Members.CountAll(ctx)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	activeMembers, err := h.Members.CountActive(ctx, now)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	upcomingClasses, err := h.Classes.CountUpcoming(ctx, now)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	activeTrainers, err := h.Trainers.CountActive(ctx)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	expiring, err := h.Members.ExpiringWithin(ctx, now, h.Config.ExpiringWindowDays)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_members":        totalMembers,
		"active_members":       activeMembers,
		"upcoming_classes":     upcomingClasses,
		"active_trainers":      activeTrainers,
		"expiring_memberships": expiring,
	})
}
