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

type PaymentHandler struct {
	Payments    *repositories.PaymentRepository
	AuditLogger utils.AuditLogger
}

func NewPaymentHandler(payments *repositories.PaymentRepository, logger utils.AuditLogger) *PaymentHandler {
	return &PaymentHandler{Payments: payments, AuditLogger: logger}
}

type recordPaymentRequest struct {
	MemberID      string    `json:"member_id"`
	PackageID     string    `json:"package_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	Method        string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

// POST /payments
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		utils.JSONError(w, "Invalid member ID", http.StatusBadRequest)
		return
	}
	packageID, err := primitive.ObjectIDFromHex(req.PackageID)
	if err != nil {
		utils.JSONError(w, "Invalid package ID", http.StatusBadRequest)
		return
	}

	payment := models.Payment{
		MemberID:      memberID,
		PackageID:     packageID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		Method:        req.Method,
		TransactionID: req.TransactionID,
		Status:        models.PaymentStatus(req.Status),
		Notes:         req.Notes,
	}

	id, err := h.Payments.Record(r.Context(), payment)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.PaymentEntity, constants.Create,
		middleware.UserIDFromContext(r.Context()), id.Hex())

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id.Hex()})
}

type paymentStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// PATCH /payments/{id}/status
func (h *PaymentHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	var req paymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Payments.UpdateStatus(r.Context(), id, models.PaymentStatus(req.Status), req.Notes); err != nil {
		utils.RepositoryError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.PaymentEntity, constants.Update,
		middleware.UserIDFromContext(r.Context()), id.Hex())
	json.NewEncoder(w).Encode(map[string]string{"message": "Payment status updated"})
}

// GET /payments
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Payments.List(r.Context())
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	json.NewEncoder(w).Encode(payments)
}

// GET /members/{id}/payments
func (h *PaymentHandler) GetMemberPayments(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	payments, err := h.Payments.ByMember(r.Context(), id)
	if err != nil {
		utils.RepositoryError(w, err)
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	json.NewEncoder(w).Encode(payments)
}
