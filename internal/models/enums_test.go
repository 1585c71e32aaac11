package models_test

import (
	"testing"

	"github.com/kvinchris/GymManagement/internal/models"
)

func TestIsValidCheckInMethod(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		isValid bool
	}{
		{"QR", string(models.CheckInQR), true},
		{"Manual", string(models.CheckInManual), true},
		{"Unknown", "kiosk", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidCheckInMethod(tt.method); got != tt.isValid {
				t.Errorf("IsValidCheckInMethod(%q) = %v, want %v", tt.method, got, tt.isValid)
			}
		})
	}
}

func TestIsValidPaymentStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		isValid bool
	}{
		{"Pending", string(models.PaymentPending), true},
		{"Completed", string(models.PaymentCompleted), true},
		{"Failed", string(models.PaymentFailed), true},
		{"Refunded", string(models.PaymentRefunded), true},
		{"Unknown", "chargeback", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidPaymentStatus(tt.status); got != tt.isValid {
				t.Errorf("IsValidPaymentStatus(%q) = %v, want %v", tt.status, got, tt.isValid)
			}
		})
	}
}

func TestIsValidUserRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		isValid bool
	}{
		{"Admin", string(models.RoleAdmin), true},
		{"Trainer", string(models.RoleTrainer), true},
		{"Unknown", "member", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidUserRole(tt.role); got != tt.isValid {
				t.Errorf("IsValidUserRole(%q) = %v, want %v", tt.role, got, tt.isValid)
			}
		})
	}
}
