package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/kvinchris/GymManagement/configs"
	"github.com/kvinchris/GymManagement/internal/daemon"
	"github.com/kvinchris/GymManagement/internal/db"
	"github.com/kvinchris/GymManagement/internal/handlers"
	"github.com/kvinchris/GymManagement/internal/middleware"
	"github.com/kvinchris/GymManagement/internal/models"
	"github.com/kvinchris/GymManagement/internal/repositories"
	"github.com/kvinchris/GymManagement/internal/utils"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := configs.LoadConfig()
	db.Connect(cfg.MongoURI)
	utils.InitJwtSecret(cfg.JWTSecret)

	auditCol := db.GetCollection(cfg.DBName, "audit_logs")
	auditLogger := utils.AuditLogger{Collection: auditCol}

	membersCol := db.GetCollection(cfg.DBName, "members")
	packagesCol := db.GetCollection(cfg.DBName, "packages")
	trainersCol := db.GetCollection(cfg.DBName, "trainers")
	classesCol := db.GetCollection(cfg.DBName, "classes")
	attendanceCol := db.GetCollection(cfg.DBName, "attendance")
	paymentsCol := db.GetCollection(cfg.DBName, "payments")
	usersCol := db.GetCollection(cfg.DBName, "users")

	memberRepo := repositories.NewMemberRepository(membersCol, packagesCol)
	packageRepo := repositories.NewPackageRepository(packagesCol)
	trainerRepo := repositories.NewTrainerRepository(trainersCol)
	classRepo := repositories.NewClassRepository(classesCol, trainersCol)
	attendanceRepo := repositories.NewAttendanceRepository(attendanceCol, membersCol)
	paymentRepo := repositories.NewPaymentRepository(paymentsCol, membersCol, packagesCol)
	userRepo := repositories.NewUserRepository(usersCol)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := userRepo.EnsureAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword); err != nil {
			logger.Fatal().Err(err).Msg("bootstrap admin failed")
		}
		cancel()
	}

	authHandler := handlers.NewAuthHandler(userRepo, auditLogger)
	memberHandler := handlers.NewMemberHandler(memberRepo, auditLogger, cfg.ExpiringSoonDays, cfg.ExpiringWindowDays)
	packageHandler := handlers.NewPackageHandler(packageRepo, auditLogger)
	trainerHandler := handlers.NewTrainerHandler(trainerRepo, classRepo, auditLogger)
	classHandler := handlers.NewClassHandler(classRepo, auditLogger)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, memberRepo, auditLogger)
	paymentHandler := handlers.NewPaymentHandler(paymentRepo, auditLogger)
	dashboardHandler := handlers.NewDashboardHandler(memberRepo, trainerRepo, classRepo, cfg.ExpiringWindowDays)

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.Use(middleware.RequestLogger(logger))
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	admin := string(models.RoleAdmin)
	trainer := string(models.RoleTrainer)

	// Routes shared by admin and trainer accounts.
	staff := r.PathPrefix("/").Subrouter()
	staff.Use(middleware.JWTAuthMiddleware)
	staff.Use(middleware.RequireRole(admin, trainer))

	staff.HandleFunc("/members", memberHandler.GetMembers).Methods("GET")
	staff.HandleFunc("/members/expiring", memberHandler.GetExpiringMembers).Methods("GET")
	staff.HandleFunc("/members/by-code/{code}", memberHandler.GetMemberByCode).Methods("GET")
	staff.HandleFunc("/members/{id}", memberHandler.GetMember).Methods("GET")
	staff.HandleFunc("/members/{id}/attendance", attendanceHandler.GetMemberAttendance).Methods("GET")

	staff.HandleFunc("/packages", packageHandler.GetPackages).Methods("GET")
	staff.HandleFunc("/packages/{id}", packageHandler.GetPackage).Methods("GET")

	staff.HandleFunc("/trainers", trainerHandler.GetTrainers).Methods("GET")
	staff.HandleFunc("/trainers/by-user/{userId}", trainerHandler.GetTrainerByUser).Methods("GET")
	staff.HandleFunc("/trainers/{id}", trainerHandler.GetTrainer).Methods("GET")
	staff.HandleFunc("/trainers/{id}/classes", trainerHandler.GetTrainerClasses).Methods("GET")

	staff.HandleFunc("/classes", classHandler.GetClasses).Methods("GET")
	staff.HandleFunc("/classes/upcoming", classHandler.GetUpcomingClasses).Methods("GET")
	staff.HandleFunc("/classes/{id}", classHandler.GetClass).Methods("GET")
	staff.HandleFunc("/classes/{id}/enrollment", classHandler.UpdateEnrollment).Methods("PATCH")

	staff.HandleFunc("/attendance/checkin", attendanceHandler.CheckIn).Methods("POST")
	staff.HandleFunc("/attendance/daily", attendanceHandler.GetDailyAttendance).Methods("GET")
	staff.HandleFunc("/attendance/{id}/checkout", attendanceHandler.CheckOut).Methods("PATCH")

	// Admin-only routes.
	adm := r.PathPrefix("/").Subrouter()
	adm.Use(middleware.JWTAuthMiddleware)
	adm.Use(middleware.RequireRole(admin))

	adm.HandleFunc("/register", authHandler.Register).Methods("POST")

	adm.HandleFunc("/members", memberHandler.CreateMember).Methods("POST")
	adm.HandleFunc("/members/{id}", memberHandler.UpdateMember).Methods("PUT")
	adm.HandleFunc("/members/{id}", memberHandler.DeleteMember).Methods("DELETE")
	adm.HandleFunc("/members/{id}/renew", memberHandler.RenewMembership).Methods("POST")
	adm.HandleFunc("/members/{id}/payments", paymentHandler.GetMemberPayments).Methods("GET")

	adm.HandleFunc("/packages", packageHandler.CreatePackage).Methods("POST")
	adm.HandleFunc("/packages/{id}", packageHandler.UpdatePackage).Methods("PUT")
	adm.HandleFunc("/packages/{id}", packageHandler.DeletePackage).Methods("DELETE")

	adm.HandleFunc("/trainers", trainerHandler.CreateTrainer).Methods("POST")
	adm.HandleFunc("/trainers/{id}", trainerHandler.UpdateTrainer).Methods("PUT")
	adm.HandleFunc("/trainers/{id}", trainerHandler.DeleteTrainer).Methods("DELETE")
	adm.HandleFunc("/trainers/{id}/deactivate", trainerHandler.DeactivateTrainer).Methods("PATCH")

	adm.HandleFunc("/classes", classHandler.CreateClass).Methods("POST")
	adm.HandleFunc("/classes/{id}", classHandler.UpdateClass).Methods("PUT")
	adm.HandleFunc("/classes/{id}", classHandler.DeleteClass).Methods("DELETE")

	adm.HandleFunc("/payments", paymentHandler.RecordPayment).Methods("POST")
	adm.HandleFunc("/payments", paymentHandler.GetPayments).Methods("GET")
	adm.HandleFunc("/payments/{id}/status", paymentHandler.UpdatePaymentStatus).Methods("PATCH")

	adm.HandleFunc("/admin/dashboard", dashboardHandler.GetDashboard).Methods("GET")

	exporter := daemon.NewAuditExporter(auditCol, logger)
	exporter.Start()

	server := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	logger.Info().Msg("shutting down gracefully")
	exporter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	if err := db.Disconnect(ctx); err != nil {
		logger.Error().Err(err).Msg("mongo disconnect failed")
	}
	logger.Info().Msg("server shut down")
}
