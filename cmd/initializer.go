package main

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/auth"
	"github.com/redis/go-redis/v9"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"corteBack/internal/config"
	"corteBack/internal/handlers"
	"corteBack/internal/repositories"
	"corteBack/internal/services"
	"corteBack/internal/ws"
	"corteBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	userHandler        *handlers.UserHandler
	appointmentHandler *handlers.AppointmentHandler
	transactionHandler *handlers.TransactionHandler
	stockHandler       *handlers.StockHandler
	reportHandler      *handlers.ReportHandler

	userService        *services.UserService
	appointmentService *services.AppointmentService
	transactionService *services.TransactionService
	stockService       *services.StockService

	hub *ws.Hub
}

func initializeApp(cfg config.Config, store *firestore.Client, authClient *auth.Client, rdb *redis.Client, errorLog, infoLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}

	toolkit, err := identitytoolkit.NewService(
		context.Background(),
		option.WithAPIKey(cfg.Firebase.APIKey),
	)
	if err != nil {
		return nil, err
	}

	// Repositories
	appointmentRepo := repositories.AppointmentRepository{Client: store}
	transactionRepo := repositories.TransactionRepository{Client: store}
	stockRepo := repositories.StockRepository{Client: store}
	sessionRepo := repositories.SessionRepository{RDB: rdb}

	// Services
	userService := &services.UserService{
		Provider:     &services.FirebaseIdentity{Toolkit: toolkit, Auth: authClient},
		Sessions:     &sessionRepo,
		TokenManager: tokenManager,
		AccessTTL:    time.Duration(cfg.Auth.AccessTTLMin) * time.Minute,
		RefreshTTL:   time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour,
	}
	appointmentService := &services.AppointmentService{AppointmentRepo: &appointmentRepo}
	transactionService := &services.TransactionService{TransactionRepo: &transactionRepo}
	stockService := &services.StockService{StockRepo: &stockRepo}

	reportService := &services.ReportService{
		TransactionRepo: &transactionRepo,
		Dir:             cfg.Report.Dir,
	}
	if cfg.Report.Upload {
		reportService.Storage = &utils.S3Storage{
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
		}
	}

	app := &application{
		errorLog:           errorLog,
		infoLog:            infoLog,
		userHandler:        &handlers.UserHandler{Service: userService},
		appointmentHandler: &handlers.AppointmentHandler{Service: appointmentService},
		transactionHandler: &handlers.TransactionHandler{Service: transactionService},
		stockHandler:       &handlers.StockHandler{Service: stockService},
		reportHandler:      &handlers.ReportHandler{Service: reportService},
		userService:        userService,
		appointmentService: appointmentService,
		transactionService: transactionService,
		stockService:       stockService,
	}
	app.hub = ws.NewHub(appLogger{app})

	// Signing out closes the user's live syncs.
	userService.OnRevoke(app.hub.CloseOwner)

	return app, nil
}

// appLogger adapts the application's logger pair to the hub's interface.
type appLogger struct {
	app *application
}

func (l appLogger) Infof(format string, args ...interface{}) {
	l.app.infoLog.Printf(format, args...)
}

func (l appLogger) Errorf(format string, args ...interface{}) {
	l.app.errorLog.Printf(format, args...)
}
