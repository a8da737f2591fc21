package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"voicecrm-backend/internal/ai"
	"voicecrm-backend/internal/alerts"
	"voicecrm-backend/internal/archive"
	"voicecrm-backend/internal/auth"
	"voicecrm-backend/internal/contact"
	"voicecrm-backend/internal/convert"
	"voicecrm-backend/internal/delivery"
	"voicecrm-backend/internal/email"
	"voicecrm-backend/internal/pipeline"
	"voicecrm-backend/internal/recording"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / DB INIT
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads/audio"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping failed: %v", err)
	}
	defer db.Close()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	notifier := alerts.NewNoop()
	if token := os.Getenv("ALERT_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("ALERT_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("ALERT_CHAT_ID must be set with ALERT_BOT_TOKEN: %v", err)
		}
		notifier, err = alerts.NewTelegramNotifier(token, chatID)
		if err != nil {
			log.Fatalf("failed to init alert bot: %v", err)
		}
	}

	var s3Store archive.Store
	if os.Getenv("S3_ENDPOINT") != "" {
		s3Store, err = archive.NewS3Store()
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
	}

	geminiClient, err := ai.NewGeminiClient(context.Background())
	if err != nil {
		log.Fatalf("failed to init gemini client: %v", err)
	}
	defer geminiClient.Close()

	// =========================================================================
	// REPOSITORIES
	// =========================================================================

	authRepo := auth.NewRepo(db)
	contactRepo := contact.NewRepo(db)
	recordingRepo := recording.NewRepo(db)
	emailRepo := email.NewRepo(db)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	authService := auth.NewService(authRepo, os.Getenv("AUTH_SECRET"))
	contactService := contact.NewService(contactRepo)
	emailService := email.NewService(emailRepo)
	archiveService := archive.NewService(s3Store)

	recordingService := recording.NewService(recordingRepo, uploadDir, notifier)
	convertService := convert.NewService(convert.NewExecRunner(), recordingRepo)

	synthService := ai.NewService(geminiClient)
	if raw := os.Getenv("GEMINI_POLL_TIMEOUT"); raw != "" {
		pollTimeout, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("bad GEMINI_POLL_TIMEOUT: %v", err)
		}
		synthService = ai.NewServiceWithPolling(geminiClient, 10*time.Second, pollTimeout)
	}

	pipelineService := pipeline.NewService(
		recordingService, // resolver
		convertService,   // normalizer
		synthService,     // synthesizer
		notifier,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// HANDLERS
	authHandler := delivery.NewAuthHandler(authService)
	contactHandler := delivery.NewContactHandler(contactService)
	recordingHandler := delivery.NewRecordingHandler(recordingService, archiveService, zl)
	emailHandler := delivery.NewEmailHandler(pipelineService, emailService, zl)

	// ROUTES
	delivery.RegisterRoutes(
		r,
		authHandler,
		contactHandler,
		recordingHandler,
		emailHandler,
		authService,
	)

	r.With(httputil.RecoverMiddleware).Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	})

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := authService.CleanupExpiredSessions(context.Background()); err != nil {
				log.Printf("[cleanup-sessions] error: %v", err)
			}
		}
	}()

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voicecrm-backend",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
