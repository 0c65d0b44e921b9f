package main

import (
	"fmt"
	"log"

	"opsuite/internal/config"
	"opsuite/internal/email/noop"
	"opsuite/internal/email/ses"
	"opsuite/internal/handler"
	"opsuite/internal/middleware"
	"opsuite/internal/port"
	"opsuite/internal/repository/postgres"
	"opsuite/internal/router"
	"opsuite/internal/service"
	s3storage "opsuite/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	partyRepo := postgres.NewPartyRepo(db)
	voucherRepo := postgres.NewVoucherRepo(db)
	referenceRepo := postgres.NewReferenceRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	voucherSvc := service.NewVoucherService(voucherRepo, partyRepo, tenantRepo, referenceRepo, emailSender)
	partySvc := service.NewPartyService(partyRepo)
	tenantSvc := service.NewTenantService(tenantRepo)
	reportSvc := service.NewReportService(reportRepo, s3Client, cfg.S3.Bucket, cfg.S3.PresignExpiry)

	// Initialize handlers
	voucherH := handler.NewVoucherHandler(voucherSvc)
	partyH := handler.NewPartyHandler(partySvc)
	tenantH := handler.NewTenantHandler(tenantSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	verifier := middleware.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
	r := router.Setup(verifier, cfg.CORS.AllowedOrigins, voucherH, partyH, tenantH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
