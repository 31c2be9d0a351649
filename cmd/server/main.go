package main

import (
	"fmt"
	"log"

	"expodocs/internal/archive"
	"expodocs/internal/compose"
	"expodocs/internal/config"
	"expodocs/internal/enrich"
	enrichgemini "expodocs/internal/enrich/gemini"
	extractgemini "expodocs/internal/extract/gemini"
	"expodocs/internal/handler"
	"expodocs/internal/htmldoc"
	"expodocs/internal/pdfrender"
	"expodocs/internal/port"
	"expodocs/internal/repository/postgres"
	"expodocs/internal/router"
	"expodocs/internal/service"
	s3storage "expodocs/internal/storage/s3"
	"expodocs/internal/templatestore"
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
	invoiceRepo := postgres.NewInvoiceRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	templates := templatestore.NewS3Store(s3Client, cfg.S3.Bucket, cfg.S3.TemplatePrefix)

	// Enrichment chain: primary provider, fallback provider, static tail
	var primary, fallback port.EnrichmentProvider
	if cfg.Enrich.Primary.APIKey != "" {
		primary = enrichgemini.NewProvider("gemini-primary", &cfg.Enrich.Primary)
	}
	if cfg.Enrich.Fallback.APIKey != "" {
		fallback = enrichgemini.NewProvider("gemini-fallback", &cfg.Enrich.Fallback)
	}
	enricher := enrich.NewChain(primary, fallback)

	// Document builders
	composer := compose.NewComposer(templates, enricher)
	htmlRenderer := htmldoc.NewRenderer(pdfrender.NewConverter())
	bundler := archive.NewZipBundler()

	// Initialize services
	invoiceSvc := service.NewInvoiceService(invoiceRepo)
	renderSvc := service.NewRenderService(invoiceSvc, s3Client, templates, enricher, composer, htmlRenderer, bundler, cfg)
	extractSvc := service.NewExtractService(extractgemini.NewProvider(&cfg.Extract.Provider))

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(renderSvc, invoiceSvc)
	extractH := handler.NewExtractHandler(extractSvc, cfg.S3.MaxFileSizeMB)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(invoiceH, extractH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
