// Package server wires the pharmacy services into a Gin HTTP server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hospitalserver/classification"
	"hospitalserver/database"
	"hospitalserver/internal/config"
	"hospitalserver/server/handlers"
	"hospitalserver/server/middleware"
	"hospitalserver/server/services"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server holds the HTTP server and everything it serves.
type Server struct {
	config     *config.Config
	db         *database.ServiceDB
	classifier *classification.CategoryClassifier

	uploadHandler         *handlers.UploadHandler
	medicationHandler     *handlers.MedicationHandler
	patientHandler        *handlers.PatientHandler
	classificationHandler *handlers.ClassificationHandler
	systemHandler         *handlers.SystemHandler

	httpServer *http.Server
}

// New builds a Server around an open database connection. The classifier is
// loaded from the stored category rules.
func New(cfg *config.Config, db *database.ServiceDB) (*Server, error) {
	classifier := classification.NewCategoryClassifier(nil)

	ruleService := services.NewRuleService(db, classifier)
	if err := ruleService.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}

	medicationImport := services.NewMedicationImportService(db, classifier)
	patientImport := services.NewPatientImportService(db)
	duplicates := services.NewDuplicateService(db)

	return &Server{
		config:     cfg,
		db:         db,
		classifier: classifier,

		uploadHandler:         handlers.NewUploadHandler(medicationImport, patientImport),
		medicationHandler:     handlers.NewMedicationHandler(db),
		patientHandler:        handlers.NewPatientHandler(db),
		classificationHandler: handlers.NewClassificationHandler(ruleService),
		systemHandler:         handlers.NewSystemHandler(db, duplicates, Version),
	}, nil
}

// BuildRouter assembles the Gin engine with the full middleware chain and
// every route.
func (s *Server) BuildRouter() *gin.Engine {
	router := gin.New()

	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinLoggerMiddleware())

	router.GET("/health", s.systemHandler.HandleHealth)

	api := router.Group("/api")
	{
		uploadLimit := middleware.GinUploadRateLimitMiddleware(s.config.UploadsPerMinute, s.config.UploadBurst)
		api.POST("/pharmacy/upload", uploadLimit, s.uploadHandler.HandlePharmacyUpload)
		api.POST("/patients/upload", uploadLimit, s.uploadHandler.HandlePatientsUpload)

		api.GET("/medications", s.medicationHandler.HandleListMedications)
		api.GET("/medications/:id", s.medicationHandler.HandleGetMedication)
		api.PUT("/medications/:id", s.medicationHandler.HandleUpdateMedication)
		api.DELETE("/medications/:id", s.medicationHandler.HandleDeleteMedication)
		api.GET("/medications/:id/batches", s.medicationHandler.HandleMedicationBatches)
		api.GET("/batches/expiring", s.medicationHandler.HandleExpiringBatches)
		api.DELETE("/batches/:id", s.medicationHandler.HandleDeleteBatch)

		api.GET("/patients", s.patientHandler.HandleListPatients)
		api.GET("/patients/:id", s.patientHandler.HandleGetPatient)
		api.DELETE("/patients/:id", s.patientHandler.HandleDeletePatient)

		api.GET("/classification/rules", s.classificationHandler.HandleListRules)
		api.POST("/classification/rules", s.classificationHandler.HandleCreateRule)
		api.DELETE("/classification/rules/:id", s.classificationHandler.HandleDeleteRule)
		api.POST("/classification/derive", s.classificationHandler.HandleDerive)

		api.GET("/duplicates/medications", s.systemHandler.HandleMedicationDuplicates)
		api.GET("/imports", s.systemHandler.HandleListImports)
		api.GET("/metrics/errors", s.systemHandler.HandleErrorMetrics)
	}

	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "not found"})
	})

	return router
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.BuildRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // large uploads process synchronously
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting HTTP server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server stopped: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("http shutdown failed: %w", err)
		}
	}
	return s.db.Close()
}
