// warga-stored is the registry daemon: it loads the persisted record
// set and serves it over the HTTP API (for the UI) and the line-based
// TCP protocol (for the SDK and CLI).
package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/wargadata-dev/warga-store/internal/api"
	"github.com/wargadata-dev/warga-store/internal/config"
	"github.com/wargadata-dev/warga-store/internal/export"
	"github.com/wargadata-dev/warga-store/internal/registry"
	"github.com/wargadata-dev/warga-store/internal/server"
	"github.com/wargadata-dev/warga-store/internal/vault"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "warga-stored",
	})

	cfg := config.Load()

	persister, err := registry.NewPersistence(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("failed to initialize persistence", "error", err)
	}

	initial := persister.Load()
	reg := registry.NewRegistry(initial, persister)
	logger.Info("registry loaded", "records", reg.Count(), "data_dir", cfg.DataDir)

	exporter := export.NewCoordinator(reg, export.NewChromeRenderer(), cfg.ExportDir, logger)

	router := server.NewRouter(reg, exporter)
	if cfg.DisableTLS {
		logger.Warn("TLS disabled (WARGA_DISABLE_TLS=true)")
	} else {
		cert, err := vault.GenerateSelfSignedCert()
		if err != nil {
			logger.Fatal("failed to generate TLS certificate", "error", err)
		}
		router.SetCertificate(cert)
		logger.Info("TLS enabled with self-signed certificate")
	}

	h := &api.Handler{Registry: reg, Exporter: exporter}
	r := gin.Default()

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/records", h.ListRecords)
		apiGroup.POST("/records", h.CreateRecord)
		apiGroup.DELETE("/records/:id", h.DeleteRecord)
		apiGroup.DELETE("/records", h.DeleteAll)
		apiGroup.GET("/exports/excel", h.ExportExcel)
		apiGroup.GET("/exports/pdf", h.ExportPDF)
		apiGroup.GET("/exports/word", h.ExportWord)
	}

	go func() {
		logger.Info("HTTP API listening", "port", cfg.HTTPPort)
		if err := r.Run(":" + cfg.HTTPPort); err != nil {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		router.Stop()
	}()

	logger.Info("TCP protocol listening", "port", cfg.TCPPort)
	if err := router.Listen(cfg.TCPPort); err != nil {
		logger.Fatal("TCP server failed", "error", err)
	}
}
