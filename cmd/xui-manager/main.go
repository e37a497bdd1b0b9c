package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"xui-manager/internal/config"
	"xui-manager/internal/constants"
	"xui-manager/internal/helpers"
	"xui-manager/internal/models"
	"xui-manager/internal/services"
	"xui-manager/internal/validation"
)

func main() {
	// Setup logger
	logger := setupLogger()

	// Load configuration, prompting for anything missing
	cfgPath, err := config.DefaultPath()
	if err != nil {
		logger.Fatal("Failed to resolve config path: ", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load configuration: ", err)
	}

	if !cfg.Complete() {
		fmt.Println("No complete configuration found. Please enter panel details:")
		if err := promptConfig(cfg); err != nil {
			logger.Fatal("Failed to read configuration: ", err)
		}
		if err := config.Save(cfg, cfgPath); err != nil {
			logger.Warnf("Could not save configuration: %v", err)
		} else {
			fmt.Printf("Configuration saved to %s\n", cfgPath)
		}
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: ", err)
	}
	applyLogLevel(logger, cfg)

	// Setup context with signal-driven cancellation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	manager := services.NewManagerService(cfg, logger)
	qrService := services.NewQRService(logger)

	// Login is fatal to the whole run when it fails
	if err := manager.Login(ctx); err != nil {
		logger.Fatal("Login failed: ", err)
	}

	// Fetch and display inbounds
	inbounds, err := manager.GetInbounds(ctx)
	if err != nil {
		logger.Fatal("Failed to fetch inbounds: ", err)
	}
	if len(inbounds) == 0 {
		fmt.Println("No inbounds found on the panel.")
		return
	}

	renderInboundTable(inbounds)

	// Select inbounds to process
	selection, err := promptLine(`Inbounds to update (comma-separated indices or "all")`)
	if err != nil {
		logger.Fatal("Failed to read selection: ", err)
	}
	selected, skipped, err := validation.ParseSelection(selection, len(inbounds))
	if err != nil {
		logger.Fatal("Invalid selection: ", err)
	}
	for _, n := range skipped {
		logger.Warnf("Index %d is out of range, skipping", n)
	}
	if len(selected) == 0 {
		fmt.Println("No inbounds selected.")
		return
	}

	// Client details
	identifier, err := promptLine("Client UUID or email")
	if err != nil {
		logger.Fatal("Failed to read identifier: ", err)
	}
	if err := validation.ValidateIdentifier(identifier); err != nil {
		logger.Fatal("Invalid identifier: ", err)
	}
	if validation.IsUUID(identifier) {
		fmt.Println("UUID identifier: new clients will carry it as their id with a derived email label.")
	}
	secret, err := promptLine("New secret (empty keeps current, or generates one for new clients)")
	if err != nil {
		logger.Fatal("Failed to read secret: ", err)
	}

	selectedIDs := make([]int, 0, len(selected))
	for _, idx := range selected {
		selectedIDs = append(selectedIDs, inbounds[idx].ID)
	}

	fmt.Printf("\nProcessing client %q across %d inbounds...\n\n", identifier, len(selectedIDs))
	results := manager.EnsureClient(ctx, inbounds, selectedIDs, identifier, secret)

	renderSummary(inbounds, results)
	printShareLinks(cfg, qrService, logger, inbounds, results)
}

// printShareLinks prints an import link for every created client and
// drops a QR code PNG next to the config file.
func printShareLinks(cfg *config.Config, qrService *services.QRService, logger *logrus.Logger, inbounds []models.Inbound, results []services.Result) {
	host := helpers.PanelHost(cfg.URL)
	cfgPath, err := config.DefaultPath()
	qrDir := ""
	if err == nil {
		qrDir = filepath.Dir(cfgPath)
	}

	for _, result := range results {
		if !result.Ok() || result.Action != services.ActionCreated {
			continue
		}
		inbound, found := findInbound(inbounds, result.InboundID)
		if !found {
			continue
		}

		link, err := helpers.ShareLink(inbound, result.Client, host)
		if err != nil {
			logger.Warnf("Could not build share link for %s: %v", result.Client.Email, err)
			continue
		}
		fmt.Printf("%s (%s): %s\n", result.Client.Email, inbound.Remark, link)

		if qrDir != "" {
			qrPath := filepath.Join(qrDir, fmt.Sprintf("%s-%d-qr.png", result.Client.Email, inbound.ID))
			if err := qrService.SaveQR(link, qrPath); err == nil {
				fmt.Printf("  QR code: %s\n", qrPath)
			}
		}
	}
}

func findInbound(inbounds []models.Inbound, id int) (models.Inbound, bool) {
	for _, inbound := range inbounds {
		if inbound.ID == id {
			return inbound, true
		}
	}
	return models.Inbound{}, false
}

// setupLogger sets up the logger
func setupLogger() *logrus.Logger {
	logger := logrus.New()

	// Set log level from environment variable or default to info
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Printf("Invalid log level %s, defaulting to info", logLevel)
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)

	// Set formatter
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: constants.TimestampFormat,
	})

	return logger
}

// applyLogLevel applies the configured log level. LOG_LEVEL in the
// environment keeps precedence over the config file.
func applyLogLevel(logger *logrus.Logger, cfg *config.Config) {
	if os.Getenv("LOG_LEVEL") != "" || cfg.LogLevel == "" {
		return
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level %q in config, keeping %s", cfg.LogLevel, logger.GetLevel())
		return
	}
	logger.SetLevel(level)
}
