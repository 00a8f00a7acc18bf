package main

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"fontconv/config"
	"fontconv/encoder"
	"fontconv/failures"
	"fontconv/job"
	"fontconv/logger"
	"fontconv/success"
)

func main() {
	setupLogger()
	defer logger.Close()

	encoder.RegisterDefaults()
	name := config.GetEncoderName()
	encode, ok := encoder.Get(name)
	if !ok {
		logger.Fatalf("Encoder %q is not available (registered: %s)", name, strings.Join(encoder.Names(), ", "))
	}
	logger.Infof("Using encoder %s", name)

	conv := job.NewConverter(encode, name)

	if conv.RecordHistory {
		closeHistory := openHistory()
		defer closeHistory()

		runID, err := uuid.NewV7()
		if err != nil {
			logger.Fatalf("Failed to generate run ID: %v", err)
		}
		conv.RunID = runID.String()
		logger.Infof("Run %s", conv.RunID)
	}

	conv.Run(context.Background())
}

// setupLogger applies the configured level and optional log file
func setupLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		logger.Warnf("%v, using %s", err, level)
	}
	logger.SetLevel(level)

	if file := config.GetLogFile(); file != "" {
		if err := logger.Init(file, true); err != nil {
			logger.Errorf("Failed to open log file %s: %v", file, err)
		}
	}
}

// openHistory opens both history stores, prunes old records and returns a
// function closing them.
func openHistory() func() {
	logger.Debug("Initializing failures database")
	if err := failures.Init(config.GetFailuresDBPath()); err != nil {
		logger.Fatalf("Failed to initialize failure store: %v", err)
	}

	logger.Debug("Initializing success database")
	if err := success.Init(config.GetSuccessDBPath()); err != nil {
		failures.Close()
		logger.Fatalf("Failed to initialize success store: %v", err)
	}
	if err := success.CheckHealth(); err != nil {
		logger.Errorf("Success database health check failed: %v", err)
	}

	maxAge := config.GetHistoryMaxAge()
	logger.Debugf("Cleaning up history records older than %v", maxAge)
	if n, err := success.CleanupOldRecords(maxAge); err != nil {
		logger.Errorf("Failed to cleanup old success records: %v", err)
	} else if n > 0 {
		logger.Infof("Removed %d old success records", n)
	}
	if n, err := failures.CleanupOldRecords(maxAge); err != nil {
		logger.Errorf("Failed to cleanup old failure records: %v", err)
	} else if n > 0 {
		logger.Infof("Removed %d old failure records", n)
	}

	return func() {
		if err := success.Close(); err != nil {
			logger.Errorf("Failed to close success store: %v", err)
		}
		if err := failures.Close(); err != nil {
			logger.Errorf("Failed to close failure store: %v", err)
		}
	}
}
