package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fontconv/models"
)

// INPUT_DIR is the directory the font files are read from.
const INPUT_DIR = "."

// OUTPUT_DIR is where the .woff2 files are written; the same folder as
// the inputs.
const OUTPUT_DIR = INPUT_DIR

// BANNER_LOCATION is the folder named in the completion banner. It is
// printed as is and does not follow OUTPUT_DIR.
const BANNER_LOCATION = "public/fonts/"

// fontFiles are the fonts converted on every run, in order.
// Names are case-sensitive.
var fontFiles = []string{
	"BINGO-ITALIC.OTF",
	"BINGO.OTF",
	"AGURA.TTF",
	"PRENOPTICA.TTF",
}

// GetFontFiles returns a copy of the fixed font list.
func GetFontFiles() []string {
	files := make([]string, len(fontFiles))
	copy(files, fontFiles)
	return files
}

// GetEncoderName returns the encoder used for the conversion.
// Priority: FONTCONV_ENCODER environment variable > "native" default
func GetEncoderName() string {
	if name := os.Getenv("FONTCONV_ENCODER"); name != "" {
		return name
	}
	return "native"
}

// GetQuality returns the brotli quality for the native encoder (0-11).
// Invalid values fall back to the default of 11.
func GetQuality() int {
	if v := os.Getenv("FONTCONV_QUALITY"); v != "" {
		if q, err := strconv.Atoi(v); err == nil && q >= 0 && q <= 11 {
			return q
		}
	}
	return 11
}

// GetLogLevel returns the configured log level name, "warn" by default.
func GetLogLevel() string {
	if level := os.Getenv("FONTCONV_LOG_LEVEL"); level != "" {
		return level
	}
	return "warn"
}

// GetLogFile returns the optional log file. Empty means console only.
func GetLogFile() string {
	return os.Getenv("FONTCONV_LOG_FILE")
}

// GetDataDir returns the directory holding the conversion history
// databases. An empty result disables the history.
func GetDataDir() string {
	return os.Getenv("FONTCONV_DATA_DIR")
}

// HistoryEnabled reports whether a data directory is configured.
func HistoryEnabled() bool {
	return GetDataDir() != ""
}

// GetFailuresDBPath returns the full path to the failures database.
// Path: {DATA_DIR}/failures.db
func GetFailuresDBPath() string {
	return filepath.Join(GetDataDir(), "failures.db")
}

// GetSuccessDBPath returns the full path to the success database.
// Path: {DATA_DIR}/success.db
func GetSuccessDBPath() string {
	return filepath.Join(GetDataDir(), "success.db")
}

// GetHistoryMaxAge returns how long history records are kept.
// Defaults to 30 days.
func GetHistoryMaxAge() time.Duration {
	if v := os.Getenv("FONTCONV_HISTORY_MAX_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return 30 * 24 * time.Hour
}

// GetPublishPrefix returns the folder (or key prefix) converted fonts are
// published under.
func GetPublishPrefix() string {
	if prefix, ok := os.LookupEnv("FONTCONV_PUBLISH_PREFIX"); ok {
		return prefix
	}
	return "fonts"
}

// GetDirectServeBaseDir returns the local mirror directory used by the
// directServe backend.
// Defaults to "./serve" relative to the working directory.
func GetDirectServeBaseDir() string {
	if dir := os.Getenv("FONTCONV_SERVE_DIR"); dir != "" {
		return dir
	}
	return "./serve"
}

// backendEnv maps access info keys to environment variables per backend.
var backendEnv = map[string]map[string]string{
	"s3": {
		"accessKey": "FONTCONV_S3_ACCESS_KEY",
		"secretKey": "FONTCONV_S3_SECRET_KEY",
		"region":    "FONTCONV_S3_REGION",
		"bucket":    "FONTCONV_S3_BUCKET",
	},
	"gcs": {
		"credentialsJSON": "FONTCONV_GCS_CREDENTIALS",
		"bucket":          "FONTCONV_GCS_BUCKET",
	},
	"sftp": {
		"host":       "FONTCONV_SFTP_HOST",
		"port":       "FONTCONV_SFTP_PORT",
		"user":       "FONTCONV_SFTP_USER",
		"password":   "FONTCONV_SFTP_PASSWORD",
		"privateKey": "FONTCONV_SFTP_PRIVATE_KEY",
		"remoteDir":  "FONTCONV_SFTP_DIR",
	},
	"directServe": {},
}

// GetPublishTargets returns the destinations listed in FONTCONV_PUBLISH
// (comma separated), each with its access info collected from the
// environment. Unknown backend names are passed through with empty
// credentials so that the writer reports them.
func GetPublishTargets() []models.WriterJob {
	list := os.Getenv("FONTCONV_PUBLISH")
	if list == "" {
		return nil
	}

	var targets []models.WriterJob
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		creds := make(map[string]string)
		for key, env := range backendEnv[name] {
			if v := os.Getenv(env); v != "" {
				creds[key] = v
			}
		}
		targets = append(targets, models.WriterJob{Type: name, Credentials: creds})
	}
	return targets
}
