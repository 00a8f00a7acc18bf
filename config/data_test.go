package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"fontconv/models"
)

// clearEnv unsets the given variables for the duration of the test.
func clearEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestFontFiles(t *testing.T) {
	expected := []string{"BINGO-ITALIC.OTF", "BINGO.OTF", "AGURA.TTF", "PRENOPTICA.TTF"}
	files := GetFontFiles()
	if d := cmp.Diff(expected, files); d != "" {
		t.Errorf("Unexpected font list (-want +got):\n%s", d)
	}

	// Callers get a copy; the list itself cannot change during a run
	files[0] = "changed.ttf"
	if GetFontFiles()[0] != "BINGO-ITALIC.OTF" {
		t.Error("Modifying the returned slice changed the font list")
	}
}

func TestDirectories(t *testing.T) {
	if INPUT_DIR != "." {
		t.Errorf("Expected input dir '.', got %s", INPUT_DIR)
	}
	if OUTPUT_DIR != INPUT_DIR {
		t.Errorf("Expected output dir to equal input dir, got %s", OUTPUT_DIR)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t, "FONTCONV_ENCODER", "FONTCONV_QUALITY", "FONTCONV_LOG_LEVEL", "FONTCONV_LOG_FILE",
		"FONTCONV_DATA_DIR", "FONTCONV_HISTORY_MAX_AGE", "FONTCONV_PUBLISH", "FONTCONV_PUBLISH_PREFIX",
		"FONTCONV_SERVE_DIR")

	if got := GetEncoderName(); got != "native" {
		t.Errorf("Expected default encoder native, got %s", got)
	}
	if got := GetQuality(); got != 11 {
		t.Errorf("Expected default quality 11, got %d", got)
	}
	if got := GetLogLevel(); got != "warn" {
		t.Errorf("Expected default log level warn, got %s", got)
	}
	if got := GetLogFile(); got != "" {
		t.Errorf("Expected no log file, got %s", got)
	}
	if HistoryEnabled() {
		t.Error("History should be disabled without a data dir")
	}
	if got := GetHistoryMaxAge(); got != 30*24*time.Hour {
		t.Errorf("Expected 30 day history, got %v", got)
	}
	if got := GetPublishTargets(); got != nil {
		t.Errorf("Expected no publish targets, got %v", got)
	}
	if got := GetPublishPrefix(); got != "fonts" {
		t.Errorf("Expected publish prefix fonts, got %s", got)
	}
	if got := GetDirectServeBaseDir(); got != "./serve" {
		t.Errorf("Expected serve dir ./serve, got %s", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	customDir := filepath.Join(t.TempDir(), "history")
	t.Setenv("FONTCONV_DATA_DIR", customDir)
	t.Setenv("FONTCONV_ENCODER", "fonttools")
	t.Setenv("FONTCONV_QUALITY", "5")
	t.Setenv("FONTCONV_HISTORY_MAX_AGE", "48h")
	t.Setenv("FONTCONV_PUBLISH_PREFIX", "")

	if !HistoryEnabled() {
		t.Error("History should be enabled with a data dir")
	}
	if got := GetFailuresDBPath(); got != filepath.Join(customDir, "failures.db") {
		t.Errorf("Unexpected failures path %s", got)
	}
	if got := GetSuccessDBPath(); got != filepath.Join(customDir, "success.db") {
		t.Errorf("Unexpected success path %s", got)
	}
	if got := GetEncoderName(); got != "fonttools" {
		t.Errorf("Expected encoder fonttools, got %s", got)
	}
	if got := GetQuality(); got != 5 {
		t.Errorf("Expected quality 5, got %d", got)
	}
	if got := GetHistoryMaxAge(); got != 48*time.Hour {
		t.Errorf("Expected 48h, got %v", got)
	}
	// An explicitly empty prefix publishes at the top level
	if got := GetPublishPrefix(); got != "" {
		t.Errorf("Expected empty prefix, got %q", got)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("FONTCONV_QUALITY", "12")
	t.Setenv("FONTCONV_HISTORY_MAX_AGE", "soon")

	if got := GetQuality(); got != 11 {
		t.Errorf("Expected fallback quality 11, got %d", got)
	}
	if got := GetHistoryMaxAge(); got != 30*24*time.Hour {
		t.Errorf("Expected fallback max age, got %v", got)
	}
}

func TestPublishTargets(t *testing.T) {
	t.Setenv("FONTCONV_PUBLISH", "s3, directServe,,nowhere")
	t.Setenv("FONTCONV_S3_BUCKET", "web-assets")
	t.Setenv("FONTCONV_S3_REGION", "eu-west-1")
	clearEnv(t, "FONTCONV_S3_ACCESS_KEY", "FONTCONV_S3_SECRET_KEY")

	expected := []models.WriterJob{
		{Type: "s3", Credentials: map[string]string{"bucket": "web-assets", "region": "eu-west-1"}},
		{Type: "directServe", Credentials: map[string]string{}},
		{Type: "nowhere", Credentials: map[string]string{}},
	}
	if d := cmp.Diff(expected, GetPublishTargets()); d != "" {
		t.Errorf("Unexpected publish targets (-want +got):\n%s", d)
	}
}
