package writerbackends

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFontDirectServe(t *testing.T) {
	baseDir := t.TempDir()
	content := []byte("wOF2 test payload")
	accessInfo := map[string]string{
		"baseDir":  baseDir,
		"folder":   "fonts",
		"filename": "AGURA.woff2",
	}

	if err := WriteFont(context.Background(), accessInfo, bytes.NewReader(content), "directServe"); err != nil {
		t.Fatalf("Failed to write to direct serve: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(baseDir, "fonts", "AGURA.woff2"))
	if err != nil {
		t.Fatalf("Failed to read published file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Expected %q, got %q", content, got)
	}

	// Publishing again replaces the file
	if err := WriteFont(context.Background(), accessInfo, strings.NewReader("v2"), "directServe"); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}
	got, _ = os.ReadFile(filepath.Join(baseDir, "fonts", "AGURA.woff2"))
	if string(got) != "v2" {
		t.Errorf("Expected overwritten content, got %q", got)
	}
}

func TestWriteFontDirectServeNoFolder(t *testing.T) {
	baseDir := t.TempDir()
	accessInfo := map[string]string{"baseDir": baseDir, "filename": "BINGO.woff2"}
	if err := UploadToDirectServe(context.Background(), accessInfo, strings.NewReader("x")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, "BINGO.woff2")); err != nil {
		t.Errorf("Expected file at base dir: %v", err)
	}
}

func TestWriteFontUnknownBackend(t *testing.T) {
	err := WriteFont(context.Background(), map[string]string{}, strings.NewReader("x"), "ftp")
	if err == nil || !strings.Contains(err.Error(), "unknown backend type: ftp") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}
}

func TestMissingAccessInfo(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		backend    string
		accessInfo map[string]string
		want       string
	}{
		{"directServe", map[string]string{"filename": "a.woff2"}, "baseDir"},
		{"s3", map[string]string{"bucket": "b", "key": "k"}, "accessKey"},
		{"gcs", map[string]string{"bucket": "b"}, "credentialsJSON"},
		{"sftp", map[string]string{"host": "h"}, "host, user, remotePath"},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			err := WriteFont(ctx, tt.accessInfo, strings.NewReader("x"), tt.backend)
			if err == nil {
				t.Fatal("Expected error for missing access info")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestGCSInvalidCredentials(t *testing.T) {
	accessInfo := map[string]string{
		"credentialsJSON": "not base64!",
		"bucket":          "b",
		"object":          "fonts/a.woff2",
	}
	err := UploadToGCSWithJSON(context.Background(), accessInfo, strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "decode credentials") {
		t.Errorf("Expected decode error, got %v", err)
	}
}

func TestSFTPNoAuth(t *testing.T) {
	accessInfo := map[string]string{
		"host":      "127.0.0.1",
		"user":      "fonts",
		"remoteDir": "/srv",
		"filename":  "a.woff2",
	}
	err := UploadToSFTPWithCreds(context.Background(), accessInfo, strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "no auth method") {
		t.Errorf("Expected auth error, got %v", err)
	}
}

func TestSFTPBadPrivateKey(t *testing.T) {
	accessInfo := map[string]string{
		"host":       "127.0.0.1",
		"user":       "fonts",
		"remotePath": "/srv/a.woff2",
		"privateKey": base64.StdEncoding.EncodeToString([]byte("garbage")),
	}
	err := UploadToSFTPWithCreds(context.Background(), accessInfo, strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "parse private key") {
		t.Errorf("Expected key parse error, got %v", err)
	}
}
