package writerbackends

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fontconv/logger"
)

// UploadToDirectServe copies content into a local mirror directory,
// baseDir/folder/filename. A web server pointed at baseDir serves the fonts.
func UploadToDirectServe(ctx context.Context, accessInfo map[string]string, reader io.Reader) error {
	if err := requireKeys(accessInfo, "baseDir", "filename"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	baseDir := accessInfo["baseDir"]
	folder := accessInfo["folder"] // optional
	filename := accessInfo["filename"]

	fullDir := filepath.Join(baseDir, folder)
	fullPath := filepath.Join(fullDir, filename)

	// Ensure the target directory exists
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		return fmt.Errorf("failed to write to file %s: %w", fullPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", fullPath, err)
	}

	logger.Infof("Successfully saved file '%s' to '%s'", filename, fullPath)
	return nil
}
