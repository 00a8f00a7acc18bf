package writerbackends

import (
	"context"
	"fmt"
	"io"
)

// ContentType is sent with uploads on backends that store one.
const ContentType = "font/woff2"

// WriteFont writes one converted font to the backend named by backendType.
// The reader is consumed but not closed.
func WriteFont(ctx context.Context, accessInfo map[string]string, reader io.Reader, backendType string) error {
	// switch based on the backend type: directServe, s3, gcs, sftp
	switch backendType {
	case "directServe":
		err := UploadToDirectServe(ctx, accessInfo, reader)
		if err != nil {
			return fmt.Errorf("failed to upload to direct serve: %w", err)
		}
	case "s3":
		err := UploadToS3WithCreds(ctx, accessInfo, reader)
		if err != nil {
			return fmt.Errorf("failed to upload to S3: %w", err)
		}
	case "gcs":
		err := UploadToGCSWithJSON(ctx, accessInfo, reader)
		if err != nil {
			return fmt.Errorf("failed to upload to GCS: %w", err)
		}
	case "sftp":
		err := UploadToSFTPWithCreds(ctx, accessInfo, reader)
		if err != nil {
			return fmt.Errorf("failed to upload to SFTP: %w", err)
		}
	default:
		return fmt.Errorf("unknown backend type: %s", backendType)
	}
	return nil
}

// requireKeys returns an error naming every key missing from accessInfo
func requireKeys(accessInfo map[string]string, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if accessInfo[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required accessInfo keys: %v", missing)
	}
	return nil
}
