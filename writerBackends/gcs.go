package writerbackends

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"fontconv/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// UploadToGCSWithJSON uploads content to a Cloud Storage object using a
// service account key. credentialsJSON holds the key file, base64 encoded.
func UploadToGCSWithJSON(ctx context.Context, accessInfo map[string]string, reader io.Reader) error {
	if err := requireKeys(accessInfo, "credentialsJSON", "bucket", "object"); err != nil {
		return err
	}

	credentialsJSON, err := base64.StdEncoding.DecodeString(accessInfo["credentialsJSON"])
	if err != nil {
		return fmt.Errorf("decode credentials: %w", err)
	}
	bucketName := accessInfo["bucket"]
	objectName := accessInfo["object"]

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = ContentType

	if _, err = io.Copy(wc, reader); err != nil {
		wc.Close()
		return fmt.Errorf("io.Copy: %w", err)
	}

	// Close the writer to complete the upload.
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}

	logger.Infof("Successfully uploaded object '%s' to bucket '%s'", objectName, bucketName)
	return nil
}
