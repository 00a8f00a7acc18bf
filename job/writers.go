package job

import (
	"context"
	"os"
	"path"

	"fontconv/logger"
	"fontconv/models"
	writerbackends "fontconv/writerBackends"
)

// publish copies a converted font to every configured target. Failures
// are logged and do not affect the conversion outcome.
func (c *Converter) publish(ctx context.Context, fj models.FontJob, outputPath string) {
	for _, writerJob := range c.Publish {
		if ctx.Err() != nil {
			logger.Warnf("Publishing %s cancelled: %v", fj.Output, ctx.Err())
			return
		}

		reader, err := os.Open(outputPath)
		if err != nil {
			logger.Warnf("Failed to open %s for publishing: %v", outputPath, err)
			return
		}

		accessInfo := prepareAccessInfo(writerJob, fj.Output, c.PublishPrefix, c.ServeDir)
		if err := writerbackends.WriteFont(ctx, accessInfo, reader, writerJob.Type); err != nil {
			logger.Warnf("Failed to publish %s to %s: %v", fj.Output, writerJob.Type, err)
		} else {
			logger.Infof("Published %s to %s", fj.Output, writerJob.Type)
		}
		reader.Close()
	}
}

// prepareAccessInfo prepares the access info map for the writer backend
func prepareAccessInfo(writerJob models.WriterJob, filename, prefix, serveDir string) map[string]string {
	accessInfo := make(map[string]string)

	// Copy credentials
	for k, v := range writerJob.Credentials {
		accessInfo[k] = v
	}

	accessInfo["filename"] = filename
	accessInfo["folder"] = prefix

	// Set backend-specific configuration
	switch writerJob.Type {
	case "directServe":
		if accessInfo["baseDir"] == "" {
			accessInfo["baseDir"] = serveDir
		}
	case "s3":
		accessInfo["key"] = path.Join(prefix, filename)
	case "gcs":
		accessInfo["object"] = path.Join(prefix, filename)
	}

	return accessInfo
}
