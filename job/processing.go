package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"fontconv/config"
	"fontconv/encoder"
	"fontconv/logger"
	"fontconv/models"
)

// Result is the outcome of one entry of the font list.
type Result struct {
	Job     models.FontJob
	Outcome models.Outcome
	Err     error // set when Outcome is OutcomeFailed
	Size    int64 // bytes written when Outcome is OutcomeConverted
}

// Converter runs one pass over a fixed list of fonts. A file that is
// missing or fails to convert is reported and skipped; it never stops
// the pass.
type Converter struct {
	InputDir  string
	OutputDir string
	Files     []string

	Encode      encoder.EncodeFunc
	EncoderName string
	Options     encoder.EncodeOptions

	// Out receives the conversion report. Defaults to os.Stdout.
	Out io.Writer

	Publish       []models.WriterJob
	PublishPrefix string
	ServeDir      string // base dir for directServe targets

	// RecordHistory stores outcomes in the success and failures stores,
	// which must be initialized by the caller.
	RecordHistory bool
	RunID         string
}

// NewConverter returns a Converter configured from the config package.
func NewConverter(encode encoder.EncodeFunc, encoderName string) *Converter {
	opts := encoder.DefaultOptions()
	opts.Quality = config.GetQuality()
	return &Converter{
		InputDir:      config.INPUT_DIR,
		OutputDir:     config.OUTPUT_DIR,
		Files:         config.GetFontFiles(),
		Encode:        encode,
		EncoderName:   encoderName,
		Options:       opts,
		Out:           os.Stdout,
		Publish:       config.GetPublishTargets(),
		PublishPrefix: config.GetPublishPrefix(),
		ServeDir:      config.GetDirectServeBaseDir(),
		RecordHistory: config.HistoryEnabled(),
	}
}

// Run converts every font in list order, then prints the summary banner.
func (c *Converter) Run(ctx context.Context) []Result {
	c.printf("Starting font conversion to WOFF2...\n\n")

	results := make([]Result, 0, len(c.Files))
	for _, name := range c.Files {
		results = append(results, c.convertOne(ctx, models.NewFontJob(name)))
	}

	c.printSummary()
	return results
}

// convertOne handles a single list entry
func (c *Converter) convertOne(ctx context.Context, fj models.FontJob) Result {
	inputPath := filepath.Join(c.InputDir, fj.Input)
	res := Result{Job: fj}

	// Any stat error counts as not found, including an unreadable parent
	// directory or a dangling link.
	if _, err := os.Stat(inputPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Debugf("%s treated as missing: %v", inputPath, err)
		}
		c.printf("⚠️  File not found: %s\n", fj.Input)
		res.Outcome = models.OutcomeNotFound
		c.recordFailure(fj, res.Outcome, nil)
		return res
	}

	outputPath := filepath.Join(c.OutputDir, fj.Output)
	logger.Debugf("Converting %s to %s with encoder %s", inputPath, outputPath, c.EncoderName)

	data, err := c.Encode(ctx, inputPath, c.Options)
	if err == nil {
		err = writeFileAtomic(outputPath, data)
	}
	if err != nil {
		c.printf("❌ Failed %s: %v\n", filepath.Base(inputPath), err)
		res.Outcome = models.OutcomeFailed
		res.Err = err
		c.recordFailure(fj, res.Outcome, err)
		return res
	}

	res.Outcome = models.OutcomeConverted
	res.Size = int64(len(data))

	c.publish(ctx, fj, outputPath)
	c.recordSuccess(fj, inputPath, data)

	c.printf("✅ Converted: %s → %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	return res
}

// printSummary prints the closing banner. The listed names come from the
// font list, not from what was converted.
func (c *Converter) printSummary() {
	c.printf("\n🎉 All done! WOFF2 files are now in %s\n", config.BANNER_LOCATION)
	c.printf("Generated files:\n")
	for _, name := range c.Files {
		c.printf("   %s%s\n", models.Stem(name), models.WOFF2Ext)
	}
}

func (c *Converter) printf(format string, args ...interface{}) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}

// writeFileAtomic writes data next to path and renames it into place, so a
// failed write never leaves a truncated font behind.
func writeFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	file, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := file.Name()

	_, writeErr := file.Write(data)
	closeErr := file.Close()
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", base, writeErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", base, closeErr)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", base, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("move %s into place: %w", base, err)
	}
	return nil
}
