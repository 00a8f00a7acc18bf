package job

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"fontconv/failures"
	"fontconv/logger"
	"fontconv/models"
	"fontconv/success"
)

// recordSuccess stores the conversion and clears an earlier failure of the
// same input.
func (c *Converter) recordSuccess(fj models.FontJob, inputPath string, data []byte) {
	if !c.RecordHistory {
		return
	}

	sum := sha256.Sum256(data)
	record := success.SuccessRecord{
		Font:       fj.Output,
		Input:      fj.Input,
		RunID:      c.RunID,
		Encoder:    c.EncoderName,
		OutputSize: int64(len(data)),
		SHA256:     hex.EncodeToString(sum[:]),
	}
	if info, err := os.Stat(inputPath); err == nil {
		record.InputSize = info.Size()
	}

	if prev, err := success.GetSuccess(fj.Output); err != nil {
		logger.Errorf("Failed to read success record for %s: %v", fj.Output, err)
	} else if prev != nil && prev.SHA256 == record.SHA256 {
		logger.Debugf("%s unchanged since run %s", fj.Output, prev.RunID)
	}

	if err := success.StoreSuccess(record); err != nil {
		logger.Errorf("Failed to store success record for %s: %v", fj.Output, err)
	}
	if err := failures.DeleteFailure(fj.Input); err != nil {
		logger.Errorf("Failed to clear failure record for %s: %v", fj.Input, err)
	}
}

// recordFailure stores why an input was not converted
func (c *Converter) recordFailure(fj models.FontJob, outcome models.Outcome, cause error) {
	if !c.RecordHistory {
		return
	}
	if err := failures.StoreFailure(fj.Input, c.RunID, outcome, cause); err != nil {
		logger.Errorf("Failed to store failure for %s: %v", fj.Input, err)
	}
}
