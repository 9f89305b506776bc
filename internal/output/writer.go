// internal/output/writer.go
package output

import (
	"fmt"
	"os"

	"github.com/Kuraiyume/Akari/internal/core"
	"github.com/Kuraiyume/Akari/internal/core/logger"
)

// WriteOutput writes the formatted report to a file, creating or truncating
// it. The report is fully formatted before this is called, so a failure here
// never leaves a half-rendered file behind a successful exit.
func WriteOutput(filepath string, content string) error {
	log := logger.GetLogger()
	if err := os.WriteFile(filepath, []byte(content), 0644); err != nil {
		log.Errorf("Failed to write output to %s: %v", filepath, err)
		return fmt.Errorf("%w: %v", core.ErrFileWrite, err)
	}
	return nil
}
