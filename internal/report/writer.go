package report

import (
	"fmt"
	"os"
)

// Write stores content at path, replacing any artifact from a previous run.
func Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
