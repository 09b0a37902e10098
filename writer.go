package cvgen

import (
	"fmt"
	"os"

	"github.com/alnah/go-cvgen/internal/fileutil"
)

// WriteHTML writes content verbatim to path, creating missing parent
// directories. The same directory policy applies to every output artifact.
func WriteHTML(path, content string) error {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	// #nosec G306 -- HTML output files are intended to be readable
	if err := os.WriteFile(path, []byte(content), fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	return nil
}
