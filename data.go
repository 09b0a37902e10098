package cvgen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-cvgen/internal/yamlutil"
)

// LoadData reads and parses the YAML data file at path.
// The top level must be a mapping; no other schema is enforced.
func LoadData(path string) (*ResumeData, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- data path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrDataRead, err)
	}

	fields, err := yamlutil.UnmarshalMapping(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataParse, path, err)
	}

	return newResumeData(fields), nil
}
