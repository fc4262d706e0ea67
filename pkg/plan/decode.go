package plan

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/planwright/planwright/pkg/errors"
)

// Supported plan file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Load reads and validates a plan file. The format is chosen by extension:
// .toml decodes as TOML, everything else as JSON.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "plan file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open plan file %s", path)
	}
	defer f.Close()

	return Decode(f, FormatForPath(path))
}

// FormatForPath returns the plan format implied by a file path.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Decode parses a plan from r in the given format, then validates it and
// applies defaults.
func Decode(r io.Reader, format string) (*Plan, error) {
	var p Plan
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode JSON plan")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode TOML plan")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown plan format %q (must be json or toml)", format)
	}

	if err := p.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &p, nil
}
