package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/planwright/planwright/pkg/pipeline"
)

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // plan file path, used to derive default output names
	output    string // output file (single format), base path (multiple), or "-" for stdout
}

// writeArtifacts writes rendered artifacts to files or stdout.
//
// With a single format, the output path is used directly ("-" means stdout);
// when empty it is derived from the input file name. With multiple formats,
// output acts as a base path and each artifact gets its format as extension.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 {
		format := p.formats[0]
		if p.output == "-" {
			_, err := os.Stdout.Write(p.artifacts[format])
			return err
		}
		path := p.output
		if path == "" {
			path = basePath("", p.input) + "." + format
		}
		return writeArtifact(path, p.artifacts[format])
	}

	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		if err := writeArtifact(base+"."+format, p.artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .json, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
