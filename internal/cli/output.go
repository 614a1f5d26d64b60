package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/pipeline"
)

// knownExtensions are the output suffixes stripped when deriving a base path.
var knownExtensions = map[string]bool{
	pipeline.FormatSVG:  true,
	pipeline.FormatHTML: true,
	pipeline.FormatJSON: true,
	pipeline.FormatPDF:  true,
	pipeline.FormatPNG:  true,
	pipeline.FormatDOT:  true,
}

// basePath derives the base output path. An empty output falls back to
// fallback; a known format extension on output is stripped.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if knownExtensions[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file. A single format written to an
// explicit path keeps that path; otherwise files are named <base>.<format>.
func outputPaths(formats []string, output, fallback string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, fallback)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes every artifact in formats order and returns the
// written paths. Missing parent directories are created.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, fallback string) ([]string, error) {
	paths := outputPaths(formats, output, fallback)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return written, sferrors.New(sferrors.ErrCodeInternal, "no %s artifact was rendered", f)
		}
		path := paths[f]
		if err := writeFile(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, data []byte) error {
	if err := sferrors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
