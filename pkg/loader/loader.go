// Package loader reads two-column displacement and force data files.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/structlab/hysteresis/pkg/series"
)

// Load reads the file at path into a named series. Text formats carry one
// sample per line, displacement in the first column and force in the
// second, separated by whitespace or commas. Lines whose first two fields
// are not both numeric, such as headers and comments, are skipped.
func Load(path string) (*series.Series, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".dat", ".csv":
	case ".xls", ".xlsx":
		return nil, fmt.Errorf("spreadsheet format %s is not supported, export to csv first", ext)
	default:
		return nil, fmt.Errorf("unsupported file format %s", ext)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	displacement := make([]float64, 0, len(lines))
	force := make([]float64, 0, len(lines))

	for _, line := range lines {
		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) < 2 {
			continue
		}

		d, err1 := strconv.ParseFloat(fields[0], 64)
		f, err2 := strconv.ParseFloat(fields[1], 64)

		if err1 == nil && err2 == nil {
			displacement = append(displacement, d)
			force = append(force, f)
		}
	}

	if len(displacement) == 0 {
		return nil, fmt.Errorf("no numeric samples found in %s", path)
	}

	return &series.Series{
		Name:         filepath.Base(path),
		Displacement: displacement,
		Force:        force,
	}, nil
}
