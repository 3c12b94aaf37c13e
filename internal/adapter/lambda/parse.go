package lambda

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
)

// monopoleColumns is the number of whitespace-separated fields in a FIRAS
// monopole row: frequency, intensity, residual, uncertainty, galaxy model.
const monopoleColumns = 5

// Zero-based positions of the kept columns.
const (
	colFrequency   = 0
	colIntensity   = 1
	colUncertainty = 3
)

// ParseMonopole reads the FIRAS monopole text format. Everything after a '#'
// is a comment and blank lines are skipped. Frequency, intensity, and
// uncertainty are kept in row order, with uncertainty converted from kJy/sr
// to MJy/sr. The resulting table must satisfy domain.ObservationTable.Validate.
func ParseMonopole(r io.Reader) (domain.ObservationTable, error) {
	var table domain.ObservationTable

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != monopoleColumns {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", lineNum, monopoleColumns, len(fields))
		}

		obs, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		table = append(table, obs)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read spectrum: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func parseRow(fields []string) (domain.Observation, error) {
	var vals [monopoleColumns]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return domain.Observation{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return domain.Observation{
		Frequency:   vals[colFrequency],
		Intensity:   vals[colIntensity],
		Uncertainty: vals[colUncertainty] / domain.UncertaintyScale,
	}, nil
}
