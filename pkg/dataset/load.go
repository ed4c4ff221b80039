package dataset

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/plotwire/plotwire/pkg/errors"
)

// ReadCSV reads a table from CSV data. The first record is the header.
// Columns where every non-empty cell parses as a number become numeric;
// empty cells in numeric columns become missing values.
func ReadCSV(r io.Reader) (*MemTable, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "csv has no header row")
	}

	header := records[0]
	rows := records[1:]

	cols := make(map[string]Column, len(header))
	for j, name := range header {
		raw := make([]string, len(rows))
		for i, rec := range rows {
			if j < len(rec) {
				raw[i] = rec[j]
			}
		}
		cols[name] = typeColumn(raw)
	}

	return FromColumns(header, cols)
}

// ReadJSON reads a table from a JSON array of record objects.
// Column order follows first appearance across records. Records missing a
// key get a nil cell.
func ReadJSON(r io.Reader) (*MemTable, error) {
	var records []map[string]any
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read json records")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "json has no records")
	}

	var names []string
	seen := make(map[string]bool)
	for _, rec := range records {
		// First record keys in sorted order would lose authoring intent, so
		// track first appearance instead.
		for _, k := range sortedKeys(rec) {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}

	cols := make(map[string]Column, len(names))
	for _, name := range names {
		col := make(Column, len(records))
		for i, rec := range records {
			col[i] = normalizeCell(rec[name])
		}
		cols[name] = col
	}

	return FromColumns(names, cols)
}

// ReadFile reads a table from a file, dispatching on extension
// (.csv or .json).
func ReadFile(path string) (*MemTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported data format %q (want .csv or .json)", filepath.Ext(path))
	}
}

// typeColumn converts raw CSV strings to a typed column.
func typeColumn(raw []string) Column {
	numeric := false
	for _, s := range raw {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			numeric = false
			break
		}
		numeric = true
	}

	col := make(Column, len(raw))
	for i, s := range raw {
		switch {
		case numeric && s == "":
			col[i] = nil
		case numeric:
			f, _ := strconv.ParseFloat(s, 64)
			col[i] = f
		default:
			col[i] = s
		}
	}
	return col
}

// normalizeCell maps decoded JSON values onto column cell types.
func normalizeCell(v any) any {
	switch x := v.(type) {
	case float64, string, bool, nil:
		return x
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return f
	default:
		// Nested structures have no tabular meaning; keep a display string.
		b, err := json.Marshal(x)
		if err != nil {
			return nil
		}
		return string(b)
	}
}

// sortedKeys returns map keys in sorted order for deterministic iteration.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
