package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CustomFile is the optional per-installation category list inside the data dir.
const CustomFile = "categories.csv"

// LoadFromDataDir returns the built-in catalog extended with
// {dataDir}/categories.csv when that file exists. The CSV needs a header with
// name and color columns; group is optional.
func LoadFromDataDir(dataDir string) (*Catalog, error) {
	c := Default()
	path := filepath.Join(dataDir, CustomFile)
	if _, err := os.Stat(path); err != nil {
		return c, nil
	}
	extra, err := loadCSV(path)
	if err != nil {
		return c, fmt.Errorf("loading %s: %w", path, err)
	}
	for _, e := range extra {
		c.add(e)
	}
	return c, nil
}

func loadCSV(path string) ([]Category, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("csv %s has no name column", path)
	}
	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Category{}
	for _, row := range rows[1:] {
		c := Category{
			Name:  get(row, "name"),
			Color: strings.ToLower(get(row, "color")),
			Group: get(row, "group"),
		}
		if c.Name == "" {
			continue
		}
		if c.Group == "" {
			c.Group = "Custom"
		}
		out = append(out, c)
	}
	return out, nil
}
