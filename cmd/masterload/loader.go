package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/pkg/configuration"
)

// Spreadsheet exports occasionally carry non-printable control
// characters that break downstream JSON parsing; strip them on the
// way in.
var controlChars = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F]")

type csvTable struct {
	columns map[string]int
	rows    [][]string
}

// readCSV loads the export with trimmed, lowercased column names so
// header casing and stray spaces never matter.
func readCSV(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return &csvTable{columns: columns, rows: records[1:]}, nil
}

func (t *csvTable) has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// cell returns the first non-empty value among the named columns,
// cleaned of control characters, or nil for SQL NULL.
func (t *csvTable) cell(row []string, names ...string) any {
	for _, name := range names {
		idx, ok := t.columns[name]
		if !ok || idx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[idx])
		if value == "" {
			continue
		}
		return controlChars.ReplaceAllString(value, "")
	}
	return nil
}

func (t *csvTable) intCell(row []string, name string, fallback int) int {
	raw := t.cell(row, name)
	if raw == nil {
		return fallback
	}
	// Exports often hold integers as "110.0".
	parsed, err := strconv.ParseFloat(raw.(string), 64)
	if err != nil {
		return fallback
	}
	return int(parsed)
}

// insurerColumns lists the registry columns the export actually
// carries, matching the legacy royal header where applicable.
func (t *csvTable) insurerColumns() []insurer.Insurer {
	out := make([]insurer.Insurer, 0)
	for _, ins := range insurer.All() {
		if t.has(ins.Column()) || (ins.LegacyColumn() != "" && t.has(ins.LegacyColumn())) {
			out = append(out, ins)
		}
	}
	return out
}

func (t *csvTable) insurerCell(row []string, ins insurer.Insurer) any {
	if ins.LegacyColumn() != "" {
		return t.cell(row, ins.Column(), ins.LegacyColumn())
	}
	return t.cell(row, ins.Column())
}

func buildInsert(table string, columns []string, keyColumn string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		keyColumn,
	)
}

type loadStats struct {
	Inserted int
	Skipped  int
	Failed   int
}

func (s loadStats) print(label string) {
	fmt.Printf("%s import finished: inserted=%d skipped=%d failed=%d\n",
		label, s.Inserted, s.Skipped, s.Failed)
}

type dbSecrets struct {
	Postgres struct {
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		DBName   string `toml:"dbname"`
		User     string `toml:"user"`
		Password string `toml:"password"`
	} `toml:"postgres"`
}

// resolveConnInfo prefers an explicit secrets.toml and falls back to
// the service environment.
func resolveConnInfo(cmd *cobra.Command) (string, error) {
	secretsPath, err := cmd.Flags().GetString("secrets")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(secretsPath) == "" {
		return configuration.Use().Database.Opts, nil
	}

	var secrets dbSecrets
	if _, err := toml.DecodeFile(secretsPath, &secrets); err != nil {
		return "", fmt.Errorf("load %s: %w", secretsPath, err)
	}
	pg := secrets.Postgres
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s",
		pg.Host, pg.Port, pg.User, pg.DBName, pg.Password,
	), nil
}

// runLoad inserts every row, counting conflicts as skips and keeping
// going past bad rows the way the legacy importers did.
func runLoad(
	ctx context.Context,
	conninfo string,
	insertSQL string,
	table *csvTable,
	mapRow func(row []string) []any,
) (loadStats, error) {
	conn, err := pgx.Connect(ctx, conninfo)
	if err != nil {
		return loadStats{}, err
	}
	defer conn.Close(ctx)

	stats := loadStats{}
	for i, row := range table.rows {
		tag, err := conn.Exec(ctx, insertSQL, mapRow(row)...)
		if err != nil {
			stats.Failed++
			fmt.Fprintf(os.Stderr, "row %d: %v\n", i+2, err)
			continue
		}
		if tag.RowsAffected() > 0 {
			stats.Inserted++
		} else {
			stats.Skipped++
		}
		if (i+1)%1000 == 0 {
			fmt.Printf("processed %d rows\n", i+1)
		}
	}
	return stats, nil
}

func csvFlag(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("csv")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("--csv is required")
	}
	return path, nil
}
