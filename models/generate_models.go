package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Query generation and column drift report.

GENERATE_MODELS=true migrates the schema and writes type-safe query helpers
for every model into ./query (gorm.io/gen).

GENERATE_COLUMN_REPORT=true lists columns that exist in the database but are
not mapped by any model field, e.g. after a manual ALTER TABLE:

	=== COLUMN MISMATCH REPORT ===
	--- Table: posts ---
	Found 1 columns not accounted for in model:
	  - legacy_slug
*/

// GenerateModels migrates the schema and generates query code into outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	verbose := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 verbose,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(AllModels()...)
	g.Execute()

	return nil
}

// ColumnReport maps each model table to the database columns that no model
// field accounts for. Tables without drift are omitted; tables that do not
// exist yet are skipped.
func ColumnReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)

	for _, model := range AllModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
		}

		mapped := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			mapped[name] = true
		}

		var missing []string
		for _, column := range columnTypes {
			if !mapped[column.Name()] {
				missing = append(missing, column.Name())
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			report[table] = missing
		}
	}

	return report, nil
}

// WriteColumnReport prints ColumnReport in a human readable form.
func WriteColumnReport(w io.Writer, db *gorm.DB) error {
	report, err := ColumnReport(db)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	total := 0
	for _, table := range tables {
		fmt.Fprintf(w, "--- Table: %s ---\n", table)
		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(report[table]))
		for _, column := range report[table] {
			fmt.Fprintf(w, "  - %s\n", column)
		}
		total += len(report[table])
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return nil
}
