// Package catalog persists extracted function metadata into a local SQLite
// database so extraction runs can be listed and reloaded later.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/typeql-tools/funcmeta/metadata"
)

// Store is a SQLite-backed catalog of extraction runs
type Store struct {
	db *sql.DB
}

// RunInfo summarizes one stored extraction run
type RunInfo struct {
	ID            string
	CreatedAt     time.Time
	FunctionCount int
}

// Open opens (or creates) the catalog database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return NewStore(db)
}

// NewStore wraps an existing database connection, creating the catalog
// schema if it does not exist
func NewStore(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return store, nil
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			function_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS functions (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			output TEXT NOT NULL,
			return_expression TEXT,
			code_block TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS parameters (
			run_id TEXT NOT NULL,
			function_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			type_name TEXT NOT NULL,
			PRIMARY KEY (run_id, function_position, position)
		)`,
		`CREATE TABLE IF NOT EXISTS referenced_functions (
			run_id TEXT NOT NULL,
			function_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			callee TEXT NOT NULL,
			PRIMARY KEY (run_id, function_position, position)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a batch of records as a new run and returns the run ID.
// The whole run is written in one transaction.
func (s *Store) SaveRun(funcs []metadata.FunctionMetadata) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO runs (id, created_at, function_count) VALUES (?, ?, ?)`,
		runID, time.Now().UTC(), len(funcs),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for i, fn := range funcs {
		var returnExpr interface{}
		if fn.ReturnExpression != nil {
			returnExpr = *fn.ReturnExpression
		}

		_, err = tx.Exec(
			`INSERT INTO functions (run_id, position, name, output, return_expression, code_block)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i, fn.Name, fn.Output, returnExpr, fn.CodeBlock,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert function %s: %w", fn.Name, err)
		}

		for j, param := range fn.Parameters {
			_, err = tx.Exec(
				`INSERT INTO parameters (run_id, function_position, position, name, type_name)
				 VALUES (?, ?, ?, ?, ?)`,
				runID, i, j, param.Name, param.TypeName,
			)
			if err != nil {
				return "", fmt.Errorf("failed to insert parameter %s: %w", param.Name, err)
			}
		}

		for j, callee := range fn.ReferencedFunctions {
			_, err = tx.Exec(
				`INSERT INTO referenced_functions (run_id, function_position, position, callee)
				 VALUES (?, ?, ?, ?)`,
				runID, i, j, callee,
			)
			if err != nil {
				return "", fmt.Errorf("failed to insert reference %s: %w", callee, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// Runs lists stored runs, newest first
func (s *Store) Runs() ([]RunInfo, error) {
	rows, err := s.db.Query(`SELECT id, created_at, function_count FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.FunctionCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// Run reloads the records of one stored run in their original order
func (s *Store) Run(id string) ([]metadata.FunctionMetadata, error) {
	rows, err := s.db.Query(
		`SELECT position, name, output, return_expression, code_block
		 FROM functions WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query functions: %w", err)
	}
	defer rows.Close()

	funcs := []metadata.FunctionMetadata{}
	positions := []int{}
	for rows.Next() {
		var (
			position   int
			fn         metadata.FunctionMetadata
			returnExpr sql.NullString
		)
		if err := rows.Scan(&position, &fn.Name, &fn.Output, &returnExpr, &fn.CodeBlock); err != nil {
			return nil, fmt.Errorf("failed to scan function: %w", err)
		}
		if returnExpr.Valid {
			expr := returnExpr.String
			fn.ReturnExpression = &expr
		}
		fn.Parameters = []metadata.Parameter{}
		fn.ReferencedFunctions = []string{}
		funcs = append(funcs, fn)
		positions = append(positions, position)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(funcs) == 0 {
		return nil, fmt.Errorf("run not found: %s", id)
	}

	for i := range funcs {
		if err := s.loadParameters(id, positions[i], &funcs[i]); err != nil {
			return nil, err
		}
		if err := s.loadReferences(id, positions[i], &funcs[i]); err != nil {
			return nil, err
		}
	}

	return funcs, nil
}

func (s *Store) loadParameters(runID string, position int, fn *metadata.FunctionMetadata) error {
	rows, err := s.db.Query(
		`SELECT name, type_name FROM parameters
		 WHERE run_id = ? AND function_position = ? ORDER BY position`, runID, position)
	if err != nil {
		return fmt.Errorf("failed to query parameters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var param metadata.Parameter
		if err := rows.Scan(&param.Name, &param.TypeName); err != nil {
			return fmt.Errorf("failed to scan parameter: %w", err)
		}
		fn.Parameters = append(fn.Parameters, param)
	}
	return rows.Err()
}

func (s *Store) loadReferences(runID string, position int, fn *metadata.FunctionMetadata) error {
	rows, err := s.db.Query(
		`SELECT callee FROM referenced_functions
		 WHERE run_id = ? AND function_position = ? ORDER BY position`, runID, position)
	if err != nil {
		return fmt.Errorf("failed to query references: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var callee string
		if err := rows.Scan(&callee); err != nil {
			return fmt.Errorf("failed to scan reference: %w", err)
		}
		fn.ReferencedFunctions = append(fn.ReferencedFunctions, callee)
	}
	return rows.Err()
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}
