package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fennimore-labs/causalexpr/pkg/flatten"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// SQLStore is a Sink/Source backed by modernc.org/sqlite, the pure-Go
// sqlite driver the pack's storage-engine examples favor over cgo
// drivers. Its table mirrors original_source/src/schema.py's
// EvaluatedExpressionRecord, extended with the columns
// pkg/flatten.Record needs to round-trip Lookup/Conditional metadata.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (creating if necessary) a sqlite database at dsn
// and ensures its schema exists.
func OpenSQLStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	s := &SQLStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS expr_records (
			root_id      TEXT    NOT NULL,
			id           TEXT    NOT NULL,
			parent_id    TEXT,
			child_index  INTEGER NOT NULL,
			name         TEXT,
			value_json   TEXT    NOT NULL,
			operator     TEXT    NOT NULL,
			keys_json    TEXT,
			selected_key TEXT,
			defaulted    INTEGER NOT NULL DEFAULT 0,
			taken_branch INTEGER,
			PRIMARY KEY (root_id, id)
		)
	`)
	return err
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Write atomically replaces the tree rooted at rootID inside a single
// transaction: the prior rows (if any) are deleted, then every record
// is inserted. Either all rows land or none do.
func (s *SQLStore) Write(ctx context.Context, rootID string, records []flatten.Record) error {
	if len(records) == 0 {
		return value.NewIntegrityError("refusing to write an empty record batch for root %q", rootID)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expr_records WHERE root_id = ?`, rootID); err != nil {
		return fmt.Errorf("clear prior tree: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expr_records
			(root_id, id, parent_id, child_index, name, value_json, operator, keys_json, selected_key, defaulted, taken_branch)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		valueJSON, err := r.Value.MarshalJSON()
		if err != nil {
			return fmt.Errorf("marshal value for record %q: %w", r.ID, err)
		}
		var keysJSON []byte
		if r.Keys != nil {
			keysJSON, err = json.Marshal(r.Keys)
			if err != nil {
				return fmt.Errorf("marshal keys for record %q: %w", r.ID, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, rootID, r.ID, r.ParentID, r.ChildIndex, r.Name,
			string(valueJSON), r.Operator, nullableString(keysJSON), r.SelectedKey, r.Defaulted, r.TakenBranch); err != nil {
			return fmt.Errorf("insert record %q: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// ReadTree loads every record for rootID and passes them to fn. It
// returns KeyNotFound if no rows exist for that root.
func (s *SQLStore) ReadTree(ctx context.Context, rootID string, fn func([]flatten.Record) error) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, child_index, name, value_json, operator, keys_json, selected_key, defaulted, taken_branch
		FROM expr_records WHERE root_id = ? ORDER BY child_index
	`, rootID)
	if err != nil {
		return fmt.Errorf("query tree %q: %w", rootID, err)
	}
	defer rows.Close()

	var records []flatten.Record
	for rows.Next() {
		var rec flatten.Record
		var valueJSON string
		var keysJSON sql.NullString
		if err := rows.Scan(&rec.ID, &rec.ParentID, &rec.ChildIndex, &rec.Name, &valueJSON,
			&rec.Operator, &keysJSON, &rec.SelectedKey, &rec.Defaulted, &rec.TakenBranch); err != nil {
			return fmt.Errorf("scan record: %w", err)
		}
		if err := (&rec.Value).UnmarshalJSON([]byte(valueJSON)); err != nil {
			return fmt.Errorf("unmarshal value for record %q: %w", rec.ID, err)
		}
		if keysJSON.Valid {
			if err := json.Unmarshal([]byte(keysJSON.String), &rec.Keys); err != nil {
				return fmt.Errorf("unmarshal keys for record %q: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tree %q: %w", rootID, err)
	}
	if len(records) == 0 {
		return value.NewKeyNotFound(rootID)
	}
	return fn(records)
}

func nullableString(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}
