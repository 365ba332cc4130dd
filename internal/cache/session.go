package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"
)

// GetSessionValue reads one key of the session table. ok is false when the
// key is absent.
func (d *DB) GetSessionValue(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading session key %q: %w", key, err)
	}
	return value, true, nil
}

// PutSessionValues writes all values in a single transaction.
func (d *DB) PutSessionValues(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	now := time.Now().Unix()
	return d.inTx(func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO session (key, value, updated_at) VALUES (?, ?, ?)`,
				k, values[k], now); err != nil {
				return fmt.Errorf("writing session key %q: %w", k, err)
			}
		}
		return nil
	})
}

// DeleteSessionValues removes the given keys in a single transaction.
// Missing keys are ignored.
func (d *DB) DeleteSessionValues(keys ...string) error {
	return d.inTx(func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.Exec(`DELETE FROM session WHERE key = ?`, k); err != nil {
				return fmt.Errorf("deleting session key %q: %w", k, err)
			}
		}
		return nil
	})
}

func (d *DB) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
