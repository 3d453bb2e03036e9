//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

//
// SQLITE BACKEND
//

// the corpus snapshot travels as a single file; this is the default backend
// modernc.org/sqlite is cgo-free, so the binary stays cross-compilable

// LiteStore - Store backed by a sqlite file (or ":memory:")
type LiteStore struct {
	DB *sql.DB
}

// OpenSQLite - open the sqlite snapshot at path and make sure the tables exist
func OpenSQLite(path string) (*LiteStore, error) {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS ` + CORPUSTABLE + ` (
				id integer PRIMARY KEY,
				title text,
				session text,
				party text,
				billtext text,
				topic text
			);`
		CREATESW = `
			CREATE TABLE IF NOT EXISTS ` + SWEEPTABLE + ` (
				fingerprint character(36),
				k integer,
				fold integer,
				perplexity real
			);`
		CREATEMD = `
			CREATE TABLE IF NOT EXISTS ` + MODELTABLE + ` (
				fingerprint character(36) UNIQUE,
				modelsize integer,
				modeldata blob
			);`
	)

	litedb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("OpenSQLite() could not open '%s': %w", path, err)
	}

	for _, q := range []string{CREATE, CREATESW, CREATEMD} {
		if _, err = litedb.Exec(q); err != nil {
			return nil, fmt.Errorf("OpenSQLite() could not initialize tables: %w", err)
		}
	}

	return &LiteStore{DB: litedb}, nil
}

func (ls *LiteStore) Corpus(ctx context.Context) ([]Bill, error) {
	const (
		Q = `SELECT id, title, session, party, billtext, COALESCE(topic, '') FROM ` + CORPUSTABLE + ` ORDER BY id ASC`
	)

	rows, err := ls.DB.QueryContext(ctx, Q)
	if err != nil {
		return nil, fmt.Errorf("Corpus(): %w", err)
	}
	defer rows.Close()

	var bb []Bill
	for rows.Next() {
		var b Bill
		if err = rows.Scan(&b.ID, &b.Title, &b.Session, &b.Party, &b.Text, &b.Topic); err != nil {
			return nil, fmt.Errorf("Corpus() scan: %w", err)
		}
		bb = append(bb, b)
	}
	return bb, rows.Err()
}

func (ls *LiteStore) WriteTopics(ctx context.Context, labels map[int]string) error {
	const (
		U = `UPDATE ` + CORPUSTABLE + ` SET topic = ? WHERE id = ?`
	)

	tx, err := ls.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("WriteTopics(): %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, U)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("WriteTopics() prepare: %w", err)
	}

	for id, label := range labels {
		if _, err = stmt.ExecContext(ctx, label, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("WriteTopics() update id %d: %w", id, err)
		}
	}
	return tx.Commit()
}

func (ls *LiteStore) SaveSweep(ctx context.Context, fp string, rows []PerplexityRow) error {
	const (
		D = `DELETE FROM ` + SWEEPTABLE + ` WHERE fingerprint = ?`
		I = `INSERT INTO ` + SWEEPTABLE + ` (fingerprint, k, fold, perplexity) VALUES (?, ?, ?, ?)`
	)

	tx, err := ls.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SaveSweep(): %w", err)
	}

	if _, err = tx.ExecContext(ctx, D, fp); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("SaveSweep() clear: %w", err)
	}

	for _, r := range rows {
		if _, err = tx.ExecContext(ctx, I, fp, r.K, r.Fold, r.Perplexity); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("SaveSweep() insert (%d, %d): %w", r.K, r.Fold, err)
		}
	}
	return tx.Commit()
}

func (ls *LiteStore) SweepRows(ctx context.Context, fp string) ([]PerplexityRow, error) {
	const (
		Q = `SELECT k, fold, perplexity FROM ` + SWEEPTABLE + ` WHERE fingerprint = ? ORDER BY k, fold`
	)

	rows, err := ls.DB.QueryContext(ctx, Q, fp)
	if err != nil {
		return nil, fmt.Errorf("SweepRows(): %w", err)
	}
	defer rows.Close()

	var rr []PerplexityRow
	for rows.Next() {
		var r PerplexityRow
		if err = rows.Scan(&r.K, &r.Fold, &r.Perplexity); err != nil {
			return nil, fmt.Errorf("SweepRows() scan: %w", err)
		}
		rr = append(rr, r)
	}
	return rr, rows.Err()
}

func (ls *LiteStore) SaveModel(ctx context.Context, fp string, mb *ModelBlob) error {
	const (
		D = `DELETE FROM ` + MODELTABLE + ` WHERE fingerprint = ?`
		I = `INSERT INTO ` + MODELTABLE + ` (fingerprint, modelsize, modeldata) VALUES (?, ?, ?)`
	)

	b, err := packblob(mb)
	if err != nil {
		return err
	}

	if _, err = ls.DB.ExecContext(ctx, D, fp); err != nil {
		return fmt.Errorf("SaveModel() clear: %w", err)
	}
	if _, err = ls.DB.ExecContext(ctx, I, fp, len(b), b); err != nil {
		return fmt.Errorf("SaveModel() insert: %w", err)
	}
	return nil
}

func (ls *LiteStore) FetchModel(ctx context.Context, fp string) (*ModelBlob, error) {
	const (
		Q = `SELECT modeldata FROM ` + MODELTABLE + ` WHERE fingerprint = ? LIMIT 1`
	)

	var b []byte
	err := ls.DB.QueryRowContext(ctx, Q, fp).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("FetchModel() has no model for '%s'", fp)
	}
	if err != nil {
		return nil, fmt.Errorf("FetchModel(): %w", err)
	}
	return unpackblob(b)
}

func (ls *LiteStore) Close() {
	_ = ls.DB.Close()
}

// ImportCSV - load a corpus CSV (id, title, session, party, text) into the bills table
func (ls *LiteStore) ImportCSV(ctx context.Context, path string) (int, error) {
	const (
		I       = `INSERT OR REPLACE INTO ` + CORPUSTABLE + ` (id, title, session, party, billtext, topic) VALUES (?, ?, ?, ?, ?, NULL)`
		NEEDCOL = 5
	)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("ImportCSV() could not open '%s': %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = NEEDCOL

	// header row
	if _, err = r.Read(); err != nil {
		return 0, fmt.Errorf("ImportCSV() missing header row(?): %w", err)
	}

	tx, err := ls.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("ImportCSV(): %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, I)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("ImportCSV() prepare: %w", err)
	}

	count := 0
	for {
		record, e := r.Read()
		if errors.Is(e, io.EOF) {
			break
		}
		if e != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("ImportCSV() read: %w", e)
		}
		id := strings.TrimSpace(record[0])
		if _, e = stmt.ExecContext(ctx, id, record[1], record[2], record[3], record[4]); e != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("ImportCSV() insert failed (%s): %w", id, e)
		}
		count++
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
