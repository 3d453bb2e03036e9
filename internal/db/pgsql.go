//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//
// POSTGRES BACKEND
//

type PostgresLogin struct {
	Host   string
	Port   int
	User   string
	Pass   string
	DBName string
}

// PGStore - Store backed by a pgxpool
type PGStore struct {
	Pool *pgxpool.Pool
}

// FillDBConnectionPool - build the pgxpool that the whole program will Acquire() from
func FillDBConnectionPool(pl PostgresLogin, workers int) (*PGStore, error) {
	// min should track the worker count: idle connections close, and a pool of workers
	// fighting over one live connection is very bad news

	const (
		UTPL  = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
		POOLX = 3
	)

	mn := workers
	mx := POOLX * workers

	url := fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, mn, mx)

	config, e := pgxpool.ParseConfig(url)
	if e != nil {
		return nil, fmt.Errorf("could not execute ParseConfig(url) via '%s': %w", url, e)
	}

	thepool, e := pgxpool.NewWithConfig(context.Background(), config)
	if e != nil {
		return nil, fmt.Errorf("could not connect to PostgreSQL at %s:%d: %w", pl.Host, pl.Port, e)
	}

	pg := &PGStore{Pool: thepool}
	if e = pg.initialize(); e != nil {
		return nil, e
	}
	return pg, nil
}

func (pg *PGStore) initialize() error {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS ` + CORPUSTABLE + ` (
				id integer PRIMARY KEY,
				title text,
				session text,
				party text,
				billtext text,
				topic text
			)`
		CREATESW = `
			CREATE TABLE IF NOT EXISTS ` + SWEEPTABLE + ` (
				fingerprint character(36),
				k integer,
				fold integer,
				perplexity double precision
			)`
		CREATEMD = `
			CREATE TABLE IF NOT EXISTS ` + MODELTABLE + ` (
				fingerprint character(36) UNIQUE,
				modelsize integer,
				modeldata bytea
			)`
	)

	for _, q := range []string{CREATE, CREATESW, CREATEMD} {
		if _, err := pg.Pool.Exec(context.Background(), q); err != nil {
			return fmt.Errorf("could not initialize tables: %w", err)
		}
	}
	return nil
}

func (pg *PGStore) Corpus(ctx context.Context) ([]Bill, error) {
	const (
		Q = `SELECT id, title, session, party, billtext, COALESCE(topic, '') FROM ` + CORPUSTABLE + ` ORDER BY id ASC`
	)

	rows, err := pg.Pool.Query(ctx, Q)
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

func (pg *PGStore) WriteTopics(ctx context.Context, labels map[int]string) error {
	const (
		U = `UPDATE ` + CORPUSTABLE + ` SET topic = $1 WHERE id = $2`
	)

	tx, err := pg.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("WriteTopics(): %w", err)
	}

	for id, label := range labels {
		if _, err = tx.Exec(ctx, U, label, id); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("WriteTopics() update id %d: %w", id, err)
		}
	}
	return tx.Commit(ctx)
}

func (pg *PGStore) SaveSweep(ctx context.Context, fp string, rows []PerplexityRow) error {
	const (
		D = `DELETE FROM ` + SWEEPTABLE + ` WHERE fingerprint = $1`
		I = `INSERT INTO ` + SWEEPTABLE + ` (fingerprint, k, fold, perplexity) VALUES ($1, $2, $3, $4)`
	)

	tx, err := pg.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("SaveSweep(): %w", err)
	}

	if _, err = tx.Exec(ctx, D, fp); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("SaveSweep() clear: %w", err)
	}

	for _, r := range rows {
		if _, err = tx.Exec(ctx, I, fp, r.K, r.Fold, r.Perplexity); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("SaveSweep() insert (%d, %d): %w", r.K, r.Fold, err)
		}
	}
	return tx.Commit(ctx)
}

func (pg *PGStore) SweepRows(ctx context.Context, fp string) ([]PerplexityRow, error) {
	const (
		Q = `SELECT k, fold, perplexity FROM ` + SWEEPTABLE + ` WHERE fingerprint = $1 ORDER BY k, fold`
	)

	rows, err := pg.Pool.Query(ctx, Q, fp)
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

func (pg *PGStore) SaveModel(ctx context.Context, fp string, mb *ModelBlob) error {
	const (
		D = `DELETE FROM ` + MODELTABLE + ` WHERE fingerprint = $1`
		I = `INSERT INTO ` + MODELTABLE + ` (fingerprint, modelsize, modeldata) VALUES ($1, $2, $3)`
	)

	b, err := packblob(mb)
	if err != nil {
		return err
	}

	if _, err = pg.Pool.Exec(ctx, D, fp); err != nil {
		return fmt.Errorf("SaveModel() clear: %w", err)
	}
	if _, err = pg.Pool.Exec(ctx, I, fp, len(b), b); err != nil {
		return fmt.Errorf("SaveModel() insert: %w", err)
	}
	return nil
}

func (pg *PGStore) FetchModel(ctx context.Context, fp string) (*ModelBlob, error) {
	const (
		Q = `SELECT modeldata FROM ` + MODELTABLE + ` WHERE fingerprint = $1 LIMIT 1`
	)

	var b []byte
	if err := pg.Pool.QueryRow(ctx, Q, fp).Scan(&b); err != nil {
		return nil, fmt.Errorf("FetchModel() has no model for '%s': %w", fp, err)
	}
	return unpackblob(b)
}

func (pg *PGStore) Close() {
	pg.Pool.Close()
}
