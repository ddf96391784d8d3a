package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/lagplot/internal/rng"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Run is one recorded lagplot execution.
type Run struct {
	Seq         int64         `json:"seq"`
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	PointCount  int           `json:"point_count"`
	LCG         rng.LCGParams `json:"lcg"`
	LCGPeriod   uint64        `json:"lcg_period,omitempty"` // 0 when not determined
	GoodSource  string        `json:"good_source"`
	GoodSeed    uint64        `json:"good_seed"`
	OutputPath  string        `json:"output_path"`
	OutputBytes int64         `json:"output_bytes"`
	BadDigest   string        `json:"bad_digest"`
	GoodDigest  string        `json:"good_digest"`
	BadMean     float64       `json:"bad_mean"`
	GoodMean    float64       `json:"good_mean"`
}

const runColumns = `seq, id, created_at, point_count,
	lcg_modulus, lcg_multiplier, lcg_increment, lcg_seed, lcg_period,
	good_source, good_seed, output_path, output_bytes,
	bad_digest, good_digest, bad_mean, good_mean`

// Record inserts run and returns it with Seq assigned. An empty ID is
// generated and a zero CreatedAt is taken from the store's clock.
//
// Unsigned 64-bit values are stored as decimal TEXT because the driver
// rejects uint64 values above MaxInt64.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, point_count,
		 lcg_modulus, lcg_multiplier, lcg_increment, lcg_seed, lcg_period,
		 good_source, good_seed, output_path, output_bytes,
		 bad_digest, good_digest, bad_mean, good_mean)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.PointCount,
		formatUint(run.LCG.Modulus),
		formatUint(run.LCG.Multiplier),
		formatUint(run.LCG.Increment),
		formatUint(run.LCG.Seed),
		formatUint(run.LCGPeriod),
		run.GoodSource,
		formatUint(run.GoodSeed),
		run.OutputPath,
		run.OutputBytes,
		run.BadDigest,
		run.GoodDigest,
		run.BadMean,
		run.GoodMean,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	run.Seq = seq
	return run, nil
}

// List returns up to limit runs, newest first. limit <= 0 returns all runs.
// Returns an empty slice (not nil) when there are none.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// FindByBadDigest returns runs whose bad sequence matches digest, oldest first.
func (s *Store) FindByBadDigest(ctx context.Context, digest string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE bad_digest = ? ORDER BY seq ASC`, digest)
	if err != nil {
		return nil, fmt.Errorf("query runs by digest: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var createdAt, modulus, multiplier, increment, seed, period, goodSeed string
	err := sc.Scan(
		&run.Seq, &run.ID, &createdAt, &run.PointCount,
		&modulus, &multiplier, &increment, &seed, &period,
		&run.GoodSource, &goodSeed, &run.OutputPath, &run.OutputBytes,
		&run.BadDigest, &run.GoodDigest, &run.BadMean, &run.GoodMean,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Run{}, fmt.Errorf("scan run %s: created_at: %w", run.ID, err)
	}

	fields := []struct {
		name string
		src  string
		dst  *uint64
	}{
		{"lcg_modulus", modulus, &run.LCG.Modulus},
		{"lcg_multiplier", multiplier, &run.LCG.Multiplier},
		{"lcg_increment", increment, &run.LCG.Increment},
		{"lcg_seed", seed, &run.LCG.Seed},
		{"lcg_period", period, &run.LCGPeriod},
		{"good_seed", goodSeed, &run.GoodSeed},
	}
	for _, f := range fields {
		v, err := strconv.ParseUint(f.src, 10, 64)
		if err != nil {
			return Run{}, fmt.Errorf("scan run %s: %s: %w", run.ID, f.name, err)
		}
		*f.dst = v
	}

	return run, nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
