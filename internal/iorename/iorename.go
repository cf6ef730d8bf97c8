// Package iorename carries out rename plans: it writes new keys of records
// into the store and renames PDF files named after old keys.
package iorename

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/papersdb/internal/ioartifact"
	"github.com/gnames/papersdb/internal/iofs"
	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/db"
	"github.com/gnames/papersdb/pkg/lifecycle"
	"github.com/gnames/papersdb/pkg/naming"
	"github.com/gnames/papersdb/pkg/rename"
	"github.com/gnames/papersdb/pkg/store"
	"github.com/gofrs/flock"
)

const (
	lockTimeout    = 2 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

type renamer struct {
	cfg   *config.Config
	store store.Store
	out   io.Writer
}

// New creates a Renamer. Progress is written to out, nil means STDERR.
func New(
	cfg *config.Config,
	st store.Store,
	out io.Writer,
) lifecycle.Renamer {
	if out == nil {
		out = os.Stderr
	}
	return &renamer{cfg: cfg, store: st, out: out}
}

// Preview shows keys of the first records under all schemes. The scheme
// is suggested from all records of the store.
func (r *renamer) Preview(
	ctx context.Context,
	limit int,
) (*rename.Preview, error) {
	papers, err := r.store.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, NoRecordsError()
	}

	sample := make([]naming.Fields, len(papers))
	for i, p := range papers {
		sample[i] = p.Fields()
	}

	return &rename.Preview{
		Total:     len(papers),
		Rows:      rename.Previews(papers, limit),
		Suggested: naming.Suggest(sample),
	}, nil
}

// Rename recomputes keys of all records. In a dry run nothing is written,
// the report shows what would happen. Otherwise records are updated one
// by one, and a PDF file is renamed only after the key of its record is
// saved. Failures of single records do not stop the run.
func (r *renamer) Rename(
	ctx context.Context,
	opts rename.Options,
) (*rename.Report, error) {
	start := time.Now()

	papers, err := r.store.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, NoRecordsError()
	}

	plan := rename.NewPlan(papers, opts.Scheme)
	res := &rename.Report{Plan: plan, DryRun: !opts.Execute}

	var moves map[uint]rename.Move
	if opts.ArtifactRoot != "" && len(plan.Changes) > 0 {
		found, err := ioartifact.Index(opts.ArtifactRoot, plan.OldKeys())
		if err != nil {
			return nil, err
		}
		res.Found = len(found)
		moves = make(map[uint]rename.Move)
		for _, v := range rename.Moves(plan.Changes, found) {
			moves[v.ID] = v
		}
	}

	if res.DryRun {
		r.dryRun(res, moves)
	} else {
		if err = r.execute(ctx, opts, res, moves); err != nil {
			return nil, err
		}
	}

	res.Duration = time.Since(start)
	slog.Info("Rename finished",
		"scheme", opts.Scheme.String(),
		"dry_run", res.DryRun,
		"records", humanize.Comma(int64(res.Total)),
		"updated", humanize.Comma(int64(res.Updated)),
		"renamed", humanize.Comma(int64(len(res.Moves))),
		"errors", humanize.Comma(int64(len(res.Errors))),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}

// dryRun fills the report with planned changes. Moves are replayed in
// the order of execution, so a target freed by an earlier move is
// available and a target taken by an earlier move is a conflict.
func (r *renamer) dryRun(res *rename.Report, moves map[uint]rename.Move) {
	res.Updated = len(res.Changes)
	taken := make(map[string]bool)
	for _, v := range res.Changes {
		mv, ok := moves[v.ID]
		if !ok {
			continue
		}
		busy, seen := taken[mv.To]
		if !seen {
			busy = iofs.Exists(mv.To)
		}
		if busy {
			res.Errors = append(res.Errors, rename.Failure{
				ID:     v.ID,
				Title:  v.Title,
				Reason: "target file already exists: " + mv.To,
			})
			continue
		}
		taken[mv.From] = false
		taken[mv.To] = true
		res.Moves = append(res.Moves, mv)
	}
}

func (r *renamer) execute(
	ctx context.Context,
	opts rename.Options,
	res *rename.Report,
	moves map[uint]rename.Move,
) error {
	lock := flock.New(r.lockPath())
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil || !locked {
		return LockError(lock.Path(), err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("Cannot release lock", "path", lock.Path(), "error", err)
		}
	}()

	if opts.Backup {
		if err = r.backup(res); err != nil {
			return err
		}
	}

	if len(res.Changes) == 0 {
		return nil
	}

	bar := newProgressBar(r.out, len(res.Changes), "Updating keys: ")
	defer bar.Finish()

	for _, v := range res.Changes {
		if err = ctx.Err(); err != nil {
			return err
		}
		bar.Increment()

		if err = r.store.UpdateKey(ctx, v.ID, v.NewKey); err != nil {
			slog.Error("Cannot update key", "id", v.ID, "error", err)
			res.Errors = append(res.Errors, rename.Failure{
				ID:     v.ID,
				Title:  v.Title,
				Reason: "key update failed: " + message(err),
			})
			continue
		}
		res.Updated++

		mv, ok := moves[v.ID]
		if !ok {
			continue
		}
		if err = ioartifact.Move(mv.From, mv.To); err != nil {
			slog.Warn("Cannot rename file", "from", mv.From, "error", err)
			res.Errors = append(res.Errors, rename.Failure{
				ID:     v.ID,
				Title:  v.Title,
				Reason: message(err),
			})
			continue
		}
		res.Moves = append(res.Moves, mv)
	}
	return nil
}

// backup copies the SQLite store file. PostgreSQL stores have to be
// backed up with their own tools.
func (r *renamer) backup(res *rename.Report) error {
	if r.cfg.Store.Driver != db.SQLite {
		gn.Warn("Backup is supported only for SQLite stores, skipping")
		return nil
	}

	path := r.cfg.StorePath()
	bak, err := iofs.BackupFile(path)
	if err != nil {
		return BackupError(path, err)
	}
	slog.Info("Store backed up", "path", bak)
	res.BackupPath = bak
	return nil
}

func (r *renamer) lockPath() string {
	if r.cfg.Store.Driver == db.SQLite {
		return r.cfg.StorePath() + ".lock"
	}
	return filepath.Join(config.DataDir(r.cfg.HomeDir), "rename.lock")
}

// message returns the internal message of an error without the
// location of its origin.
func message(err error) string {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		return gnErr.Err.Error()
	}
	return err.Error()
}
