// Package chain validates the predecessor-hash linkage and per-event digests
// of an ordered event log. Validation never stops at the first fault: every
// violation of every entry is reported.
package chain

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/alfredjeanlab/esaudit/internal/integrity"
	"github.com/alfredjeanlab/esaudit/internal/model"
)

// digest is the outcome of hashing one entry.
type digest struct {
	hash string
	err  error
}

// Validate checks every entry's stored digest and its link to the previous
// entry. The first entry must point at integrity.NullHash.
func Validate(entries []model.Entry) model.ChainResult {
	digests := make([]digest, len(entries))
	for i, e := range entries {
		digests[i].hash, digests[i].err = integrity.EntryHash(e)
	}
	return check(entries, digests)
}

// ValidateParallel produces the same result as Validate, hashing entries on up
// to workers goroutines before checking linkage in order.
func ValidateParallel(ctx context.Context, entries []model.Entry, workers int) (model.ChainResult, error) {
	if workers <= 1 {
		return Validate(entries), nil
	}

	digests := make([]digest, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			digests[i].hash, digests[i].err = integrity.EntryHash(entries[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.ChainResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.ChainResult{}, err
	}
	return check(entries, digests), nil
}

func check(entries []model.Entry, digests []digest) model.ChainResult {
	var errs []model.ChainError
	add := func(id string, kind model.ChainErrorKind, format string, args ...any) {
		errs = append(errs, model.ChainError{
			EventID: id,
			Kind:    kind,
			Message: fmt.Sprintf(format, args...),
		})
	}

	for i, e := range entries {
		evt := e.Payload.Event
		stored := e.Payload.Hash

		if d := digests[i]; d.err != nil {
			add(evt.ID, model.ChainHashFailure, "Failed to calculate hash: %v", d.err)
		} else if d.hash != stored {
			add(evt.ID, model.ChainHashMismatch, "Hash mismatch: expected %s, got %s", stored, d.hash)
		}

		if i == 0 {
			if evt.PredecessorHash != integrity.NullHash {
				add(evt.ID, model.ChainNullPredecessor, "First event should have null predecessor hash, got %s", evt.PredecessorHash)
			}
			continue
		}
		expected := entries[i-1].Payload.Hash
		if evt.PredecessorHash != expected {
			add(evt.ID, model.ChainPredecessorMismatch, "Predecessor hash mismatch: expected %s, got %s", expected, evt.PredecessorHash)
		}
	}

	if errs == nil {
		errs = []model.ChainError{}
	}
	return model.ChainResult{
		IsValid:     len(errs) == 0,
		TotalEvents: len(entries),
		Errors:      errs,
	}
}
