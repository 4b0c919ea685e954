// Package reconcile periodically checks that every wallet balance equals the sum of its ledger entries.
package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultServiceTimeout       = 3 * time.Second
	defaultInterval             = time.Minute
	defaultBatchSize       uint = 100
	defaultWorkers         uint = 4
)

// Processor walks all wallets page by page and reports those whose balance drifted from the ledger.
type Processor struct {
	svs       Servicer
	l         *logrus.Entry
	interval  time.Duration
	batchSize uint
	workers   uint
}

func New(svs Servicer, l *logrus.Logger) *Processor {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "reconcile",
		"module":    "processor",
	})

	return &Processor{
		svs:       svs,
		l:         loggerEntry,
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
		workers:   defaultWorkers,
	}
}

// SetInterval sets the pause between two full passes.
func (p *Processor) SetInterval(interval time.Duration) *Processor {
	if interval > 0 {
		p.interval = interval
	}
	return p
}

// SetBatchSize sets the number of wallets requested per page.
func (p *Processor) SetBatchSize(size uint) *Processor {
	if size > 0 {
		p.batchSize = size
	}
	return p
}

func (p *Processor) SetWorkers(workers uint) *Processor {
	if workers > 0 {
		p.workers = workers
	}
	return p
}

// PassResult summary of one pass over all wallets.
type PassResult struct {
	Checked    int
	Failed     int
	Mismatches []repoargs.LedgerBalance
}

// Run repeats full passes until ctx is cancelled.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"interval":  p.interval,
		"batchSize": p.batchSize,
		"workers":   p.workers,
	}).Info("Starting")

	for {
		result, err := p.pass(ctx)
		if err != nil {
			p.l.WithError(err).Error("reconcile pass")
		} else {
			p.l.WithFields(logrus.Fields{
				"checked":    result.Checked,
				"failed":     result.Failed,
				"mismatches": len(result.Mismatches),
			}).Info("Pass finished")
		}

		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(p.interval):
		}
	}
}

// pass pages through the wallets with a cursor on the user id.
func (p *Processor) pass(ctx context.Context) (*PassResult, error) {
	var result PassResult
	cursor := uuid.Nil
	for {
		ids, err := p.produce(ctx, cursor)
		if err != nil {
			return &result, err
		}
		if len(ids) == 0 {
			return &result, nil
		}

		p.check(ctx, ids, &result)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &result, ctxErr //nolint:wrapcheck
		}
		if uint(len(ids)) < p.batchSize {
			return &result, nil
		}
		cursor = ids[len(ids)-1]
	}
}

func (p *Processor) produce(ctx context.Context, after uuid.UUID) ([]uuid.UUID, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	ids, err := p.svs.WalletsForReconcile(produceCtx, after, p.batchSize)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	return ids, nil
}

// check fans the page out to the workers. A failed wallet is logged and counted, it does not stop the pass.
func (p *Processor) check(ctx context.Context, ids []uuid.UUID, result *PassResult) {
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(int(p.workers)) //nolint:gosec

	for _, id := range ids {
		g.Go(func() error {
			reqCtx, cancel := context.WithTimeout(gCtx, defaultServiceTimeout)
			balance, err := p.svs.ReconcileWallet(reqCtx, id)
			cancel()

			mu.Lock()
			defer mu.Unlock()
			result.Checked++

			l := p.l.WithField("userID", id)
			if err != nil {
				result.Failed++
				l.WithError(err).Warn("reconcile wallet")
				return nil
			}
			if balance.Balance != balance.LedgerSum {
				result.Mismatches = append(result.Mismatches, *balance)
				l.WithFields(logrus.Fields{
					"balance":   balance.Balance,
					"ledgerSum": balance.LedgerSum,
				}).Error("Wallet balance does not match the ledger")
			}
			return nil
		})
	}
	_ = g.Wait()
}
