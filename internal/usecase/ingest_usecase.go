package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/paymentsengine/internal/domain"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
)

const (
	resultApplied  = "applied"
	resultRejected = "rejected"
)

// IngestSummary describes one ingest run.
type IngestSummary struct {
	RunID          string
	Records        int
	Applied        int
	Rejected       int
	Malformed      int
	Accounts       int
	LockedAccounts int
	Duration       time.Duration
}

// IngestUseCase feeds a transaction stream through the engine. Malformed
// records and rejected transactions are logged and skipped; they never abort
// the run.
type IngestUseCase struct {
	engine  Engine
	idGen   IDGenerator
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewIngestUseCase creates a new IngestUseCase. metrics may be nil.
func NewIngestUseCase(engine Engine, idGen IDGenerator, logger zerolog.Logger, metrics *metrics.Metrics) *IngestUseCase {
	return &IngestUseCase{
		engine:  engine,
		idGen:   idGen,
		logger:  logger,
		metrics: metrics,
	}
}

// Ingest processes every record of source in order. It returns early only when
// ctx is cancelled or the source fails with an error other than a malformed
// record.
func (uc *IngestUseCase) Ingest(ctx context.Context, source TransactionSource) (*IngestSummary, error) {
	start := time.Now()
	summary := &IngestSummary{RunID: uc.idGen.Generate()}
	log := uc.logger.With().Str("run_id", summary.RunID).Logger()

	log.Info().Msg("ingest started")

	for {
		if err := ctx.Err(); err != nil {
			return uc.finish(summary, start), err
		}

		raw, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !errors.Is(err, domain.ErrMalformedRecord) {
				return uc.finish(summary, start), fmt.Errorf("read transaction: %w", err)
			}
			summary.Malformed++
			if uc.metrics != nil {
				uc.metrics.RecordsMalformed.Inc()
			}
			log.Warn().Err(err).Msg("skipping malformed record")
			continue
		}

		summary.Records++

		if err := uc.engine.ProcessTransaction(raw); err != nil {
			summary.Rejected++
			kind := domain.ErrorKind(err)
			if uc.metrics != nil {
				uc.metrics.Transactions.WithLabelValues(string(raw.Type), resultRejected).Inc()
				uc.metrics.TransactionErrors.WithLabelValues(kind).Inc()
			}
			log.Warn().
				Err(err).
				Uint16("client", raw.Client).
				Uint32("tx", raw.Tx).
				Str("type", string(raw.Type)).
				Str("error_kind", kind).
				Msg("transaction rejected")
			continue
		}

		summary.Applied++
		if uc.metrics != nil {
			uc.metrics.Transactions.WithLabelValues(string(raw.Type), resultApplied).Inc()
		}
		log.Debug().
			Uint16("client", raw.Client).
			Uint32("tx", raw.Tx).
			Str("type", string(raw.Type)).
			Msg("transaction applied")
	}

	uc.finish(summary, start)

	log.Info().
		Int("records", summary.Records).
		Int("applied", summary.Applied).
		Int("rejected", summary.Rejected).
		Int("malformed", summary.Malformed).
		Int("accounts", summary.Accounts).
		Int("locked_accounts", summary.LockedAccounts).
		Dur("duration", summary.Duration).
		Msg("ingest finished")

	return summary, nil
}

// Export writes the account table to sink in client id order.
func (uc *IngestUseCase) Export(ctx context.Context, sink AccountSink) error {
	for _, account := range uc.engine.Accounts() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Write(account); err != nil {
			return fmt.Errorf("write account %d: %w", account.Client(), err)
		}
	}

	if err := sink.Flush(); err != nil {
		return fmt.Errorf("flush accounts: %w", err)
	}

	return nil
}

func (uc *IngestUseCase) finish(summary *IngestSummary, start time.Time) *IngestSummary {
	accounts := uc.engine.Accounts()
	summary.Accounts = len(accounts)
	summary.LockedAccounts = 0
	for _, account := range accounts {
		if account.Locked() {
			summary.LockedAccounts++
		}
	}
	summary.Duration = time.Since(start)

	if uc.metrics != nil {
		uc.metrics.AccountsLocked.Set(float64(summary.LockedAccounts))
		uc.metrics.IngestDuration.Observe(summary.Duration.Seconds())
	}

	return summary
}
