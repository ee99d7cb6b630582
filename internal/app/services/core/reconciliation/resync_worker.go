package reconciliation

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/utils"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ResyncWorker periodically reconciles PENDING transactions the gateway has
// not notified about for a while. Only one instance runs a sweep at a time.
type ResyncWorker struct {
	log          *zap.Logger
	locker       contracts.LockerService
	transactions contracts.TransactionRepository
	reconciler   contracts.ReconcilerUsecase
	cronSpec     string
	lockTTL      time.Duration
	staleAfter   time.Duration
	maxAge       time.Duration
	batchSize    int
	now          func() time.Time
	stopOnce     sync.Once
}

func NewResyncWorker(
	logger *zap.Logger,
	cfg *config.InternalConfig,
	locker contracts.LockerService,
	transactions contracts.TransactionRepository,
	reconciler contracts.ReconcilerUsecase,
) *ResyncWorker {
	batchSize := cfg.Reconciliation.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	lockTTL := time.Duration(cfg.Reconciliation.ResyncLockTTLInSeconds) * time.Second
	if lockTTL < time.Second {
		lockTTL = time.Minute
	}
	return &ResyncWorker{
		log:          logger,
		locker:       locker,
		transactions: transactions,
		reconciler:   reconciler,
		cronSpec:     strings.TrimSpace(cfg.Reconciliation.ResyncCronSpec),
		lockTTL:      lockTTL,
		staleAfter:   time.Duration(cfg.Reconciliation.StaleAfterInMinutes) * time.Minute,
		maxAge:       time.Duration(cfg.Reconciliation.MaxAgeInHours) * time.Hour,
		batchSize:    batchSize,
		now:          time.Now,
	}
}

// Start schedules the sweep and returns a stop function that waits for a
// running sweep to finish. An empty cron spec disables the worker.
func (w *ResyncWorker) Start(ctx context.Context) (stop func()) {
	if w.cronSpec == "" {
		w.log.Info("ResyncWorker disabled")
		return func() {}
	}

	runCtx, cancel := context.WithCancel(ctx)
	job := func() { w.runOnce(runCtx) }

	c := newResyncCron()
	if _, err := c.AddFunc(w.cronSpec, job); err != nil {
		w.log.Warn("ResyncWorker invalid cron spec, falling back to default",
			zap.String("cron_spec", w.cronSpec),
			zap.String("default_cron_spec", constvars.DefaultResyncCronSpec),
			zap.Error(err),
		)
		c = newResyncCron()
		_, _ = c.AddFunc(constvars.DefaultResyncCronSpec, job)
	}
	c.Start()

	w.log.Info("ResyncWorker started", zap.String("cron_spec", w.cronSpec))

	return func() {
		w.stopOnce.Do(func() {
			cancel()
			<-c.Stop().Done()
		})
	}
}

// A sweep still running when the next tick fires is not doubled up locally;
// the lock covers other instances.
func newResyncCron() *cron.Cron {
	return cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
}

// runOnce returns how many transactions changed status.
func (w *ResyncWorker) runOnce(ctx context.Context) int {
	acquired, lockValue, err := w.locker.TryLock(ctx, constvars.ResyncWorkerLockKey, w.lockTTL)
	if err != nil {
		w.log.Warn("ResyncWorker.runOnce lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Debug("ResyncWorker.runOnce lock held by another instance")
		return 0
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.ResyncWorkerLockKey, lockValue); err != nil {
			w.log.Error("ResyncWorker.runOnce unlock failed", zap.Error(err))
		}
	}()

	now := w.now()
	stale, err := w.transactions.FindStalePending(ctx, now.Add(-w.staleAfter), now.Add(-w.maxAge), w.batchSize)
	if err != nil {
		w.log.Error("ResyncWorker.runOnce failed to list stale transactions", zap.Error(err))
		return 0
	}

	changed := 0
	for _, transaction := range stale {
		if ctx.Err() != nil {
			break
		}

		requestID := utils.GenerateRequestID()
		itemCtx := context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)

		var result *responses.PaymentWebhookResult
		err := utils.LogOperation(w.log, constvars.OperationReconcile, requestID, func() (err error) {
			result, err = w.reconciler.Resync(itemCtx, transaction.GatewayTransactionID)
			return err
		})
		if err == nil && !result.AlreadyUpdated && !result.Ignored {
			changed++
			continue
		}

		// Rows left PENDING would otherwise head every following batch.
		if err := w.transactions.TouchPending(ctx, transaction.ID); err != nil {
			w.log.Warn("ResyncWorker.runOnce failed to mark transaction as checked",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
				zap.Error(err),
			)
		}
	}

	w.log.Info("ResyncWorker.runOnce completed",
		zap.Int("stale_count", len(stale)),
		zap.Int("changed_count", changed),
	)
	return changed
}
