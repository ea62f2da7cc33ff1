package jobs

import (
	"context"
	"errors"

	"packhouse/internal/core/application/usecases/queries"
	"packhouse/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReadySweepSchedule runs the sweep at the top of every minute.
const DefaultReadySweepSchedule = "0 * * * * *"

type openClassificationsLister interface {
	Handle(
		ctx context.Context,
		q queries.GetOpenClassificationsQuery,
	) ([]queries.GetOpenClassificationsQueryResponse, error)
}

type summaryReader interface {
	Handle(ctx context.Context, q queries.GetClassificationSummaryQuery) (queries.ClassificationSummary, error)
}

type readyGauge interface {
	SetReadyToFinalize(n int)
}

// ReadyForFinalizationJob periodically finds open classifications that already
// pass the finalization gate and reports them, so operators can close the lot.
type ReadyForFinalizationJob struct {
	open     openClassificationsLister
	summary  summaryReader
	gauge    readyGauge
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewReadyForFinalizationJob(
	open openClassificationsLister,
	summary summaryReader,
	gauge readyGauge,
	schedule string,
	logger *zap.Logger,
) *ReadyForFinalizationJob {
	if schedule == "" {
		schedule = DefaultReadySweepSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ReadyForFinalizationJob{
		open:     open,
		summary:  summary,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "ready_for_finalization_job")),
	}
}

// Start registers the sweep on the cron schedule.
func (j *ReadyForFinalizationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Sweep(context.Background()); err != nil {
			j.logger.Error("ready-for-finalization sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("ready-for-finalization job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running sweep to finish.
func (j *ReadyForFinalizationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("ready-for-finalization job stopped")
}

// Sweep evaluates every open classification once and returns how many could be
// finalized. A classification removed or finalized between the two reads is skipped.
func (j *ReadyForFinalizationJob) Sweep(ctx context.Context) (int, error) {
	open, err := j.open.Handle(ctx, queries.NewGetOpenClassificationsQuery())
	if err != nil {
		return 0, err
	}

	ready := 0
	for _, row := range open {
		query, qErr := queries.NewGetClassificationSummaryQuery(row.ID)
		if qErr != nil {
			return ready, qErr
		}

		summary, sErr := j.summary.Handle(ctx, query)
		if errors.Is(sErr, errs.ErrObjectNotFound) {
			continue
		}
		if sErr != nil {
			return ready, sErr
		}

		if summary.ReadyToFinalize() {
			ready++
			j.logger.Info("classification ready to finalize",
				zap.Stringer("classification_id", summary.ID),
				zap.String("lot", summary.LotCode),
				zap.Stringer("valuation", summary.Valuation.Total))
		}
	}

	if j.gauge != nil {
		j.gauge.SetReadyToFinalize(ready)
	}
	j.logger.Debug("ready-for-finalization sweep done", zap.Int("open", len(open)), zap.Int("ready", ready))
	return ready, nil
}
