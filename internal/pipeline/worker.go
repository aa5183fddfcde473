// README: Stage-2 worker: analyzes stored enrichment records announced by bucket notifications.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/analysis"
	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/history"
	"lambdatrip/internal/storage"
)

const analysisSuffix = "_analysis.json"

// IsAnalysisKey reports whether key names a stage-1 record.
func IsAnalysisKey(key string) bool {
	return strings.HasSuffix(key, analysisSuffix)
}

type Worker struct {
	source   MessageSource
	store    storage.Store
	analyzer *analysis.Service
	history  *history.Service
	log      *logger.Logger
	now      func() time.Time
}

// NewWorker builds a Worker. hist may be nil.
func NewWorker(source MessageSource, store storage.Store, analyzer *analysis.Service, hist *history.Service, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.Nop()
	}
	return &Worker{
		source:   source,
		store:    store,
		analyzer: analyzer,
		history:  hist,
		log:      log.With("component", "pipeline.Worker"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run processes notifications until the source closes or ctx ends.
func (w *Worker) Run(ctx context.Context) error {
	it := NewIterator(w.source, w.loadRecord, IsAnalysisKey, w.log)
	for item := range it.Objects(ctx) {
		key, err := w.process(ctx, item)
		switch {
		case errors.Is(err, analysis.ErrNoAnalysisData):
			w.log.Warn("skipping empty record", "key", item.Key)
		case err != nil:
			w.log.Error("analysis failed, offset left uncommitted", "key", item.Key, "error", err)
			continue
		default:
			w.log.Info("final report stored", "source", item.Key, "key", key)
		}
		if err := w.source.CommitOffset(ctx, item.Message); err != nil {
			w.log.Warn("commit offset failed", "offset", item.Message.Offset, "error", err)
		}
	}
	return ctx.Err()
}

func (w *Worker) loadRecord(ctx context.Context, bucket, key string) (*enrichment.Record, error) {
	var rec enrichment.Record
	if err := w.store.GetJSON(ctx, key, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (w *Worker) process(ctx context.Context, item *Fetched[*enrichment.Record]) (string, error) {
	res, err := w.analyzer.Analyze(ctx, item.Data)
	if err != nil {
		return "", err
	}
	at := w.now()
	report := analysis.NewReport(item.Data, res, at)
	key := storage.FinalKey(at)
	if err := w.store.PutJSON(ctx, key, report); err != nil {
		return "", fmt.Errorf("store final report: %w", err)
	}
	if w.history != nil {
		w.history.RecordReport(ctx, &report, key, res.Degraded)
	}
	return key, nil
}
