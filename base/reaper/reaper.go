package reaper

import (
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/goroutine"
	"github.com/neonflick/goapi/base/log"
	"github.com/neonflick/goapi/base/metrics"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
)

const (
	defaultInterval      = time.Minute
	defaultBatchSize     = 100
	defaultRetireTimeout = time.Minute
)

var met = metrics.New("reaper")

type Cfg struct {
	Listing     listing.Usecase
	Reservation domain.ReservationRepo
	Interval    time.Duration
	BatchSize   int
	// RetireTimeout bounds a single retire, which is not cut short by shutdown
	RetireTimeout time.Duration
	// ErrorCh receives cycle failures, sends never block
	ErrorCh chan<- error
	Now     func() time.Time
}

// Result summarizes one cycle
type Result struct {
	Found   int
	Reaped  int
	Skipped int
	Failed  int
}

type Reaper struct {
	listing       listing.Usecase
	reservation   domain.ReservationRepo
	interval      time.Duration
	batchSize     int
	retireTimeout time.Duration
	errorCh       chan<- error
	now           func() time.Time
	stoppedCh     chan interface{}
}

func New(cfg *Cfg) *Reaper {
	r := &Reaper{
		listing:       cfg.Listing,
		reservation:   cfg.Reservation,
		interval:      cfg.Interval,
		batchSize:     cfg.BatchSize,
		retireTimeout: cfg.RetireTimeout,
		errorCh:       cfg.ErrorCh,
		now:           cfg.Now,
		stoppedCh:     make(chan interface{}),
	}
	if r.interval <= 0 {
		r.interval = defaultInterval
	}
	if r.batchSize <= 0 {
		r.batchSize = defaultBatchSize
	}
	if r.retireTimeout <= 0 {
		r.retireTimeout = defaultRetireTimeout
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

func (r *Reaper) Start(ctx bCtx.Ctx) {
	go r.loop(ctx)
}

// Wait blocks until the loop has returned
func (r *Reaper) Wait() {
	<-r.stoppedCh
}

func (r *Reaper) loop(ctx bCtx.Ctx) {
	defer close(r.stoppedCh)

	nextTick := time.Second * 0
	for {
		select {
		case <-ctx.Done():
			ctx.Info("reaper stopped")
			return
		case <-time.After(nextTick):
			nextTick = r.interval
			// a panicking cycle is logged and the next one runs on schedule
			ev := <-goroutine.RecoverableGo(func() {
				res, err := r.runOnce(ctx)
				if err != nil {
					r.report(err)
					return
				}
				// a full batch with progress may have more behind it
				if res.Found == r.batchSize && res.Reaped > 0 {
					nextTick = time.Second * 0
				}
			}, goroutine.WithLogger(ctx.Logger))
			if ev != nil {
				met.BumpSum("cycle.panic", 1)
				r.report(xerrors.Errorf("reap cycle panicked: %v", ev.Panic))
			}
		}
	}
}

// RunOnce runs a single cycle. Failures on single listings are counted, not returned.
func (r *Reaper) RunOnce(ctx bCtx.Ctx) Result {
	res, err := r.runOnce(ctx)
	if err != nil {
		r.report(err)
	}
	return res
}

func (r *Reaper) runOnce(ctx bCtx.Ctx) (Result, error) {
	defer met.BumpTime("cycle.time").End()

	res := Result{}
	now := r.now()

	items, err := r.listing.FindExpired(ctx, now, r.batchSize)
	if err != nil {
		ctx.WithFields(log.Fields{
			"now":   now,
			"limit": r.batchSize,
			"err":   err,
		}).Error("listing.FindExpired failed")
		met.BumpSum("cycle.err", 1)
		return res, err
	}
	res.Found = len(items)

	for _, l := range items {
		if ctx.Err() != nil {
			break
		}

		if r.isReserved(ctx, l.Id) {
			res.Skipped++
			met.BumpSum("skipped.reserved", 1)
			continue
		}

		// a started retire runs to completion so the blob and record go together
		rc, cancel := bCtx.WithTimeout(bCtx.Detach(ctx), r.retireTimeout)
		err := r.listing.Retire(rc, l)
		cancel()
		if err != nil {
			ctx.WithFields(log.Fields{
				"id":  l.Id,
				"err": err,
			}).Error("listing.Retire failed")
			res.Failed++
			met.BumpSum("reap.err", 1)
			continue
		}
		res.Reaped++
		met.BumpSum("reaped", 1)
	}

	if res.Found > 0 {
		ctx.WithFields(log.Fields{
			"found":   res.Found,
			"reaped":  res.Reaped,
			"skipped": res.Skipped,
			"failed":  res.Failed,
		}).Info("reap cycle done")
	}
	return res, nil
}

// isReserved treats an unknown lease state as held, the listing is looked at again next cycle
func (r *Reaper) isReserved(ctx bCtx.Ctx, id string) bool {
	if r.reservation == nil {
		return false
	}
	held, err := r.reservation.IsHeld(ctx, id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Warn("reservation.IsHeld failed")
		return true
	}
	return held
}

func (r *Reaper) report(err error) {
	if r.errorCh == nil {
		return
	}
	select {
	case r.errorCh <- err:
	default:
	}
}
