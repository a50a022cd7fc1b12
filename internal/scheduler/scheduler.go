// Package scheduler republishes holidays to CalDAV on a cron schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/klabast/wb-services/feriados/internal/holidays"
	"github.com/klabast/wb-services/feriados/internal/log"
	"github.com/klabast/wb-services/feriados/internal/storage"
)

// Publisher stores a year's holidays somewhere remote
type Publisher interface {
	Publish(ctx context.Context, set *holidays.Set) (int, error)
	CalendarPath() string
}

// Ledger remembers which years were already published
type Ledger interface {
	LastSync(year int, calendar string) (*storage.Sync, error)
	RecordSync(year int, calendar string, events int, at time.Time) error
}

type Scheduler struct {
	cron     *cron.Cron
	schedule string
	pub      Publisher
	ledger   Ledger
	now      func() time.Time
}

func New(schedule string, loc *time.Location, pub Publisher, ledger Ledger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		pub:      pub,
		ledger:   ledger,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// Sync publishes each year unless the ledger already has it. force
// republishes regardless. It returns the years actually published.
func (s *Scheduler) Sync(ctx context.Context, years []int, force bool) ([]int, error) {
	calendar := s.pub.CalendarPath()

	var published []int
	for _, year := range years {
		if !force {
			last, err := s.ledger.LastSync(year, calendar)
			if err != nil {
				return published, err
			}
			if last != nil {
				log.Debug("Skipping %d, already published on %s", year, last.SyncedAt.Format(time.RFC3339))
				continue
			}
		}

		set, err := holidays.Build(year)
		if err != nil {
			return published, errors.Wrapf(err, "build %d", year)
		}

		n, err := s.pub.Publish(ctx, set)
		if err != nil {
			return published, errors.Wrapf(err, "publish %d", year)
		}
		if err := s.ledger.RecordSync(year, calendar, n, s.now()); err != nil {
			return published, err
		}
		published = append(published, year)
	}
	return published, nil
}

// Upcoming is the current and the next year, the window kept in sync.
func (s *Scheduler) Upcoming() []int {
	year := s.now().Year()
	if year >= holidays.MaxYear {
		return []int{year}
	}
	return []int{year, year + 1}
}

func (s *Scheduler) run(ctx context.Context) {
	years, err := s.Sync(ctx, s.Upcoming(), false)
	if err != nil {
		log.Error("Scheduled sync failed: %v", err)
		return
	}
	if len(years) > 0 {
		log.Info("Scheduled sync published %v", years)
	}
}

// Start runs an initial sync, then follows the schedule until ctx is done.
// The cron runner is not started once ctx is done, so a Stop issued after
// Start returns always finds it stopped.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.run(ctx) }); err != nil {
		return errors.Wrapf(err, "add sync schedule %q", s.schedule)
	}
	if ctx.Err() != nil {
		return nil
	}

	s.run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	s.cron.Start()
	log.Info("Scheduler started (schedule: %s, calendar: %s)", s.schedule, s.pub.CalendarPath())

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}
