// Package scheduler fires a daily slate-simulation job via robfig/cron,
// grounded on the teacher stack's use of github.com/robfig/cron/v3 for
// recurring jobs (the background data-fetch interval in the original
// server wiring).
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SlateTrigger is invoked once per scheduled tick; the caller supplies
// the closure that resolves "today's slate" and hands it to a batch.Runner.
type SlateTrigger func()

type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), logger: logger}
}

// ScheduleDailySlate registers trigger to run on spec, e.g. "0 9 * * *"
// for 9am local time every day. Returns the cron entry id so the caller
// can later cron.Remove it.
func (s *Scheduler) ScheduleDailySlate(spec string, trigger SlateTrigger) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() {
		s.logger.Info("daily slate trigger firing")
		trigger()
	})
}

func (s *Scheduler) Start() { s.cron.Start() }
func (s *Scheduler) Stop()  { s.cron.Stop() }

func (s *Scheduler) Remove(id cron.EntryID) { s.cron.Remove(id) }
