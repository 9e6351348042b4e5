// Package reminder periodically checks loaded vocabulary sets for due
// words and pushes a notification through a pluggable notifier.
package reminder

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/vocabtrain/pkg/models"
)

// Notifier delivers due-word reminders.
type Notifier interface {
	SendReminder(setName string, dueCount int) error
}

// LogNotifier writes reminders to the application log. It stands in for
// any external delivery channel, which is outside this tool's scope.
type LogNotifier struct {
	Logger *zap.Logger
}

// SendReminder logs the reminder.
func (n *LogNotifier) SendReminder(setName string, dueCount int) error {
	n.Logger.Info("words due for review",
		zap.String("set", setName),
		zap.Int("due", dueCount),
	)
	return nil
}

// Scheduler manages the periodic due-word check.
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	logger    *zap.Logger
	sets      []*models.VocabularySet
}

// New creates a scheduler watching the given sets.
func New(notifier Notifier, logger *zap.Logger, sets ...*models.VocabularySet) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		logger:    logger,
		sets:      sets,
	}
}

// Start begins the hourly due-word check, non-blocking.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkDueWords)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunManualCheck forces a due-word check right away.
func (s *Scheduler) RunManualCheck() {
	s.checkDueWords()
}

func (s *Scheduler) checkDueWords() {
	now := time.Now()
	for _, set := range s.sets {
		due := set.DueCount(now)
		if due == 0 {
			continue
		}
		if err := s.notifier.SendReminder(set.Name, due); err != nil {
			s.logger.Warn("failed to send reminder",
				zap.String("set", set.Name), zap.Error(err))
		}
	}
}
