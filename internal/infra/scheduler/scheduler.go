package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	domainTelegram "report_relay_bot/internal/domain/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

var ErrReminderNotFound = errors.New("reminder not found")

// Reminder is a pending one-shot message.
type Reminder struct {
	ID     int
	ChatID int64
	Text   string
	FireAt time.Time
}

// onceSchedule fires a single time at a fixed instant.
type onceSchedule struct {
	at time.Time
}

func (s onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{} // cron never runs an entry whose next time is zero
}

// ReminderScheduler delivers reminders through a cron engine. Reminders are
// kept in memory only and are lost on restart.
type ReminderScheduler struct {
	cronEngine     *cron.Cron
	telegramClient domainTelegram.Client
	logger         *logrus.Entry

	mu      sync.Mutex
	pending map[cron.EntryID]Reminder
}

func NewReminderScheduler(tc domainTelegram.Client, logger *logrus.Entry) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:     cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		telegramClient: tc,
		logger:         logger,
		pending:        make(map[cron.EntryID]Reminder),
	}
}

func (s *ReminderScheduler) Start() {
	s.logger.Info("Starting reminder scheduler...")
	s.cronEngine.Start()
}

// Stop halts the engine and waits for running deliveries. Pending reminders are dropped.
func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()

	s.mu.Lock()
	dropped := len(s.pending)
	s.pending = make(map[cron.EntryID]Reminder)
	s.mu.Unlock()
	s.logger.WithField("dropped", dropped).Info("Reminder scheduler stopped.")
}

// Schedule sends text to chatID after delay and returns the reminder.
func (s *ReminderScheduler) Schedule(chatID int64, delay time.Duration, text string) Reminder {
	fireAt := time.Now().Add(delay)

	// Hold the lock across registration so the job cannot fire before the
	// reminder is recorded.
	s.mu.Lock()
	defer s.mu.Unlock()

	var id cron.EntryID
	job := cron.FuncJob(func() {
		s.mu.Lock()
		entryID := id
		s.mu.Unlock()
		s.fire(entryID)
	})
	id = s.cronEngine.Schedule(onceSchedule{at: fireAt}, job)
	r := Reminder{ID: int(id), ChatID: chatID, Text: text, FireAt: fireAt}
	s.pending[id] = r

	s.logger.WithFields(logrus.Fields{
		"reminder_id": r.ID,
		"chat_id":     chatID,
		"fire_at":     fireAt.Format(time.RFC3339),
	}).Info("Reminder scheduled")
	return r
}

// Cancel removes a pending reminder owned by chatID.
func (s *ReminderScheduler) Cancel(chatID int64, reminderID int) error {
	id := cron.EntryID(reminderID)

	s.mu.Lock()
	r, ok := s.pending[id]
	if !ok || r.ChatID != chatID {
		s.mu.Unlock()
		return ErrReminderNotFound
	}
	delete(s.pending, id)
	s.mu.Unlock()

	s.cronEngine.Remove(id)
	s.logger.WithField("reminder_id", reminderID).Info("Reminder cancelled")
	return nil
}

// Pending lists the reminders of chatID that have not fired yet.
func (s *ReminderScheduler) Pending(chatID int64) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reminder
	for _, r := range s.pending {
		if r.ChatID == chatID {
			out = append(out, r)
		}
	}
	return out
}

func (s *ReminderScheduler) fire(id cron.EntryID) {
	s.mu.Lock()
	r, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()

	s.cronEngine.Remove(id)
	if !ok {
		return // cancelled while the job was starting
	}

	log := s.logger.WithFields(logrus.Fields{"reminder_id": r.ID, "chat_id": r.ChatID})
	if err := s.telegramClient.SendMessage(r.ChatID, fmt.Sprintf("⏰ Напоминание: %s", r.Text), nil); err != nil {
		log.WithError(err).Error("Failed to deliver reminder")
		return
	}
	log.Info("Reminder delivered")
}
