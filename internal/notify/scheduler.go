// Package notify schedules the daily habit reminders. Settings persist in
// the notification_settings table; the scheduler keeps one cron entry per
// enabled task and delivers reminders through the realtime hub.
package notify

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"sendloop-api/internal/models"
	"sendloop-api/internal/realtime"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DefaultReminderTime is used when a setting carries no explicit time.
// Free-tier users are pinned to it.
const DefaultReminderTime = "09:00"

// ParseClock validates an "HH:MM" 24-hour clock string.
func ParseClock(clock string) (hour, minute int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", clock)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hour, minute, nil
}

// Scheduler owns the cron instance and the task-to-entry bookkeeping.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	db      *gorm.DB
	hub     *realtime.Hub
	entries map[string]cron.EntryID
}

func NewScheduler(db *gorm.DB, hub *realtime.Hub) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		db:      db,
		hub:     hub,
		entries: make(map[string]cron.EntryID),
	}
}

// Start reloads every enabled setting and begins firing reminders.
func (s *Scheduler) Start() error {
	var settings []models.NotificationSetting
	if err := s.db.Where("enabled = ?", true).Find(&settings).Error; err != nil {
		return err
	}
	for _, setting := range settings {
		if err := s.Apply(setting); err != nil {
			log.Printf("notify: skipping reminder for task %s: %v", setting.TaskID, err)
		}
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop. Running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Apply brings the live schedule in line with a setting: enabled settings
// get (re)scheduled at their clock time, disabled ones are cleared.
func (s *Scheduler) Apply(setting models.NotificationSetting) error {
	if !setting.Enabled {
		s.Clear(setting.TaskID)
		return nil
	}

	clock := setting.Time
	if clock == "" {
		clock = DefaultReminderTime
	}
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.entries[setting.TaskID]; ok {
		s.cron.Remove(id)
	}
	taskID := setting.TaskID
	id, err := s.cron.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), func() {
		s.fire(taskID)
	})
	if err != nil {
		return err
	}
	s.entries[setting.TaskID] = id
	return nil
}

// Clear drops any scheduled reminder for a task.
func (s *Scheduler) Clear(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.entries[taskID]; ok {
		s.cron.Remove(id)
		delete(s.entries, taskID)
	}
}

// Scheduled reports whether a reminder is currently registered for a task.
func (s *Scheduler) Scheduled(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[taskID]
	return ok
}

// fire delivers one reminder, skipping archived tasks and tasks already
// checked in today.
func (s *Scheduler) fire(taskID string) {
	var task models.Task
	if err := s.db.Where("id = ?", taskID).First(&task).Error; err != nil {
		log.Printf("notify: reminder for unknown task %s: %v", taskID, err)
		return
	}
	if task.Archived {
		return
	}

	today := time.Now().Format("2006-01-02")
	var done int64
	if err := s.db.Model(&models.Progress{}).
		Where("task_id = ? AND date = ?", taskID, today).
		Count(&done).Error; err == nil && done > 0 {
		return
	}

	s.hub.Publish(task.UserID, realtime.Event{
		Type:   realtime.EventReminder,
		TaskID: taskID,
		Payload: map[string]any{
			"title":   task.Title,
			"message": fmt.Sprintf("Time to check in on %q", task.Title),
		},
	})
}
