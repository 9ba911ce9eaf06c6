// Package scheduler fires the day's journal triggers: survey sessions,
// standalone reminders, and the optional weekly digest.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/akenes/zhurnal/internal/digest"
	"github.com/akenes/zhurnal/internal/survey"
)

// Beginner opens a survey session for a user.
type Beginner interface {
	Begin(userID string, sv survey.Survey)
}

// Sender delivers a standalone message.
type Sender interface {
	SendPrompt(userID, text string, choices [][]string) error
}

// The daily trigger table: time-of-day -> survey category, once per day per
// configured user. Times follow the original journal's rhythm.
var surveySlots = []struct {
	cronExpr string
	category string
}{
	{"30 10 * * *", survey.Sleep},
	{"35 10 * * *", survey.EnergyControl},
	{"0 20 * * *", survey.Sun},
	{"0 23 * * *", survey.Work},
	{"0 23 * * *", survey.Dopamine},
	{"55 23 * * *", survey.Nutrition},
	{"5 0 * * *", survey.Skincare},
}

// Reminder sends: no session, no persistence.
var reminderSlots = []struct {
	cronExpr string
	name     string
}{
	{"0 1 * * *", "wind-down"},
	{"0 12 * * *", "sunlight"},
	{"0 13 * * *", "deep-work"},
}

type Scheduler struct {
	cron       *cron.Cron
	tracker    Beginner
	sender     Sender
	digest     *digest.Digest // nil disables the weekly digest
	digestCron string
	users      []string
}

func New(tracker Beginner, sender Sender, dg *digest.Digest, digestCron string, users []string, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		tracker:    tracker,
		sender:     sender,
		digest:     dg,
		digestCron: digestCron,
		users:      users,
	}
}

func (s *Scheduler) Start() {
	for _, slot := range surveySlots {
		for _, uid := range s.users {
			_, err := s.cron.AddFunc(slot.cronExpr, func() {
				log.Printf("scheduler: starting %q survey for user %s", slot.category, uid)
				s.tracker.Begin(uid, survey.Get(slot.category))
			})
			if err != nil {
				log.Printf("scheduler: invalid cron %q for %q: %v", slot.cronExpr, slot.category, err)
			}
		}
	}

	for _, slot := range reminderSlots {
		text, ok := survey.Reminders[slot.name]
		if !ok {
			log.Printf("scheduler: unknown reminder %q", slot.name)
			continue
		}
		for _, uid := range s.users {
			_, err := s.cron.AddFunc(slot.cronExpr, func() {
				if err := s.sender.SendPrompt(uid, text, nil); err != nil {
					log.Printf("scheduler: sending %q reminder to user %s: %v", slot.name, uid, err)
				}
			})
			if err != nil {
				log.Printf("scheduler: invalid cron %q for reminder %q: %v", slot.cronExpr, slot.name, err)
			}
		}
	}

	if s.digest != nil && s.digestCron != "" {
		_, err := s.cron.AddFunc(s.digestCron, s.runDigests)
		if err != nil {
			log.Printf("scheduler: invalid digest cron %q: %v", s.digestCron, err)
		}
	}

	s.cron.Start()
	log.Printf("scheduler started: %d job(s) for %d user(s)", len(s.cron.Entries()), len(s.users))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runDigests() {
	for _, uid := range s.users {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := s.digest.Run(ctx, uid); err != nil {
			log.Printf("scheduler: weekly digest for user %s: %v", uid, err)
		}
		cancel()
	}
}
