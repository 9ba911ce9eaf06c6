// Package digest produces the optional weekly summary of a user's journal.
package digest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/akenes/zhurnal/internal/db"
	"github.com/akenes/zhurnal/internal/llm"
)

const systemPrompt = `You are a personal journaling assistant. You receive one week of a user's daily journal entries: short answers to fixed questions about sleep, nutrition, screen time, sunlight, work and skincare. Write a brief, friendly weekly digest: notable patterns, wins, and one or two gentle suggestions. Answer in the language the entries are written in. Keep it under 300 words.`

type Store interface {
	ListEntriesSince(userID, since string) ([]db.Entry, error)
}

type Sender interface {
	SendPrompt(userID, text string, choices [][]string) error
}

type Digest struct {
	store  Store
	client llm.Client
	sender Sender
	loc    *time.Location
}

func New(store Store, client llm.Client, sender Sender, loc *time.Location) *Digest {
	if loc == nil {
		loc = time.Local
	}
	return &Digest{store: store, client: client, sender: sender, loc: loc}
}

// Run summarizes the user's last seven days of entries and DMs the result.
// A week with no entries is skipped silently.
func (d *Digest) Run(ctx context.Context, userID string) error {
	since := time.Now().In(d.loc).AddDate(0, 0, -7).Format("2006-01-02")
	entries, err := d.store.ListEntriesSince(userID, since)
	if err != nil {
		return fmt.Errorf("loading entries for digest: %w", err)
	}
	if len(entries) == 0 {
		log.Printf("digest: no entries for user %s since %s, skipping", userID, since)
		return nil
	}

	summary, err := d.client.Chat(ctx, systemPrompt, BuildPrompt(entries))
	if err != nil {
		return fmt.Errorf("summarizing week for user %s: %w", userID, err)
	}
	if err := d.sender.SendPrompt(userID, summary, nil); err != nil {
		return fmt.Errorf("delivering digest to user %s: %w", userID, err)
	}
	return nil
}

// BuildPrompt renders entries grouped by day and category, preserving the
// order they were answered in.
func BuildPrompt(entries []db.Entry) string {
	var b strings.Builder
	var lastDay, lastCategory string
	for _, e := range entries {
		if e.Date != lastDay {
			if lastDay != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "## %s\n", e.Date)
			lastDay = e.Date
			lastCategory = ""
		}
		if e.Category != lastCategory {
			fmt.Fprintf(&b, "### %s\n", e.Category)
			lastCategory = e.Category
		}
		fmt.Fprintf(&b, "- %s — %s\n", e.Question, e.Response)
	}
	return b.String()
}
