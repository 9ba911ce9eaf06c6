package digest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akenes/zhurnal/internal/db"
)

func TestBuildPromptGroupsByDayAndCategory(t *testing.T) {
	entries := []db.Entry{
		{Date: "2025-03-01", Category: "Сон", Question: "Во сколько лег спать?", Response: "23:30"},
		{Date: "2025-03-01", Category: "Сон", Question: "Во сколько проснулся?", Response: "07:15"},
		{Date: "2025-03-01", Category: "Солнце", Question: "Принимал ли солнечные лучи?", Response: "Да"},
		{Date: "2025-03-02", Category: "Сон", Question: "Во сколько лег спать?", Response: "00:10"},
	}

	got := BuildPrompt(entries)

	for _, want := range []string{
		"## 2025-03-01",
		"## 2025-03-02",
		"### Сон",
		"### Солнце",
		"- Во сколько лег спать? — 23:30",
		"- Принимал ли солнечные лучи? — Да",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}

	// Day headers appear in entry order.
	if strings.Index(got, "## 2025-03-01") > strings.Index(got, "## 2025-03-02") {
		t.Error("days out of order")
	}
	// The sleep category header repeats under the second day.
	if strings.Count(got, "### Сон") != 2 {
		t.Errorf("expected 2 sleep headers, got %d", strings.Count(got, "### Сон"))
	}
}

func TestBuildPromptEmpty(t *testing.T) {
	if got := BuildPrompt(nil); got != "" {
		t.Errorf("expected empty prompt, got %q", got)
	}
}

type fakeStore struct{ entries []db.Entry }

func (f *fakeStore) ListEntriesSince(userID, since string) ([]db.Entry, error) {
	return f.entries, nil
}

type fakeClient struct {
	gotUser string
	reply   string
}

func (f *fakeClient) Chat(ctx context.Context, system, user string) (string, error) {
	f.gotUser = user
	return f.reply, nil
}

type fakeSender struct {
	userID string
	text   string
	sends  int
}

func (f *fakeSender) SendPrompt(userID, text string, choices [][]string) error {
	f.userID, f.text = userID, text
	f.sends++
	return nil
}

func TestRunDeliversSummary(t *testing.T) {
	store := &fakeStore{entries: []db.Entry{
		{Date: "2025-03-01", Category: "Сон", Question: "q", Response: "a"},
	}}
	client := &fakeClient{reply: "хорошая неделя"}
	sender := &fakeSender{}

	d := New(store, client, sender, time.UTC)
	if err := d.Run(context.Background(), "77"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(client.gotUser, "## 2025-03-01") {
		t.Errorf("model prompt missing entries:\n%s", client.gotUser)
	}
	if sender.userID != "77" || sender.text != "хорошая неделя" {
		t.Errorf("delivered (%q, %q)", sender.userID, sender.text)
	}
}

func TestRunSkipsEmptyWeek(t *testing.T) {
	sender := &fakeSender{}
	d := New(&fakeStore{}, &fakeClient{}, sender, time.UTC)
	if err := d.Run(context.Background(), "77"); err != nil {
		t.Fatal(err)
	}
	if sender.sends != 0 {
		t.Error("sent a digest for an empty week")
	}
}
