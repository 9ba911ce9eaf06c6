package session

import (
	"errors"
	"testing"
	"time"

	"github.com/akenes/zhurnal/internal/survey"
)

type sentMsg struct {
	userID  string
	text    string
	choices [][]string
}

type fakeSender struct {
	sent []sentMsg
	err  error
}

func (f *fakeSender) SendPrompt(userID, text string, choices [][]string) error {
	f.sent = append(f.sent, sentMsg{userID, text, choices})
	return f.err
}

type entry struct {
	userID, date, category, question, response string
}

type fakeStore struct {
	entries []entry
	err     error
}

func (f *fakeStore) AppendEntry(userID, date, category, question, response string) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry{userID, date, category, question, response})
	return nil
}

func newTestTracker() (*Tracker, *fakeSender, *fakeStore) {
	sender := &fakeSender{}
	store := &fakeStore{}
	return New(sender, store, time.UTC), sender, store
}

func TestBeginFrontLoadsAllQuestions(t *testing.T) {
	tr, sender, _ := newTestTracker()

	sv := survey.Get(survey.Sleep)
	tr.Begin("77", sv)

	if len(sender.sent) != 7 {
		t.Fatalf("expected 7 prompts sent, got %d", len(sender.sent))
	}
	for i, q := range sv.Questions {
		if sender.sent[i].text != q.Text {
			t.Errorf("prompt %d = %q, want %q", i, sender.sent[i].text, q.Text)
		}
	}
	// Choice layouts ride along; free-text questions go out plain.
	if sender.sent[0].choices != nil {
		t.Error("free-text question sent with a choice layout")
	}
	if sender.sent[2].choices == nil {
		t.Error("choice question sent without its layout")
	}

	if cat, ok := tr.Open("77"); !ok || cat != survey.Sleep {
		t.Errorf("Open = (%q, %v), want (%q, true)", cat, ok, survey.Sleep)
	}
}

func TestSleepSurveyRoundTrip(t *testing.T) {
	tr, sender, store := newTestTracker()

	sv := survey.Get(survey.Sleep)
	tr.Begin("77", sv)
	sender.sent = nil

	replies := []string{"23:30", "07:15", "4", "Нет", "Да", "Нет", "-"}
	for i, reply := range replies {
		out, err := tr.Consume("77", reply)
		if err != nil {
			t.Fatalf("reply %d: %v", i, err)
		}
		want := InProgress
		if i == len(replies)-1 {
			want = Completed
		}
		if out != want {
			t.Errorf("reply %d outcome = %v, want %v", i, out, want)
		}
	}

	if len(store.entries) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(store.entries))
	}
	for i, e := range store.entries {
		if e.category != survey.Sleep {
			t.Errorf("entry %d category = %q", i, e.category)
		}
		if e.question != sv.Questions[i].Text {
			t.Errorf("entry %d paired with %q, want %q", i, e.question, sv.Questions[i].Text)
		}
		if e.response != replies[i] {
			t.Errorf("entry %d response = %q, want %q", i, e.response, replies[i])
		}
	}

	// Session is gone, the acknowledgement was sent, and an eighth reply
	// falls on the floor.
	if _, ok := tr.Open("77"); ok {
		t.Error("session still open after final reply")
	}
	if len(sender.sent) != 1 || sender.sent[0].text != completedMessage {
		t.Errorf("expected single completion message, got %v", sender.sent)
	}
	out, err := tr.Consume("77", "late")
	if err != nil || out != Ignored {
		t.Errorf("reply after completion = (%v, %v), want (Ignored, nil)", out, err)
	}
	if len(store.entries) != 7 {
		t.Errorf("ignored reply wrote an entry")
	}
}

func TestSingleQuestionSurveyCompletesImmediately(t *testing.T) {
	tr, _, store := newTestTracker()

	tr.Begin("5", survey.Get(survey.Skincare))
	out, err := tr.Consume("5", "Ретинол")
	if err != nil {
		t.Fatal(err)
	}
	if out != Completed {
		t.Errorf("outcome = %v, want Completed", out)
	}
	if len(store.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(store.entries))
	}
	if _, ok := tr.Open("5"); ok {
		t.Error("session still open")
	}
}

func TestReplyWithoutSessionIsIgnored(t *testing.T) {
	tr, sender, store := newTestTracker()

	out, err := tr.Consume("404", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if out != Ignored {
		t.Errorf("outcome = %v, want Ignored", out)
	}
	if len(store.entries) != 0 {
		t.Error("ignored reply wrote an entry")
	}
	if len(sender.sent) != 0 {
		t.Error("ignored reply sent a message")
	}
}

func TestBeginOverwritesOpenSession(t *testing.T) {
	tr, _, store := newTestTracker()

	tr.Begin("9", survey.Get(survey.Sleep))
	out, err := tr.Consume("9", "23:00")
	if err != nil || out != InProgress {
		t.Fatalf("first reply = (%v, %v)", out, err)
	}

	// New trigger mid-survey: the sleep session is dropped wholesale.
	tr.Begin("9", survey.Get(survey.Sun))

	if cat, ok := tr.Open("9"); !ok || cat != survey.Sun {
		t.Fatalf("Open = (%q, %v), want (%q, true)", cat, ok, survey.Sun)
	}

	sun := survey.Get(survey.Sun)
	for i, reply := range []string{"Да", "15-30 мин"} {
		if out, err := tr.Consume("9", reply); err != nil {
			t.Fatalf("sun reply %d: (%v, %v)", i, out, err)
		}
	}

	// One sleep entry from before the overwrite, two sun entries after.
	// Nothing was written for the sleep survey's unconsumed questions.
	if len(store.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(store.entries))
	}
	if store.entries[0].category != survey.Sleep {
		t.Errorf("entry 0 category = %q", store.entries[0].category)
	}
	for i := 1; i < 3; i++ {
		if store.entries[i].category != survey.Sun {
			t.Errorf("entry %d category = %q", i, store.entries[i].category)
		}
		if store.entries[i].question != sun.Questions[i-1].Text {
			t.Errorf("entry %d question = %q", i, store.entries[i].question)
		}
	}
}

func TestRepliesFromDifferentUsersDoNotInterleave(t *testing.T) {
	tr, _, store := newTestTracker()

	tr.Begin("a", survey.Get(survey.Sun))
	tr.Begin("b", survey.Get(survey.Work))

	if out, _ := tr.Consume("b", ">4 ч"); out != Completed {
		t.Errorf("user b outcome = %v, want Completed", out)
	}
	if out, _ := tr.Consume("a", "Да"); out != InProgress {
		t.Errorf("user a outcome = %v, want InProgress", out)
	}

	if len(store.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(store.entries))
	}
	if store.entries[0].userID != "b" || store.entries[0].category != survey.Work {
		t.Errorf("entry 0 = %+v", store.entries[0])
	}
	if store.entries[1].userID != "a" || store.entries[1].category != survey.Sun {
		t.Errorf("entry 1 = %+v", store.entries[1])
	}
}

func TestConsumeSurfacesStoreError(t *testing.T) {
	tr, _, store := newTestTracker()
	store.err = errors.New("disk full")

	tr.Begin("1", survey.Get(survey.Work))
	out, err := tr.Consume("1", "1-2 ч")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, store.err) {
		t.Errorf("error %v does not wrap store error", err)
	}
	// The question was already popped; the single-question session closed.
	if out != Completed {
		t.Errorf("outcome = %v, want Completed", out)
	}
	if _, ok := tr.Open("1"); ok {
		t.Error("session still open after failed final append")
	}
}

func TestReplyTextStoredVerbatim(t *testing.T) {
	tr, _, store := newTestTracker()

	// A reply that matches no button on the layout is still accepted.
	tr.Begin("2", survey.Get(survey.Skincare))
	if out, err := tr.Consume("2", "всё сразу, немного"); err != nil || out != Completed {
		t.Fatalf("(%v, %v)", out, err)
	}
	if store.entries[0].response != "всё сразу, немного" {
		t.Errorf("response = %q", store.entries[0].response)
	}
}
