// Package session tracks, per user, which survey is in progress and which
// question is awaiting an answer.
package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/akenes/zhurnal/internal/survey"
)

// Outcome classifies what a consumed reply did to the user's session.
type Outcome int

const (
	// Ignored: no session was open for the user. Not an error.
	Ignored Outcome = iota
	// InProgress: the reply was paired and saved; questions remain.
	InProgress
	// Completed: the reply closed the session.
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case InProgress:
		return "in progress"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Sender delivers messages to a user. A nil choice layout means plain text.
type Sender interface {
	SendPrompt(userID, text string, choices [][]string) error
}

// Store appends one journal entry per consumed reply.
type Store interface {
	AppendEntry(userID, date, category, question, response string) error
}

const completedMessage = "Спасибо! Все ответы сохранены ✅"

type state struct {
	category  string
	pending   []survey.Question // front = next question awaiting an answer
	startedAt time.Time
}

// Tracker owns the user -> open-session mapping. State is memory-resident
// only; open sessions are lost on restart.
type Tracker struct {
	sender Sender
	store  Store
	loc    *time.Location

	mu       sync.Mutex
	sessions map[string]*state
}

func New(sender Sender, store Store, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{
		sender:   sender,
		store:    store,
		loc:      loc,
		sessions: make(map[string]*state),
	}
}

// Begin opens a session for userID and pushes the whole question sequence to
// the transport up front. Any session already open for the user is discarded,
// unanswered questions included; the discard is logged but the user is not
// told. Send failures are logged and not retried.
func (t *Tracker) Begin(userID string, sv survey.Survey) {
	pending := make([]survey.Question, len(sv.Questions))
	copy(pending, sv.Questions)

	t.mu.Lock()
	if old, ok := t.sessions[userID]; ok {
		log.Printf("session: discarding open %q survey for user %s (%d unanswered, started %s)",
			old.category, userID, len(old.pending), old.startedAt.Format(time.RFC3339))
	}
	t.sessions[userID] = &state{
		category:  sv.Category,
		pending:   pending,
		startedAt: time.Now(),
	}
	t.mu.Unlock()

	for _, q := range sv.Questions {
		if err := t.sender.SendPrompt(userID, q.Text, q.Choices); err != nil {
			log.Printf("session: sending %q prompt to user %s: %v", sv.Category, userID, err)
		}
	}
}

// Consume pairs an inbound reply with the oldest unanswered question of the
// user's open session and appends it to the store. Pairing is positional:
// the reply text is stored verbatim, whether or not it matches the question's
// choice layout. Callers must not invoke Consume concurrently for the same
// user; the tracker additionally serializes the pop and the append, so entry
// order always matches reply arrival order.
func (t *Tracker) Consume(userID, reply string) (Outcome, error) {
	t.mu.Lock()

	st, ok := t.sessions[userID]
	if !ok {
		t.mu.Unlock()
		return Ignored, nil
	}

	// A stored session always has at least one pending question: it is
	// removed the instant its queue empties.
	q := st.pending[0]
	st.pending = st.pending[1:]
	done := len(st.pending) == 0
	if done {
		delete(t.sessions, userID)
	}

	date := time.Now().In(t.loc).Format("2006-01-02")
	err := t.store.AppendEntry(userID, date, st.category, q.Text, reply)
	t.mu.Unlock()

	outcome := InProgress
	if done {
		outcome = Completed
	}
	if err != nil {
		return outcome, fmt.Errorf("saving %q entry for user %s: %w", st.category, userID, err)
	}

	if done {
		if err := t.sender.SendPrompt(userID, completedMessage, nil); err != nil {
			log.Printf("session: sending completion to user %s: %v", userID, err)
		}
		return Completed, nil
	}
	return InProgress, nil
}

// Open reports whether the user has a session in progress, and its category.
func (t *Tracker) Open(userID string) (category string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, found := t.sessions[userID]; found {
		return st.category, true
	}
	return "", false
}
