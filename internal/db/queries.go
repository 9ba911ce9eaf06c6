package db

import (
	"database/sql"
	"fmt"
)

// Entry is one persisted journal answer. Rows are append-only; nothing in
// the product updates or deletes them.
type Entry struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	Date      string `json:"date"` // calendar day the entry was logged under
	Category  string `json:"category"`
	Question  string `json:"question"`
	Response  string `json:"response"`
	CreatedAt string `json:"created_at"`
}

// AppendEntry stores one answered question.
func (d *DB) AppendEntry(userID, date, category, question, response string) error {
	_, err := d.conn.Exec(
		"INSERT INTO entries (user_id, date, category, question, response) VALUES (?, ?, ?, ?, ?)",
		userID, date, category, question, response,
	)
	if err != nil {
		return fmt.Errorf("appending entry: %w", err)
	}
	return nil
}

// ListEntriesSince returns a user's entries with date >= since (YYYY-MM-DD),
// oldest first, in insertion order within a day.
func (d *DB) ListEntriesSince(userID, since string) ([]Entry, error) {
	rows, err := d.conn.Query(
		"SELECT id, user_id, date, category, question, response, created_at FROM entries WHERE user_id = ? AND date >= ? ORDER BY id ASC",
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Category, &e.Question, &e.Response, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
