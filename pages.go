package inkwell

import (
	"encoding/json"
)

// CreateOrUpdatePage stores an arbitrary JSON-serializable payload under the
// given page id, inserting or replacing in a single atomic statement, and
// returns the id of the affected row.
func (s *Store) CreateOrUpdatePage(pageID string, data any, actor *Actor) (string, error) {
	if actor == nil {
		return "", ErrUnauthorized
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	_, err = s.db.Exec(`INSERT INTO pages (page_id, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT(page_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		pageID, string(payload), fmtTime(nowUTC()))
	if err != nil {
		return "", err
	}
	return pageID, nil
}

// GetPage deserializes the stored payload for the given page id into out,
// which must be a pointer. A missing page returns ErrNotFound.
func (s *Store) GetPage(pageID string, out any) error {
	var payload string
	if err := s.db.QueryRow(`SELECT data FROM pages WHERE page_id = ?`, pageID).Scan(&payload); err != nil {
		return err
	}
	return json.Unmarshal([]byte(payload), out)
}

// IncrementCounter bumps the counter for the given id by one, creating it at
// 1 when absent, and returns the resulting count. The insert-or-increment is
// a single atomic statement, so concurrent calls for the same key serialize
// in the storage engine and the count stays monotonic.
func (s *Store) IncrementCounter(counterID string) (int64, error) {
	var count int64
	err := s.db.QueryRow(`INSERT INTO counters (counter_id, count) VALUES (?, 1)
ON CONFLICT(counter_id) DO UPDATE SET count = count + 1
RETURNING count`, counterID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
