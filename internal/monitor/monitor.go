package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ecooper/dp-headlines/internal/logger"
)

// DateFormat is the layout of the monitor's date keys.
const DateFormat = "2006-01-02"

// Entry is a single (date, headline) observation.
type Entry struct {
	Date     string `json:"date"`
	Headline string `json:"headline"`
}

// Monitor is an ordered, date-keyed record of headline observations backed
// by a JSON file. It is not safe for concurrent use; a run is the only
// accessor for its lifetime.
type Monitor struct {
	path    string
	entries []Entry
	index   map[string]int

	// now is swapped in tests to pin the current date
	now func() time.Time
}

// Load reads the backing file at path if present and well-formed. A missing
// file, unreadable file, or malformed content yields an empty monitor and a
// logged diagnostic; none of these raise to the caller, since starting a
// fresh record is the recovery.
func Load(path string, log *logger.Logger) *Monitor {
	m := &Monitor{
		path:  path,
		index: make(map[string]int),
		now:   time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("No existing data file, starting empty", logger.Fields{"path": path})
		} else {
			log.Warn("Could not read data file, starting empty", logger.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
		return m
	}

	if err := m.unmarshal(data); err != nil {
		log.Warn("Could not parse data file, starting empty", logger.Fields{
			"path":  path,
			"error": err.Error(),
		})
		m.entries = nil
		m.index = make(map[string]int)
		return m
	}

	log.Info("Loaded daily event monitor", logger.Fields{
		"path":    path,
		"entries": len(m.entries),
	})
	return m
}

// AddToday inserts or overwrites the entry for the current local date.
// The date is computed here, not passed in, so that repeated runs on the
// same calendar day collapse into one observation. An empty headline is a
// no-op returning false: the store must never replace a day's value with
// nothing.
func (m *Monitor) AddToday(headline string) bool {
	if headline == "" {
		return false
	}

	date := m.now().Format(DateFormat)
	if i, exists := m.index[date]; exists {
		m.entries[i].Headline = headline
		return true
	}

	m.index[date] = len(m.entries)
	m.entries = append(m.entries, Entry{Date: date, Headline: headline})
	return true
}

// Get returns the headline recorded for date, if any.
func (m *Monitor) Get(date string) (string, bool) {
	i, exists := m.index[date]
	if !exists {
		return "", false
	}
	return m.entries[i].Headline, true
}

// Entries returns the observations in insertion order.
func (m *Monitor) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of recorded dates.
func (m *Monitor) Len() int {
	return len(m.entries)
}

// Path returns the backing file path.
func (m *Monitor) Path() string {
	return m.path
}

// Save serializes the full record to the backing file. The write is atomic:
// the data lands in a temporary file which is renamed over the target, so a
// concurrent reader never observes a partial write. Unlike Load, failures
// here propagate, since swallowing them would silently lose data.
func (m *Monitor) Save() error {
	data, err := m.marshal()
	if err != nil {
		return fmt.Errorf("encoding data file: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp data file: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing data file: %w", err)
	}

	return nil
}

// marshal renders the record as a JSON object with keys in insertion order.
// encoding/json would sort map keys, which breaks the order-preservation
// contract, so the object is assembled key by key.
func (m *Monitor) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range m.entries {
		key, err := json.Marshal(e.Date)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Headline)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(m.entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// unmarshal reads a JSON object of string keys and string values in document
// order via the token stream, which encoding/json preserves where a plain
// map would not.
func (m *Monitor) unmarshal(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		date, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}

		var headline string
		if err := dec.Decode(&headline); err != nil {
			return fmt.Errorf("reading value for %q: %w", date, err)
		}

		if i, exists := m.index[date]; exists {
			m.entries[i].Headline = headline
			continue
		}
		m.index[date] = len(m.entries)
		m.entries = append(m.entries, Entry{Date: date, Headline: headline})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading closing token: %w", err)
	}

	return nil
}
