package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType identifies the type of logged event.
type EventType string

const (
	EventKeyPress EventType = "key_press"
	EventMove     EventType = "move"
	EventScramble EventType = "scramble"
	EventHint     EventType = "hint"
	EventSolver   EventType = "solver"
	EventAttempt  EventType = "attempt"
)

// Event is a single line of the event log.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	ElapsedMs   int64     `json:"elapsed_ms"`
	Type        EventType `json:"event_type"`
	Key         string    `json:"key,omitempty"`
	Move        string    `json:"move,omitempty"`
	Moves       int       `json:"moves,omitempty"`
	DurationMs  int64     `json:"duration_ms,omitempty"`
	Solved      bool      `json:"solved,omitempty"`
	Description string    `json:"description,omitempty"`
}

// EventLog appends events to a JSONL file, one per line after a header.
// The zero value and a nil *EventLog discard everything.
type EventLog struct {
	mu        sync.Mutex
	file      *os.File
	startTime time.Time
	user      string
}

// StartEventLog creates a new log file in dir for the given user.
func StartEventLog(dir, user string) (*EventLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	start := time.Now()
	filename := fmt.Sprintf("play_%s_%s.jsonl", user, start.Format("20060102_150405"))
	file, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := &EventLog{file: file, startTime: start, user: user}

	header := map[string]interface{}{
		"version":    "1.0",
		"created_at": start,
		"user":       user,
		"type":       "header",
	}
	if err := l.writeJSON(header); err != nil {
		file.Close()
		return nil, err
	}
	return l, nil
}

// Log appends an event, filling in the timestamps.
func (l *EventLog) Log(e Event) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}

	e.Timestamp = time.Now()
	e.ElapsedMs = e.Timestamp.Sub(l.startTime).Milliseconds()
	if err := l.writeJSON(e); err != nil {
		log.WithError(err).Warn("event log write failed")
	}
}

// LogKeyPress logs a key press.
func (l *EventLog) LogKeyPress(key string) {
	l.Log(Event{Type: EventKeyPress, Key: key})
}

func (l *EventLog) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = l.file.Write(append(data, '\n'))
	return err
}

// Close closes the log file.
func (l *EventLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// FilePath returns the current log file path.
func (l *EventLog) FilePath() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// LoggedSession is a parsed event log file.
type LoggedSession struct {
	Version   string
	CreatedAt time.Time
	User      string
	Events    []Event
}

// LoadEventLog reads an event log written by EventLog.
func LoadEventLog(path string) (*LoggedSession, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	ls := &LoggedSession{}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		// First line is the header
		if lineNum == 1 {
			var header struct {
				Version   string    `json:"version"`
				CreatedAt time.Time `json:"created_at"`
				User      string    `json:"user"`
			}
			if err := json.Unmarshal(line, &header); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			ls.Version = header.Version
			ls.CreatedAt = header.CreatedAt
			ls.User = header.User
			continue
		}

		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		ls.Events = append(ls.Events, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	return ls, nil
}
