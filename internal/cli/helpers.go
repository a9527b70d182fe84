package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

// prompter asks for values that were not given as flags.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// value returns current if set, otherwise asks for it.
func (p *prompter) value(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirmed asks for a value twice and checks both match.
func (p *prompter) confirmed(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	first, err := p.value(label, "")
	if err != nil {
		return "", err
	}
	second, err := p.value("Confirm "+strings.ToLower(label), "")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("%ss do not match", strings.ToLower(label))
	}
	return first, nil
}

// getDBPathOrDefault resolves the database path, falling back to the
// default location.
func getDBPathOrDefault() string {
	if p := getDBPath(); p != "" {
		return p
	}
	p, _ := storage.DefaultDBPath()
	return p
}
