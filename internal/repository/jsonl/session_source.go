package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"shopReco/domain"
)

// maxLineBytes caps a single record; long sessions carry thousands of events.
const maxLineBytes = 10 << 20

// errStopScan aborts Each early once a caller found what it wanted.
var errStopScan = errors.New("stop scan")

// SessionSource reads session records from a JSONL file, one
// {"session":N,"events":[...]} object per line.
type SessionSource struct {
	path string
}

func NewSessionSource(path string) *SessionSource {
	return &SessionSource{path: path}
}

// Each streams every record through fn in file order.
func (s *SessionSource) Each(ctx context.Context, fn func(domain.Session) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context error: %w", err)
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var session domain.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return fmt.Errorf("failed to parse session record at line %d: %w", line, err)
		}

		if err := fn(session); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	return nil
}

// FindByID scans the file for one session. Linear, meant for offline tooling.
func (s *SessionSource) FindByID(ctx context.Context, sessionID int64) (domain.Session, error) {
	var (
		out   domain.Session
		found bool
	)

	err := s.Each(ctx, func(session domain.Session) error {
		if session.SessionID == sessionID {
			out = session
			found = true
			return errStopScan
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopScan) {
		return domain.Session{}, err
	}
	if !found {
		return domain.Session{}, errors.New("session not found")
	}

	return out, nil
}
