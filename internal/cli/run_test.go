package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSession_InlineAids(t *testing.T) {
	session, err := resolveSession(context.Background(), "", -1, "59625 1253524,737445")
	require.NoError(t, err)
	assert.Equal(t, []int64{59625, 1253524, 737445}, session.Aids())
}

func TestResolveSession_BadAid(t *testing.T) {
	_, err := resolveSession(context.Background(), "", -1, "59625 not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-number")
}

func TestResolveSession_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.jsonl")
	record := `{"session": 12899779, "events": [{"aid": 59625, "type": "clicks"}, {"aid": 731692, "type": "clicks"}]}`
	require.NoError(t, os.WriteFile(path, []byte(record+"\n"), 0o644))

	session, err := resolveSession(context.Background(), path, 12899779, "")
	require.NoError(t, err)
	assert.Equal(t, int64(12899779), session.SessionID)
	assert.Equal(t, []int64{59625, 731692}, session.Aids())
}

func TestResolveSession_MissingArgs(t *testing.T) {
	_, err := resolveSession(context.Background(), "", -1, "")
	require.Error(t, err)

	_, err = resolveSession(context.Background(), "sessions.jsonl", -1, "")
	require.Error(t, err, "--file without --session is not enough")
}
