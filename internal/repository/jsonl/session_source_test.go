package jsonl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shopReco/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleSessions = `{"session": 12899779, "events": [{"aid": 59625, "ts": 1661724000278, "type": "clicks"}]}

{"session": 12899780, "events": [{"aid": 1142000, "ts": 1661724000378, "type": "clicks"}, {"aid": 582732, "ts": 1661724058352, "type": "carts"}]}
`

func TestEach_ParsesRecordShape(t *testing.T) {
	src := NewSessionSource(writeFixture(t, "sessions.jsonl", sampleSessions))

	var got []domain.Session
	err := src.Each(context.Background(), func(s domain.Session) error {
		got = append(got, s)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 2, "blank lines are skipped")
	assert.Equal(t, int64(12899779), got[0].SessionID)
	require.Len(t, got[0].Events, 1)
	assert.Equal(t, int64(59625), got[0].Events[0].Aid)
	assert.Equal(t, int64(1661724000278), got[0].Events[0].Ts)
	assert.Equal(t, domain.EventClicks, got[0].Events[0].Type)

	assert.Equal(t, []int64{1142000, 582732}, got[1].Aids())
}

func TestEach_MalformedLineReportsLineNumber(t *testing.T) {
	src := NewSessionSource(writeFixture(t, "bad.jsonl",
		`{"session": 1, "events": []}`+"\n"+`{not json}`+"\n"))

	err := src.Each(context.Background(), func(domain.Session) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestEach_MissingFile(t *testing.T) {
	src := NewSessionSource(filepath.Join(t.TempDir(), "nope.jsonl"))

	err := src.Each(context.Background(), func(domain.Session) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open session file")
}

func TestFindByID(t *testing.T) {
	src := NewSessionSource(writeFixture(t, "sessions.jsonl", sampleSessions))

	session, err := src.FindByID(context.Background(), 12899780)
	require.NoError(t, err)
	assert.Equal(t, []int64{1142000, 582732}, session.Aids())

	_, err = src.FindByID(context.Background(), 404)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestEach_CancelledContext(t *testing.T) {
	src := NewSessionSource(writeFixture(t, "sessions.jsonl", sampleSessions))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := src.Each(ctx, func(domain.Session) error { return nil })
	require.Error(t, err)
}

func TestArtifactSource_AllTables(t *testing.T) {
	covisit := writeFixture(t, "covisit.jsonl",
		`{"aid": 10, "neighbor": 20, "weight": 5}`+"\n"+
			`{"aid": 10, "neighbor": 30, "weight": 3.5}`+"\n")
	popularity := writeFixture(t, "popularity.jsonl",
		`{"aid": 10, "count": 100}`+"\n")
	fallback := writeFixture(t, "fallback.jsonl",
		`{"rank": 0, "aid": 129004}`+"\n"+`{"rank": 1, "aid": 126836}`+"\n")

	src := NewArtifactSource(covisit, popularity, fallback)

	pairs, err := src.AllPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, domain.CovisitPair{Aid: 10, Neighbor: 30, Weight: 3.5}, pairs[1])

	counts, err := src.AllCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(100), counts[0].Count)

	items, err := src.AllItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.FallbackItem{{Rank: 0, Aid: 129004}, {Rank: 1, Aid: 126836}}, items)
}

func TestArtifactSource_RanklessFallbackNumberedByLine(t *testing.T) {
	fallback := writeFixture(t, "fallback.jsonl",
		`{"aid": 129004}`+"\n"+`{"aid": 126836}`+"\n"+`{"aid": 118524}`+"\n")
	src := NewArtifactSource("", "", fallback)

	items, err := src.AllItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.FallbackItem{
		{Rank: 0, Aid: 129004},
		{Rank: 1, Aid: 126836},
		{Rank: 2, Aid: 118524},
	}, items)
}
