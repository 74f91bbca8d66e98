package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shopReco/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis intercepts commands through the client hook chain and serves
// them from a map, so repository tests never dial a server.
type fakeRedis struct {
	data map[string]string
	ttls map[string]int64
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		switch cmd.Name() {
		case "set":
			args := cmd.Args()
			key := argString(args[1])
			f.data[key] = argString(args[2])
			if len(args) >= 5 && argString(args[3]) == "ex" {
				f.ttls[key] = argInt(args[4])
			}
			cmd.(*redis.StatusCmd).SetVal("OK")
			return nil
		case "get":
			val, ok := f.data[argString(cmd.Args()[1])]
			if !ok {
				cmd.SetErr(redis.Nil)
				return redis.Nil
			}
			cmd.(*redis.StringCmd).SetVal(val)
			return nil
		case "del":
			var removed int64
			for _, arg := range cmd.Args()[1:] {
				key := argString(arg)
				if _, ok := f.data[key]; ok {
					delete(f.data, key)
					removed++
				}
			}
			cmd.(*redis.IntCmd).SetVal(removed)
			return nil
		}
		return next(ctx, cmd)
	}
}

func argString(v interface{}) string {
	switch arg := v.(type) {
	case string:
		return arg
	case []byte:
		return string(arg)
	default:
		return fmt.Sprint(arg)
	}
}

func argInt(v interface{}) int64 {
	switch arg := v.(type) {
	case int64:
		return arg
	case int:
		return int64(arg)
	}
	return 0
}

func newFakeTokenRepository() (*TokenRepository, *fakeRedis) {
	fake := &fakeRedis{data: map[string]string{}, ttls: map[string]int64{}}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(fake)
	return NewTokenRepository(client), fake
}

func operatorRecord(token string) domain.OperatorToken {
	issued := time.Date(2026, time.August, 23, 10, 0, 0, 0, time.UTC)
	return domain.OperatorToken{
		Operator:  "operator",
		Role:      "admin",
		Token:     token,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(time.Hour),
		IPAddress: "10.0.0.1",
		UserAgent: "curl/8",
	}
}

func TestTokenRepository_StoreThenGet(t *testing.T) {
	repo, fake := newFakeTokenRepository()
	record := operatorRecord("tok-1")

	require.NoError(t, repo.StoreToken(context.Background(), "operator", "tok-1", record, time.Hour))

	got, err := repo.GetTokenData(context.Background(), "operator")
	require.NoError(t, err)
	assert.Equal(t, record, *got)

	assert.Equal(t, int64(3600), fake.ttls["token:operator:operator"], "operator record expires with the token")
	assert.Equal(t, int64(3600), fake.ttls["token:lookup:tok-1"], "reverse lookup expires with the token")
}

func TestTokenRepository_GetMissingOperator(t *testing.T) {
	repo, _ := newFakeTokenRepository()

	_, err := repo.GetTokenData(context.Background(), "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token not found")
}

func TestTokenRepository_ValidateLooksUpOperator(t *testing.T) {
	repo, _ := newFakeTokenRepository()
	require.NoError(t, repo.StoreToken(context.Background(), "operator", "tok-2", operatorRecord("tok-2"), time.Hour))

	operator, err := repo.ValidateToken(context.Background(), "tok-2")
	require.NoError(t, err)
	assert.Equal(t, "operator", operator)

	_, err = repo.ValidateToken(context.Background(), "unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token not found or expired")
}

func TestTokenRepository_RevokeDropsBothKeys(t *testing.T) {
	repo, fake := newFakeTokenRepository()
	require.NoError(t, repo.StoreToken(context.Background(), "operator", "tok-3", operatorRecord("tok-3"), time.Hour))

	require.NoError(t, repo.RevokeToken(context.Background(), "operator", "tok-3"))

	_, err := repo.GetTokenData(context.Background(), "operator")
	require.Error(t, err)
	_, err = repo.ValidateToken(context.Background(), "tok-3")
	require.Error(t, err)
	assert.Empty(t, fake.data)
}
