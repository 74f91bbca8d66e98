package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopReco/domain"
	"shopReco/pkg/utils"
)

type fakeTokenStore struct {
	stored   map[string]domain.OperatorToken
	revoked  []string
	storeErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{stored: make(map[string]domain.OperatorToken)}
}

func (f *fakeTokenStore) StoreToken(_ context.Context, operator, token string, data domain.OperatorToken, _ time.Duration) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored[token] = data
	return nil
}

func (f *fakeTokenStore) GetTokenData(_ context.Context, operator string) (*domain.OperatorToken, error) {
	for _, data := range f.stored {
		if data.Operator == operator {
			record := data
			return &record, nil
		}
	}
	return nil, errors.New("token not found")
}

func (f *fakeTokenStore) ValidateToken(_ context.Context, token string) (string, error) {
	data, ok := f.stored[token]
	if !ok {
		return "", errors.New("token not found or expired")
	}
	return data.Operator, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, _, token string) error {
	delete(f.stored, token)
	f.revoked = append(f.revoked, token)
	return nil
}

func operatorKeyHash(t *testing.T, key string) string {
	t.Helper()
	hash, err := utils.HashPassword(key)
	if err != nil {
		t.Fatalf("failed to hash key: %v", err)
	}
	return string(hash)
}

func TestIssueToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := newFakeTokenStore()
	svc := NewAuthService(operatorKeyHash(t, "letmein"), store)

	token, data, err := svc.IssueToken(context.Background(), "letmein", "10.0.0.1", "curl/8")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := utils.ParseJWT(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != "operator" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if data.IPAddress != "10.0.0.1" || data.UserAgent != "curl/8" {
		t.Fatalf("request metadata not captured: %+v", data)
	}
	if _, ok := store.stored[token]; !ok {
		t.Fatal("token not stored in redis store")
	}
}

func TestIssueToken_BadKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewAuthService(operatorKeyHash(t, "letmein"), newFakeTokenStore())

	if _, _, err := svc.IssueToken(context.Background(), "wrong", "", ""); err == nil {
		t.Fatal("expected error for bad api key")
	}
	if _, _, err := svc.IssueToken(context.Background(), "", "", ""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestIssueToken_NoStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewAuthService(operatorKeyHash(t, "letmein"), nil)

	token, _, err := svc.IssueToken(context.Background(), "letmein", "", "")
	if err != nil {
		t.Fatalf("IssueToken without store returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
}

func TestIssueToken_StoreFailureFailsClosed(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := newFakeTokenStore()
	store.storeErr = errors.New("redis down")
	svc := NewAuthService(operatorKeyHash(t, "letmein"), store)

	if _, _, err := svc.IssueToken(context.Background(), "letmein", "", ""); err == nil {
		t.Fatal("expected error when the token store is down")
	}
}

func TestValidateAndRevoke(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := newFakeTokenStore()
	svc := NewAuthService(operatorKeyHash(t, "letmein"), store)

	token, _, err := svc.IssueToken(context.Background(), "letmein", "", "")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	operator, err := svc.ValidateTokenFromRedis(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateTokenFromRedis returned error: %v", err)
	}
	if operator != "operator" {
		t.Fatalf("want operator, got %q", operator)
	}

	if err := svc.RevokeToken(context.Background(), "operator", token); err != nil {
		t.Fatalf("RevokeToken returned error: %v", err)
	}
	if _, err := svc.ValidateTokenFromRedis(context.Background(), token); err == nil {
		t.Fatal("revoked token must not validate")
	}
}

func TestTokenInfo(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := newFakeTokenStore()
	svc := NewAuthService(operatorKeyHash(t, "letmein"), store)

	_, issued, err := svc.IssueToken(context.Background(), "letmein", "10.0.0.1", "curl/8")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	info, err := svc.TokenInfo(context.Background(), "operator")
	if err != nil {
		t.Fatalf("TokenInfo returned error: %v", err)
	}
	if info.IPAddress != "10.0.0.1" || info.UserAgent != "curl/8" {
		t.Fatalf("stored request metadata not returned: %+v", info)
	}
	if !info.ExpiresAt.Equal(issued.ExpiresAt) {
		t.Fatalf("expiry mismatch: got %v, want %v", info.ExpiresAt, issued.ExpiresAt)
	}
}

func TestTokenInfo_UnknownOperator(t *testing.T) {
	svc := NewAuthService(operatorKeyHash(t, "letmein"), newFakeTokenStore())

	if _, err := svc.TokenInfo(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error for operator with no stored token")
	}
}

func TestTokenStoreDisabled(t *testing.T) {
	svc := NewAuthService(operatorKeyHash(t, "letmein"), nil)

	if _, err := svc.ValidateTokenFromRedis(context.Background(), "x"); err == nil {
		t.Fatal("expected error with no token store")
	}
	if _, err := svc.TokenInfo(context.Background(), "operator"); err == nil {
		t.Fatal("expected error with no token store")
	}
	if err := svc.RevokeToken(context.Background(), "operator", "x"); err == nil {
		t.Fatal("expected error with no token store")
	}
}
