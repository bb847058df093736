package cache

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_GetHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 3600, "")

	mock.ExpectGet("localizer:abc123:en:fr").SetVal("Bonjour")

	val, ok := c.Get("abc123:en:fr")
	if !ok {
		t.Error("expected cache hit")
	}
	if val != "Bonjour" {
		t.Errorf("val = %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 3600, "")

	mock.ExpectGet("localizer:abc123:en:fr").RedisNil()

	val, ok := c.Get("abc123:en:fr")
	if ok || val != "" {
		t.Errorf("expected miss, got %q, %v", val, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 3600, "")

	mock.ExpectSet("localizer:abc123:en:fr", "Bonjour", 3600*time.Second).SetVal("OK")

	if err := c.Set("abc123:en:fr", "Bonjour"); err != nil {
		t.Errorf("Set: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_SetNoTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "")

	mock.ExpectSet("localizer:abc123:en:fr", "Bonjour", 0).SetVal("OK")

	if err := c.Set("abc123:en:fr", "Bonjour"); err != nil {
		t.Errorf("Set: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_CustomPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "staging:")

	mock.ExpectGet("staging:k").SetVal("v")

	if _, ok := c.Get("k"); !ok {
		t.Error("expected hit under custom prefix")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	if _, err := NewRedisCache(RedisConfig{URL: "not-a-url"}); err == nil {
		t.Error("expected error for malformed URL")
	}
}
