package logic

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tennisframework/tennis-api/internal/models"
)

// MockRedisClient is an in-memory RedisClient.
type MockRedisClient struct {
	Data     map[string]string
	GetErr   error
	SetErr   error
	GetCalls int
	SetCalls int
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.GetCalls++
	if m.GetErr != nil {
		return redis.NewStringResult("", m.GetErr)
	}
	v, ok := m.Data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.SetCalls++
	if m.SetErr != nil {
		return redis.NewStatusResult("", m.SetErr)
	}
	switch v := value.(type) {
	case []byte:
		m.Data[key] = string(v)
	case string:
		m.Data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func TestPerformanceCache_GetSet(t *testing.T) {
	client := &MockRedisClient{Data: map[string]string{}}
	cache := NewPerformanceCache(client, time.Minute, zap.NewNop().Sugar())
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "v1", "A"); ok {
		t.Fatal("Get() hit on empty cache")
	}

	want := models.NewPerformanceSummary("A", 4, 3)
	cache.Set(ctx, "v1", want)
	got, ok := cache.Get(ctx, "v1", "A")
	if !ok || got != want {
		t.Errorf("Get() = %+v, %v, want %+v", got, ok, want)
	}
	if _, ok := cache.Get(ctx, "v2", "A"); ok {
		t.Error("Get() hit under a different version")
	}

	client.Data[performanceKey("v1", "B")] = "{not json"
	if _, ok := cache.Get(ctx, "v1", "B"); ok {
		t.Error("Get() hit on corrupt entry")
	}
}

func TestFramework_AnalyzePlayerUsesCache(t *testing.T) {
	client := &MockRedisClient{Data: map[string]string{}}
	f := newTestFramework(t, abcSource(), NewPerformanceCache(client, time.Minute, zap.NewNop().Sugar()))
	ctx := context.Background()
	version := f.Current().Version

	first := f.AnalyzePlayer(ctx, "A")
	if client.SetCalls != 1 {
		t.Fatalf("SetCalls = %d, want 1", client.SetCalls)
	}

	// A cached entry wins over recomputation.
	stale := models.NewPerformanceSummary("A", 10, 10)
	payload, _ := json.Marshal(stale)
	client.Data[performanceKey(version, "A")] = string(payload)
	if got := f.AnalyzePlayer(ctx, "A"); got != stale {
		t.Errorf("AnalyzePlayer() = %+v, want cached %+v", got, stale)
	}

	// Redis failures fall back to the snapshot.
	client.GetErr = errors.New("connection reset")
	client.SetErr = errors.New("connection reset")
	if got := f.AnalyzePlayer(ctx, "A"); got != first {
		t.Errorf("AnalyzePlayer() with failing cache = %+v, want %+v", got, first)
	}
}
