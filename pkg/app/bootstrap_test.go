package app

import (
	"context"
	"testing"

	"github.com/theEquinoxDev/LocalLoop/pkg/config"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StorageDriver: config.StorageMemory,
		JWTSecret:     "test-secret-test-secret-test-secret",
		ServiceName:   "localloop-test",
	}
}

func TestOpen_MemoryDriver(t *testing.T) {
	a, closeFn, err := Open(context.Background(), memoryConfig(), logger.Nop(), Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	if a.Db != nil || a.Mongo != nil || a.EventBus != nil {
		t.Error("memory driver should not open any store")
	}
	if a.Redis != nil || a.ObjectStore != nil || a.TemporalClient != nil {
		t.Error("optional dependencies should be off")
	}
	if a.Tokens == nil {
		t.Fatal("token manager not set")
	}
	if a.Metrics == nil {
		t.Error("metrics not set")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"
	if _, _, err := Open(context.Background(), cfg, logger.Nop(), Options{}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpen_BadJWTKeys(t *testing.T) {
	cfg := memoryConfig()
	cfg.JWTKeys = "missing-secret"
	if _, _, err := Open(context.Background(), cfg, logger.Nop(), Options{}); err == nil {
		t.Fatal("expected error for malformed JWT_KEYS")
	}
}

func TestOpen_KeyRotation(t *testing.T) {
	cfg := memoryConfig()
	cfg.JWTKeys = "old:old-secret,new:new-secret"
	cfg.JWTActiveKID = "new"
	a, closeFn, err := Open(context.Background(), cfg, logger.Nop(), Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	if a.Tokens == nil {
		t.Fatal("token manager not set")
	}
}
