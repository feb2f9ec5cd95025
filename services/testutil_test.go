package services

import (
	"testing"

	"deenquest/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Room{}, &models.Player{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

type testEnv struct {
	db       *gorm.DB
	redis    *redis.Client
	rooms    *RoomService
	games    *GameService
	presence *PresenceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	rdb := newTestRedis(t)
	logger := zap.NewNop()

	rooms := NewRoomService(db, rdb, logger)
	return &testEnv{
		db:       db,
		redis:    rdb,
		rooms:    rooms,
		games:    NewGameService(db, rooms, logger),
		presence: NewPresenceService(rdb, logger),
	}
}
