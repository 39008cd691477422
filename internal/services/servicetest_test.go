package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Universe{},
		&types.Content{},
		&types.ContentRelationship{},
		&types.UserProgress{},
		&types.Favorite{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func seedUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	user := &types.User{
		ID:          uuid.New(),
		Email:       "tester@example.com",
		Password:    "irrelevant",
		DisplayName: "Tester",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedUniverse(t *testing.T, db *gorm.DB, userID uuid.UUID) *types.Universe {
	t.Helper()
	universe := &types.Universe{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "Test Universe",
	}
	if err := db.Create(universe).Error; err != nil {
		t.Fatalf("seed universe: %v", err)
	}
	return universe
}

func seedContent(t *testing.T, db *gorm.DB, universeID, userID uuid.UUID, title string, viewable bool) *types.Content {
	t.Helper()
	content := &types.Content{
		ID:         uuid.New(),
		UniverseID: universeID,
		UserID:     userID,
		Title:      title,
		IsViewable: viewable,
	}
	if err := db.Create(content).Error; err != nil {
		t.Fatalf("seed content %q: %v", title, err)
	}
	return content
}

func seedEdge(t *testing.T, db *gorm.DB, universeID, userID, parentID, childID uuid.UUID, createdAt time.Time) *types.ContentRelationship {
	t.Helper()
	edge := &types.ContentRelationship{
		ID:         uuid.New(),
		UniverseID: universeID,
		UserID:     userID,
		ParentID:   parentID,
		ChildID:    childID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if err := db.Create(edge).Error; err != nil {
		t.Fatalf("seed edge: %v", err)
	}
	return edge
}
