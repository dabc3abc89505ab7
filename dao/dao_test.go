package dao

import (
	"Sirius/models"
	"Sirius/pkg/database"
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// 单连接即单个内存库
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username int64) *models.User {
	t.Helper()
	u := &models.User{Username: username, Tg: "@u", CodeHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedMeme(t *testing.T, db *gorm.DB, owner int64, caption string) *models.Meme {
	t.Helper()
	m := &models.Meme{UserID: owner, Caption: caption, StorageKey: "2024-01-01/" + caption + ".png"}
	if err := NewMemeDAO(db).CreateWithCart(context.Background(), m); err != nil {
		t.Fatalf("seed meme: %v", err)
	}
	return m
}
