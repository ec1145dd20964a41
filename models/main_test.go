package models

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"memorial/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	var err error
	// Shared-cache in-memory DB with a single connection so every test and
	// goroutine sees the same data
	db.Instance, err = gorm.Open(sqlite.Open("file:models_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.Instance.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)
	Init()
	os.Exit(m.Run())
}

var emailSeq atomic.Uint64

func testUser(t *testing.T) User {
	t.Helper()
	email := fmt.Sprintf("user%d@example.com", emailSeq.Add(1))
	user, err := UserCreate("Test User", email, "correct horse battery")
	require.NoError(t, err)
	return user
}

func testMemorial(t *testing.T, ownerID uint64, level PrivacyLevel) Memorial {
	t.Helper()
	memorial, err := MemorialCreate(ownerID, "Jane Doe", "1950-02-01", "2020-03-04", "A long and happy life", level)
	require.NoError(t, err)
	return memorial
}

func tokenGrants(t *testing.T, memorialID uint64) []AccessGrant {
	t.Helper()
	var grants []AccessGrant
	err := db.Instance.Where("memorial_id = ? and access_token is not null", memorialID).Find(&grants).Error
	require.NoError(t, err)
	return grants
}
