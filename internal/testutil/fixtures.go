package testutil

import (
	"testing"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedUser inserts a user with a unique email/username.
func SeedUser(t *testing.T, gdb *gorm.DB, role model.Role) model.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	u := model.User{
		Name:          "User " + suffix,
		Username:      "user_" + suffix,
		ContactNumber: "0771234567",
		Email:         "user_" + suffix + "@example.com",
		PasswordHash:  "x",
		Role:          role,
		IsActive:      true,
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func SeedItem(t *testing.T, gdb *gorm.DB, name string, price string) model.InventoryItem {
	t.Helper()

	it := model.InventoryItem{
		Name:  name,
		Slug:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, gdb.Create(&it).Error)
	return it
}

func SeedPoints(t *testing.T, gdb *gorm.DB, userID string, balance int64) {
	t.Helper()
	require.NoError(t, gdb.Create(&model.Points{UserID: userID, Balance: balance}).Error)
}
