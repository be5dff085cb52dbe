package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	"github.com/gimhantharuke456/sachi-itpm/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func updateInputFrom(u model.User) UpdateUserInput {
	return UpdateUserInput{
		Name:          u.Name,
		Username:      u.Username,
		ContactNumber: u.ContactNumber,
		Email:         u.Email,
		Role:          string(u.Role),
	}
}

func TestUserUpdate_RoleChangeRevokesTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)

	in := updateInputFrom(u)
	in.Name = "Renamed"
	in.Role = "admin"
	got, err := e.users.Update(ctx, u.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.Equal(t, 1, got.TokenVersion)
}

func TestUserUpdate_PasswordIsHashed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)

	in := updateInputFrom(u)
	pw := "n3w-password"
	in.Password = &pw
	_, err := e.users.Update(ctx, u.ID, in)
	require.NoError(t, err)

	stored, err := e.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:n3w-password", stored.PasswordHash)
}

func TestUserUpdate_Errors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a := testutil.SeedUser(t, e.db, model.RoleUser)
	b := testutil.SeedUser(t, e.db, model.RoleUser)

	in := updateInputFrom(a)
	in.Email = b.Email
	_, err := e.users.Update(ctx, a.ID, in)
	requireStatus(t, err, http.StatusConflict)

	in = updateInputFrom(a)
	in.Username = b.Username
	_, err = e.users.Update(ctx, a.ID, in)
	requireStatus(t, err, http.StatusConflict)

	in = updateInputFrom(a)
	in.Role = "root"
	_, err = e.users.Update(ctx, a.ID, in)
	requireStatus(t, err, http.StatusBadRequest)

	in = updateInputFrom(a)
	in.Email = "nope"
	_, err = e.users.Update(ctx, a.ID, in)
	requireStatus(t, err, http.StatusBadRequest)

	_, err = e.users.Update(ctx, "ghost", updateInputFrom(a))
	requireStatus(t, err, http.StatusNotFound)
}

func TestUserDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	buyer := testutil.SeedUser(t, e.db, model.RoleUser)
	idle := testutil.SeedUser(t, e.db, model.RoleUser)
	testutil.SeedPoints(t, e.db, idle.ID, 10)
	it := testutil.SeedItem(t, e.db, "Pen", "1")

	_, err := e.checkout.PlaceOrder(ctx, buyer.ID, CheckoutInput{InventoryID: it.ID})
	require.NoError(t, err)

	requireStatus(t, e.users.Delete(ctx, buyer.ID), http.StatusConflict)

	require.NoError(t, e.users.Delete(ctx, idle.ID))
	_, err = e.users.Get(ctx, idle.ID)
	requireStatus(t, err, http.StatusNotFound)

	var n int64
	require.NoError(t, e.db.Model(&model.Points{}).Where("user_id = ?", idle.ID).Count(&n).Error)
	assert.Zero(t, n)

	requireStatus(t, e.users.Delete(ctx, idle.ID), http.StatusNotFound)
}

func TestAuthUsecase_MeAndForceLogout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)

	me, err := e.auth.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, me.Email)

	_, err = e.auth.Me(ctx, "ghost")
	requireStatus(t, err, http.StatusUnauthorized)

	res, err := e.auth.ForceLogout(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewTokenVersion)

	_, err = e.auth.ForceLogout(ctx, "ghost")
	requireStatus(t, err, http.StatusNotFound)

	inactive := false
	in := updateInputFrom(u)
	in.IsActive = &inactive
	_, err = e.users.Update(ctx, u.ID, in)
	require.NoError(t, err)

	_, err = e.auth.Me(ctx, u.ID)
	requireStatus(t, err, http.StatusForbidden)
}
