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

func TestInventory_CreateDerivesSlug(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	it, err := e.inventory.Create(ctx, InventoryItemInput{Name: "  Blue Gel Pen ", Price: dec("1.999"), ImageURL: "pen.png"})
	require.NoError(t, err)

	assert.Equal(t, "Blue Gel Pen", it.Name)
	assert.Equal(t, "blue-gel-pen", it.Slug)
	assert.True(t, it.Price.Equal(dec("2")))

	got, err := e.inventory.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "pen.png", got.ImageURL)
}

func TestInventory_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.inventory.Create(ctx, InventoryItemInput{Name: "", Price: dec("1")})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = e.inventory.Create(ctx, InventoryItemInput{Name: "x", Price: dec("-0.01")})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = e.inventory.Update(ctx, "ghost", InventoryItemInput{Name: "x", Price: dec("1")})
	requireStatus(t, err, http.StatusNotFound)
}

func TestInventory_UpdateAndSearch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	it, err := e.inventory.Create(ctx, InventoryItemInput{Name: "Notebook", Price: dec("3")})
	require.NoError(t, err)

	updated, err := e.inventory.Update(ctx, it.ID, InventoryItemInput{Name: "Spiral Notebook", Price: dec("4.5")})
	require.NoError(t, err)
	assert.Equal(t, "spiral-notebook", updated.Slug)

	found, err := e.inventory.List(ctx, "spiral")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].Price.Equal(dec("4.5")))
}

func TestInventory_DeleteReferencedIsConflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)
	used := testutil.SeedItem(t, e.db, "Used", "1")
	unused := testutil.SeedItem(t, e.db, "Unused", "1")

	_, err := e.checkout.PlaceOrder(ctx, u.ID, CheckoutInput{InventoryID: used.ID})
	require.NoError(t, err)

	requireStatus(t, e.inventory.Delete(ctx, used.ID), http.StatusConflict)
	require.NoError(t, e.inventory.Delete(ctx, unused.ID))
	requireStatus(t, e.inventory.Delete(ctx, unused.ID), http.StatusNotFound)
}
