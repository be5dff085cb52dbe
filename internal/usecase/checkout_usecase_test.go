package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/metrics"
	"github.com/gimhantharuke456/sachi-itpm/internal/testutil"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutQuote_Save10AndPoints(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)
	testutil.SeedPoints(t, e.db, u.ID, 40)
	a := testutil.SeedItem(t, e.db, "A", "100")
	b := testutil.SeedItem(t, e.db, "B", "25.50")

	q, err := e.checkout.Quote(ctx, u.ID, CheckoutInput{
		Items:          []OrderItemInput{{InventoryID: a.ID, Quantity: 2}, {InventoryID: b.ID, Quantity: 2}},
		CouponCode:     "save10",
		PointsToRedeem: 15,
	})
	require.NoError(t, err)

	// 200 + 51 = 251, coupon 25.10, points 15
	assert.True(t, q.Subtotal.Equal(dec("251")))
	assert.True(t, q.CouponDiscount.Equal(dec("25.1")))
	assert.True(t, q.PointsDiscount.Equal(dec("15")))
	assert.True(t, q.Discount.Equal(dec("40.1")))
	assert.True(t, q.Total.Equal(dec("210.9")))
	assert.Len(t, q.Lines, 2)

	// 見積もりでは何も保存しない
	orders, err := e.orders.ListMine(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	p, err := e.points.GetBalance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), p.Balance)
}

func TestCheckoutQuote_Errors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)
	it := testutil.SeedItem(t, e.db, "A", "10")

	tests := []struct {
		name string
		in   CheckoutInput
	}{
		{name: "no items", in: CheckoutInput{}},
		{name: "both modes", in: CheckoutInput{InventoryID: it.ID, Items: []OrderItemInput{{InventoryID: it.ID, Quantity: 1}}}},
		{name: "unknown coupon", in: CheckoutInput{InventoryID: it.ID, CouponCode: "FREE"}},
		{name: "unknown item", in: CheckoutInput{InventoryID: "ghost"}},
		{name: "negative points", in: CheckoutInput{InventoryID: it.ID, PointsToRedeem: -1}},
		{name: "discount exceeds subtotal", in: CheckoutInput{InventoryID: it.ID, PointsToRedeem: 11}},
		{name: "insufficient points", in: CheckoutInput{InventoryID: it.ID, PointsToRedeem: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.checkout.Quote(ctx, u.ID, tt.in)
			requireStatus(t, err, http.StatusBadRequest)
		})
	}

	_, err := e.checkout.Quote(ctx, "", CheckoutInput{InventoryID: it.ID})
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestCheckoutPlaceOrder_SingleItemIsQuantityOne(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)
	it := testutil.SeedItem(t, e.db, "Lamp", "80")

	o, err := e.checkout.PlaceOrder(ctx, u.ID, CheckoutInput{InventoryID: it.ID, CouponCode: "SAVE10"})
	require.NoError(t, err)

	require.Len(t, o.OrderedItems, 1)
	assert.Equal(t, int64(1), o.OrderedItems[0].Quantity)
	assert.Equal(t, it.ID, o.OrderedItems[0].InventoryID)
	// totalBill = subtotal - discount
	assert.True(t, o.Discount.Equal(dec("8")))
	assert.True(t, o.TotalBill.Equal(dec("72")))
	require.NotNil(t, o.CouponCode)
	assert.Equal(t, "SAVE10", *o.CouponCode)
	require.NotNil(t, o.User)
	assert.Equal(t, u.ID, o.User.ID)

	assert.Equal(t, []string{"created:" + o.ID}, e.publisher.events)
	assert.Equal(t, 1.0, promtestutil.ToFloat64(e.metrics.OrdersCreated.WithLabelValues(metrics.SourceCheckout)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(e.metrics.CouponsApplied.WithLabelValues("SAVE10")))
}

func TestCheckoutPlaceOrder_DeductsPoints(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)
	testutil.SeedPoints(t, e.db, u.ID, 50)
	it := testutil.SeedItem(t, e.db, "Mug", "20")

	o, err := e.checkout.PlaceOrder(ctx, u.ID, CheckoutInput{
		Items:          []OrderItemInput{{InventoryID: it.ID, Quantity: 3}},
		PointsToRedeem: 30,
	})
	require.NoError(t, err)

	assert.True(t, o.Discount.Equal(dec("30")))
	assert.True(t, o.TotalBill.Equal(dec("30")))
	assert.Nil(t, o.CouponCode)

	p, err := e.points.GetBalance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), p.Balance)
	assert.Equal(t, 30.0, promtestutil.ToFloat64(e.metrics.PointsRedeemed))
}

func TestCheckoutPlaceOrder_FailureLeavesNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, e.db, model.RoleUser)
	testutil.SeedPoints(t, e.db, u.ID, 5)
	it := testutil.SeedItem(t, e.db, "Mug", "20")

	_, err := e.checkout.PlaceOrder(ctx, u.ID, CheckoutInput{InventoryID: it.ID, PointsToRedeem: 10})
	requireStatus(t, err, http.StatusBadRequest)

	orders, err := e.orders.ListMine(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	p, err := e.points.GetBalance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Balance)
	assert.Empty(t, e.publisher.events)
}

func TestCheckoutPlaceOrder_UnknownUser(t *testing.T) {
	e := newEnv(t)
	it := testutil.SeedItem(t, e.db, "Mug", "20")

	_, err := e.checkout.PlaceOrder(context.Background(), "ghost", CheckoutInput{InventoryID: it.ID})
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestOrderUsecase_GetMineHidesOtherUsersOrders(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, e.db, model.RoleUser)
	bob := testutil.SeedUser(t, e.db, model.RoleUser)
	it := testutil.SeedItem(t, e.db, "Mug", "20")

	o, err := e.checkout.PlaceOrder(ctx, alice.ID, CheckoutInput{InventoryID: it.ID})
	require.NoError(t, err)

	mine, err := e.orders.GetMine(ctx, alice.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, mine.ID)

	_, err = e.orders.GetMine(ctx, bob.ID, o.ID)
	requireStatus(t, err, http.StatusNotFound)

	bobs, err := e.orders.ListMine(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)
}
