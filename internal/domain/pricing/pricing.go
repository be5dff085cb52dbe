// Package pricing computes order totals from line items, coupons and
// redeemed loyalty points. It has no storage dependencies.
package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCoupon           = errors.New("invalid coupon code")
	ErrDiscountExceedsSubtotal = errors.New("discount exceeds subtotal")
	ErrNegativePoints          = errors.New("points to redeem must be >= 0")
	ErrInvalidQuantity         = errors.New("quantity must be >= 1")
	ErrNoItems                 = errors.New("items are required")
)

var hundred = decimal.NewFromInt(100)

// Line is one priced entry of a quote.
type Line struct {
	InventoryID string          `json:"inventoryId"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int64           `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

type Quote struct {
	Lines          []Line          `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	CouponCode     string          `json:"couponCode,omitempty"`
	CouponDiscount decimal.Decimal `json:"couponDiscount"`
	PointsRedeemed int64           `json:"pointsRedeemed"`
	PointsDiscount decimal.Decimal `json:"pointsDiscount"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
}

// Coupons is the code -> percent registry. Lookups ignore case.
type Coupons struct {
	percents map[string]int
}

func NewCoupons(percents map[string]int) Coupons {
	m := make(map[string]int, len(percents))
	for code, pct := range percents {
		m[NormalizeCode(code)] = pct
	}
	return Coupons{percents: m}
}

func DefaultCoupons() Coupons {
	return NewCoupons(map[string]int{"SAVE10": 10})
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c Coupons) Percent(code string) (int, bool) {
	pct, ok := c.percents[NormalizeCode(code)]
	return pct, ok
}

func (c Coupons) IsValid(code string) bool {
	_, ok := c.Percent(code)
	return ok
}

// NewLine prices qty units of an item.
func NewLine(inventoryID, name string, unitPrice decimal.Decimal, qty int64) (Line, error) {
	if qty < 1 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{
		InventoryID: inventoryID,
		Name:        name,
		UnitPrice:   unitPrice,
		Quantity:    qty,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(qty)),
	}, nil
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal)
	}
	return sum
}

// 小数第2位で丸める
func CouponDiscount(subtotal decimal.Decimal, percent int) decimal.Decimal {
	return subtotal.Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(2)
}

// Calculate builds a quote. An empty coupon code means no coupon.
// Coupon and points discounts add up and together may not exceed the subtotal.
func (c Coupons) Calculate(lines []Line, couponCode string, points int64) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, ErrNoItems
	}
	if points < 0 {
		return Quote{}, ErrNegativePoints
	}

	q := Quote{
		Lines:          lines,
		Subtotal:       Subtotal(lines),
		CouponDiscount: decimal.Zero,
		PointsRedeemed: points,
		PointsDiscount: decimal.NewFromInt(points),
	}

	if code := NormalizeCode(couponCode); code != "" {
		pct, ok := c.Percent(code)
		if !ok {
			return Quote{}, ErrInvalidCoupon
		}
		q.CouponCode = code
		q.CouponDiscount = CouponDiscount(q.Subtotal, pct)
	}

	q.Discount = q.CouponDiscount.Add(q.PointsDiscount)
	if q.Discount.GreaterThan(q.Subtotal) {
		return Quote{}, ErrDiscountExceedsSubtotal
	}
	q.Total = q.Subtotal.Sub(q.Discount)
	return q, nil
}
