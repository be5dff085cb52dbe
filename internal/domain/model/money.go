package model

import "github.com/shopspring/decimal"

// 金額はJSONでは数値で返す（フロントがnumberで扱うため）
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
