package repository

import "errors"

var (
	// 対象なしを統一
	ErrNotFound = errors.New("not found")
	// unique制約違反
	ErrDuplicate = errors.New("duplicate")
)
