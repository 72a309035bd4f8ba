// Package pagination 커서(keyset) 기반 페이지네이션
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

var ErrInvalidCursor = errors.New("invalid cursor")

// Window 한 페이지를 조회하기 위한 범위
// After 가 있으면 id < After 조건, Fetch 는 다음 페이지 존재 확인용으로 Limit+1
type Window struct {
	After *uint
	Limit int
	Fetch int
}

// Page 커서 페이지 응답
type Page[T any] struct {
	Items       []T     `json:"items"`
	HasNextPage bool    `json:"hasNextPage"`
	NextCursor  *string `json:"nextCursor"`
}

// Empty 빈 페이지
func Empty[T any]() Page[T] {
	return Page[T]{Items: []T{}}
}

// ParseRequest cursor/limit 요청을 조회 범위로 변환
func ParseRequest(cursor string, limit int) (Window, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	w := Window{Limit: limit, Fetch: limit + 1}

	cursor = strings.TrimSpace(cursor)
	if cursor == "" || cursor == "null" {
		return w, nil
	}
	id, err := strconv.ParseUint(cursor, 10, 64)
	if err != nil || id == 0 {
		return Window{}, ErrInvalidCursor
	}
	after := uint(id)
	w.After = &after
	return w, nil
}

// Trim 조회된 id 목록에서 현재 페이지와 다음 커서를 계산
func (w Window) Trim(ids []uint) (page []uint, hasNext bool, nextCursor *string) {
	if len(ids) <= w.Limit {
		return ids, false, nil
	}
	page = ids[:w.Limit]
	c := strconv.FormatUint(uint64(page[len(page)-1]), 10)
	return page, true, &c
}
