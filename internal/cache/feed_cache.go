// Package cache 추천 카테고리 피드 캐시
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// FeedCache JSON 으로 직렬화한 값을 키 단위로 보관한다.
// 조회 실패는 캐시 미스로 취급하고 호출자는 원본에서 다시 계산한다.
type FeedCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CategoryFeedKey 회원별 추천 카테고리 캐시 키 (비회원은 0)
func CategoryFeedKey(viewerID *uint) string {
	var id uint
	if viewerID != nil {
		id = *viewerID
	}
	return fmt.Sprintf("feed:categories:%d", id)
}

func encode(value interface{}) ([]byte, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache value: %w", err)
	}
	return b, nil
}

func decode(b []byte, dest interface{}) error {
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("failed to decode cache value: %w", err)
	}
	return nil
}
