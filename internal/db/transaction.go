package db

import (
	"context"

	"gorm.io/gorm"
)

// RunInTx fn 을 하나의 트랜잭션으로 실행한다.
// fn 이 에러를 반환하거나 panic 이 나면 전체 롤백된다.
// 요청 컨텍스트가 중간에 취소되어도 이미 시작한 작업은 커밋 또는 롤백까지 진행한다.
func RunInTx(ctx context.Context, conn *gorm.DB, fn func(tx *gorm.DB) error) error {
	return conn.WithContext(context.WithoutCancel(ctx)).Transaction(fn)
}
