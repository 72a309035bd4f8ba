package service

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MaxPointAmount 한 번에 적립/회수할 수 있는 최대 포인트
	MaxPointAmount = math.MaxInt32
	// MaxPointBalance 회원 잔액 상한
	MaxPointBalance = math.MaxInt32
)

// PointAmount 방향이 확정된 포인트 변동량
// ToSavePoint / ToRecallPoint 로만 만들 수 있다.
type PointAmount struct {
	delta int
}

func (a PointAmount) Delta() int {
	return a.delta
}

// ToSavePoint 적립: |x| 를 사용하며 1 이상이어야 한다
func ToSavePoint(x int) (PointAmount, error) {
	if !inAmountRange(x) {
		return PointAmount{}, ErrInvalidAmount
	}
	d := abs(x)
	if d < 1 {
		return PointAmount{}, ErrInvalidAmount
	}
	return PointAmount{delta: d}, nil
}

// ToRecallPoint 회수: -|x| 를 사용하며 -1 이하여야 한다
func ToRecallPoint(x int) (PointAmount, error) {
	if !inAmountRange(x) {
		return PointAmount{}, ErrInvalidAmount
	}
	d := -abs(x)
	if d > -1 {
		return PointAmount{}, ErrInvalidAmount
	}
	return PointAmount{delta: d}, nil
}

// ParsePointValue 요청으로 받은 포인트 문자열 파싱 (빈 값, 숫자가 아닌 값, 범위를 넘는 값은 거부)
func ParsePointValue(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.Atoi(raw)
	if err != nil || !inAmountRange(v) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

func inAmountRange(x int) bool {
	return x >= -MaxPointAmount && x <= MaxPointAmount
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
