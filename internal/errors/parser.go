package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// Status 에러 코드에 대응하는 HTTP 상태
func (e ErrorInfo) Status() int {
	switch e.Code {
	case ResourceNotFound:
		return http.StatusNotFound
	case ResourceAlreadyExists, MemberNicknameUsed:
		return http.StatusConflict
	case ValidationRequired:
		return http.StatusBadRequest
	case InternalDatabaseError:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ParseError 저장소 계층 에러를 코드/메시지로 변환
// 쿼리나 테이블 정보는 응답에 노출하지 않는다.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "서버 오류가 발생했습니다"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	errLower := strings.ToLower(err.Error())

	// Unique constraint violation (postgres 23505 / sqlite UNIQUE)
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	if strings.Contains(errLower, "foreign key constraint") {
		return ErrorInfo{Code: ResourceNotFound, Message: "참조하는 데이터를 찾을 수 없습니다"}
	}

	if strings.Contains(errLower, "violates not-null constraint") || strings.Contains(errLower, "not null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "필수 항목이 누락되었습니다"}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "database is closed") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "일시적으로 데이터를 처리할 수 없습니다. 잠시 후 다시 시도해주세요",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: getDefaultErrorMessage(context)}
}

// parseDuplicateKeyError Unique constraint 위반 에러 파싱
func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "nick_name"):
		return ErrorInfo{Code: MemberNicknameUsed, Message: "이미 사용 중인 닉네임입니다"}
	case strings.Contains(errLower, "idx_review_member_like") || strings.Contains(errLower, "review_likes"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "이미 좋아요한 리뷰입니다"}
	case strings.Contains(errLower, "idx_blocked_pair") || strings.Contains(errLower, "blocked_members"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "이미 차단한 회원입니다"}
	case strings.Contains(errLower, "ingredient_name"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "이미 등록된 재료입니다"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "이미 존재하는 데이터입니다"}
}

// getNotFoundMessage context에 따른 Not Found 메시지
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "member") || strings.Contains(contextLower, "회원"):
		return "회원을 찾을 수 없습니다"
	case strings.Contains(contextLower, "review") || strings.Contains(contextLower, "리뷰"):
		return "리뷰를 찾을 수 없습니다"
	case strings.Contains(contextLower, "category") || strings.Contains(contextLower, "카테고리"):
		return "카테고리를 찾을 수 없습니다"
	case strings.Contains(contextLower, "point") || strings.Contains(contextLower, "포인트"):
		return "포인트 정보를 찾을 수 없습니다"
	}
	return "요청한 데이터를 찾을 수 없습니다"
}

// getDefaultErrorMessage context에 따른 기본 에러 메시지
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create") || strings.Contains(contextLower, "등록"):
		return "등록 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	case strings.Contains(contextLower, "update") || strings.Contains(contextLower, "수정"):
		return "수정 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	case strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "삭제"):
		return "삭제 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}
	return "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
}

// ParseAndRespond 에러를 파싱하여 응답 반환 (헬퍼 함수)
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
