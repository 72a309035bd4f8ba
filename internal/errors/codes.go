package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED"  // 로그인 필요
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED" // 토큰 만료
	AuthTokenInvalid = "AUTH_TOKEN_INVALID" // 잘못된 토큰

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 권한 정보 없음
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // 작성자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidCursor = "VALIDATION_INVALID_CURSOR" // 잘못된 커서
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 회원 (MEMBER_) ====================
	MemberNotFound        = "MEMBER_NOT_FOUND"        // 회원 없음
	MemberNicknameUsed    = "MEMBER_NICKNAME_USED"    // 닉네임 중복
	MemberSelfBlock       = "MEMBER_SELF_BLOCK"       // 본인 차단 불가
	MemberProfileInvalid  = "MEMBER_PROFILE_INVALID"  // 잘못된 회원 정보
	MemberInterestInvalid = "MEMBER_INTEREST_INVALID" // 잘못된 관심 디저트

	// ==================== 리뷰 (REVIEW_) ====================
	ReviewNotFound           = "REVIEW_NOT_FOUND"               // 리뷰 없음
	ReviewCategoryNotFound   = "REVIEW_CATEGORY_NOT_FOUND"      // 카테고리 없음
	ReviewIngredientNotFound = "REVIEW_INGREDIENT_NOT_FOUND"    // 재료 없음
	ReviewImageNotFound      = "REVIEW_IMAGE_NOT_FOUND"         // 이미지 없음
	ReviewImageCapacity      = "REVIEW_IMAGE_CAPACITY_EXCEEDED" // 이미지 최대 개수 초과
	ReviewImageInvalid       = "REVIEW_IMAGE_INVALID"           // 허용되지 않는 이미지
	ReviewLikeTargetNotFound = "REVIEW_LIKE_TARGET_NOT_FOUND"   // 좋아요 대상 없음
	ReviewAccusationInvalid  = "REVIEW_ACCUSATION_INVALID"      // 잘못된 신고 사유

	// ==================== 포인트 (POINT_) ====================
	PointInsufficientBalance = "POINT_INSUFFICIENT_BALANCE" // 보유 포인트 부족
	PointInvalidAmount       = "POINT_INVALID_AMOUNT"       // 잘못된 포인트 값
	PointBalanceOverflow     = "POINT_BALANCE_OVERFLOW"     // 잔액 한도 초과

	// ==================== 시스템 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"  // 파일 저장소 오류
	InternalRateLimited   = "INTERNAL_RATE_LIMITED"   // 요청 과다
)
