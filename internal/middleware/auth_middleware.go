package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/errors"
	"github.com/ikkim/dessert-review-backend/pkg/util"
)

// gin 컨텍스트 키
const (
	MemberIDKey   = "member_id"
	MemberRoleKey = "member_role"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// bearerToken "Bearer <token>" 형식에서 토큰 추출
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setMember(c *gin.Context, claims *util.Claims) {
	role := model.MemberRole(claims.Role)
	if role == "" {
		role = model.RoleMember
	}
	c.Set(MemberIDKey, claims.MemberID)
	c.Set(MemberRoleKey, role)
}

// Authenticate 액세스 토큰 필수
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "인증 형식이 올바르지 않습니다")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if stderrors.Is(err, util.ErrExpiredToken) {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "로그인이 만료되었습니다")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "유효하지 않은 인증 토큰입니다")
			}
			c.Abort()
			return
		}

		setMember(c, claims)

		log.Debug("Member authenticated", map[string]interface{}{
			"member_id": claims.MemberID,
			"role":      claims.Role,
		})

		c.Next()
	}
}

// OptionalAuthenticate 토큰이 있으면 검증, 없거나 잘못되면 비회원으로 진행
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Debug("Token validation failed - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		setMember(c, claims)
		c.Next()
	}
}

// RequireRole 지정한 권한 중 하나 필요 (Authenticate 뒤에 사용)
func (m *AuthMiddleware) RequireRole(roles ...model.MemberRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, exists := GetMemberRole(c)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "권한 정보를 찾을 수 없습니다")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		memberID, _ := GetMemberID(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"member_id":      memberID,
			"member_role":    role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Forbidden(c, "접근 권한이 없습니다")
		c.Abort()
	}
}

// GetMemberID 인증된 회원 ID
func GetMemberID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(MemberIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetOptionalMemberID 비회원이면 nil
func GetOptionalMemberID(c *gin.Context) *uint {
	id, ok := GetMemberID(c)
	if !ok {
		return nil
	}
	return &id
}

func GetMemberRole(c *gin.Context) (model.MemberRole, bool) {
	v, exists := c.Get(MemberRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(model.MemberRole)
	return role, ok
}
