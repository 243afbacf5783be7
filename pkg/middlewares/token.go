package middlewares

import (
	"strings"

	t_token "farm_market_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	//QueryToken token in query name
	QueryToken = "auth"

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenAccountID get account id form token, set c.locals name
	TokenAccountID = "AccountID"
	//TokenAccountName get display name form token, set c.locals name
	TokenAccountName = "AccountName"
	//TokenAccountEmail get email form token, set c.locals name
	TokenAccountEmail = "AccountEmail"
	//TokenRole get role form token, set c.locals name
	TokenRole = "role"
)

// extractToken 依序從 query、cookie、Authorization header 取 token
func extractToken(c *fiber.Ctx) string {
	tokenStr := c.Query(QueryToken)

	if tokenStr == "" {
		tokenStr = c.Cookies(CookieToken)
	}

	if tokenStr == "" {
		auth := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(auth, "Bearer ") {
			tokenStr = auth[7:]
		}
	}

	return tokenStr
}

func setClaims(c *fiber.Ctx, claims *t_token.Claims) {
	c.Locals(TokenAccountID, claims.AccountID)
	c.Locals(TokenAccountName, claims.Name)
	c.Locals(TokenAccountEmail, claims.Email)
	c.Locals(TokenRole, claims.Role)
}

// JWTMiddleware validates JWT in the query, cookie or Authorization header
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := extractToken(c)

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		claims, err := t_token.ParseJWT(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		setClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth 帶 token 時解析 claims，沒帶時放行（guest 由 handler 處理）
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			return c.Next()
		}

		claims, err := t_token.ParseJWT(tokenStr)
		if err != nil {
			// token 無效視同未登入，不擋 guest 流程
			return c.Next()
		}

		setClaims(c, claims)
		return c.Next()
	}
}

// AdminRequired 需搭配 JWTMiddleware，檢查角色是否為 admin
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(TokenRole).(string)
		if !ok || role != string(t_token.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}
