package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/kernel"
)

// AuthMiddleware guards routes behind access-token validation.
type AuthMiddleware struct {
	tokenService TokenService
}

func NewAuthMiddleware(tokenService TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate validates the bearer token (or access_token cookie) and puts
// the operator identity in the request locals.
func (am *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return iam.ErrUnauthorized()
		}

		claims, err := am.tokenService.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		c.Locals("auth", &kernel.AuthContext{
			UserID: claims.UserID,
			Name:   claims.Name,
			Role:   string(claims.Role),
		})
		return c.Next()
	}
}

// RequireRole allows only the listed roles through. Admin always passes.
func (am *AuthMiddleware) RequireRole(roles ...iam.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return iam.ErrUnauthorized()
		}

		role := iam.Role(authContext.Role)
		if role == iam.RoleAdmin {
			return c.Next()
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return iam.ErrForbidden().WithDetail("required_roles", roles)
	}
}

// RequireView allows only roles that may open the given surface.
func (am *AuthMiddleware) RequireView(view iam.View) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return iam.ErrUnauthorized()
		}

		if !iam.CanAccess(iam.Role(authContext.Role), view) {
			return iam.ErrForbidden().WithDetail("view", string(view))
		}
		return c.Next()
	}
}

// GetAuthContext returns the operator identity set by Authenticate.
func GetAuthContext(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	authContext, ok := c.Locals("auth").(*kernel.AuthContext)
	return authContext, ok
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1]
		}
	}
	return c.Cookies("access_token")
}
