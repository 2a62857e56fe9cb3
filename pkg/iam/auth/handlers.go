package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/logx"
)

// AuthHandlers exposes the login session endpoints on Fiber.
type AuthHandlers struct {
	verifier     CredentialVerifier
	tokenService TokenService
	sessions     SessionStore
	sessionTTL   time.Duration
}

// NewAuthHandlers creates the auth handler set.
func NewAuthHandlers(
	verifier CredentialVerifier,
	tokenService TokenService,
	sessions SessionStore,
	sessionTTL time.Duration,
) *AuthHandlers {
	return &AuthHandlers{
		verifier:     verifier,
		tokenService: tokenService,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
	}
}

// LoginRequest is the credential pair of the portal login form.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest renews an access token from a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionResponse is returned on login and refresh.
type SessionResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int        `json:"expires_in"`
	User         AccountDTO `json:"user"`
}

// AccountDTO is the operator identity plus the surfaces it may open.
type AccountDTO struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Role  iam.Role   `json:"role"`
	Views []iam.View `json:"views"`
}

// RegisterRoutes registers the auth routes on Fiber.
func (ah *AuthHandlers) RegisterRoutes(router fiber.Router, authMiddleware *AuthMiddleware) {
	auth := router.Group("/auth")

	auth.Post("/login", ah.Login)
	auth.Post("/refresh", ah.Refresh)
	auth.Post("/logout", ah.Logout)
	auth.Get("/me", authMiddleware.Authenticate(), ah.Me)
}

// Login verifies credentials and opens a session. The response never hints
// whether the username or the password was wrong.
func (ah *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	account, err := ah.verifier.Verify(c.Context(), req.Username, req.Password)
	if err != nil {
		logx.WithFields(logx.Fields{"username": req.Username}).Warnf("login rejected")
		return iam.ErrInvalidCredentials()
	}

	return ah.openSession(c, *account)
}

// Refresh exchanges a refresh token for a new token pair.
func (ah *AuthHandlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if _, err := ah.tokenService.ValidateRefreshToken(req.RefreshToken); err != nil {
		return err
	}

	session, err := ah.sessions.Find(c.Context(), req.RefreshToken)
	if err != nil {
		return iam.ErrSessionNotFound()
	}

	if err := ah.sessions.Delete(c.Context(), req.RefreshToken); err != nil {
		logx.Warnf("failed to rotate session: %v", err)
	}

	return ah.openSession(c, session.Account)
}

// Logout closes the session bound to the given refresh token.
func (ah *AuthHandlers) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.RefreshToken != "" {
		if err := ah.sessions.Delete(c.Context(), req.RefreshToken); err != nil {
			logx.Warnf("failed to delete session: %v", err)
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the identity behind the presented access token.
func (ah *AuthHandlers) Me(c *fiber.Ctx) error {
	authContext, ok := GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	role := iam.Role(authContext.Role)
	return c.JSON(AccountDTO{
		ID:    authContext.UserID.String(),
		Name:  authContext.Name,
		Role:  role,
		Views: accessibleViews(role),
	})
}

func (ah *AuthHandlers) openSession(c *fiber.Ctx, account Account) error {
	accessToken, err := ah.tokenService.GenerateAccessToken(account)
	if err != nil {
		return err
	}

	refreshToken, err := ah.tokenService.GenerateRefreshToken(account.ID)
	if err != nil {
		return err
	}

	session := Session{
		RefreshToken: refreshToken,
		Account:      account,
		ExpiresAt:    time.Now().Add(ah.sessionTTL),
	}
	if err := ah.sessions.Save(c.Context(), session); err != nil {
		return err
	}

	return c.JSON(SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(ah.tokenService.AccessTokenTTL().Seconds()),
		User: AccountDTO{
			ID:    account.ID.String(),
			Name:  account.Name,
			Role:  account.Role,
			Views: accessibleViews(account.Role),
		},
	})
}

func accessibleViews(role iam.Role) []iam.View {
	all := []iam.View{iam.ViewPipeline, iam.ViewTeam, iam.ViewFormation, iam.ViewPlanning}
	views := make([]iam.View, 0, len(all))
	for _, v := range all {
		if iam.CanAccess(role, v) {
			views = append(views, v)
		}
	}
	return views
}
