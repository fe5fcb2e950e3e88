package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamcbatch1/conceptclarity/server/config"
	"github.com/teamcbatch1/conceptclarity/server/services/email"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/dao"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

const passwordPolicyMessage = "Password must be at least 10 characters with uppercase, lowercase, number, and special character"

// forgotPasswordMessage is returned whether or not the email exists, so the
// endpoint can't be used to probe accounts.
const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

type AuthController struct {
	userDAO  *dao.UserDAO
	resetDAO *dao.PasswordResetDAO
	mailer   *email.Mailer
	cfg      config.Config
}

func NewAuthController(userDAO *dao.UserDAO, resetDAO *dao.PasswordResetDAO, mailer *email.Mailer, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO:  userDAO,
		resetDAO: resetDAO,
		mailer:   mailer,
		cfg:      cfg,
	}
}

type AuthResult struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}

func (c *AuthController) Register(ctx context.Context, req types.RegisterRequest) (*AuthResult, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: Missing required fields", ErrBadRequest)
	}
	if !ValidatePassword(req.Password) {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, passwordPolicyMessage)
	}

	if existing, err := c.userDAO.GetUserByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: Username unavailable. Please choose another.", ErrBadRequest)
	}
	if existing, err := c.userDAO.GetUserByEmail(ctx, strings.ToLower(req.Email)); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: Email already registered. Please use another.", ErrBadRequest)
	}

	// Only the very first admin registration is allowed through the API.
	role := models.RoleUser
	if req.Role == models.RoleAdmin {
		adminExists, err := c.userDAO.AdminExists(ctx)
		if err != nil {
			return nil, err
		}
		if adminExists {
			return nil, fmt.Errorf("%w: Admin already exists", ErrBadRequest)
		}
		role = models.RoleAdmin
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: req.Username,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
		Role:     role,
	}
	if err := c.userDAO.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	token, err := c.generateToken(&user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: &user, Message: "Registration successful"}, nil
}

func (c *AuthController) Login(ctx context.Context, req types.LoginRequest) (*AuthResult, error) {
	if req.Identifier == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: Email/Username and password required", ErrBadRequest)
	}

	user, err := c.userDAO.GetUserByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: Invalid credentials", ErrUnauthorized)
	}

	token, err := c.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user, Message: "Login successful"}, nil
}

func (c *AuthController) Verify(ctx context.Context, userID int) (*models.User, error) {
	user, err := c.userDAO.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, nil
}

func (c *AuthController) CheckAdminExists(ctx context.Context) (bool, error) {
	return c.userDAO.AdminExists(ctx)
}

func (c *AuthController) ForgotPassword(ctx context.Context, emailAddr string) (string, error) {
	if emailAddr == "" {
		return "", fmt.Errorf("%w: Email is required", ErrBadRequest)
	}

	user, err := c.userDAO.GetUserByEmail(ctx, strings.ToLower(emailAddr))
	if err != nil {
		return "", err
	}
	if user == nil {
		return forgotPasswordMessage, nil
	}

	token, err := c.resetDAO.CreateResetToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	if err := c.mailer.SendPasswordResetEmail(ctx, user.Email, user.Username, token); err != nil {
		// Delivery failure stays invisible to the caller.
		logging.ErrorLogger.Error("password reset mail failed", zap.Error(err))
	}
	return forgotPasswordMessage, nil
}

func (c *AuthController) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("%w: Token and new password are required", ErrBadRequest)
	}
	if !ValidatePassword(newPassword) {
		return fmt.Errorf("%w: %s", ErrBadRequest, passwordPolicyMessage)
	}

	record, err := c.resetDAO.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: Invalid or expired reset token", ErrBadRequest)
	}

	user, err := c.userDAO.GetUserByID(ctx, record.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: Invalid or expired reset token", ErrBadRequest)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := c.userDAO.UpdateUser(ctx, user); err != nil {
		return err
	}

	return c.resetDAO.DeleteRecord(ctx, record)
}

func (c *AuthController) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWTSecret))
}

// ValidatePassword enforces the account password policy: at least 10
// characters, no whitespace, and at least one lowercase letter, uppercase
// letter, digit and special character.
func ValidatePassword(password string) bool {
	if len(password) < 10 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return false
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(`@$!%*?&#^()_+=-{}[]|:;"'<>,./`, r):
			hasSpecial = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}
