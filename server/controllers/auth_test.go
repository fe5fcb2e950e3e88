package controllers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/teamcbatch1/conceptclarity/server/config"
	"github.com/teamcbatch1/conceptclarity/server/services/email"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/dao"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Str0ngPass!x", true},
		{"Aa1@aaaaaa", true},
		{"Sh0rt!a", false},         // under 10 chars
		{"alllowercase1!", false},  // no uppercase
		{"ALLUPPERCASE1!", false},  // no lowercase
		{"NoDigitsHere!", false},   // no digit
		{"NoSpecials123A", false},  // no special char
		{"Has Spaces1!A", false},   // whitespace
		{"Tabs\tInside1!A", false}, // whitespace
		{"", false},
		{"P@ssw0rd-with-dashes", true},
		{"Bracket{s}0k!!", true},
	}
	for _, tc := range cases {
		if got := ValidatePassword(tc.password); got != tc.valid {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.valid)
		}
	}
}

func newAuthFixture(t *testing.T) *AuthController {
	t.Helper()
	db := newTestDB(t)
	cfg := config.Config{JWTSecret: "test-secret", ClientURL: "http://localhost:5173"}
	return NewAuthController(dao.NewUserDAO(db), dao.NewPasswordResetDAO(db),
		email.NewMailer("", "", cfg.ClientURL), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	ctrl := newAuthFixture(t)
	ctx := context.Background()

	res, err := ctrl.Register(ctx, types.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "Str0ngPass!x",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" {
		t.Error("register returned no token")
	}
	if res.User.Email != "alice@example.com" {
		t.Errorf("email not lowercased: %q", res.User.Email)
	}
	if res.User.Role != models.RoleUser {
		t.Errorf("role = %q, want user", res.User.Role)
	}
	if res.User.Password == "Str0ngPass!x" || !strings.HasPrefix(res.User.Password, "$2") {
		t.Error("password not stored as a bcrypt hash")
	}

	// Login works with either identifier.
	for _, identifier := range []string{"alice", "alice@example.com"} {
		got, err := ctrl.Login(ctx, types.LoginRequest{Identifier: identifier, Password: "Str0ngPass!x"})
		if err != nil {
			t.Fatalf("Login(%q): %v", identifier, err)
		}
		if got.User.ID != res.User.ID {
			t.Errorf("Login(%q) returned user %d", identifier, got.User.ID)
		}
	}

	if _, err := ctrl.Login(ctx, types.LoginRequest{Identifier: "alice", Password: "wrong-pass"}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("wrong password = %v, want ErrUnauthorized", err)
	}
	if _, err := ctrl.Login(ctx, types.LoginRequest{Identifier: "nobody", Password: "Str0ngPass!x"}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("unknown identifier = %v, want ErrUnauthorized", err)
	}
}

func TestRegisterRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	ctrl := newAuthFixture(t)
	ctx := context.Background()

	if _, err := ctrl.Register(ctx, types.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "Str0ngPass!x",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []types.RegisterRequest{
		{Username: "bob", Email: "new@example.com", Password: "Str0ngPass!x"},    // duplicate username
		{Username: "newbob", Email: "bob@example.com", Password: "Str0ngPass!x"}, // duplicate email
		{Username: "weak", Email: "weak@example.com", Password: "weak"},          // weak password
		{Username: "", Email: "x@example.com", Password: "Str0ngPass!x"},         // missing field
	}
	for _, req := range cases {
		if _, err := ctrl.Register(ctx, req); !errors.Is(err, ErrBadRequest) {
			t.Errorf("Register(%+v) = %v, want ErrBadRequest", req, err)
		}
	}
}

func TestRegisterFirstAdminOnly(t *testing.T) {
	ctrl := newAuthFixture(t)
	ctx := context.Background()

	first, err := ctrl.Register(ctx, types.RegisterRequest{
		Username: "root", Email: "root@example.com", Password: "Str0ngPass!x", Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("first admin register: %v", err)
	}
	if first.User.Role != models.RoleAdmin {
		t.Errorf("first admin role = %q", first.User.Role)
	}

	if _, err := ctrl.Register(ctx, types.RegisterRequest{
		Username: "root2", Email: "root2@example.com", Password: "Str0ngPass!x", Role: models.RoleAdmin,
	}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("second admin register = %v, want ErrBadRequest", err)
	}

	exists, err := ctrl.CheckAdminExists(ctx)
	if err != nil || !exists {
		t.Errorf("CheckAdminExists = %v, %v", exists, err)
	}
}

func TestForgotPasswordUniformResponse(t *testing.T) {
	ctrl := newAuthFixture(t)
	ctx := context.Background()

	if _, err := ctrl.Register(ctx, types.RegisterRequest{
		Username: "carol", Email: "carol@example.com", Password: "Str0ngPass!x",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	known, err := ctrl.ForgotPassword(ctx, "carol@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword(known): %v", err)
	}
	unknown, err := ctrl.ForgotPassword(ctx, "stranger@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword(unknown): %v", err)
	}
	if known != unknown {
		t.Errorf("responses differ: %q vs %q", known, unknown)
	}
}

func TestResetPasswordRoundTrip(t *testing.T) {
	ctrl := newAuthFixture(t)
	ctx := context.Background()

	reg, err := ctrl.Register(ctx, types.RegisterRequest{
		Username: "dave", Email: "dave@example.com", Password: "Str0ngPass!x",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := ctrl.resetDAO.CreateResetToken(ctx, reg.User.ID)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if err := ctrl.ResetPassword(ctx, token, "N3wPassword!!"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := ctrl.Login(ctx, types.LoginRequest{Identifier: "dave", Password: "N3wPassword!!"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := ctrl.Login(ctx, types.LoginRequest{Identifier: "dave", Password: "Str0ngPass!x"}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("login with old password = %v, want ErrUnauthorized", err)
	}

	// Tokens are single use.
	if err := ctrl.ResetPassword(ctx, token, "An0therPass!!"); !errors.Is(err, ErrBadRequest) {
		t.Errorf("reused token = %v, want ErrBadRequest", err)
	}
}
