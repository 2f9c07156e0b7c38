package auth

import (
	"testing"
	"time"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/models"
	"retail-edge-pos/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
)

func init() {
	SetSecret(testutil.TestSecret)
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"too short", "abc", false},
		{"policy example", "Abcdef1!", true},
		{"no uppercase", "abcdef1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcdefg1", false},
		{"symbol outside allowed set", "Abcdef1^", false},
		{"space not allowed", "Abc def1!", false},
		{"long and strong", "Str0ng#Passw0rd", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.valid && err != nil {
				t.Errorf("Expected %q to pass, got %v", tc.password, err)
			}
			if !tc.valid && !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("Expected validation error for %q, got %v", tc.password, err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	db := testutil.NewDB(t)

	user, err := Register(db, RegisterRequest{
		FullName: "Asha Rao",
		Email:    "  Asha@Shop.COM ",
		Password: "Abcdef1!",
		Role:     "STAFF",
	}, false)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Email != "asha@shop.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}
	if user.Role != models.RoleStaff {
		t.Errorf("Expected role staff, got %s", user.Role)
	}
	if user.Approved {
		t.Error("New staff must start unapproved")
	}
	if user.PasswordHash == "Abcdef1!" || !CheckPassword(user.PasswordHash, "Abcdef1!") {
		t.Error("Password must be stored as a bcrypt hash")
	}

	_, err = Register(db, RegisterRequest{FullName: "Other", Email: "ASHA@shop.com", Password: "Abcdef1!", Role: "staff"}, false)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("Expected conflict for duplicate email, got %v", err)
	}

	_, err = Register(db, RegisterRequest{FullName: "Weak", Email: "weak@shop.com", Password: "abc", Role: "staff"}, false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("Expected validation error for weak password, got %v", err)
	}

	_, err = Register(db, RegisterRequest{FullName: "Boss", Email: "boss@shop.com", Password: "Abcdef1!", Role: "manager"}, false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("Expected validation error for unknown role, got %v", err)
	}
}

func TestRegisterAdmin(t *testing.T) {
	db := testutil.NewDB(t)

	first, err := Register(db, RegisterRequest{FullName: "Owner", Email: "owner@shop.com", Password: "Abcdef1!", Role: "Admin"}, false)
	if err != nil {
		t.Fatalf("First admin registration failed: %v", err)
	}
	if !first.Approved {
		t.Error("Admins are approved on creation")
	}

	_, err = Register(db, RegisterRequest{FullName: "Second", Email: "second@shop.com", Password: "Abcdef1!", Role: "admin"}, false)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("Expected forbidden once an admin exists, got %v", err)
	}

	if _, err := Register(db, RegisterRequest{FullName: "Second", Email: "second@shop.com", Password: "Abcdef1!", Role: "admin"}, true); err != nil {
		t.Errorf("Expected admin registration to be allowed when opened, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "Admin", "admin@shop.com", "Abcdef1!", models.RoleAdmin, true)
	testutil.CreateUser(t, db, "Approved Staff", "staff@shop.com", "Abcdef1!", models.RoleStaff, true)
	testutil.CreateUser(t, db, "New Staff", "new@shop.com", "Abcdef1!", models.RoleStaff, false)

	testCases := []struct {
		name    string
		req     LoginRequest
		wantErr string
	}{
		{"admin ok", LoginRequest{Email: "admin@shop.com", Password: "Abcdef1!"}, ""},
		{"staff ok with role", LoginRequest{Email: "Staff@Shop.com", Password: "Abcdef1!", Role: "Staff"}, ""},
		{"unknown email", LoginRequest{Email: "nobody@shop.com", Password: "Abcdef1!"}, "Email not found"},
		{"wrong password", LoginRequest{Email: "staff@shop.com", Password: "Wrong1!x"}, "Incorrect password"},
		{"role mismatch", LoginRequest{Email: "staff@shop.com", Password: "Abcdef1!", Role: "admin"}, "Role mismatch"},
		{"unapproved staff", LoginRequest{Email: "new@shop.com", Password: "Abcdef1!"}, "Account is awaiting admin approval"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Login(db, tc.req)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				claims, err := ValidateToken(result.Token)
				if err != nil {
					t.Fatalf("Issued token did not validate: %v", err)
				}
				if claims.UserID != result.User.ID || claims.Role != result.User.Role || claims.Email != result.User.Email {
					t.Errorf("Claims %+v do not match user %+v", claims, result.User)
				}
				return
			}
			if !apperr.Is(err, apperr.KindAuth) {
				t.Fatalf("Expected auth error, got %v", err)
			}
			if apperr.PublicMessage(err) != tc.wantErr {
				t.Errorf("Expected %q, got %q", tc.wantErr, apperr.PublicMessage(err))
			}
			if result != nil {
				t.Error("No token may be issued on failure")
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	valid, err := GenerateToken(7, "staff@shop.com", models.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	expired := signed(t, &Claims{
		UserID: 7, Role: models.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}, jwt.SigningMethodHS256, []byte(testutil.TestSecret))

	foreign := signed(t, &Claims{
		UserID: 7, Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}, jwt.SigningMethodHS256, []byte("some-other-secret-of-sufficient-length"))

	wrongAlg := signed(t, &Claims{
		UserID: 7, Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}, jwt.SigningMethodHS512, []byte(testutil.TestSecret))

	testCases := []struct {
		name  string
		token string
		ok    bool
	}{
		{"valid", valid, true},
		{"missing", "", false},
		{"malformed", "not.a.jwt", false},
		{"expired", expired, false},
		{"wrong secret", foreign, false},
		{"wrong algorithm", wrongAlg, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := ValidateToken(tc.token)
			if tc.ok {
				if err != nil || claims.UserID != 7 {
					t.Fatalf("Expected valid claims, got %v, %v", claims, err)
				}
				if ttl := time.Until(claims.ExpiresAt.Time); ttl > TokenTTL || ttl < TokenTTL-time.Minute {
					t.Errorf("Expected ~2h expiry, got %v", ttl)
				}
				return
			}
			if !apperr.Is(err, apperr.KindAuth) {
				t.Errorf("Expected auth error, got %v", err)
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "Admin", "admin@shop.com", "Abcdef1!", models.RoleAdmin, true)
	testutil.CreateUser(t, db, "Staff", "staff@shop.com", "Abcdef1!", models.RoleStaff, true)

	updated, err := UpdateProfile(db, admin.ID, ProfileUpdate{FullName: "Head Admin", Password: "N3w#Secret"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.FullName != "Head Admin" || updated.Email != "admin@shop.com" {
		t.Errorf("Unexpected profile %+v", updated)
	}
	if _, err := Login(db, LoginRequest{Email: "admin@shop.com", Password: "N3w#Secret"}); err != nil {
		t.Errorf("Expected new password to work, got %v", err)
	}

	_, err = UpdateProfile(db, admin.ID, ProfileUpdate{Email: "staff@shop.com"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("Expected conflict when taking another user's email, got %v", err)
	}

	_, err = UpdateProfile(db, admin.ID, ProfileUpdate{Password: "weak"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("Expected validation error for weak password, got %v", err)
	}

	_, err = UpdateProfile(db, 999, ProfileUpdate{FullName: "Ghost"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func signed(t *testing.T, claims *Claims, method jwt.SigningMethod, key []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return s
}
