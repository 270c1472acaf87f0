package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow(t *testing.T) {
	app := setupApp(t)

	t.Run("register then fetch profile", func(t *testing.T) {
		token, referralCode, _ := app.registerUser(t, "alice@example.com", "")
		if referralCode == "" {
			t.Fatal("expected a generated referral code")
		}

		rec := app.request("GET", "/api/v1/profile", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("profile failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["email"] != "alice@example.com" {
			t.Errorf("email = %v, want alice@example.com", user["email"])
		}
		if user["balance"] != float64(0) {
			t.Errorf("balance = %v, want 0", user["balance"])
		}
	})

	t.Run("login issues working tokens", func(t *testing.T) {
		token, _ := app.loginUser(t, "alice@example.com", "password123")
		rec := app.request("GET", "/api/v1/profile", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("profile with login token failed: %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("login with wrong password fails", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/login",
			`{"email":"alice@example.com","password":"wrongpass1"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("refresh rotates the refresh token", func(t *testing.T) {
		_, refreshToken := app.loginUser(t, "alice@example.com", "password123")

		body := fmt.Sprintf(`{"refresh_token":%q}`, refreshToken)
		rec := app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == "" || result["refresh_token"] == "" {
			t.Fatal("expected new token pair")
		}

		// The old refresh token was invalidated by the rotation.
		rec = app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("reused refresh token: status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("protected route rejects missing token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/profile", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
