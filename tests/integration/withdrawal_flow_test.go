package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestWithdrawalFlow(t *testing.T) {
	app := setupApp(t)
	adminToken := app.registerAdmin(t, "admin@example.com")
	userToken, _, _ := app.registerUser(t, "heidi@example.com", "")
	app.fundUser(t, userToken, adminToken, 10000)

	requestWithdrawal := func(t *testing.T, amount int64) (int, *map[string]interface{}) {
		t.Helper()
		body := fmt.Sprintf(`{"amount":%d,"method":"usdt_trc20","account_details":"TXabc123"}`, amount)
		rec := app.request("POST", "/api/v1/withdrawals", body, userToken)
		result := parseJSON(t, rec)
		return rec.Code, &result
	}

	t.Run("request holds the amount", func(t *testing.T) {
		code, result := requestWithdrawal(t, 3000)
		if code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", code, http.StatusCreated)
		}
		withdrawal := (*result)["withdrawal"].(map[string]interface{})
		if withdrawal["status"] != "pending" {
			t.Errorf("status = %v, want pending", withdrawal["status"])
		}
		if got := app.getBalance(t, userToken); got != 7000 {
			t.Errorf("balance = %v, want 7000", got)
		}

		withdrawalID := int(withdrawal["id"].(float64))
		rec := app.request("POST", fmt.Sprintf("/api/v1/admin/withdrawals/%d/reject", withdrawalID),
			`{"note":"invalid wallet"}`, adminToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("reject failed: %d %s", rec.Code, rec.Body.String())
		}
		if got := app.getBalance(t, userToken); got != 10000 {
			t.Errorf("balance after refund = %v, want 10000", got)
		}
	})

	t.Run("approval keeps the hold", func(t *testing.T) {
		code, result := requestWithdrawal(t, 2000)
		if code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", code, http.StatusCreated)
		}
		withdrawal := (*result)["withdrawal"].(map[string]interface{})
		withdrawalID := int(withdrawal["id"].(float64))

		rec := app.request("POST", fmt.Sprintf("/api/v1/admin/withdrawals/%d/approve", withdrawalID), "", adminToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("approve failed: %d %s", rec.Code, rec.Body.String())
		}
		if got := app.getBalance(t, userToken); got != 8000 {
			t.Errorf("balance = %v, want 8000", got)
		}
	})

	t.Run("below the minimum is rejected", func(t *testing.T) {
		code, _ := requestWithdrawal(t, 400)
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", code, http.StatusBadRequest)
		}
	})

	t.Run("over the balance is rejected", func(t *testing.T) {
		code, _ := requestWithdrawal(t, 50000)
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", code, http.StatusBadRequest)
		}
	})
}
