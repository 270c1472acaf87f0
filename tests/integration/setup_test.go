package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartgrow/internal/handlers"
	"smartgrow/internal/logger"
	"smartgrow/internal/middleware"
	"smartgrow/internal/models"
	"smartgrow/internal/services"
	"smartgrow/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

const jobAPIKey = "integration-job-key"

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Plan{},
		&models.Investment{},
		&models.IncomeCollection{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.Commission{},
		&models.Setting{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	defaults := map[string]string{
		models.SettingCommissionLevel1Percent: "10",
		models.SettingCommissionLevel2Percent: "5",
		models.SettingCommissionLevel3Percent: "2",
		models.SettingMinWithdrawalAmount:     "500",
		models.SettingSupportContact:          "support@smartgrow.test",
	}
	for key, value := range defaults {
		if err := db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			t.Fatalf("failed to seed setting %s: %v", key, err)
		}
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	settingsService := services.NewSettingsService(db)
	userService := services.NewUserService(db)
	planService := services.NewPlanService(db)
	investmentService := services.NewInvestmentService(db)
	referralService := services.NewReferralService(db, settingsService)
	depositService := services.NewDepositService(db, referralService)
	withdrawalService := services.NewWithdrawalService(db, settingsService)
	statsService := services.NewStatsService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	planHandler := handlers.NewPlanHandler(planService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	depositHandler := handlers.NewDepositHandler(depositService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	referralHandler := handlers.NewReferralHandler(referralService)
	adminHandler := handlers.NewAdminHandler(userService, planService, depositService,
		withdrawalService, settingsService, statsService, auditService)
	jobsHandler := handlers.NewJobsHandler(investmentService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	plans := v1.Group("/plans")
	plans.GET("", planHandler.ListPlans)
	plans.GET("/:id", planHandler.GetPlan)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.Purchase)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.POST("/:id/collect", investmentHandler.Collect)
	investments.GET("/:id/collections", investmentHandler.ListCollections)

	deposits := protected.Group("/deposits")
	deposits.POST("", depositHandler.CreateDeposit)
	deposits.GET("", depositHandler.ListDeposits)

	withdrawals := protected.Group("/withdrawals")
	withdrawals.POST("", withdrawalHandler.RequestWithdrawal)
	withdrawals.GET("", withdrawalHandler.ListWithdrawals)

	referrals := protected.Group("/referrals")
	referrals.GET("/stats", referralHandler.GetStats)
	referrals.GET("/commissions", referralHandler.ListCommissions)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/active", adminHandler.SetUserActive)
	admin.GET("/deposits", adminHandler.ListAllDeposits)
	admin.POST("/deposits/:id/approve", adminHandler.ApproveDeposit)
	admin.POST("/deposits/:id/reject", adminHandler.RejectDeposit)
	admin.GET("/withdrawals", adminHandler.ListAllWithdrawals)
	admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
	admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
	admin.GET("/plans", adminHandler.ListAllPlans)
	admin.POST("/plans", adminHandler.CreatePlan)
	admin.PUT("/plans/:id", adminHandler.UpdatePlan)
	admin.DELETE("/plans/:id", adminHandler.DeletePlan)
	admin.GET("/settings", adminHandler.GetSettings)
	admin.PUT("/settings/:key", adminHandler.UpdateSetting)
	admin.GET("/stats", adminHandler.GetStats)

	jobs := router.Group("/internal/jobs")
	jobs.Use(middleware.JobAuthMiddleware(jobAPIKey))
	jobs.POST("/expire-investments", jobsHandler.ExpireInvestments)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, the user's
// own referral code, and the user ID.
func (app *testApp) registerUser(t *testing.T, email, referredByCode string) (accessToken, referralCode string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password123","full_name":"Test User"`, email)
	if referredByCode != "" {
		body += fmt.Sprintf(`,"referral_code":%q`, referredByCode)
	}
	body += "}"
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), user["referral_code"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// registerAdmin registers a user, promotes it to admin directly in the
// database, and logs in again so the token carries the admin role.
func (app *testApp) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	app.registerUser(t, email, "")
	if err := app.DB.Model(&models.User{}).Where("email = ?", email).
		Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote admin: %v", err)
	}
	token, _ := app.loginUser(t, email, "password123")
	return token
}

// fundUser creates a deposit for the user and approves it as the admin,
// crediting the user's balance through the normal review path.
func (app *testApp) fundUser(t *testing.T, userToken, adminToken string, amount int64) {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%d,"method":"bank_transfer","sender_details":"acct 001"}`, amount)
	rec := app.request("POST", "/api/v1/deposits", body, userToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("deposit failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	deposit := result["deposit"].(map[string]interface{})
	depositID := int(deposit["id"].(float64))

	rec = app.request("POST", fmt.Sprintf("/api/v1/admin/deposits/%d/approve", depositID), "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("deposit approval failed: %d %s", rec.Code, rec.Body.String())
	}
}

// getBalance reads the user's balance via the profile endpoint.
func (app *testApp) getBalance(t *testing.T, token string) float64 {
	t.Helper()
	rec := app.request("GET", "/api/v1/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return user["balance"].(float64)
}
