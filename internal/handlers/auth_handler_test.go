package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"haphuong/internal/models"
	"haphuong/internal/repositories/memory"
	"haphuong/internal/services"
	"haphuong/internal/utils"
	"haphuong/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		t.Fatalf("logger init error: %v", err)
	}

	userRepo := memory.NewUserRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	admin := &models.User{
		HoTen:       "Admin Hà Phương",
		SoDienThoai: "0123456789",
		MatKhau:     string(hash),
		VaiTro:      models.RoleAdmin,
	}
	if err := userRepo.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin error: %v", err)
	}

	handler := NewAuthHandler(services.NewAuthService(userRepo, "test-secret", log), log)

	router := gin.New()
	router.POST("/api/auth/login", handler.Login)
	router.POST("/api/auth/register", handler.Register)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestLoginEndpoint(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := postJSON(t, router, "/api/auth/login", `{"soDienThoai":"0123456789","matKhau":"123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// The auth payload is served unwrapped, no {data} envelope.
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if _, wrapped := body["data"]; wrapped {
		t.Fatalf("login response must not be wrapped: %s", rec.Body.String())
	}
	if body["vaiTro"] != "admin" {
		t.Fatalf("vaiTro = %v, want admin", body["vaiTro"])
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatalf("missing token: %s", rec.Body.String())
	}
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := postJSON(t, router, "/api/auth/login", `{"soDienThoai":"0123456789","matKhau":"sai-roi"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if body["message"] != utils.MsgWrongPassword {
		t.Fatalf("message = %v, want %q", body["message"], utils.MsgWrongPassword)
	}
}

func TestLoginEndpointMissingFields(t *testing.T) {
	router := newAuthTestRouter(t)

	for _, body := range []string{`{}`, `{"soDienThoai":"0123456789"}`, `not-json`} {
		rec := postJSON(t, router, "/api/auth/login", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestRegisterEndpointDuplicatePhone(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := postJSON(t, router, "/api/auth/register", `{"hoTen":"Nguyễn Văn B","soDienThoai":"0123456789","matKhau":"123456"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if body["message"] != utils.MsgPhoneTaken {
		t.Fatalf("message = %v, want %q", body["message"], utils.MsgPhoneTaken)
	}
}

func TestRegisterEndpointCreatesAccount(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := postJSON(t, router, "/api/auth/register", `{"hoTen":"Nguyễn Văn B","soDienThoai":"0987000111","matKhau":"123456"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if body["vaiTro"] != "user" {
		t.Fatalf("vaiTro = %v, want user", body["vaiTro"])
	}
}
