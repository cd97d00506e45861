package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/util"
)

func testConf() *util.AppConfig {
	conf := &util.AppConfig{}
	conf.Conf.Host = "localhost"
	conf.Conf.HttpPort = 8787
	return conf
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(testConf(), db.GetDB())
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Could not marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func uniqueEmail() string {
	return fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
}

func TestSignupSuccess(t *testing.T) {
	router := testRouter()

	w := postJSON(t, router, "/api/auth/signup", map[string]string{
		"name":     "Jane Doe",
		"email":    uniqueEmail(),
		"password": "hunter2",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Id    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Could not decode response: %v", err)
	}
	if resp.Message != "Signup successful" {
		t.Errorf("Expected signup message, got %q", resp.Message)
	}
	if resp.Token == "" {
		t.Error("Expected a token in the signup response")
	}
	if resp.User.Name != "Jane Doe" {
		t.Errorf("Expected user name in response, got %q", resp.User.Name)
	}
	if _, err := uuid.Parse(resp.User.Id); err != nil {
		t.Errorf("Expected a uuid user id, got %q", resp.User.Id)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	router := testRouter()
	email := uniqueEmail()

	first := postJSON(t, router, "/api/auth/signup", map[string]string{
		"name": "Jane Doe", "email": email, "password": "hunter2",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("Expected 201 on first signup, got %d", first.Code)
	}

	second := postJSON(t, router, "/api/auth/signup", map[string]string{
		"name": "Other Jane", "email": email, "password": "hunter3",
	})
	if second.Code != http.StatusConflict {
		t.Fatalf("Expected 409 on duplicate signup, got %d", second.Code)
	}
	if !strings.Contains(second.Body.String(), "Email already registered") {
		t.Errorf("Expected duplicate email message, got %s", second.Body.String())
	}
}

func TestSignupMissingFields(t *testing.T) {
	router := testRouter()

	w := postJSON(t, router, "/api/auth/signup", map[string]string{
		"name": "  ", "email": uniqueEmail(), "password": "hunter2",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank name, got %d", w.Code)
	}
}

func TestSignupInvalidBody(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid request body") {
		t.Errorf("Expected invalid body message, got %s", w.Body.String())
	}
}

func TestLoginFlow(t *testing.T) {
	router := testRouter()
	email := uniqueEmail()

	signup := postJSON(t, router, "/api/auth/signup", map[string]string{
		"name": "Jane Doe", "email": email, "password": "hunter2",
	})
	if signup.Code != http.StatusCreated {
		t.Fatalf("Signup failed: %d %s", signup.Code, signup.Body.String())
	}

	login := postJSON(t, router, "/api/auth/login", map[string]string{
		"email": email, "password": "hunter2",
	})
	if login.Code != http.StatusOK {
		t.Fatalf("Expected 200 on login, got %d: %s", login.Code, login.Body.String())
	}
	if !strings.Contains(login.Body.String(), "Login successful") {
		t.Errorf("Expected login message, got %s", login.Body.String())
	}

	// Email comparison is case-insensitive
	upper := postJSON(t, router, "/api/auth/login", map[string]string{
		"email": strings.ToUpper(email), "password": "hunter2",
	})
	if upper.Code != http.StatusOK {
		t.Errorf("Expected case-insensitive email match, got %d", upper.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := testRouter()
	email := uniqueEmail()

	postJSON(t, router, "/api/auth/signup", map[string]string{
		"name": "Jane Doe", "email": email, "password": "hunter2",
	})

	w := postJSON(t, router, "/api/auth/login", map[string]string{
		"email": email, "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for wrong password, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Errorf("Expected invalid credentials message, got %s", w.Body.String())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	router := testRouter()

	w := postJSON(t, router, "/api/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "hunter2",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unknown email, got %d", w.Code)
	}
}

func TestFeedRSS(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<rss") {
		t.Error("Expected an RSS document")
	}
	if !strings.Contains(body, "TrustNet Feed") {
		t.Error("Expected the feed title")
	}
	if !strings.Contains(body, "Sarah Chen") {
		t.Error("Expected seeded posts in the feed")
	}
}

func TestFeedRSSByUsername(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/feed?username=sarahchen", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "TrustNet Feed - sarahchen") {
		t.Error("Expected the per-user feed title")
	}
	if strings.Contains(body, "Marcus Rodriguez") {
		t.Error("Feed should only contain the requested user's posts")
	}
}

func TestFeedRSSUnknownUsername(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/feed?username=nosuchuser", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown username, got %d", w.Code)
	}
}

func TestFeedItemInvalidId(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/feed/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for invalid id, got %d", w.Code)
	}
}

func TestFeedItemUnknownId(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/feed/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown id, got %d", w.Code)
	}
}
