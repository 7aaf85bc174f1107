package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/feedbackboard/feedbackboard/database"
	"github.com/feedbackboard/feedbackboard/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "fboard-controller-test-*")
	if err != nil {
		panic(err)
	}
	os.Setenv("FBOARD_LOG_FOLDER", dir)
	logger.InitLogger(logging.ERROR)

	if err := database.InitDB(filepath.Join(dir, "test.db")); err != nil {
		panic(err)
	}

	code := m.Run()

	database.CloseDB()
	os.RemoveAll(dir)
	os.Exit(code)
}

// newTestRouter builds an engine wired the same way as the web server:
// cookie sessions, templates, both controllers.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("fboard", cookie.NewStore([]byte("test-secret"))))
	r.LoadHTMLGlob("../html/*.html")

	g := r.Group("/")
	NewUserController(g)
	NewFeedbackController(g)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPost(t *testing.T, r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sessionCookies keeps the final value per cookie name from a response,
// the way a browser would.
func sessionCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	byName := make(map[string]*http.Cookie)
	var order []string
	for _, c := range w.Result().Cookies() {
		if _, seen := byName[c.Name]; !seen {
			order = append(order, c.Name)
		}
		byName[c.Name] = c
	}
	out := make([]*http.Cookie, 0, len(byName))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

func registerForm(username, password, email, first, last string) url.Values {
	return url.Values{
		"username":   {username},
		"password":   {password},
		"email":      {email},
		"first_name": {first},
		"last_name":  {last},
	}
}

// register creates an account through the HTTP surface and returns the
// authenticated session cookies.
func register(t *testing.T, r *gin.Engine, username, password, email string) []*http.Cookie {
	t.Helper()
	w := doPost(t, r, "/register", registerForm(username, password, email, "Test", "User"), nil)
	if w.Code != http.StatusFound {
		t.Fatalf("register %q returned %d: %s", username, w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/users/"+username {
		t.Fatalf("register %q redirected to %q", username, loc)
	}
	return sessionCookies(w)
}
