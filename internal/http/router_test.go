package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/config"
	"priestconnect-api/internal/domain/models"
	h "priestconnect-api/internal/http/handlers"
	"priestconnect-api/internal/services"
	"priestconnect-api/internal/session"
	"priestconnect-api/internal/store"
)

var testSecret = []byte("router-test-secret")

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	env := config.Env{
		JWTSecret:      string(testSecret),
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	bookings := services.BookingService{Store: st}
	handlers := h.Handlers{
		Auth:         services.AuthService{Store: st, Secret: testSecret},
		Profiles:     services.ProfileService{Store: st},
		Search:       services.SearchService{Store: st},
		Availability: services.AvailabilityService{Store: st},
		Bookings:     bookings,
		Docs:         services.DocsService{Bookings: bookings},
		Store:        st,
	}
	return NewRouter(env, handlers), mock
}

func testToken(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := session.MakeToken(session.Context{UserID: userID, Role: role}, testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestHealthOpen(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health got %d, want 200", w.Code)
	}
}

func TestAuthedRoutesRejectMissingToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token got %d, want 401", w.Code)
	}
}

func TestAuthedRoutesRejectBadToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token got %d, want 401", w.Code)
	}
}

func TestPriestCannotCreateBooking(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, "u-priest", models.RolePriest))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("priest creating a booking got %d, want 403", w.Code)
	}
}

func TestInstitutionPassesGateButFailsValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	// role gate lets the institution through; the empty payload then fails
	// validation before any store access
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, "u-inst", models.RoleInstitution))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty booking payload got %d, want 400", w.Code)
	}
}

func TestPriestCannotSearchPriests(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/priests", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "u-priest", models.RolePriest))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("priest searching priests got %d, want 403", w.Code)
	}
}

// closeNotifyRecorder makes httptest.ResponseRecorder satisfy
// http.CloseNotifier, which gin's c.Stream requires before it will run the
// handler's step function.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

func TestStreamDeliversInitialSnapshot(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT id, JSON_SET").
		WithArgs(store.Bookings, "u-priest").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).
			AddRow("b-1", []byte(`{"id":"b-1","priestId":"u-priest","status":"pending"}`)))

	// EventSource cannot set headers, so the stream accepts the token as a
	// query param; the request context deadline ends the stream
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/stream?token="+testToken(t, "u-priest", models.RolePriest), nil).WithContext(ctx)

	w := &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
	r.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "event:snapshot") {
		t.Fatalf("no snapshot event in stream body: %q", body)
	}
	if !strings.Contains(body, "b-1") {
		t.Fatalf("snapshot missing the booking: %q", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
