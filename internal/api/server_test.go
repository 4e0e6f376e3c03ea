package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voxtime/voxtime-core/internal/infrastructure/config"
	"github.com/voxtime/voxtime-core/internal/infrastructure/logging"
	"github.com/voxtime/voxtime-core/internal/lang"
	"github.com/voxtime/voxtime-core/internal/satellite"
	"github.com/voxtime/voxtime-core/internal/timer"
	"github.com/voxtime/voxtime-core/internal/timespeech"
)

// ============================================================
// Test Fixtures
// ============================================================

const testJWTSecret = "test-secret-0123456789-0123456789-abc"

// mockTimerStore is a scripted TimerStore for handler tests.
type mockTimerStore struct {
	timers       []timer.FormattedTimer
	confirmation string
	addErr       error
	startErr     error
	snoozeErr    error
	cancelCount  int
	cancelErr    error

	lastAdd    *timer.AddRequest
	lastCancel *timer.CancelRequest
	lastSnooze *timespeech.Interval
}

func (m *mockTimerStore) Add(_ context.Context, req timer.AddRequest) (*timer.FormattedTimer, string, error) {
	m.lastAdd = &req
	if m.addErr != nil {
		return nil, "", m.addErr
	}
	ft := timer.FormattedTimer{
		ID:       "timer-1",
		Class:    req.Class,
		EntityID: req.EntityID,
		Name:     req.Name,
		Status:   timer.StatusRunning,
	}
	return &ft, m.confirmation, nil
}

func (m *mockTimerStore) Start(_ context.Context, _ string) error {
	return m.startErr
}

func (m *mockTimerStore) Snooze(_ context.Context, _ string, iv timespeech.Interval) (string, error) {
	m.lastSnooze = &iv
	if m.snoozeErr != nil {
		return "", m.snoozeErr
	}
	return m.confirmation, nil
}

func (m *mockTimerStore) Cancel(_ context.Context, req timer.CancelRequest) (int, error) {
	m.lastCancel = &req
	if m.cancelErr != nil {
		return 0, m.cancelErr
	}
	return m.cancelCount, nil
}

func (m *mockTimerStore) Get(req timer.GetRequest) []timer.FormattedTimer {
	var out []timer.FormattedTimer
	for _, t := range m.timers {
		if req.TimerID != "" && t.ID != req.TimerID {
			continue
		}
		if req.EntityID != "" && t.EntityID != req.EntityID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// mockSatelliteDirectory is a map-backed SatelliteDirectory.
type mockSatelliteDirectory struct {
	sats      map[string]*satellite.Satellite // by ID
	createErr error
	updateErr error
	deleteErr error
}

func newMockSatellites(sats ...*satellite.Satellite) *mockSatelliteDirectory {
	m := &mockSatelliteDirectory{sats: make(map[string]*satellite.Satellite)}
	for _, s := range sats {
		m.sats[s.ID] = s
	}
	return m
}

func (m *mockSatelliteDirectory) Get(id string) (*satellite.Satellite, error) {
	if s, ok := m.sats[id]; ok {
		return s.DeepCopy(), nil
	}
	return nil, satellite.ErrNotFound
}

func (m *mockSatelliteDirectory) GetByEntityID(entityID string) (*satellite.Satellite, error) {
	for _, s := range m.sats {
		if s.EntityID == entityID {
			return s.DeepCopy(), nil
		}
	}
	return nil, satellite.ErrNotFound
}

func (m *mockSatelliteDirectory) List() []*satellite.Satellite {
	out := make([]*satellite.Satellite, 0, len(m.sats))
	for _, s := range m.sats {
		out = append(out, s.DeepCopy())
	}
	return out
}

func (m *mockSatelliteDirectory) Create(_ context.Context, s *satellite.Satellite) (*satellite.Satellite, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if s.ID == "" {
		s.ID = "sat-" + s.EntityID
	}
	m.sats[s.ID] = s
	return s.DeepCopy(), nil
}

func (m *mockSatelliteDirectory) Update(_ context.Context, s *satellite.Satellite) (*satellite.Satellite, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if _, ok := m.sats[s.ID]; !ok {
		return nil, satellite.ErrNotFound
	}
	m.sats[s.ID] = s
	return s.DeepCopy(), nil
}

func (m *mockSatelliteDirectory) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.sats[id]; !ok {
		return satellite.ErrNotFound
	}
	delete(m.sats, id)
	return nil
}

func testKitchenSatellite() *satellite.Satellite {
	return &satellite.Satellite{
		ID:       "sat-1",
		EntityID: "satellite.kitchen",
		Name:     "Kitchen",
		Area:     "kitchen",
		Language: "en",
	}
}

// newTestServer builds a server with mock dependencies and returns it with
// its router. No listener is started.
func newTestServer(t *testing.T, store TimerStore, sats SatelliteDirectory) (*Server, http.Handler) {
	t.Helper()

	languages, err := lang.NewRegistry(lang.English(), lang.German())
	if err != nil {
		t.Fatalf("building language registry: %v", err)
	}

	logger := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	s, err := New(Deps{
		Config:     config.APIConfig{Host: "127.0.0.1", Port: 0},
		WS:         config.WebSocketConfig{MaxMessageSize: 8192, PingInterval: 30, PongTimeout: 10},
		Security:   config.SecurityConfig{JWT: config.JWTConfig{Secret: testJWTSecret, AccessTokenTTL: 15}},
		Logger:     logger,
		Timers:     store,
		Satellites: sats,
		Languages:  languages,
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	s.hub = NewHub(s.wsCfg, logger)
	return s, s.buildRouter()
}

// signTestToken creates an HS256 JWT for the given subject.
func signTestToken(t *testing.T, secret, subject string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

// doRequest performs an authenticated request against the router.
func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	} else {
		rdr = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testJWTSecret, "test-user", time.Minute))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decoding response body %q: %v", rec.Body.String(), err)
	}
	return m
}

// ============================================================
// Server Construction Tests
// ============================================================

func TestNew_RequiresDependencies(t *testing.T) {
	languages, err := lang.NewRegistry(lang.English())
	if err != nil {
		t.Fatalf("building language registry: %v", err)
	}
	logger := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
	store := &mockTimerStore{}
	sats := newMockSatellites()

	tests := []struct {
		name string
		deps Deps
	}{
		{"missing logger", Deps{Timers: store, Satellites: sats, Languages: languages}},
		{"missing timer store", Deps{Logger: logger, Satellites: sats, Languages: languages}},
		{"missing satellite directory", Deps{Logger: logger, Timers: store, Languages: languages}},
		{"missing language registry", Deps{Logger: logger, Timers: store, Satellites: sats}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.deps); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// ============================================================
// Health Endpoint Tests
// ============================================================

func TestHealth(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if body["mqtt"] != false {
		t.Errorf("expected mqtt false without a broker, got %v", body["mqtt"])
	}
	langs, ok := body["languages"].([]any)
	if !ok || len(langs) != 2 {
		t.Errorf("expected 2 languages, got %v", body["languages"])
	}
}

func TestHealth_NoAuthRequired(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code == http.StatusUnauthorized {
		t.Error("health endpoint must not require authentication")
	}
}

// ============================================================
// Authentication Tests
// ============================================================

func TestAuth_MissingToken(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timers", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	token := signTestToken(t, "wrong-secret-0123456789-0123456789-ab", "test-user", time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/timers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	token := signTestToken(t, testJWTSecret, "test-user", -time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/timers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/timers", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

// ============================================================
// WebSocket Ticket Tests
// ============================================================

func TestWSTicket_IssueAndConsume(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/ws-ticket", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	ticket, _ := body["ticket"].(string)
	if ticket == "" {
		t.Fatal("expected a ticket in the response")
	}

	entry, ok := validateTicket(ticket)
	if !ok {
		t.Fatal("freshly issued ticket should validate")
	}
	if entry.subject != "test-user" {
		t.Errorf("expected subject test-user, got %q", entry.subject)
	}

	// Single use: the same ticket must not validate twice
	if _, ok := validateTicket(ticket); ok {
		t.Error("ticket validated twice; tickets must be single-use")
	}
}

func TestWSTicket_RequiresAuth(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/ws-ticket", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestValidateTicket_Unknown(t *testing.T) {
	if _, ok := validateTicket("no-such-ticket"); ok {
		t.Error("unknown ticket should not validate")
	}
}

// ============================================================
// WebSocket Upgrade Tests
// ============================================================

func TestWebSocket_MissingTicket(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestWebSocket_InvalidTicket(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws?ticket=bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// ============================================================
// Metrics Endpoint Tests
// ============================================================

func TestMetrics(t *testing.T) {
	store := &mockTimerStore{timers: []timer.FormattedTimer{
		{ID: "t1", Class: timer.ClassTimer, EntityID: "satellite.kitchen", Status: timer.StatusRunning},
		{ID: "t2", Class: timer.ClassAlarm, EntityID: "satellite.bedroom", Status: timer.StatusRunning},
	}}
	_, router := newTestServer(t, store, newMockSatellites(testKitchenSatellite()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	timers, ok := body["timers"].(map[string]any)
	if !ok {
		t.Fatalf("expected timers section, got %v", body)
	}
	if total, _ := timers["total"].(float64); total != 2 {
		t.Errorf("expected 2 timers, got %v", timers["total"])
	}
	if sats, _ := body["satellites"].(float64); sats != 1 {
		t.Errorf("expected 1 satellite, got %v", body["satellites"])
	}
}
