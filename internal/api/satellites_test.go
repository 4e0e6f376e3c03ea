package api

import (
	"net/http"
	"testing"

	"github.com/voxtime/voxtime-core/internal/satellite"
)

// ============================================================
// List / Get Satellite Tests
// ============================================================

func TestListSatellites(t *testing.T) {
	sats := newMockSatellites(
		testKitchenSatellite(),
		&satellite.Satellite{ID: "sat-2", EntityID: "satellite.bedroom", Name: "Bedroom", Language: "de"},
	)
	_, router := newTestServer(t, &mockTimerStore{}, sats)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/satellites", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if count, _ := resp["count"].(float64); count != 2 {
		t.Errorf("expected 2 satellites, got %v", resp["count"])
	}
}

func TestGetSatellite(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites(testKitchenSatellite()))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/satellites/sat-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["entity_id"] != "satellite.kitchen" {
		t.Errorf("expected satellite.kitchen, got %v", resp["entity_id"])
	}
}

func TestGetSatellite_NotFound(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/satellites/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// ============================================================
// Create Satellite Tests
// ============================================================

func TestCreateSatellite(t *testing.T) {
	sats := newMockSatellites()
	_, router := newTestServer(t, &mockTimerStore{}, sats)

	body := `{"entity_id":"satellite.office","name":"Office","area":"office","language":"en"}`
	rec := doRequest(t, router, http.MethodPost, "/api/v1/satellites", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["entity_id"] != "satellite.office" {
		t.Errorf("expected entity id in response, got %v", resp["entity_id"])
	}
	if len(sats.sats) != 1 {
		t.Errorf("expected satellite to be stored, got %d", len(sats.sats))
	}
}

func TestCreateSatellite_UnsupportedLanguage(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	body := `{"entity_id":"satellite.office","name":"Office","language":"fr"}`
	rec := doRequest(t, router, http.MethodPost, "/api/v1/satellites", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["code"] != ErrCodeValidation {
		t.Errorf("expected code %s, got %v", ErrCodeValidation, resp["code"])
	}
}

func TestCreateSatellite_DuplicateEntity(t *testing.T) {
	sats := newMockSatellites(testKitchenSatellite())
	sats.createErr = satellite.ErrAlreadyExists
	_, router := newTestServer(t, &mockTimerStore{}, sats)

	body := `{"entity_id":"satellite.kitchen","name":"Kitchen 2","language":"en"}`
	rec := doRequest(t, router, http.MethodPost, "/api/v1/satellites", body)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCreateSatellite_ValidationError(t *testing.T) {
	sats := newMockSatellites()
	sats.createErr = satellite.ErrValidation
	_, router := newTestServer(t, &mockTimerStore{}, sats)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/satellites", `{"name":"No Entity"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateSatellite_InvalidJSON(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	rec := doRequest(t, router, http.MethodPost, "/api/v1/satellites", `{broken`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// ============================================================
// Update Satellite Tests
// ============================================================

func TestUpdateSatellite(t *testing.T) {
	sats := newMockSatellites(testKitchenSatellite())
	_, router := newTestServer(t, &mockTimerStore{}, sats)

	body := `{"name":"Kitchen Display","use_24_hour":true}`
	rec := doRequest(t, router, http.MethodPatch, "/api/v1/satellites/sat-1", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["name"] != "Kitchen Display" {
		t.Errorf("expected updated name, got %v", resp["name"])
	}
	if resp["use_24_hour"] != true {
		t.Errorf("expected 24-hour flag set, got %v", resp["use_24_hour"])
	}
	// Untouched fields survive a partial update
	if resp["entity_id"] != "satellite.kitchen" {
		t.Errorf("expected entity id unchanged, got %v", resp["entity_id"])
	}
}

func TestUpdateSatellite_Language(t *testing.T) {
	sats := newMockSatellites(testKitchenSatellite())
	_, router := newTestServer(t, &mockTimerStore{}, sats)

	rec := doRequest(t, router, http.MethodPatch, "/api/v1/satellites/sat-1", `{"language":"de"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["language"] != "de" {
		t.Errorf("expected language de, got %v", resp["language"])
	}
}

func TestUpdateSatellite_UnsupportedLanguage(t *testing.T) {
	sats := newMockSatellites(testKitchenSatellite())
	_, router := newTestServer(t, &mockTimerStore{}, sats)

	rec := doRequest(t, router, http.MethodPatch, "/api/v1/satellites/sat-1", `{"language":"xx"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateSatellite_NotFound(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	rec := doRequest(t, router, http.MethodPatch, "/api/v1/satellites/nope", `{"name":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// ============================================================
// Delete Satellite Tests
// ============================================================

func TestDeleteSatellite(t *testing.T) {
	sats := newMockSatellites(testKitchenSatellite())
	_, router := newTestServer(t, &mockTimerStore{}, sats)

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/satellites/sat-1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(sats.sats) != 0 {
		t.Error("expected satellite removed from directory")
	}
}

func TestDeleteSatellite_NotFound(t *testing.T) {
	_, router := newTestServer(t, &mockTimerStore{}, newMockSatellites())

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/satellites/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
