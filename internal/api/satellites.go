package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voxtime/voxtime-core/internal/lang"
	"github.com/voxtime/voxtime-core/internal/satellite"
)

// createSatelliteRequest is the POST /satellites body.
type createSatelliteRequest struct {
	EntityID  string `json:"entity_id"`
	Name      string `json:"name"`
	Area      string `json:"area,omitempty"`
	Language  string `json:"language,omitempty"`
	Use24Hour bool   `json:"use_24_hour,omitempty"`
}

// updateSatelliteRequest is the PATCH /satellites/{id} body. Nil fields
// are left unchanged.
type updateSatelliteRequest struct {
	EntityID  *string `json:"entity_id,omitempty"`
	Name      *string `json:"name,omitempty"`
	Area      *string `json:"area,omitempty"`
	Language  *string `json:"language,omitempty"`
	Use24Hour *bool   `json:"use_24_hour,omitempty"`
}

// handleListSatellites returns all registered satellites.
func (s *Server) handleListSatellites(w http.ResponseWriter, _ *http.Request) {
	sats := s.satellites.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"satellites": sats,
		"count":      len(sats),
	})
}

// handleGetSatellite returns one satellite by id.
func (s *Server) handleGetSatellite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sat, err := s.satellites.Get(id)
	if err != nil {
		writeSatelliteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sat)
}

// handleCreateSatellite registers a new satellite.
//
// The language must be one of the registry's loaded packs; an unknown
// code is rejected rather than silently falling back.
func (s *Server) handleCreateSatellite(w http.ResponseWriter, r *http.Request) {
	var req createSatelliteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Language != "" {
		if _, ok := s.languages.Get(lang.Code(req.Language)); !ok {
			writeError(w, http.StatusBadRequest, ErrCodeValidation,
				"unsupported language: "+req.Language)
			return
		}
	}

	created, err := s.satellites.Create(r.Context(), &satellite.Satellite{
		EntityID:  req.EntityID,
		Name:      req.Name,
		Area:      req.Area,
		Language:  lang.Code(req.Language),
		Use24Hour: req.Use24Hour,
	})
	if err != nil {
		writeSatelliteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateSatellite applies a partial update to a satellite.
func (s *Server) handleUpdateSatellite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sat, err := s.satellites.Get(id)
	if err != nil {
		writeSatelliteError(w, err)
		return
	}

	var req updateSatelliteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.EntityID != nil {
		sat.EntityID = *req.EntityID
	}
	if req.Name != nil {
		sat.Name = *req.Name
	}
	if req.Area != nil {
		sat.Area = *req.Area
	}
	if req.Language != nil {
		if _, ok := s.languages.Get(lang.Code(*req.Language)); !ok {
			writeError(w, http.StatusBadRequest, ErrCodeValidation,
				"unsupported language: "+*req.Language)
			return
		}
		sat.Language = lang.Code(*req.Language)
	}
	if req.Use24Hour != nil {
		sat.Use24Hour = *req.Use24Hour
	}

	updated, err := s.satellites.Update(r.Context(), sat)
	if err != nil {
		writeSatelliteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteSatellite removes a satellite. Its timers are left in
// place; they expire or get cancelled on their own schedule.
func (s *Server) handleDeleteSatellite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.satellites.Delete(r.Context(), id); err != nil {
		writeSatelliteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
