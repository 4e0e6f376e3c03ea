package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voxtime/voxtime-core/internal/lang"
	"github.com/voxtime/voxtime-core/internal/timer"
	"github.com/voxtime/voxtime-core/internal/timespeech"
)

// createTimerRequest is the POST /timers body.
type createTimerRequest struct {
	Class    string `json:"class"`
	EntityID string `json:"entity_id"`
	Name     string `json:"name,omitempty"`

	// Sentence is the transcribed voice command carrying the time phrase,
	// e.g. "set a timer for 5 minutes" or "wake me at half past seven".
	Sentence string `json:"sentence"`

	// Language overrides the satellite's configured language when set.
	Language string `json:"language,omitempty"`

	// PreExpireWarning overrides the configured default when non-nil.
	PreExpireWarning *int `json:"pre_expire_warning,omitempty"`

	// Start defaults to true; set false to create the timer armed later
	// via POST /timers/{id}/start.
	Start *bool `json:"start,omitempty"`

	ExtraInfo map[string]any `json:"extra_info,omitempty"`
}

// snoozeTimerRequest is the POST /timers/{id}/snooze body. The duration
// comes either from a spoken sentence ("10 more minutes") or from the
// structured fields; the sentence wins when both are present.
type snoozeTimerRequest struct {
	Sentence string `json:"sentence,omitempty"`
	Language string `json:"language,omitempty"`

	Days    int `json:"days,omitempty"`
	Hours   int `json:"hours,omitempty"`
	Minutes int `json:"minutes,omitempty"`
	Seconds int `json:"seconds,omitempty"`
}

// handleCreateTimer creates a timer from a transcribed sentence.
//
// The sentence is decoded against the resolved language pack; a sentence
// with no recognizable time phrase yields 422 decode_failure. The entity
// must be a registered satellite.
func (s *Server) handleCreateTimer(w http.ResponseWriter, r *http.Request) {
	var req createTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	class := timer.Class(req.Class)
	if !class.Valid() {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "invalid timer class: "+req.Class)
		return
	}
	if req.EntityID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "entity_id is required")
		return
	}
	if req.Sentence == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "sentence is required")
		return
	}

	sat, err := s.satellites.GetByEntityID(req.EntityID)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidTarget,
			"entity is not a registered satellite: "+req.EntityID)
		return
	}

	// Language precedence: request override, then satellite, then the
	// registry default.
	code := lang.Code(req.Language)
	if code == "" {
		code = sat.Language
	}
	compiled := s.languages.Resolve(code)

	sentence, value := timespeech.Decode(req.Sentence, compiled)
	if value == nil {
		writeError(w, http.StatusUnprocessableEntity, ErrCodeDecodeFailure,
			"no time phrase recognized in sentence")
		return
	}

	start := true
	if req.Start != nil {
		start = *req.Start
	}

	created, confirmation, err := s.timers.Add(r.Context(), timer.AddRequest{
		Class:            class,
		EntityID:         req.EntityID,
		Name:             req.Name,
		Value:            value,
		Sentence:         sentence,
		PreExpireWarning: req.PreExpireWarning,
		Language:         compiled.Pack().Code(),
		Use24Hour:        &sat.Use24Hour,
		ExtraInfo:        req.ExtraInfo,
		Start:            start,
	})
	if err != nil {
		writeTimerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"timer":        created,
		"confirmation": confirmation,
	})
}

// handleListTimers returns timers matching the query filters.
//
// Query parameters: entity_id, name, include_expired.
func (s *Server) handleListTimers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	timers := s.timers.Get(timer.GetRequest{
		EntityID:       q.Get("entity_id"),
		Name:           q.Get("name"),
		IncludeExpired: q.Get("include_expired") == "true",
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"timers": timers,
		"count":  len(timers),
	})
}

// handleGetTimer returns one timer by id.
func (s *Server) handleGetTimer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	timers := s.timers.Get(timer.GetRequest{TimerID: id, IncludeExpired: true})
	if len(timers) == 0 {
		writeNotFound(w, "timer not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, timers[0])
}

// handleCancelTimer cancels one timer by id.
func (s *Server) handleCancelTimer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cancelled, err := s.timers.Cancel(r.Context(), timer.CancelRequest{TimerID: id})
	if err != nil {
		writeTimerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cancelled": cancelled})
}

// handleCancelTimers bulk-cancels timers: ?all=true for everything, or
// ?entity_id= for one satellite's timers.
func (s *Server) handleCancelTimers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := timer.CancelRequest{
		EntityID: q.Get("entity_id"),
		All:      q.Get("all") == "true",
	}
	if !req.All && req.EntityID == "" {
		writeBadRequest(w, "either all=true or entity_id is required")
		return
	}

	cancelled, err := s.timers.Cancel(r.Context(), req)
	if err != nil {
		writeTimerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cancelled": cancelled})
}

// handleStartTimer arms an inactive timer.
func (s *Server) handleStartTimer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.timers.Start(r.Context(), id); err != nil {
		writeTimerError(w, err)
		return
	}

	timers := s.timers.Get(timer.GetRequest{TimerID: id})
	if len(timers) == 0 {
		// Started but immediately gone is a race with expiry; report the
		// start anyway.
		writeJSON(w, http.StatusOK, map[string]any{"started": id})
		return
	}
	writeJSON(w, http.StatusOK, timers[0])
}

// handleSnoozeTimer pushes an expired timer's expiry forward by the
// requested interval and returns the spoken confirmation.
func (s *Server) handleSnoozeTimer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req snoozeTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	iv := timespeech.Interval{
		Days:    req.Days,
		Hours:   req.Hours,
		Minutes: req.Minutes,
		Seconds: req.Seconds,
	}
	if req.Sentence != "" {
		compiled := s.languages.Resolve(s.snoozeLanguage(id, req.Language))
		_, value := timespeech.Decode(req.Sentence, compiled)
		decoded, ok := value.(timespeech.Interval)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, ErrCodeDecodeFailure,
				"no duration recognized in sentence")
			return
		}
		iv = decoded
	}

	confirmation, err := s.timers.Snooze(r.Context(), id, iv)
	if err != nil {
		writeTimerError(w, err)
		return
	}

	resp := map[string]any{"confirmation": confirmation}
	if timers := s.timers.Get(timer.GetRequest{TimerID: id}); len(timers) > 0 {
		resp["timer"] = timers[0]
	}
	writeJSON(w, http.StatusOK, resp)
}

// snoozeLanguage picks the decode language for a snooze sentence: the
// request override, then the owning satellite's language, then default.
func (s *Server) snoozeLanguage(timerID, override string) lang.Code {
	if override != "" {
		return lang.Code(override)
	}
	timers := s.timers.Get(timer.GetRequest{TimerID: timerID, IncludeExpired: true})
	if len(timers) == 0 {
		return ""
	}
	sat, err := s.satellites.GetByEntityID(timers[0].EntityID)
	if err != nil {
		return ""
	}
	return sat.Language
}
