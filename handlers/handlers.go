package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
	"github.com/weedbox/pokerdealer"
	"github.com/weedbox/pokerdealer/open_game_manager"
)

// Engine is the part of the dealer engine exposed over HTTP.
type Engine interface {
	Dispatch(msg pokerdealer.Message) error
	GetState() *pokerdealer.GameState
	ClockStatus(tournamentID string) (pokerdealer.ClockStatus, error)
	PlayerReady(tableID string, playerID string) error
}

// HandHistory is optional; without it the hands route answers 404.
type HandHistory interface {
	HandHistory(tableID string, limit int) ([]pokerdealer.HandSummary, error)
}

type Handler struct {
	engine  Engine
	history HandHistory
}

type TableView struct {
	Table   *pokerdealer.TableState `json:"table"`
	Players []*pokerdealer.Player   `json:"players"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ActionResponse struct {
	OK           bool  `json:"ok"`
	UpdateSerial int64 `json:"update_serial"`
}

func NewHandler(engine Engine, history HandHistory) *Handler {
	return &Handler{
		engine:  engine,
		history: history,
	}
}

func (h *Handler) SetRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/actions", h.PostAction)
		r.Get("/state", h.GetState)

		r.Route("/tables/{tableID}", func(r chi.Router) {
			r.Get("/", h.GetTable)
			r.Get("/hands", h.GetHands)
			r.Post("/ready", h.PostReady)
			r.Get("/players/{playerID}/actions", h.GetAllowedActions)
		})

		r.Get("/tournaments/{tournamentID}/clock", h.GetClock)
	})
}

func (h *Handler) PostAction(w http.ResponseWriter, r *http.Request) {
	var msg pokerdealer.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if msg.Type == "" {
		respondError(w, http.StatusBadRequest, pokerdealer.ErrUnknownAction)
		return
	}

	if err := h.engine.Dispatch(msg); err != nil {
		respondError(w, statusOf(err), err)
		return
	}

	respondJSON(w, http.StatusOK, ActionResponse{
		OK:           true,
		UpdateSerial: h.engine.GetState().UpdateSerial,
	})
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.GetState())
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableID")
	state := h.engine.GetState()

	table, exist := state.Tables[tableID]
	if !exist {
		respondError(w, http.StatusNotFound, pokerdealer.ErrTableNotFound)
		return
	}

	respondJSON(w, http.StatusOK, TableView{
		Table:   table,
		Players: state.TablePlayers(tableID),
	})
}

func (h *Handler) GetHands(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		http.NotFound(w, r)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		limit = n
	}

	hands, err := h.history.HandHistory(chi.URLParam(r, "tableID"), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, hands)
}

func (h *Handler) PostReady(w http.ResponseWriter, r *http.Request) {
	var request struct {
		PlayerID string `json:"player_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.engine.PlayerReady(chi.URLParam(r, "tableID"), request.PlayerID); err != nil {
		respondError(w, statusOf(err), err)
		return
	}

	respondJSON(w, http.StatusOK, ActionResponse{OK: true})
}

// GetAllowedActions answers an empty list when it is not the player's turn.
func (h *Handler) GetAllowedActions(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableID")
	state := h.engine.GetState()

	if _, exist := state.Tables[tableID]; !exist {
		respondError(w, http.StatusNotFound, pokerdealer.ErrTableNotFound)
		return
	}

	respondJSON(w, http.StatusOK, state.AllowedActions(tableID, chi.URLParam(r, "playerID")))
}

func (h *Handler) GetClock(w http.ResponseWriter, r *http.Request) {
	status, err := h.engine.ClockStatus(chi.URLParam(r, "tournamentID"))
	if err != nil {
		respondError(w, statusOf(err), err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, pokerdealer.ErrTableNotFound),
		errors.Is(err, pokerdealer.ErrPlayerNotFound),
		errors.Is(err, pokerdealer.ErrTournamentNotFound),
		errors.Is(err, pokerdealer.ErrTableNotWaiting),
		errors.Is(err, open_game_manager.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, pokerdealer.ErrUnknownAction),
		errors.Is(err, pokerdealer.ErrInvalidPayload),
		errors.Is(err, pokerdealer.ErrInvalidAmount),
		errors.Is(err, pokerdealer.ErrInvalidSeat):
		return http.StatusBadRequest
	case errors.Is(err, pokerdealer.ErrEngineClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusConflict
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("unable to write response: %s", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, ErrorResponse{Error: err.Error()})
}
