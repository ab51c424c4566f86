package handler

import (
	"encoding/json"
	"net/http"

	"playercare/internal/repository"

	"github.com/gorilla/mux"
)

// TicketHandler exposes read access to persisted tickets and profiles
type TicketHandler struct {
	tickets repository.TicketRepo
	players repository.PlayerRepo
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(tickets repository.TicketRepo, players repository.PlayerRepo) *TicketHandler {
	return &TicketHandler{tickets: tickets, players: players}
}

// GetTicket handles GET /v1/tickets/{ticketId}
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := mux.Vars(r)["ticketId"]

	ticket, err := h.tickets.GetByTicketID(r.Context(), ticketID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ticket == nil {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// ListPlayerTickets handles GET /v1/players/{playerId}/tickets
func (h *TicketHandler) ListPlayerTickets(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerId"]

	tickets, err := h.tickets.ListByPlayer(r.Context(), playerID, 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

// GetPlayer handles GET /v1/players/{playerId}
func (h *TicketHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerId"]

	profile, err := h.players.GetByID(r.Context(), playerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
