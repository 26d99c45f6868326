package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_registry/internal/domain"
)

func (h *Handlers) roomRoutes(r chi.Router) {
	r.Get("/", h.listRooms)
	r.Post("/", h.createRoom)
	r.Get("/{id}", h.getRoom)
	r.Put("/{id}", h.updateRoom)
	r.Patch("/{id}", h.patchRoom)
	r.Delete("/{id}", h.deleteRoom)
	r.Get("/{id}/bookings", h.listRoomBookings)
	r.Get("/{id}/bookings/{bookingID}", h.getRoomBooking)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.Rooms.List(r.Context())
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Rooms.Get(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var in domain.Room
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Rooms.Create(r.Context(), in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.Room
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Rooms.Update(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) patchRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.RoomPatch
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Rooms.Patch(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	noContent(w, r, h.Rooms.Delete(r.Context(), id))
}

func (h *Handlers) listRoomBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Bookings.ListByRoom(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getRoomBooking(w http.ResponseWriter, r *http.Request) {
	id, bookingID, ok := pathIDs(w, r, "id", "bookingID")
	if !ok {
		return
	}
	out, err := h.Bookings.GetForRoom(r.Context(), id, bookingID)
	respond(w, r, http.StatusOK, out, err)
}
