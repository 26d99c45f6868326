package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_registry/internal/domain"
)

func (h *Handlers) bookingRoutes(r chi.Router) {
	r.Get("/", h.listBookings)
	r.Post("/", h.createBooking)
	r.Get("/{id}", h.getBooking)
	r.Put("/{id}", h.updateBooking)
	r.Patch("/{id}", h.patchBooking)
	r.Delete("/{id}", h.deleteBooking)

	r.Get("/{id}/rooms", h.listBookingRooms)
	r.Get("/{id}/rooms/{roomID}", h.getBookingRoom)
	r.Put("/{id}/rooms/{roomID}", h.assignRoom)
	r.Delete("/{id}/rooms/{roomID}", h.removeRoom)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Bookings.List(r.Context())
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Bookings.Get(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.Booking
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Bookings.Create(r.Context(), in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.Booking
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Bookings.Update(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) patchBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.BookingPatch
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Bookings.Patch(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	noContent(w, r, h.Bookings.Delete(r.Context(), id))
}

func (h *Handlers) listBookingRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Bookings.ListRooms(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getBookingRoom(w http.ResponseWriter, r *http.Request) {
	id, roomID, ok := pathIDs(w, r, "id", "roomID")
	if !ok {
		return
	}
	out, err := h.Bookings.GetRoom(r.Context(), id, roomID)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) assignRoom(w http.ResponseWriter, r *http.Request) {
	id, roomID, ok := pathIDs(w, r, "id", "roomID")
	if !ok {
		return
	}
	out, err := h.Bookings.AssignRoom(r.Context(), id, roomID)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) removeRoom(w http.ResponseWriter, r *http.Request) {
	id, roomID, ok := pathIDs(w, r, "id", "roomID")
	if !ok {
		return
	}
	out, err := h.Bookings.RemoveRoom(r.Context(), id, roomID)
	respond(w, r, http.StatusOK, out, err)
}
