package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_registry/internal/domain"
)

func (h *Handlers) guestRoutes(r chi.Router) {
	r.Get("/", h.listGuests)
	r.Post("/", h.createGuest)
	r.Get("/{id}", h.getGuest)
	r.Put("/{id}", h.updateGuest)
	r.Patch("/{id}", h.patchGuest)
	r.Delete("/{id}", h.deleteGuest)

	r.Put("/{id}/guarantor/{guarantorID}", h.assignGuarantor)
	r.Delete("/{id}/guarantor", h.removeGuarantor)

	r.Get("/{id}/bookings", h.listGuestBookings)
	r.Get("/{id}/bookings/{bookingID}", h.getGuestBooking)
	r.Get("/{id}/bookings/{bookingID}/rooms", h.listGuestBookingRooms)
	r.Get("/{id}/bookings/{bookingID}/rooms/{roomID}", h.getGuestBookingRoom)
}

func (h *Handlers) listGuests(w http.ResponseWriter, r *http.Request) {
	out, err := h.Guests.List(r.Context())
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Guests.Get(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) createGuest(w http.ResponseWriter, r *http.Request) {
	var in domain.Guest
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Guests.Create(r.Context(), in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.Guest
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Guests.Update(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) patchGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.GuestPatch
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Guests.Patch(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) deleteGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	noContent(w, r, h.Guests.Delete(r.Context(), id))
}

func (h *Handlers) assignGuarantor(w http.ResponseWriter, r *http.Request) {
	id, guarantorID, ok := pathIDs(w, r, "id", "guarantorID")
	if !ok {
		return
	}
	out, err := h.Guests.AssignGuarantor(r.Context(), id, guarantorID)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) removeGuarantor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Guests.RemoveGuarantor(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) listGuestBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Bookings.ListByGuest(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getGuestBooking(w http.ResponseWriter, r *http.Request) {
	id, bookingID, ok := pathIDs(w, r, "id", "bookingID")
	if !ok {
		return
	}
	out, err := h.Bookings.GetForGuest(r.Context(), id, bookingID)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) listGuestBookingRooms(w http.ResponseWriter, r *http.Request) {
	id, bookingID, ok := pathIDs(w, r, "id", "bookingID")
	if !ok {
		return
	}
	if _, err := h.Bookings.GetForGuest(r.Context(), id, bookingID); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Bookings.ListRooms(r.Context(), bookingID)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getGuestBookingRoom(w http.ResponseWriter, r *http.Request) {
	id, bookingID, ok := pathIDs(w, r, "id", "bookingID")
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID")
	if !ok {
		return
	}
	if _, err := h.Bookings.GetForGuest(r.Context(), id, bookingID); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Bookings.GetRoom(r.Context(), bookingID, roomID)
	respond(w, r, http.StatusOK, out, err)
}
