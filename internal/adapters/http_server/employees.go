package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_registry/internal/domain"
)

func (h *Handlers) employeeRoutes(r chi.Router) {
	r.Get("/", h.listEmployees)
	r.Post("/", h.createEmployee)
	r.Get("/{id}", h.getEmployee)
	r.Put("/{id}", h.updateEmployee)
	r.Patch("/{id}", h.patchEmployee)
	r.Delete("/{id}", h.deleteEmployee)
	r.Get("/{id}/bookings/{bookingID}", h.getEmployeeBooking)
}

func (h *Handlers) listEmployees(w http.ResponseWriter, r *http.Request) {
	out, err := h.Employees.List(r.Context())
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Employees.Get(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in domain.Employee
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Employees.Create(r.Context(), in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.Employee
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Employees.Update(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) patchEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.EmployeePatch
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Employees.Patch(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	noContent(w, r, h.Employees.Delete(r.Context(), id))
}

func (h *Handlers) getEmployeeBooking(w http.ResponseWriter, r *http.Request) {
	id, bookingID, ok := pathIDs(w, r, "id", "bookingID")
	if !ok {
		return
	}
	out, err := h.Bookings.GetForEmployee(r.Context(), id, bookingID)
	respond(w, r, http.StatusOK, out, err)
}
