package mysql

// -----------------------------------------------------------------------------
// GUESTS
// -----------------------------------------------------------------------------

const guestColumns = `id, national_id, name, address, phone, email, guarantor_id`

const selectGuestSQL = `SELECT ` + guestColumns + ` FROM guests WHERE id = ?`

const selectGuestsSQL = `SELECT ` + guestColumns + ` FROM guests ORDER BY id`

const selectGuestByNationalIDSQL = `SELECT ` + guestColumns + ` FROM guests WHERE national_id = ?`

const selectGuestByGuarantorSQL = `SELECT ` + guestColumns + ` FROM guests WHERE guarantor_id = ?`

const insertGuestSQL = `
INSERT INTO guests
  (id, national_id, name, address, phone, email, guarantor_id)
VALUES
  (NULLIF(?, 0), ?, ?, ?, ?, ?, ?)
`

const updateGuestSQL = `
UPDATE guests SET
  national_id  = ?,
  name         = ?,
  address      = ?,
  phone        = ?,
  email        = ?,
  guarantor_id = ?
WHERE id = ?
`

const deleteGuestSQL = `DELETE FROM guests WHERE id = ?`

// -----------------------------------------------------------------------------
// EMPLOYEES
// -----------------------------------------------------------------------------

const employeeColumns = `id, national_id, name, address, phone, email`

const selectEmployeeSQL = `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`

const selectEmployeesSQL = `SELECT ` + employeeColumns + ` FROM employees ORDER BY id`

const selectEmployeeByNationalIDSQL = `SELECT ` + employeeColumns + ` FROM employees WHERE national_id = ?`

const insertEmployeeSQL = `
INSERT INTO employees
  (id, national_id, name, address, phone, email)
VALUES
  (NULLIF(?, 0), ?, ?, ?, ?, ?)
`

const updateEmployeeSQL = `
UPDATE employees SET
  national_id = ?,
  name        = ?,
  address     = ?,
  phone       = ?,
  email       = ?
WHERE id = ?
`

const deleteEmployeeSQL = `DELETE FROM employees WHERE id = ?`

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

const roomColumns = `id, type, available, price, description`

const selectRoomSQL = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`

const selectRoomsSQL = `SELECT ` + roomColumns + ` FROM rooms ORDER BY id`

const insertRoomSQL = `
INSERT INTO rooms
  (id, type, available, price, description)
VALUES
  (NULLIF(?, 0), ?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE rooms SET
  type        = ?,
  available   = ?,
  price       = ?,
  description = ?
WHERE id = ?
`

const deleteRoomSQL = `DELETE FROM rooms WHERE id = ?`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

const bookingColumns = `id, start_date, end_date, active, guest_id, employee_id`

const selectBookingSQL = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

const selectBookingsSQL = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY id`

const insertBookingSQL = `
INSERT INTO bookings
  (id, start_date, end_date, active, guest_id, employee_id)
VALUES
  (NULLIF(?, 0), ?, ?, ?, ?, ?)
`

const updateBookingSQL = `
UPDATE bookings SET
  start_date  = ?,
  end_date    = ?,
  active      = ?,
  guest_id    = ?,
  employee_id = ?
WHERE id = ?
`

// booking_rooms rows go with the booking (ON DELETE CASCADE).
const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

const selectBookingRoomsSQL = `SELECT room_id FROM booking_rooms WHERE booking_id = ? ORDER BY room_id`

const selectAllBookingRoomsSQL = `SELECT booking_id, room_id FROM booking_rooms ORDER BY booking_id, room_id`

const clearBookingRoomsSQL = `DELETE FROM booking_rooms WHERE booking_id = ?`

const insertBookingRoomsPrefix = "INSERT INTO booking_rooms (booking_id, room_id) VALUES "

// Inverse sides. Each query yields (owner id, booking id) pairs.

const bookingsByGuestSQL = `SELECT guest_id, id FROM bookings WHERE guest_id = ? ORDER BY id`

const bookingsByAllGuestsSQL = `SELECT guest_id, id FROM bookings WHERE guest_id IS NOT NULL ORDER BY id`

const bookingsByEmployeeSQL = `SELECT employee_id, id FROM bookings WHERE employee_id = ? ORDER BY id`

const bookingsByAllEmployeesSQL = `SELECT employee_id, id FROM bookings WHERE employee_id IS NOT NULL ORDER BY id`

const bookingsByRoomSQL = `SELECT room_id, booking_id FROM booking_rooms WHERE room_id = ? ORDER BY booking_id`

const bookingsByAllRoomsSQL = `SELECT room_id, booking_id FROM booking_rooms ORDER BY booking_id`

// -----------------------------------------------------------------------------
// RESOURCES
// -----------------------------------------------------------------------------

const resourceColumns = `id, name, description, price`

const selectResourceSQL = `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`

const selectResourcesSQL = `SELECT ` + resourceColumns + ` FROM resources ORDER BY id`

const insertResourceSQL = `
INSERT INTO resources
  (id, name, description, price)
VALUES
  (NULLIF(?, 0), ?, ?, ?)
`

const updateResourceSQL = `
UPDATE resources SET
  name        = ?,
  description = ?,
  price       = ?
WHERE id = ?
`

const deleteResourceSQL = `DELETE FROM resources WHERE id = ?`

const selectResourceProvidersSQL = `SELECT provider_id FROM resource_providers WHERE resource_id = ? ORDER BY position`

const selectAllResourceProvidersSQL = `SELECT resource_id, provider_id FROM resource_providers ORDER BY resource_id, position`

const clearResourceProvidersSQL = `DELETE FROM resource_providers WHERE resource_id = ?`

const insertResourceProvidersPrefix = "INSERT INTO resource_providers (resource_id, provider_id, position) VALUES "

const deleteProviderLinksSQL = `DELETE FROM resource_providers WHERE provider_id = ?`

const existsSQL = `SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)`
