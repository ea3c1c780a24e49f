package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/grupo05/coworking-space/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and their
// room associations.  A reservation groups one or more rooms booked by a
// single user for a time interval.  The association lives in the
// reservation_rooms join table; neither side holds back-pointers.  All
// timestamp fields are stored in UTC.
//
// Methods with the Tx suffix run inside a caller-provided transaction and
// never commit or roll back themselves; the booking engine owns the
// transaction boundary so that a reservation and all of its room links
// become visible atomically or not at all.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for opening transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = "id, user_id, status, description, date_init, date_end, created_at, updated_at"

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var (
		m    model.Reservation
		desc sql.NullString
	)
	err := row.Scan(&m.ID, &m.UserID, &m.Status, &desc, &m.DateInit, &m.DateEnd, &m.CreatedAt, &m.UpdatedAt)
	if desc.Valid {
		m.Description = desc.String
	}
	return m, err
}

// GetByID returns a single reservation with its room id set populated.
// ErrReservationNotFound is returned when the id does not resolve.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	m, err := scanReservation(r.db.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT room_id FROM reservation_rooms WHERE reservation_id = ? ORDER BY room_id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rid uint64
		if err := rows.Scan(&rid); err != nil {
			return nil, err
		}
		m.RoomIDs = append(m.RoomIDs, rid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListAll returns every reservation in insertion order with room id sets
// attached.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, "SELECT "+reservationColumns+" FROM reservations ORDER BY id")
}

// ListByUser returns all reservations owned by the given user in
// insertion order.  When no reservations exist an empty slice is
// returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE user_id = ? ORDER BY id", userID)
}

// FindBetween returns every reservation whose interval overlaps
// [start, end] under closed-interval comparison, regardless of rooms.
// This is the read-only range report; the booking gate uses the
// room-scoped FindOverlappingTx instead.
func (r *ReservationRepo) FindBetween(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE date_init <= ? AND date_end >= ? ORDER BY id",
		end.UTC(), start.UTC())
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		index[m.ID] = len(out)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	// Populate room id sets for all reservations in a single query.
	ids := make([]any, 0, len(out))
	placeholders := make([]string, 0, len(out))
	for _, m := range out {
		ids = append(ids, m.ID)
		placeholders = append(placeholders, "?")
	}
	linkQuery := "SELECT reservation_id, room_id FROM reservation_rooms WHERE reservation_id IN (" +
		strings.Join(placeholders, ",") + ") ORDER BY reservation_id, room_id"
	links, err := r.db.QueryContext(ctx, linkQuery, ids...)
	if err != nil {
		return nil, err
	}
	defer links.Close()
	for links.Next() {
		var resID, roomID uint64
		if err := links.Scan(&resID, &roomID); err != nil {
			return nil, err
		}
		if idx, ok := index[resID]; ok {
			out[idx].RoomIDs = append(out[idx].RoomIDs, roomID)
		}
	}
	if err := links.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOverlappingTx returns the ids of reservations whose interval
// overlaps [start, end] (closed-interval, touching boundaries conflict)
// AND that share at least one of the given rooms.  excludeID, when
// non-zero, skips that reservation so an update does not conflict with
// itself.  The query runs inside the caller's transaction: executed after
// ResolveTx has locked the room rows, it is the authoritative conflict
// gate for concurrent bookings of the same room.
func (r *ReservationRepo) FindOverlappingTx(ctx context.Context, tx *sql.Tx, start, end time.Time, roomIDs []uint64, excludeID uint64) ([]uint64, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(roomIDs)), ",")
	query := `SELECT DISTINCT res.id
	          FROM reservations res
	          JOIN reservation_rooms rr ON rr.reservation_id = res.id
	          WHERE res.date_init <= ? AND res.date_end >= ?
	            AND rr.room_id IN (` + placeholders + `)`
	args := []any{end.UTC(), start.UTC()}
	for _, id := range roomIDs {
		args = append(args, id)
	}
	if excludeID != 0 {
		query += " AND res.id <> ?"
		args = append(args, excludeID)
	}
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountOverlapping is the fast-fail variant of the conflict check used
// before a transaction is opened.  It is idempotent and advisory only:
// the in-transaction FindOverlappingTx repeats the check under row locks.
func (r *ReservationRepo) CountOverlapping(ctx context.Context, start, end time.Time, roomIDs []uint64, excludeID uint64) (int, error) {
	if len(roomIDs) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(roomIDs)), ",")
	query := `SELECT COUNT(DISTINCT res.id)
	          FROM reservations res
	          JOIN reservation_rooms rr ON rr.reservation_id = res.id
	          WHERE res.date_init <= ? AND res.date_end >= ?
	            AND rr.room_id IN (` + placeholders + `)`
	args := []any{end.UTC(), start.UTC()}
	for _, id := range roomIDs {
		args = append(args, id)
	}
	if excludeID != 0 {
		query += " AND res.id <> ?"
		args = append(args, excludeID)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID and timestamp fields on the
// provided record.  Room links are written separately via LinkRoomsTx so
// the caller controls the full atomic unit.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *model.Reservation) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, status, description, date_init, date_end) VALUES (?, ?, ?, ?, ?)",
		m.UserID, m.Status, nullableString(m.Description), m.DateInit.UTC(), m.DateEnd.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	got, err := scanReservation(tx.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ?", m.ID))
	if err != nil {
		return err
	}
	got.RoomIDs = m.RoomIDs
	*m = got
	return nil
}

// LinkRoomsTx inserts the reservation_rooms rows for a reservation in a
// single statement.  Passing an empty slice has no effect and returns nil.
func (r *ReservationRepo) LinkRoomsTx(ctx context.Context, tx *sql.Tx, reservationID uint64, roomIDs []uint64) error {
	if len(roomIDs) == 0 {
		return nil
	}
	query := "INSERT INTO reservation_rooms (reservation_id, room_id) VALUES "
	args := make([]any, 0, len(roomIDs)*2)
	for i, rid := range roomIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, reservationID, rid)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// UpdateTx replaces the mutable fields of an existing reservation inside
// the given transaction.  The id and owning user are immutable; room
// links are replaced separately via ReplaceRoomsTx.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, m *model.Reservation) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status = ?, description = ?, date_init = ?, date_end = ? WHERE id = ?",
		m.Status, nullableString(m.Description), m.DateInit.UTC(), m.DateEnd.UTC(), m.ID)
	if err != nil {
		return err
	}
	got, err := scanReservation(tx.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ?", m.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}
	got.RoomIDs = m.RoomIDs
	*m = got
	return nil
}

// ReplaceRoomsTx swaps the full room set of a reservation for a new one.
// Old links are removed and the new set inserted in the same transaction
// so the reservation is never observable with a partial room set.
func (r *ReservationRepo) ReplaceRoomsTx(ctx context.Context, tx *sql.Tx, reservationID uint64, roomIDs []uint64) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM reservation_rooms WHERE reservation_id = ?", reservationID); err != nil {
		return err
	}
	return r.LinkRoomsTx(ctx, tx, reservationID, roomIDs)
}

// DeleteTx removes a reservation, detaching it from every associated room
// before the reservation row itself is removed.  Room rows are left
// intact.  ErrReservationNotFound is returned when the id does not
// resolve.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM reservation_rooms WHERE reservation_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
