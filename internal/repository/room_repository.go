package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/grupo05/coworking-space/internal/model"
)

// RoomRepo provides CRUD operations for rooms.  Rooms are shared,
// concurrently read by every booking attempt; administrative writes go
// through Update/Delete while booking-time reads inside a transaction use
// the ...Tx variants so callers can lock the rows they are about to book.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span rooms and reservations.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomColumns = "id, name, capacity, status, created_at, updated_at"

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var m model.Room
	err := row.Scan(&m.ID, &m.Name, &m.Capacity, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create inserts a new room.  After the insert a follow-up SELECT
// populates the generated ID and the default timestamp columns so that
// callers receive a fully populated record.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rooms (name, capacity, status) VALUES (?, ?, ?)",
		m.Name, m.Capacity, m.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	got, err := scanRoom(r.db.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ?", m.ID))
	if err != nil {
		return err
	}
	*m = got
	return nil
}

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when no
// row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	m, err := scanRoom(r.db.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all rooms in insertion order.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+roomColumns+" FROM rooms ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		m, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable fields of a room.  ErrRoomNotFound is
// returned when the id does not resolve.
func (r *RoomRepo) Update(ctx context.Context, m *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE rooms SET name = ?, capacity = ?, status = ? WHERE id = ?",
		m.Name, m.Capacity, m.Status, m.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also zero when the update was a no-op, so
		// confirm the row really is missing before reporting not found.
		if _, getErr := r.GetByID(ctx, m.ID); getErr != nil {
			return getErr
		}
	}
	got, err := scanRoom(r.db.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ?", m.ID))
	if err != nil {
		return err
	}
	*m = got
	return nil
}

// Delete removes a room.  A room that still backs reservations must not
// be removed (the reservations would lose part of their room set), so the
// join table is checked first and ErrConflict is returned while rows
// reference it.  The check and delete run in one transaction so a booking
// cannot slip in between them.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var refs int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservation_rooms WHERE room_id = ? FOR UPDATE", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ResolveTx loads every requested room inside the given transaction,
// locking the rows with FOR UPDATE so concurrent bookings of the same
// rooms serialize on the lock.  Resolution is all-or-nothing: if any id
// does not exist, ErrRoomNotFound is returned and no partial set is
// handed back.  Duplicate ids in the input resolve once.
func (r *RoomRepo) ResolveTx(ctx context.Context, tx *sql.Tx, ids []uint64) ([]model.Room, error) {
	if len(ids) == 0 {
		return nil, ErrRoomNotFound
	}
	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(unique)), ",")
	args := make([]any, len(unique))
	for i, id := range unique {
		args[i] = id
	}
	query := "SELECT " + roomColumns + " FROM rooms WHERE id IN (" + placeholders + ") ORDER BY id FOR UPDATE"
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0, len(unique))
	for rows.Next() {
		m, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) != len(unique) {
		return nil, ErrRoomNotFound
	}
	return out, nil
}
