package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/grupo05/coworking-space/internal/model"
	"github.com/grupo05/coworking-space/internal/repository"
)

// maxDescriptionLen bounds the free-text description column.
const maxDescriptionLen = 255

// Notifier is invoked once after a reservation has been committed, with
// the created reservation, its resolved rooms and the participant email
// addresses from the request.  Delivery failures must never fail the
// booking; the engine calls the notifier on a detached goroutine and
// ignores its error.
type Notifier func(ctx context.Context, res model.Reservation, rooms []model.Room, participants []string) error

// CreateRequest is the payload for booking a new reservation.
type CreateRequest struct {
	UserID            uint64    `json:"user_id"`
	Status            string    `json:"status"`
	Description       string    `json:"description"`
	DateInit          time.Time `json:"date_init"`
	DateEnd           time.Time `json:"date_end"`
	RoomIDs           []uint64  `json:"room_ids"`
	ParticipantEmails []string  `json:"participant_emails"`
}

// UpdateRequest carries the replacement fields for an existing
// reservation.  The id and the owning user are immutable.
type UpdateRequest struct {
	ID          uint64    `json:"id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	DateInit    time.Time `json:"date_init"`
	DateEnd     time.Time `json:"date_end"`
	RoomIDs     []uint64  `json:"room_ids"`
}

// RoomStore is the slice of room persistence the engine consumes.
// *repository.RoomRepo satisfies it; tests substitute fakes.
type RoomStore interface {
	ResolveTx(ctx context.Context, tx *sql.Tx, ids []uint64) ([]model.Room, error)
}

// ReservationStore is the reservation persistence the engine consumes.
// *repository.ReservationRepo satisfies it.
type ReservationStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]model.Reservation, error)
	CountOverlapping(ctx context.Context, start, end time.Time, roomIDs []uint64, excludeID uint64) (int, error)
	FindOverlappingTx(ctx context.Context, tx *sql.Tx, start, end time.Time, roomIDs []uint64, excludeID uint64) ([]uint64, error)
	CreateTx(ctx context.Context, tx *sql.Tx, m *model.Reservation) error
	LinkRoomsTx(ctx context.Context, tx *sql.Tx, reservationID uint64, roomIDs []uint64) error
	UpdateTx(ctx context.Context, tx *sql.Tx, m *model.Reservation) error
	ReplaceRoomsTx(ctx context.Context, tx *sql.Tx, reservationID uint64, roomIDs []uint64) error
	DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error
}

// Engine is the booking orchestrator.  Each operation composes the room
// and reservation stores into a single transactional unit per request:
// within one call the order is fixed as conflict check, room resolution,
// persistence, and the final persistence step runs in one store
// transaction so a caller disconnecting mid-operation can never leave a
// partially linked reservation behind.
//
// Across concurrent calls the engine relies on the FOR UPDATE locks taken
// by RoomStore.ResolveTx: two creates that share a room serialize on the
// locked rows, and the overlap check is repeated under the lock before
// anything is written.
type Engine struct {
	db           *sql.DB
	rooms        RoomStore
	reservations ReservationStore
	notify       Notifier
}

// NewEngine constructs the orchestrator.  The notifier is optional; both
// stores must be non-nil.
func NewEngine(db *sql.DB, rooms RoomStore, reservations ReservationStore, notify Notifier) *Engine {
	if db == nil || rooms == nil || reservations == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{db: db, rooms: rooms, reservations: reservations, notify: notify}
}

// validateInterval checks the payload fields every booking shares.  The
// date ordering is validated here even though callers are expected to
// have validated it upstream.
func validateInterval(dateInit, dateEnd time.Time, roomIDs []uint64, description, status string) *Error {
	reasons := map[string]string{}
	if dateInit.IsZero() {
		reasons["date_init"] = "required"
	}
	if dateEnd.IsZero() {
		reasons["date_end"] = "required"
	}
	if !dateInit.IsZero() && !dateEnd.IsZero() && dateInit.After(dateEnd) {
		reasons["date_end"] = "must not be before date_init"
	}
	if len(roomIDs) == 0 {
		reasons["room_ids"] = "at least one room is required"
	}
	for _, id := range roomIDs {
		if id == 0 {
			reasons["room_ids"] = "room ids must be positive"
		}
	}
	if len(description) > maxDescriptionLen {
		reasons["description"] = fmt.Sprintf("at most %d characters", maxDescriptionLen)
	}
	if status != "" && !model.ValidReservationStatus(status) {
		reasons["status"] = "unknown reservation status"
	}
	if len(reasons) > 0 {
		return Invalid("invalid reservation payload", reasons)
	}
	return nil
}

// Create books a new reservation.  The request is validated, the caller
// must be the owner or an administrator, the interval must be free on all
// requested rooms, and every room must exist and be AVAILABLE.  The
// reservation row and all of its room links are committed as one unit.
func (e *Engine) Create(ctx context.Context, req *CreateRequest, id Identity) (*model.Reservation, error) {
	if req == nil {
		return nil, NewError(KindBadRequest, "missing reservation payload")
	}
	if req.UserID == 0 {
		return nil, Invalid("invalid reservation payload", map[string]string{"user_id": "required"})
	}
	if verr := validateInterval(req.DateInit, req.DateEnd, req.RoomIDs, req.Description, req.Status); verr != nil {
		return nil, verr
	}
	if !id.CanActFor(req.UserID) {
		return nil, NewError(KindForbidden, "cannot create reservations for other users")
	}
	status := req.Status
	if status == "" {
		status = model.ReservationPending
	}

	// Fast-fail conflict check before paying for a transaction.  The
	// authoritative check repeats under row locks below, so this one may
	// run any number of times without side effects.
	if n, err := e.reservations.CountOverlapping(ctx, req.DateInit, req.DateEnd, req.RoomIDs, 0); err != nil {
		return nil, StoreErr(err)
	} else if n > 0 {
		return nil, NewError(KindDateNotAvailable, "requested interval overlaps an existing reservation")
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, StoreErr(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rooms, err := e.resolveBookableTx(ctx, tx, req.RoomIDs)
	if err != nil {
		return nil, err
	}
	overlapping, err := e.reservations.FindOverlappingTx(ctx, tx, req.DateInit, req.DateEnd, req.RoomIDs, 0)
	if err != nil {
		return nil, StoreErr(err)
	}
	if len(overlapping) > 0 {
		return nil, NewError(KindDateNotAvailable, "requested interval overlaps an existing reservation")
	}

	res := &model.Reservation{
		UserID:      req.UserID,
		Status:      status,
		Description: req.Description,
		DateInit:    req.DateInit,
		DateEnd:     req.DateEnd,
		RoomIDs:     roomIDSet(rooms),
	}
	if err := e.reservations.CreateTx(ctx, tx, res); err != nil {
		return nil, StoreErr(err)
	}
	if err := e.reservations.LinkRoomsTx(ctx, tx, res.ID, res.RoomIDs); err != nil {
		return nil, StoreErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, StoreErr(err)
	}
	committed = true
	log.Printf("booking: reservation %d created for user %d (%d rooms)", res.ID, res.UserID, len(res.RoomIDs))

	if e.notify != nil && len(req.ParticipantEmails) > 0 {
		snapshot := *res
		participants := append([]string(nil), req.ParticipantEmails...)
		roomsCopy := append([]model.Room(nil), rooms...)
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := e.notify(nctx, snapshot, roomsCopy, participants); err != nil {
				log.Printf("booking: notification for reservation %d failed: %v", snapshot.ID, err)
			}
		}()
	}
	return res, nil
}

// Update re-validates and replaces an existing reservation as a single
// atomic unit.  The same authorization, conflict and room-resolution
// rules as Create apply, with the overlap check excluding the reservation
// itself.
func (e *Engine) Update(ctx context.Context, req *UpdateRequest, id Identity) (*model.Reservation, error) {
	if req == nil || req.ID == 0 {
		return nil, NewError(KindBadRequest, "missing reservation payload")
	}
	if verr := validateInterval(req.DateInit, req.DateEnd, req.RoomIDs, req.Description, req.Status); verr != nil {
		return nil, verr
	}
	existing, err := e.reservations.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, NewError(KindNotFound, "reservation not found")
		}
		return nil, StoreErr(err)
	}
	if !id.CanActFor(existing.UserID) {
		return nil, NewError(KindForbidden, "cannot modify another user's reservation")
	}
	status := req.Status
	if status == "" {
		status = existing.Status
	}

	if n, err := e.reservations.CountOverlapping(ctx, req.DateInit, req.DateEnd, req.RoomIDs, req.ID); err != nil {
		return nil, StoreErr(err)
	} else if n > 0 {
		return nil, NewError(KindDateNotAvailable, "requested interval overlaps an existing reservation")
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, StoreErr(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rooms, err := e.resolveBookableTx(ctx, tx, req.RoomIDs)
	if err != nil {
		return nil, err
	}
	overlapping, err := e.reservations.FindOverlappingTx(ctx, tx, req.DateInit, req.DateEnd, req.RoomIDs, req.ID)
	if err != nil {
		return nil, StoreErr(err)
	}
	if len(overlapping) > 0 {
		return nil, NewError(KindDateNotAvailable, "requested interval overlaps an existing reservation")
	}

	res := &model.Reservation{
		ID:          existing.ID,
		UserID:      existing.UserID,
		Status:      status,
		Description: req.Description,
		DateInit:    req.DateInit,
		DateEnd:     req.DateEnd,
		RoomIDs:     roomIDSet(rooms),
	}
	if err := e.reservations.UpdateTx(ctx, tx, res); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, NewError(KindNotFound, "reservation not found")
		}
		return nil, StoreErr(err)
	}
	if err := e.reservations.ReplaceRoomsTx(ctx, tx, res.ID, res.RoomIDs); err != nil {
		return nil, StoreErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, StoreErr(err)
	}
	committed = true
	log.Printf("booking: reservation %d updated", res.ID)
	return res, nil
}

// Delete removes a reservation, detaching it from every associated room
// first.  Only the owner or an administrator may delete it.
func (e *Engine) Delete(ctx context.Context, reservationID uint64, id Identity) error {
	existing, err := e.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return NewError(KindNotFound, "reservation not found")
		}
		return StoreErr(err)
	}
	if !id.CanActFor(existing.UserID) {
		return NewError(KindForbidden, "cannot delete another user's reservation")
	}
	return e.deleteOne(ctx, reservationID)
}

func (e *Engine) deleteOne(ctx context.Context, reservationID uint64) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return StoreErr(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := e.reservations.DeleteTx(ctx, tx, reservationID); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return NewError(KindNotFound, "reservation not found")
		}
		return StoreErr(err)
	}
	if err := tx.Commit(); err != nil {
		return StoreErr(err)
	}
	committed = true
	log.Printf("booking: reservation %d deleted", reservationID)
	return nil
}

// DeleteAllForUser removes every reservation owned by userID.  Used for
// account cleanup.  Each reservation is deleted in its own transaction,
// so the batch is deliberately not atomic: a failure partway through
// leaves earlier deletions committed.
func (e *Engine) DeleteAllForUser(ctx context.Context, userID uint64, id Identity) error {
	if !id.CanActFor(userID) {
		return NewError(KindForbidden, "cannot delete another user's reservations")
	}
	owned, err := e.reservations.ListByUser(ctx, userID)
	if err != nil {
		return StoreErr(err)
	}
	for _, res := range owned {
		if err := e.deleteOne(ctx, res.ID); err != nil {
			return err
		}
	}
	log.Printf("booking: removed %d reservations for user %d", len(owned), userID)
	return nil
}

// Get returns a single reservation.  Non-admin callers only see their
// own.
func (e *Engine) Get(ctx context.Context, reservationID uint64, id Identity) (*model.Reservation, error) {
	res, err := e.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, NewError(KindNotFound, "reservation not found")
		}
		return nil, StoreErr(err)
	}
	if !id.CanActFor(res.UserID) {
		return nil, NewError(KindForbidden, "cannot read another user's reservation")
	}
	return res, nil
}

// List returns reservations in insertion order: all of them for
// administrators, otherwise the caller's own.  An empty result is a
// valid, non-error outcome.
func (e *Engine) List(ctx context.Context, id Identity) ([]model.Reservation, error) {
	var (
		out []model.Reservation
		err error
	)
	if id.IsAdmin() {
		out, err = e.reservations.ListAll(ctx)
	} else {
		out, err = e.reservations.ListByUser(ctx, id.UserID)
	}
	if err != nil {
		return nil, StoreErr(err)
	}
	return out, nil
}

// ListBetween returns every reservation overlapping [start, end] under
// closed-interval comparison, regardless of rooms or owner.  Reading the
// same range twice without intervening writes returns the same set.
func (e *Engine) ListBetween(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	if start.IsZero() || end.IsZero() {
		return nil, Invalid("invalid range", map[string]string{"range": "start and end are required"})
	}
	if start.After(end) {
		return nil, Invalid("invalid range", map[string]string{"end": "must not be before start"})
	}
	out, err := e.reservations.FindBetween(ctx, start, end)
	if err != nil {
		return nil, StoreErr(err)
	}
	return out, nil
}

// resolveBookableTx resolves and locks the requested rooms, then checks
// that each one is bookable.  The first unavailable room aborts the whole
// operation; no subset is ever booked.
func (e *Engine) resolveBookableTx(ctx context.Context, tx *sql.Tx, roomIDs []uint64) ([]model.Room, error) {
	rooms, err := e.rooms.ResolveTx(ctx, tx, roomIDs)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, NewError(KindRoomNotAvailable, "no rooms found for the given ids")
		}
		return nil, StoreErr(err)
	}
	for _, room := range rooms {
		if !room.Bookable() {
			return nil, NewError(KindRoomNotAvailable,
				fmt.Sprintf("room %q is not available because it is %s", room.Name, strings.ToLower(room.Status)))
		}
	}
	return rooms, nil
}

func roomIDSet(rooms []model.Room) []uint64 {
	ids := make([]uint64, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}
	return ids
}
