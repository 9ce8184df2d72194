package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"table-booking/internal/domain/booking"
	"table-booking/internal/domain/customer"
	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/table"
	"table-booking/internal/infra/db"
	"table-booking/internal/infra/metrics"
	"table-booking/internal/infra/readstore"
	"table-booking/internal/infra/repository"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeExclusionViolation   = "23P01"
)

const maxRetries = 3

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, options pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool TxBeginner
	base time.Duration
}

func NewPostgresUoW(pool TxBeginner) *PostgresUoW {
	return &PostgresUoW{pool: pool, base: 100 * time.Millisecond}
}

// Within runs fn in a read-committed transaction. Overlapping inserts are
// caught by the exclusion constraint and the whole closure is re-run, so the
// availability check sees the winning booking on the next attempt.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, r shared.Reads) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, newReads(pgxTx)); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, newTx(pgxTx))
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		code, retryable := retryableCode(err)
		if !retryable {
			return err
		}
		if attempt == maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"code", code,
				"error", err.Error())
			err = errs.Mark(err, errMaxRetriesExceeded)
			if code == pgErrCodeExclusionViolation {
				err = errs.Mark(err, errs.ErrSlotUnavailable)
			}
			return err
		}

		metrics.IncTxRetry(code)
		waitTime := calculateBackoff(attempt, u.base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"code", code,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to a non-negative value above
	return int64(uval) % n
}

func retryableCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeExclusionViolation:
		return pgErr.Code, true
	default:
		return "", false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo  shared.BookingRepository
	customerRepo shared.CustomerRepository
	settingsRepo shared.SettingsRepository
	reads        shared.Reads
}

func newTx(dbtx db.DBTX) *pgTx {
	return &pgTx{dbtx: dbtx}
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Customers() shared.CustomerRepository {
	if t.customerRepo == nil {
		t.customerRepo = repository.NewCustomerRepository(t.dbtx)
	}
	return t.customerRepo
}

func (t *pgTx) Settings() shared.SettingsRepository {
	if t.settingsRepo == nil {
		t.settingsRepo = repository.NewSettingsRepository(t.dbtx)
	}
	return t.settingsRepo
}

func (t *pgTx) Reads() shared.Reads {
	if t.reads == nil {
		t.reads = newReads(t.dbtx)
	}
	return t.reads
}

// reads binds the read stores to one transaction.
type reads struct {
	settings  *readstore.SettingsReadStore
	tables    *readstore.TableReadStore
	bookings  *readstore.BookingReadStore
	customers *readstore.CustomerReadStore
}

func newReads(dbtx db.DBTX) *reads {
	return &reads{
		settings:  readstore.NewSettingsReadStore(dbtx),
		tables:    readstore.NewTableReadStore(dbtx),
		bookings:  readstore.NewBookingReadStore(dbtx),
		customers: readstore.NewCustomerReadStore(dbtx),
	}
}

func (r *reads) Schedule(ctx context.Context) (schedule.Week, error) {
	return r.settings.Schedule(ctx)
}

func (r *reads) Tables(ctx context.Context) ([]table.Table, error) {
	return r.tables.ListAvailable(ctx)
}

func (r *reads) Occupancy(ctx context.Context, date schedule.Date) ([]booking.Occupancy, error) {
	return r.bookings.OccupancyByDate(ctx, date)
}

func (r *reads) GroupByID(ctx context.Context, id uuid.UUID) (*shared.GroupSnapshot, error) {
	return r.bookings.GroupByID(ctx, id)
}

func (r *reads) CustomerByUserID(ctx context.Context, userID uuid.UUID) (*customer.Customer, error) {
	return r.customers.FindByUserID(ctx, userID)
}

func (r *reads) CustomerByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.customers.FindByPhone(ctx, phone)
}

func (r *reads) CustomerHasBookings(ctx context.Context, customerID uuid.UUID) (bool, error) {
	return r.customers.HasBookings(ctx, customerID)
}
