package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/ragnarok-registration/internal/entity"
)

// ErrAcquireConnection is returned when no pooled connection could be obtained.
var ErrAcquireConnection = errors.New("acquire database connection")

// registerUserSQL calls the procedure; the trailing NULLs are placeholders
// for its OUT parameters, which come back as the single result row.
const registerUserSQL = `CALL register_user($1, $2, $3, $4, NULL, NULL)`

// Conn is a connection borrowed from a ConnPool. Release returns it.
type Conn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Release()
}

// ConnPool hands out connections, blocking while none are free.
type ConnPool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// RegistrationRepository creates accounts through the register_user procedure.
type RegistrationRepository interface {
	Register(ctx context.Context, reg entity.Registration) (entity.RegistrationOutcome, error)
}

// PGXRegistrationRepository implements RegistrationRepository with pgx.
type PGXRegistrationRepository struct {
	pool ConnPool
}

// NewPGXRegistrationRepository instantiates a registration repository on a pgx pool.
func NewPGXRegistrationRepository(pool *pgxpool.Pool) *PGXRegistrationRepository {
	return NewRegistrationRepository(PGXPool{Pool: pool})
}

// NewRegistrationRepository instantiates a registration repository on any ConnPool.
func NewRegistrationRepository(pool ConnPool) *PGXRegistrationRepository {
	return &PGXRegistrationRepository{pool: pool}
}

// Register calls register_user on a single pooled connection and returns its
// OUT values. The connection is released exactly once, and only if it was
// acquired.
func (r *PGXRegistrationRepository) Register(ctx context.Context, reg entity.Registration) (entity.RegistrationOutcome, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return entity.RegistrationOutcome{}, fmt.Errorf("%w: %w", ErrAcquireConnection, err)
	}
	defer conn.Release()

	var (
		result  pgtype.Int4
		message pgtype.Text
	)
	row := conn.QueryRow(ctx, registerUserSQL, reg.Username, reg.Password, reg.Email, reg.Sex)
	if err := row.Scan(&result, &message); err != nil {
		return entity.RegistrationOutcome{}, fmt.Errorf("call register_user: %w", err)
	}

	// A NULL result cannot be a success, so it surfaces as a rejection.
	return entity.RegistrationOutcome{
		Result:  int(result.Int32),
		Message: message.String,
	}, nil
}

// PGXPool adapts *pgxpool.Pool to ConnPool.
type PGXPool struct {
	Pool *pgxpool.Pool
}

// Acquire borrows a connection from the underlying pool.
func (p PGXPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
