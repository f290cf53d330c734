package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/dbmetrics"
	"github.com/kmlvnk/SLN-BookingService/pkg/psqlbuilder"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"staff_id",
	"reservation_date",
	"start_time",
	"duration_minutes",
	"session_id",
	"expires_at",
	"created_at",
}

// Repository репозиторий для работы с временными резервами слотов
// Таблица slot_reservations несет уникальный индекс
// (staff_id, reservation_date, start_time) - именно он, а не проверки
// в коде, гарантирует единственного победителя при конкурентных запросах
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резервов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает резерв слота
// Нарушение уникального индекса транслируется в ErrDuplicateSlot -
// это ожидаемый исход проигравшего при гонке двух сессий за один слот
func (r *Repository) Create(ctx context.Context, res *domain.SlotReservation) (*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_reservations").
		Columns(
			"staff_id",
			"reservation_date",
			"start_time",
			"duration_minutes",
			"session_id",
			"expires_at",
		).
		Values(
			res.StaffID,
			dateOnly(res.Date),
			res.StartTime,
			res.DurationMinutes,
			res.SessionID,
			res.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time

	return res, nil
}

// ListOverlapping получает живые (не истекшие) резервы других сессий,
// пересекающиеся с полуоткрытым интервалом [start, end) на дату
func (r *Repository) ListOverlapping(ctx context.Context, staffID int64, date time.Time, start, end types.TimeString, excludeSessionID string, now time.Time) ([]*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("slot_reservations").
		Where(squirrel.Eq{"staff_id": staffID, "reservation_date": dateOnly(date)}).
		Where(squirrel.NotEq{"session_id": excludeSessionID}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Expr("start_time + make_interval(mins => duration_minutes) > ?", start)).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "ListOverlapping")
}

// ListLiveByStaffIDs получает живые резервы нескольких сотрудников на дату
// одним запросом, исключая резервы запрашивающей сессии
func (r *Repository) ListLiveByStaffIDs(ctx context.Context, staffIDs []int64, date time.Time, excludeSessionID string, now time.Time) ([]*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("slot_reservations").
		Where(squirrel.Eq{"staff_id": staffIDs, "reservation_date": dateOnly(date)}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("staff_id ASC, start_time ASC")

	if excludeSessionID != "" {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"session_id": excludeSessionID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveByStaffIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "ListLiveByStaffIDs")
}

// ListBySession получает все резервы сессии
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("slot_reservations").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("reservation_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "ListBySession")
}

// DeleteBySession удаляет все резервы сессии
// Сессия держит не более одного живого резерва: выбор нового слота
// неявно освобождает предыдущий
func (r *Repository) DeleteBySession(ctx context.Context, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_reservations").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBySession - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteBySession - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteBySessionAndSlot удаляет конкретный резерв сессии
func (r *Repository) DeleteBySessionAndSlot(ctx context.Context, sessionID string, staffID int64, date time.Time, start types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_reservations").
		Where(squirrel.Eq{
			"session_id":       sessionID,
			"staff_id":         staffID,
			"reservation_date": dateOnly(date),
			"start_time":       start,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBySessionAndSlot - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteBySessionAndSlot - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет истекшие резервы (ленивая очистка)
// Возвращает количество удаленных строк
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_reservations").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) queryReservations(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.SlotReservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.SlotReservation, 0)
	for rows.Next() {
		var res domain.SlotReservation
		var createdAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.StaffID,
			&res.Date,
			&res.StartTime,
			&res.DurationMinutes,
			&res.SessionID,
			&res.ExpiresAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		res.CreatedAt = createdAt.Time
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
