package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/dbmetrics"
	"github.com/kmlvnk/SLN-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписаниями: часы работы салона,
// недельные графики сотрудников и исключения на конкретные даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ==========================================================
// Часы работы салона (shop_hours)
// ==========================================================

// GetShopHours получает часы работы салона на день недели
// Отсутствие записи означает, что салон в этот день закрыт
func (r *Repository) GetShopHours(ctx context.Context, salonID int64, weekday int) (*domain.ShopHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"weekday",
		"is_open",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("shop_hours").
		Where(squirrel.Eq{"salon_id": salonID, "weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetShopHours - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.ShopHours
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ID,
		&hours.SalonID,
		&hours.Weekday,
		&hours.IsOpen,
		&hours.OpenTime,
		&hours.CloseTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrShopHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetShopHours - scan shop hours: %v", ErrScanRow, err)
	}

	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return &hours, nil
}

// ListShopHours получает часы работы салона на все дни недели
func (r *Repository) ListShopHours(ctx context.Context, salonID int64) ([]*domain.ShopHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"weekday",
		"is_open",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("shop_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListShopHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListShopHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ShopHours, 0)
	for rows.Next() {
		var hours domain.ShopHours
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&hours.ID,
			&hours.SalonID,
			&hours.Weekday,
			&hours.IsOpen,
			&hours.OpenTime,
			&hours.CloseTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListShopHours - scan row: %v", ErrScanRow, err)
		}

		hours.CreatedAt = createdAt.Time
		hours.UpdatedAt = updatedAt.Time
		result = append(result, &hours)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListShopHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpsertShopHours сохраняет часы работы салона на день недели
// Повторная запись для той же пары (salon_id, weekday) обновляет существующую
func (r *Repository) UpsertShopHours(ctx context.Context, hours *domain.ShopHours) (*domain.ShopHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shop_hours").
		Columns(
			"salon_id",
			"weekday",
			"is_open",
			"open_time",
			"close_time",
		).
		Values(
			hours.SalonID,
			hours.Weekday,
			hours.IsOpen,
			hours.OpenTime,
			hours.CloseTime,
		).
		Suffix(`ON CONFLICT (salon_id, weekday) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertShopHours - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertShopHours - execute insert: %v", ErrExecQuery, err)
	}

	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return hours, nil
}

// ==========================================================
// Недельные графики сотрудников (staff_working_hours)
// ==========================================================

// GetStaffWorkingHours получает график сотрудника на день недели
// Отсутствие записи означает "использовать часы работы салона",
// а не "сотрудник не работает"
func (r *Repository) GetStaffWorkingHours(ctx context.Context, staffID int64, weekday int) (*domain.StaffWorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"weekday",
		"is_working",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("staff_working_hours").
		Where(squirrel.Eq{"staff_id": staffID, "weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.StaffWorkingHours
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.StaffID,
		&wh.Weekday,
		&wh.IsWorking,
		&wh.StartTime,
		&wh.EndTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffWorkingHours - scan working hours: %v", ErrScanRow, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}

// ListStaffWorkingHoursByStaffIDs получает графики нескольких сотрудников
// на день недели одним запросом (для bulk-просмотра доступности)
func (r *Repository) ListStaffWorkingHoursByStaffIDs(ctx context.Context, staffIDs []int64, weekday int) ([]*domain.StaffWorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"weekday",
		"is_working",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("staff_working_hours").
		Where(squirrel.Eq{"staff_id": staffIDs, "weekday": weekday}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffWorkingHoursByStaffIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffWorkingHoursByStaffIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.StaffWorkingHours, 0)
	for rows.Next() {
		var wh domain.StaffWorkingHours
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&wh.ID,
			&wh.StaffID,
			&wh.Weekday,
			&wh.IsWorking,
			&wh.StartTime,
			&wh.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListStaffWorkingHoursByStaffIDs - scan row: %v", ErrScanRow, err)
		}

		wh.CreatedAt = createdAt.Time
		wh.UpdatedAt = updatedAt.Time
		result = append(result, &wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaffWorkingHoursByStaffIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpsertStaffWorkingHours сохраняет график сотрудника на день недели
// Повторная запись для той же пары (staff_id, weekday) обновляет существующую
func (r *Repository) UpsertStaffWorkingHours(ctx context.Context, wh *domain.StaffWorkingHours) (*domain.StaffWorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_working_hours").
		Columns(
			"staff_id",
			"weekday",
			"is_working",
			"start_time",
			"end_time",
		).
		Values(
			wh.StaffID,
			wh.Weekday,
			wh.IsWorking,
			wh.StartTime,
			wh.EndTime,
		).
		Suffix(`ON CONFLICT (staff_id, weekday) DO UPDATE SET
			is_working = EXCLUDED.is_working,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertStaffWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertStaffWorkingHours - execute insert: %v", ErrExecQuery, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return wh, nil
}

// ==========================================================
// Исключения из графика (schedule_overrides)
// ==========================================================

// GetOverride получает исключение из графика сотрудника на конкретную дату
func (r *Repository) GetOverride(ctx context.Context, staffID int64, date time.Time) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overrideSelect().
		Where(squirrel.Eq{"staff_id": staffID, "override_date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	override, err := scanOverrideRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// ListOverridesByStaffIDs получает исключения нескольких сотрудников на дату
// одним запросом (для bulk-просмотра доступности)
func (r *Repository) ListOverridesByStaffIDs(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overrideSelect().
		Where(squirrel.Eq{"staff_id": staffIDs, "override_date": dateOnly(date)}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesByStaffIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryOverrides(ctx, executor, query, args, "ListOverridesByStaffIDs")
}

// ListOverridesByMonth получает все исключения сотрудника за календарный месяц
// Используется админским календарем
func (r *Repository) ListOverridesByMonth(ctx context.Context, staffID int64, year int, month time.Month) ([]*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	query, args, err := overrideSelect().
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"override_date": monthStart}).
		Where(squirrel.Lt{"override_date": monthEnd}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesByMonth - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryOverrides(ctx, executor, query, args, "ListOverridesByMonth")
}

// UpsertOverride сохраняет исключение из графика на дату
// Повторная запись для той же пары (staff_id, override_date) обновляет
// существующее исключение, а не создает дубликат
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_overrides").
		Columns(
			"staff_id",
			"override_date",
			"is_day_off",
			"is_time_off",
			"start_time",
			"end_time",
			"note",
		).
		Values(
			override.StaffID,
			dateOnly(override.Date),
			override.IsDayOff,
			override.IsTimeOff,
			override.StartTime,
			override.EndTime,
			override.Note,
		).
		Suffix(`ON CONFLICT (staff_id, override_date) DO UPDATE SET
			is_day_off = EXCLUDED.is_day_off,
			is_time_off = EXCLUDED.is_time_off,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			note = EXCLUDED.note,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// DeleteOverride удаляет исключение из графика по ID
func (r *Repository) DeleteOverride(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_overrides").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// ==========================================================
// Вспомогательные функции
// ==========================================================

func overrideSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"staff_id",
		"override_date",
		"is_day_off",
		"is_time_off",
		"start_time",
		"end_time",
		"note",
		"created_at",
		"updated_at",
	).From("schedule_overrides")
}

// rowScanner общий интерфейс для sql.Row и sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverrideRow(row rowScanner) (*domain.ScheduleOverride, error) {
	var override domain.ScheduleOverride
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.StaffID,
		&override.Date,
		&override.IsDayOff,
		&override.IsTimeOff,
		&override.StartTime,
		&override.EndTime,
		&override.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}

func (r *Repository) queryOverrides(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.ScheduleOverride, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.ScheduleOverride, 0)
	for rows.Next() {
		override, err := scanOverrideRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		result = append(result, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
