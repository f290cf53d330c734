package discount

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/dbmetrics"
	"github.com/kmlvnk/SLN-BookingService/pkg/psqlbuilder"
)

var discountColumns = []string{
	"id",
	"salon_id",
	"title",
	"discount_percent",
	"start_time",
	"end_time",
	"days_of_week",
	"service_ids",
	"staff_ids",
	"is_active",
	"valid_from",
	"valid_until",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со скидками
// Массивные поля (days_of_week, service_ids, staff_ids) хранятся
// как PostgreSQL массивы и читаются через pq.Array
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория скидок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую скидку
func (r *Repository) Create(ctx context.Context, d *domain.Discount) (*domain.Discount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("discounts").
		Columns(
			"salon_id",
			"title",
			"discount_percent",
			"start_time",
			"end_time",
			"days_of_week",
			"service_ids",
			"staff_ids",
			"is_active",
			"valid_from",
			"valid_until",
		).
		Values(
			d.SalonID,
			d.Title,
			d.DiscountPercent,
			d.StartTime,
			d.EndTime,
			pq.Array(d.DaysOfWeek),
			pq.Array(d.ServiceIDs),
			pq.Array(d.StaffIDs),
			d.IsActive,
			d.ValidFrom,
			d.ValidUntil,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return d, nil
}

// GetByID получает скидку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Discount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(discountColumns...).
		From("discounts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	d, err := scanDiscount(row)
	if err == sql.ErrNoRows {
		return nil, ErrDiscountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan discount: %v", ErrScanRow, err)
	}

	return d, nil
}

// ListBySalon получает скидки салона в порядке создания
// Порядок важен: first-match выбор скидки при расчете цены зависит от него
func (r *Repository) ListBySalon(ctx context.Context, salonID int64, activeOnly bool) ([]*domain.Discount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(discountColumns...).
		From("discounts").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("created_at ASC, id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	discounts := make([]*domain.Discount, 0)
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %v", ErrScanRow, err)
		}
		discounts = append(discounts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %v", ErrScanRow, err)
	}

	return discounts, nil
}

// Update обновляет скидку
func (r *Repository) Update(ctx context.Context, d *domain.Discount) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("discounts").
		Set("title", d.Title).
		Set("discount_percent", d.DiscountPercent).
		Set("start_time", d.StartTime).
		Set("end_time", d.EndTime).
		Set("days_of_week", pq.Array(d.DaysOfWeek)).
		Set("service_ids", pq.Array(d.ServiceIDs)).
		Set("staff_ids", pq.Array(d.StaffIDs)).
		Set("is_active", d.IsActive).
		Set("valid_from", d.ValidFrom).
		Set("valid_until", d.ValidUntil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDiscountNotFound
	}

	return nil
}

// Deactivate выключает скидку, не удаляя её
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("discounts").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDiscountNotFound
	}

	return nil
}

// rowScanner общий интерфейс для sql.Row и sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDiscount(row rowScanner) (*domain.Discount, error) {
	var d domain.Discount
	var daysOfWeek pq.Int64Array
	var serviceIDs, staffIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&d.ID,
		&d.SalonID,
		&d.Title,
		&d.DiscountPercent,
		&d.StartTime,
		&d.EndTime,
		&daysOfWeek,
		&serviceIDs,
		&staffIDs,
		&d.IsActive,
		&d.ValidFrom,
		&d.ValidUntil,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.DaysOfWeek = make([]int, len(daysOfWeek))
	for i, wd := range daysOfWeek {
		d.DaysOfWeek[i] = int(wd)
	}
	d.ServiceIDs = []int64(serviceIDs)
	d.StaffIDs = []int64(staffIDs)

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return &d, nil
}
