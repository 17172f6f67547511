package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	List(ctx context.Context, req ListJobsRequest) ([]Job, error)
	Get(ctx context.Context, id string) (*Job, error)
	Create(ctx context.Context, job Job) (*Job, error)
	Update(ctx context.Context, id string, req UpdateJobRequest) (*Job, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const jobColumns = `id, date, time_received, ob_number, customer_name, contact_on_scene,
       pickup_location, dropoff_location, vehicle_details, tow_class,
       vehicle_use, notes, invoice_generated, price, invoice_number,
       created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListJobsRequest) ([]Job, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Date != nil && *req.Date != "" {
		conditions = append(conditions, fmt.Sprintf("date = $%d", argPos))
		args = append(args, *req.Date)
		argPos++
	}
	if req.OBNumber != nil && *req.OBNumber != "" {
		conditions = append(conditions, fmt.Sprintf("ob_number ILIKE $%d", argPos))
		args = append(args, "%"+*req.OBNumber+"%")
		argPos++
	}
	if req.CustomerName != nil && *req.CustomerName != "" {
		conditions = append(conditions, fmt.Sprintf("customer_name ILIKE $%d", argPos))
		args = append(args, "%"+*req.CustomerName+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		%s
		ORDER BY date DESC, time_received DESC
	`, jobColumns, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (*Job, error) {
	query := fmt.Sprintf("SELECT %s FROM jobs WHERE id = $1", jobColumns)
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	job, err := scanJob(rows)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) Create(ctx context.Context, job Job) (*Job, error) {
	query := fmt.Sprintf(`
		INSERT INTO jobs
		(id, date, time_received, ob_number, customer_name, contact_on_scene,
		 pickup_location, dropoff_location, vehicle_details, tow_class,
		 vehicle_use, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`, jobColumns)

	rows, err := r.pool.Query(ctx, query,
		job.ID, job.Date, job.TimeReceived, job.OBNumber, job.CustomerName,
		job.ContactOnScene, job.PickupLocation, textOrNull(job.DropoffLocation),
		job.VehicleDetails, job.TowClass, job.VehicleUse, textOrNull(job.Notes),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("dispatch: insert returned no row")
	}
	created, err := scanJob(rows)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id string, req UpdateJobRequest) (*Job, error) {
	setClause, args := buildJobUpdate(req)
	if setClause == "" {
		return nil, fmt.Errorf("dispatch: no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE jobs SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING %s
	`, setClause, len(args)+1, jobColumns)
	args = append(args, id)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	updated, err := scanJob(rows)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM jobs WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildJobUpdate assembles the SET clause from the fields present in the
// request, keeping positional parameters aligned with the argument list.
func buildJobUpdate(req UpdateJobRequest) (string, []interface{}) {
	var clause string
	var args []interface{}

	add := func(column string, value interface{}) {
		if clause != "" {
			clause += ", "
		}
		args = append(args, value)
		clause += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if req.Date != nil {
		add("date", *req.Date)
	}
	if req.TimeReceived != nil {
		add("time_received", *req.TimeReceived)
	}
	if req.OBNumber != nil {
		add("ob_number", *req.OBNumber)
	}
	if req.CustomerName != nil {
		add("customer_name", *req.CustomerName)
	}
	if req.ContactOnScene != nil {
		add("contact_on_scene", *req.ContactOnScene)
	}
	if req.PickupLocation != nil {
		add("pickup_location", *req.PickupLocation)
	}
	if req.DropoffLocation != nil {
		add("dropoff_location", *req.DropoffLocation)
	}
	if req.VehicleDetails != nil {
		add("vehicle_details", *req.VehicleDetails)
	}
	if req.TowClass != nil {
		add("tow_class", *req.TowClass)
	}
	if req.VehicleUse != nil {
		add("vehicle_use", *req.VehicleUse)
	}
	if req.Notes != nil {
		add("notes", *req.Notes)
	}
	if req.InvoiceGenerated != nil {
		add("invoice_generated", *req.InvoiceGenerated)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.InvoiceNumber != nil {
		add("invoice_number", *req.InvoiceNumber)
	}

	return clause, args
}

func scanJob(rows pgx.Rows) (Job, error) {
	var j Job
	var dropoff, notes, invoiceNumber pgtype.Text
	var price pgtype.Float8
	var createdAt, updatedAt pgtype.Timestamptz

	err := rows.Scan(
		&j.ID, &j.Date, &j.TimeReceived, &j.OBNumber, &j.CustomerName,
		&j.ContactOnScene, &j.PickupLocation, &dropoff, &j.VehicleDetails,
		&j.TowClass, &j.VehicleUse, &notes, &j.InvoiceGenerated, &price,
		&invoiceNumber, &createdAt, &updatedAt,
	)
	if err != nil {
		return Job{}, err
	}

	if dropoff.Valid {
		j.DropoffLocation = &dropoff.String
	}
	if notes.Valid {
		j.Notes = &notes.String
	}
	if invoiceNumber.Valid {
		j.InvoiceNumber = &invoiceNumber.String
	}
	if price.Valid {
		j.Price = &price.Float64
	}
	if createdAt.Valid {
		j.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		j.UpdatedAt = updatedAt.Time
	}
	return j, nil
}

func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
