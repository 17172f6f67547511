package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("company info not found")

type Repository interface {
	Get(ctx context.Context) (*Info, error)
	Update(ctx context.Context, info Info) (*Info, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const infoColumns = `name, address, phone, email, registration_number,
       bank_name, account_number, sort_code, logo_url, next_invoice_number`

// The settings table holds exactly one row with id = 1.
func (r *repository) Get(ctx context.Context) (*Info, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+infoColumns+" FROM company_info WHERE id = 1")
	info, err := scanInfo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return info, nil
}

func (r *repository) Update(ctx context.Context, info Info) (*Info, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE company_info SET
		  name = $1, address = $2, phone = $3, email = $4,
		  registration_number = $5, bank_name = $6, account_number = $7,
		  sort_code = $8, logo_url = $9, next_invoice_number = $10,
		  updated_at = NOW()
		WHERE id = 1
		RETURNING `+infoColumns,
		info.Name, info.Address, info.Phone, info.Email,
		info.RegistrationNumber, info.BankName, info.AccountNumber,
		info.SortCode, info.LogoURL, info.NextInvoiceNumber,
	)
	updated, err := scanInfo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func scanInfo(row pgx.Row) (*Info, error) {
	var info Info
	var regNumber, bankName, accountNumber, sortCode, logoURL pgtype.Text
	var nextInvoice pgtype.Int4

	err := row.Scan(
		&info.Name, &info.Address, &info.Phone, &info.Email,
		&regNumber, &bankName, &accountNumber, &sortCode, &logoURL,
		&nextInvoice,
	)
	if err != nil {
		return nil, err
	}

	if regNumber.Valid {
		info.RegistrationNumber = &regNumber.String
	}
	if bankName.Valid {
		info.BankName = &bankName.String
	}
	if accountNumber.Valid {
		info.AccountNumber = &accountNumber.String
	}
	if sortCode.Valid {
		info.SortCode = &sortCode.String
	}
	if logoURL.Valid {
		info.LogoURL = &logoURL.String
	}
	if nextInvoice.Valid {
		n := int(nextInvoice.Int32)
		info.NextInvoiceNumber = &n
	}
	return &info, nil
}
