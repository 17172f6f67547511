// Package company manages the dispatcher's own business settings, printed
// on every invoice.
package company

// Info is the singleton company settings row.
type Info struct {
	Name               string  `json:"name"`
	Address            string  `json:"address"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	BankName           *string `json:"bankName,omitempty"`
	AccountNumber      *string `json:"accountNumber,omitempty"`
	SortCode           *string `json:"sortCode,omitempty"`
	LogoURL            *string `json:"logoUrl,omitempty"`
	NextInvoiceNumber  *int    `json:"nextInvoiceNumber,omitempty"`
}

type UpdateInfoRequest struct {
	Name               string  `json:"name" validate:"required,max=200"`
	Address            string  `json:"address" validate:"required,max=500"`
	Phone              string  `json:"phone" validate:"required,max=50"`
	Email              string  `json:"email" validate:"required,email"`
	RegistrationNumber *string `json:"registrationNumber,omitempty" validate:"omitempty,max=100"`
	BankName           *string `json:"bankName,omitempty" validate:"omitempty,max=200"`
	AccountNumber      *string `json:"accountNumber,omitempty" validate:"omitempty,max=50"`
	SortCode           *string `json:"sortCode,omitempty" validate:"omitempty,max=50"`
	LogoURL            *string `json:"logoUrl,omitempty" validate:"omitempty,url"`
	NextInvoiceNumber  *int    `json:"nextInvoiceNumber,omitempty" validate:"omitempty,gte=1"`
}
