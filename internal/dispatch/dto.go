package dispatch

type CreateJobRequest struct {
	Date            string  `json:"date" validate:"required"`
	TimeReceived    string  `json:"timeReceived" validate:"required"`
	OBNumber        string  `json:"obNumber" validate:"required,max=50"`
	CustomerName    string  `json:"customerName" validate:"required,max=200"`
	ContactOnScene  string  `json:"contactOnScene" validate:"max=200"`
	PickupLocation  string  `json:"pickupLocation" validate:"required,max=300"`
	DropoffLocation *string `json:"dropoffLocation,omitempty" validate:"omitempty,max=300"`
	VehicleDetails  string  `json:"vehicleDetails" validate:"required,max=300"`
	TowClass        string  `json:"towClass" validate:"required,max=50"`
	VehicleUse      string  `json:"vehicleUse" validate:"required,max=50"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateJobRequest carries a partial update; only non-nil fields are
// written. The repository builds the UPDATE statement dynamically from the
// fields present.
type UpdateJobRequest struct {
	Date             *string  `json:"date,omitempty"`
	TimeReceived     *string  `json:"timeReceived,omitempty"`
	OBNumber         *string  `json:"obNumber,omitempty" validate:"omitempty,max=50"`
	CustomerName     *string  `json:"customerName,omitempty" validate:"omitempty,max=200"`
	ContactOnScene   *string  `json:"contactOnScene,omitempty" validate:"omitempty,max=200"`
	PickupLocation   *string  `json:"pickupLocation,omitempty" validate:"omitempty,max=300"`
	DropoffLocation  *string  `json:"dropoffLocation,omitempty" validate:"omitempty,max=300"`
	VehicleDetails   *string  `json:"vehicleDetails,omitempty" validate:"omitempty,max=300"`
	TowClass         *string  `json:"towClass,omitempty" validate:"omitempty,max=50"`
	VehicleUse       *string  `json:"vehicleUse,omitempty" validate:"omitempty,max=50"`
	Notes            *string  `json:"notes,omitempty"`
	InvoiceGenerated *bool    `json:"invoiceGenerated,omitempty"`
	Price            *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	InvoiceNumber    *string  `json:"invoiceNumber,omitempty" validate:"omitempty,max=50"`
}

// ListJobsRequest filters the job list; nil fields are not applied.
type ListJobsRequest struct {
	Date         *string
	OBNumber     *string
	CustomerName *string
}
