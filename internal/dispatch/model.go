// Package dispatch manages towing job intake and status tracking.
package dispatch

import "time"

// Job is a towing dispatch record. Field names mirror the intake form.
type Job struct {
	ID               string    `json:"id"`
	Date             string    `json:"date"`
	TimeReceived     string    `json:"timeReceived"`
	OBNumber         string    `json:"obNumber"`
	CustomerName     string    `json:"customerName"`
	ContactOnScene   string    `json:"contactOnScene"`
	PickupLocation   string    `json:"pickupLocation"`
	DropoffLocation  *string   `json:"dropoffLocation,omitempty"`
	VehicleDetails   string    `json:"vehicleDetails"`
	TowClass         string    `json:"towClass"`
	VehicleUse       string    `json:"vehicleUse"`
	Notes            *string   `json:"notes,omitempty"`
	InvoiceGenerated bool      `json:"invoiceGenerated"`
	Price            *float64  `json:"price,omitempty"`
	InvoiceNumber    *string   `json:"invoiceNumber,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
