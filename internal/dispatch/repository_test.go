package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestBuildJobUpdate_PartialFields(t *testing.T) {
	req := UpdateJobRequest{
		CustomerName: strPtr("J. Doe"),
		Price:        f64Ptr(450),
	}

	clause, args := buildJobUpdate(req)
	assert.Equal(t, "customer_name = $1, price = $2", clause)
	assert.Equal(t, []interface{}{"J. Doe", 450.0}, args)
}

func TestBuildJobUpdate_AllFieldsAligned(t *testing.T) {
	req := UpdateJobRequest{
		Date:             strPtr("2026-08-28"),
		TimeReceived:     strPtr("14:30"),
		OBNumber:         strPtr("OB-100"),
		CustomerName:     strPtr("J. Doe"),
		ContactOnScene:   strPtr("M. Smith"),
		PickupLocation:   strPtr("N1 Highway"),
		DropoffLocation:  strPtr("Panel shop"),
		VehicleDetails:   strPtr("VW Polo"),
		TowClass:         strPtr("Light"),
		VehicleUse:       strPtr("Private"),
		Notes:            strPtr("keys in ignition"),
		InvoiceGenerated: boolPtr(true),
		Price:            f64Ptr(450),
		InvoiceNumber:    strPtr("INV-1"),
	}

	clause, args := buildJobUpdate(req)
	assert.Len(t, args, 14)
	assert.Contains(t, clause, "date = $1")
	assert.Contains(t, clause, "invoice_number = $14")
	// Positional parameters stay in argument order.
	assert.Equal(t, "2026-08-28", args[0])
	assert.Equal(t, "INV-1", args[13])
}

func TestBuildJobUpdate_Empty(t *testing.T) {
	clause, args := buildJobUpdate(UpdateJobRequest{})
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestTextOrNull(t *testing.T) {
	assert.False(t, textOrNull(nil).Valid)

	v := textOrNull(strPtr("x"))
	assert.True(t, v.Valid)
	assert.Equal(t, "x", v.String)
}
