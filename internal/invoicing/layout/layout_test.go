package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/towline/towline/internal/company"
	"github.com/towline/towline/internal/dispatch"
)

func testJob() dispatch.Job {
	price := 450.0
	dropoff := "Panel shop, Bellville"
	return dispatch.Job{
		ID:              "7f3a9c2e-1b4d-4e6f-9a8b-c5d6e7f8ab12",
		Date:            "2026-08-28",
		TimeReceived:    "14:30",
		OBNumber:        "OB-100",
		CustomerName:    "J. Doe",
		PickupLocation:  "N1 Highway, km 42",
		DropoffLocation: &dropoff,
		VehicleDetails:  "VW Polo, CA 123-456",
		TowClass:        "Light",
		VehicleUse:      "Private",
		Price:           &price,
	}
}

func testInfo() company.Info {
	logo := "https://cdn.example.com/logo.png"
	bank := "First National"
	account := "62012345678"
	return company.Info{
		Name:          "Rapid Tow Services",
		Address:       "12 Main Road, Cape Town",
		Phone:         "+27 21 555 0100",
		Email:         "billing@rapidtow.example",
		LogoURL:       &logo,
		BankName:      &bank,
		AccountNumber: &account,
	}
}

func TestRenderer_Snapshot(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	snap, err := r.Snapshot(testJob(), testInfo(), "INV-OB-100-ab12", "2026-08-28")
	require.NoError(t, err)

	assert.Equal(t, Width, snap.Width)
	assert.Contains(t, snap.HTML, "INV-OB-100-ab12")
	assert.Contains(t, snap.HTML, "J. Doe")
	assert.Contains(t, snap.HTML, "OB-100")
	assert.Contains(t, snap.HTML, "N1 Highway, km 42")
	assert.Contains(t, snap.HTML, "Panel shop, Bellville")
	assert.Contains(t, snap.HTML, "Rapid Tow Services")
	assert.Contains(t, snap.HTML, "R450.00")
	assert.NotContains(t, snap.HTML, "Amount needs to be entered")
}

func TestRenderer_Snapshot_ManualAmount(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	job := testJob()
	job.Price = nil
	snap, err := r.Snapshot(job, testInfo(), "INV-1", "2026-08-28")
	require.NoError(t, err)

	assert.Contains(t, snap.HTML, "R [Manual]")
	assert.Contains(t, snap.HTML, "* Amount needs to be entered *")
}

func TestRenderer_Snapshot_LogoIsCaptureSafe(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	snap, err := r.Snapshot(testJob(), testInfo(), "INV-1", "2026-08-28")
	require.NoError(t, err)

	// Remote logos must not taint the capture.
	assert.Contains(t, snap.HTML, `crossorigin="anonymous"`)
	assert.Contains(t, snap.HTML, "https://cdn.example.com/logo.png")
}

func TestRenderer_Snapshot_OmitsEmptySections(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	job := testJob()
	job.DropoffLocation = nil
	job.Notes = nil
	info := testInfo()
	info.LogoURL = nil
	info.BankName = nil
	info.AccountNumber = nil
	info.SortCode = nil

	snap, err := r.Snapshot(job, info, "INV-1", "2026-08-28")
	require.NoError(t, err)

	assert.NotContains(t, snap.HTML, "Dropoff Location")
	assert.NotContains(t, snap.HTML, "Payment Details")
	assert.NotContains(t, snap.HTML, "<img")
}

func TestRenderer_Snapshot_EscapesMarkup(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	job := testJob()
	job.CustomerName = `<script>alert("x")</script>`
	snap, err := r.Snapshot(job, testInfo(), "INV-1", "2026-08-28")
	require.NoError(t, err)

	assert.NotContains(t, snap.HTML, `<script>alert`)
}
