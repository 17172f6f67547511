package dispatch

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/towline/towline/internal/platform/httpx"
)

type fakeRepo struct {
	jobs    map[string]Job
	updates []UpdateJobRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{jobs: map[string]Job{}}
}

func (f *fakeRepo) List(_ context.Context, _ ListJobsRequest) ([]Job, error) {
	out := make([]Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (*Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &j, nil
}

func (f *fakeRepo) Create(_ context.Context, job Job) (*Job, error) {
	f.jobs[job.ID] = job
	return &job, nil
}

func (f *fakeRepo) Update(_ context.Context, id string, req UpdateJobRequest) (*Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	f.updates = append(f.updates, req)
	if req.InvoiceGenerated != nil {
		j.InvoiceGenerated = *req.InvoiceGenerated
	}
	if req.InvoiceNumber != nil {
		j.InvoiceNumber = req.InvoiceNumber
	}
	f.jobs[id] = j
	return &j, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(f.jobs, id)
	return nil
}

func validCreateRequest() CreateJobRequest {
	return CreateJobRequest{
		Date:           "2026-08-28",
		TimeReceived:   "14:30",
		OBNumber:       "OB-100",
		CustomerName:   "J. Doe",
		PickupLocation: "N1 Highway, km 42",
		VehicleDetails: "VW Polo, CA 123-456",
		TowClass:       "Light",
		VehicleUse:     "Private",
	}
}

func TestService_Create_AssignsID(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	job, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, parseErr := uuid.Parse(job.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "OB-100", job.OBNumber)
	assert.False(t, job.InvoiceGenerated)
}

func TestService_Create_RejectsInvalid(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	req := validCreateRequest()
	req.CustomerName = ""
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	price := 450.0
	_, err := svc.Update(context.Background(), "missing", UpdateJobRequest{Price: &price})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestService_MarkInvoiced(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	job, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.MarkInvoiced(context.Background(), job.ID, "INV-OB-100-ab12"))

	updated, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.True(t, updated.InvoiceGenerated)
	require.NotNil(t, updated.InvoiceNumber)
	assert.Equal(t, "INV-OB-100-ab12", *updated.InvoiceNumber)
}
