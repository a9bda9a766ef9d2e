package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"guestcomplaints/pkg/contracts/domain"
)

// MockSourceLoader is a mock for the SourceLoader interface
type MockSourceLoader struct {
	mock.Mock
}

func (m *MockSourceLoader) LoadSources(ctx context.Context, set domain.SourceSet) ([]domain.ComplaintRecord, error) {
	args := m.Called(ctx, set)
	records, _ := args.Get(0).([]domain.ComplaintRecord)
	return records, args.Error(1)
}
