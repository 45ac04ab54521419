package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/contract"
	"github.com/diegoclair/slack-reminder-bot/mocks"
)

type allMocks struct {
	mockDataManager *mocks.MockDataManager
	mockEventRepo   *mocks.MockEventRepo
	mockSlackClient *mocks.MockSlackClient
	mockNotifier    *mocks.MockNotifier
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	eventRepo := mocks.NewMockEventRepo(ctrl)
	dm.EXPECT().Event().Return(eventRepo).AnyTimes()

	// transactions run the callback against the same manager, which is what
	// the sqlite instance does for single-statement work
	dm.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(contract.DataManager) error) error {
			return fn(dm)
		}).
		AnyTimes()

	m = allMocks{
		mockDataManager: dm,
		mockEventRepo:   eventRepo,
		mockSlackClient: mocks.NewMockSlackClient(ctrl),
		mockNotifier:    mocks.NewMockNotifier(ctrl),
	}

	require.NotNil(t, m.mockDataManager)

	return
}
