package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/journey-service/internal/domain"
	"github.com/journey-service/internal/domain/repository"
	"github.com/journey-service/internal/usecase"
	"github.com/journey-service/internal/usecase/dto"
)

// MockTicketShopRepository is a mock of TicketShopRepository
type MockTicketShopRepository struct {
	mock.Mock
}

func (m *MockTicketShopRepository) NewSession(ctx context.Context) (repository.TicketShopSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.TicketShopSession), args.Error(1)
}

// MockTicketShopSession is a mock of TicketShopSession
type MockTicketShopSession struct {
	mock.Mock
}

func (m *MockTicketShopSession) TravelActions(ctx context.Context, origin, destination string, when time.Time) ([]domain.TravelAction, error) {
	args := m.Called(ctx, origin, destination, when)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TravelAction), args.Error(1)
}

func (m *MockTicketShopSession) Connections(ctx context.Context, req *domain.ConnectionSearch) ([]domain.RawConnection, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawConnection), args.Error(1)
}

func (m *MockTicketShopSession) ScrollConnections(ctx context.Context, req *domain.ConnectionScroll) ([]domain.RawConnection, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawConnection), args.Error(1)
}

func (m *MockTicketShopSession) Prices(ctx context.Context, connectionIDs []string) (map[string]domain.Offer, error) {
	args := m.Called(ctx, connectionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Offer), args.Error(1)
}

func (m *MockTicketShopSession) SearchStations(ctx context.Context, query string) ([]domain.Station, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func timetableAction(id string) domain.TravelAction {
	action := domain.TravelAction{ID: id}
	action.Entrypoint.ID = domain.EntrypointTimetable
	return action
}

func rawConnection(id, departure, arrival string) domain.RawConnection {
	return domain.RawConnection{
		ID: id,
		Sections: []domain.RawSection{
			{
				From: domain.RawStop{
					Name:      "Berlin Hbf",
					ESN:       8011160,
					Departure: departure,
				},
				To: domain.RawStop{
					Name:    "Leipzig Hbf",
					ESN:     8010205,
					Arrival: arrival,
				},
				Category: domain.RawCategory{ShortName: "ICE", Number: "1005", Train: true},
			},
		},
	}
}

func ptrInt(v int) *int    { return &v }
func ptrBool(v bool) *bool { return &v }

func newSearchRequest(results *int) dto.JourneySearchRequest {
	when := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	return dto.JourneySearchRequest{
		Origin:      "8011160",
		Destination: "8002549",
		When:        &when,
		Results:     results,
	}
}

func TestJourneyUseCase_Search(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("no timetable entrypoint yields an empty result", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}
		mockSession := &MockTicketShopSession{}
		mockRepo.On("NewSession", ctx).Return(mockSession, nil)

		other := domain.TravelAction{ID: "ta-1"}
		other.Entrypoint.ID = "booking"
		mockSession.On("TravelActions", ctx, "8011160", "8002549", mock.Anything).
			Return([]domain.TravelAction{other}, nil)

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		resp, err := uc.Search(ctx, newSearchRequest(nil))

		require.NoError(t, err)
		assert.Empty(t, resp.Journeys)
		mockSession.AssertNotCalled(t, "Connections", mock.Anything, mock.Anything)
	})

	t.Run("empty first page stops pagination", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}
		mockSession := &MockTicketShopSession{}
		mockRepo.On("NewSession", ctx).Return(mockSession, nil)
		mockSession.On("TravelActions", ctx, "8011160", "8002549", mock.Anything).
			Return([]domain.TravelAction{timetableAction("ta-1")}, nil)
		mockSession.On("Connections", ctx, mock.Anything).
			Return([]domain.RawConnection{}, nil)

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		// Two pages requested, none fetched beyond the empty first one.
		resp, err := uc.Search(ctx, newSearchRequest(ptrInt(10)))

		require.NoError(t, err)
		assert.Empty(t, resp.Journeys)
		mockSession.AssertNotCalled(t, "ScrollConnections", mock.Anything, mock.Anything)
		mockSession.AssertNotCalled(t, "Prices", mock.Anything, mock.Anything)
	})

	t.Run("prices disabled leaves every price nil", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}
		mockSession := &MockTicketShopSession{}
		mockRepo.On("NewSession", ctx).Return(mockSession, nil)
		mockSession.On("TravelActions", ctx, "8011160", "8002549", mock.Anything).
			Return([]domain.TravelAction{timetableAction("ta-1")}, nil)
		mockSession.On("Connections", ctx, mock.MatchedBy(func(req *domain.ConnectionSearch) bool {
			return req.TravelActionID == "ta-1" && req.Count == 5 && len(req.Passengers) == 1
		})).Return([]domain.RawConnection{
			rawConnection("conn-1", "2024-05-10T14:00:00.000", "2024-05-10T15:10:00.000"),
			rawConnection("conn-2", "2024-05-10T14:30:00.000", "2024-05-10T15:40:00.000"),
		}, nil)

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		req := newSearchRequest(nil)
		req.Prices = ptrBool(false)
		resp, err := uc.Search(ctx, req)

		require.NoError(t, err)
		require.Len(t, resp.Journeys, 2)
		for _, j := range resp.Journeys {
			assert.Nil(t, j.Price)
		}
		mockSession.AssertNotCalled(t, "Prices", mock.Anything, mock.Anything)
	})

	t.Run("missing offer yields nil price, not an error", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}
		mockSession := &MockTicketShopSession{}
		mockRepo.On("NewSession", ctx).Return(mockSession, nil)
		mockSession.On("TravelActions", ctx, "8011160", "8002549", mock.Anything).
			Return([]domain.TravelAction{timetableAction("ta-1")}, nil)
		mockSession.On("Connections", ctx, mock.Anything).Return([]domain.RawConnection{
			rawConnection("conn-1", "2024-05-10T14:00:00.000", "2024-05-10T15:10:00.000"),
			rawConnection("conn-2", "2024-05-10T14:30:00.000", "2024-05-10T15:40:00.000"),
		}, nil)

		amount := 29.9
		mockSession.On("Prices", ctx, []string{"conn-1", "conn-2"}).Return(map[string]domain.Offer{
			"conn-1": {ConnectionID: "conn-1", Price: &amount, Availability: domain.OfferAvailable},
		}, nil)

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		resp, err := uc.Search(ctx, newSearchRequest(nil))

		require.NoError(t, err)
		require.Len(t, resp.Journeys, 2)
		require.NotNil(t, resp.Journeys[0].Price)
		assert.Equal(t, 29.9, resp.Journeys[0].Price.Amount)
		assert.Equal(t, domain.Currency, resp.Journeys[0].Price.Currency)
		assert.Nil(t, resp.Journeys[1].Price)
	})

	t.Run("scroll pages use the last connection id and duplicates collapse", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}
		mockSession := &MockTicketShopSession{}
		mockRepo.On("NewSession", ctx).Return(mockSession, nil)
		mockSession.On("TravelActions", ctx, "8011160", "8002549", mock.Anything).
			Return([]domain.TravelAction{timetableAction("ta-1")}, nil)

		mockSession.On("Connections", ctx, mock.Anything).Return([]domain.RawConnection{
			rawConnection("conn-2", "2024-05-10T14:30:00.000", "2024-05-10T15:40:00.000"),
			rawConnection("conn-1", "2024-05-10T14:00:00.000", "2024-05-10T15:10:00.000"),
		}, nil)

		// Cursor is the chronologically last journey of the sorted page.
		mockSession.On("ScrollConnections", ctx, mock.MatchedBy(func(req *domain.ConnectionScroll) bool {
			return req.ConnectionID == "conn-2" && req.Direction == domain.ScrollDirectionAfter
		})).Return([]domain.RawConnection{
			rawConnection("conn-2", "2024-05-10T14:30:00.000", "2024-05-10T15:40:00.000"),
			rawConnection("conn-3", "2024-05-10T15:00:00.000", "2024-05-10T16:10:00.000"),
		}, nil)

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		req := newSearchRequest(ptrInt(10))
		req.Prices = ptrBool(false)
		resp, err := uc.Search(ctx, req)

		require.NoError(t, err)
		require.Len(t, resp.Journeys, 3)
		assert.Equal(t, "conn-1", resp.Journeys[0].ID)
		assert.Equal(t, "conn-2", resp.Journeys[1].ID)
		assert.Equal(t, "conn-3", resp.Journeys[2].ID)
	})

	t.Run("result count truncates and pages arrive sorted", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}
		mockSession := &MockTicketShopSession{}
		mockRepo.On("NewSession", ctx).Return(mockSession, nil)
		mockSession.On("TravelActions", ctx, "8011160", "8002549", mock.Anything).
			Return([]domain.TravelAction{timetableAction("ta-1")}, nil)

		mockSession.On("Connections", ctx, mock.Anything).Return([]domain.RawConnection{
			rawConnection("conn-4", "2024-05-10T16:00:00.000", "2024-05-10T17:10:00.000"),
			rawConnection("conn-1", "2024-05-10T14:00:00.000", "2024-05-10T15:10:00.000"),
			rawConnection("conn-3", "2024-05-10T15:30:00.000", "2024-05-10T16:40:00.000"),
			rawConnection("conn-2", "2024-05-10T14:30:00.000", "2024-05-10T15:40:00.000"),
			rawConnection("conn-5", "2024-05-10T16:30:00.000", "2024-05-10T17:40:00.000"),
		}, nil)

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		req := newSearchRequest(ptrInt(3))
		req.Prices = ptrBool(false)
		resp, err := uc.Search(ctx, req)

		require.NoError(t, err)
		require.Len(t, resp.Journeys, 3)
		assert.Equal(t, "conn-1", resp.Journeys[0].ID)
		assert.Equal(t, "conn-2", resp.Journeys[1].ID)
		assert.Equal(t, "conn-3", resp.Journeys[2].ID)
		assert.Equal(t, "8011160", resp.Journeys[0].Legs[0].Origin.ID)
	})

	t.Run("session acquisition failure aborts the search", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}
		sessionErr := errors.New("connection refused")
		mockRepo.On("NewSession", ctx).Return(nil, sessionErr)

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		resp, err := uc.Search(ctx, newSearchRequest(nil))

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, sessionErr)
	})

	t.Run("transport failure during pagination propagates unchanged", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}
		mockSession := &MockTicketShopSession{}
		mockRepo.On("NewSession", ctx).Return(mockSession, nil)
		mockSession.On("TravelActions", ctx, "8011160", "8002549", mock.Anything).
			Return([]domain.TravelAction{timetableAction("ta-1")}, nil)

		upstreamErr := errors.New("backend unavailable")
		mockSession.On("Connections", ctx, mock.Anything).Return(nil, upstreamErr)

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		resp, err := uc.Search(ctx, newSearchRequest(nil))

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, upstreamErr)
	})

	t.Run("invalid sort type fails before any network call", func(t *testing.T) {
		mockRepo := &MockTicketShopRepository{}

		uc, err := usecase.NewJourneyUseCase(mockRepo, logger)
		require.NoError(t, err)

		req := newSearchRequest(nil)
		req.SortType = "CHEAPEST"
		resp, err := uc.Search(ctx, req)

		assert.Nil(t, resp)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "NewSession", mock.Anything)
	})
}
