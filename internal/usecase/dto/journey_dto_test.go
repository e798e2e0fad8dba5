package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/journey-service/internal/usecase/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationRef_UnmarshalJSON(t *testing.T) {
	t.Run("accepts a bare station id", func(t *testing.T) {
		var req dto.JourneySearchRequest
		err := json.Unmarshal([]byte(`{"origin":"8011160","destination":"8002549"}`), &req)

		require.NoError(t, err)
		assert.Equal(t, dto.StationRef("8011160"), req.Origin)
	})

	t.Run("accepts an object exposing an id field", func(t *testing.T) {
		var req dto.JourneySearchRequest
		err := json.Unmarshal([]byte(`{"origin":{"id":"8011160","name":"Berlin Hbf"},"destination":"8002549"}`), &req)

		require.NoError(t, err)
		assert.Equal(t, dto.StationRef("8011160"), req.Origin)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var req dto.JourneySearchRequest
		err := json.Unmarshal([]byte(`{"origin":42,"destination":"8002549"}`), &req)
		assert.Error(t, err)
	})

	t.Run("non-boolean prices option fails to parse", func(t *testing.T) {
		var req dto.JourneySearchRequest
		err := json.Unmarshal([]byte(`{"origin":"8011160","destination":"8002549","prices":"yes"}`), &req)
		assert.Error(t, err)
	})
}
