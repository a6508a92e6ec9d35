package queryfilter_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armory-api/internal/application/queryfilter"
	"github.com/jhoicas/armory-api/internal/domain"
)

func TestEvaluate_EmptyParamsUnbounded(t *testing.T) {
	f, err := queryfilter.Evaluate(queryfilter.Params{})
	require.NoError(t, err)

	assert.Nil(t, f.Start)
	assert.Nil(t, f.End)
	assert.Empty(t, f.BaseID)
	assert.Empty(t, f.EquipmentType)
}

func TestEvaluate_DateAloneBoundsFullDay(t *testing.T) {
	f, err := queryfilter.Evaluate(queryfilter.Params{Date: "2026-03-15"})
	require.NoError(t, err)

	require.NotNil(t, f.Start)
	require.NotNil(t, f.End)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *f.Start)
	// Inclusive end of the same calendar day.
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), *f.End)
}

func TestEvaluate_DateAndTimeUpperBound(t *testing.T) {
	f, err := queryfilter.Evaluate(queryfilter.Params{Date: "2026-03-15", Time: "14:30"})
	require.NoError(t, err)

	require.NotNil(t, f.Start)
	require.NotNil(t, f.End)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *f.Start)
	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), *f.End)
}

func TestEvaluate_RFC3339InstantInDate(t *testing.T) {
	f, err := queryfilter.Evaluate(queryfilter.Params{Date: "2026-03-15T14:30:00Z"})
	require.NoError(t, err)

	require.NotNil(t, f.Start)
	require.NotNil(t, f.End)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *f.Start)
	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), *f.End)
}

func TestEvaluate_RFC3339NormalizedToUTC(t *testing.T) {
	f, err := queryfilter.Evaluate(queryfilter.Params{Date: "2026-03-15T01:30:00-05:00"})
	require.NoError(t, err)

	// 01:30 at -05:00 is 06:30 UTC, still March 15.
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *f.Start)
	assert.Equal(t, time.Date(2026, 3, 15, 6, 30, 0, 0, time.UTC), *f.End)
}

func TestEvaluate_PassesThroughDimensions(t *testing.T) {
	f, err := queryfilter.Evaluate(queryfilter.Params{
		Base:          " base-1 ",
		EquipmentType: "Weapon",
	})
	require.NoError(t, err)

	assert.Equal(t, "base-1", f.BaseID)
	assert.Equal(t, "Weapon", f.EquipmentType)
}

func TestEvaluate_InvalidDate(t *testing.T) {
	_, err := queryfilter.Evaluate(queryfilter.Params{Date: "15/03/2026"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEvaluate_InvalidTime(t *testing.T) {
	_, err := queryfilter.Evaluate(queryfilter.Params{Date: "2026-03-15", Time: "half past two"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEvaluate_SecondsAccepted(t *testing.T) {
	f, err := queryfilter.Evaluate(queryfilter.Params{Date: "2026-03-15", Time: "14:30:45"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC), *f.End)
}
