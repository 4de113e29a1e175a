package entity

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipmentDetails(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		value   float64
		dims    *valueobject.Dimensions
		wantErr error
	}{
		{name: "valid", weight: 2, value: 100},
		{name: "zero value allowed", weight: 0.5, value: 0},
		{name: "with dimensions", weight: 3, value: 10, dims: &valueobject.Dimensions{Length: 10, Width: 10, Height: 10}},
		{name: "zero weight", weight: 0, value: 10, wantErr: ErrInvalidWeight},
		{name: "negative weight", weight: -1, value: 10, wantErr: ErrInvalidWeight},
		{name: "NaN weight", weight: math.NaN(), value: 10, wantErr: ErrInvalidWeight},
		{name: "negative value", weight: 1, value: -0.01, wantErr: ErrInvalidValue},
		{name: "negative dimension", weight: 1, value: 1, dims: &valueobject.Dimensions{Length: -1}, wantErr: valueobject.ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewShipmentDetails(tt.weight, tt.value, "CDMX", "GDL", tt.dims)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.weight, d.Weight)
			assert.Equal(t, tt.value, d.Value)
		})
	}
}

func TestNewShipmentDetails_CopiesDimensions(t *testing.T) {
	dims := &valueobject.Dimensions{Length: 10, Width: 10, Height: 10}
	d, err := NewShipmentDetails(1, 1, "a", "b", dims)
	require.NoError(t, err)

	dims.Length = 99
	assert.Equal(t, 10.0, d.Dimensions.Length)
}

func TestCarrierError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewCarrierError(valueobject.CarrierCorreo, OpCreate, KindUnavailable, cause)

	assert.Equal(t, "carrier correo create_shipment: unavailable: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCarrierError(err, KindUnavailable))
	assert.False(t, IsCarrierError(err, KindTimeout))

	ce, ok := AsCarrierError(err)
	require.True(t, ok)
	assert.Equal(t, valueobject.CarrierCorreo, ce.Carrier)
	assert.False(t, IsNotFoundError(err))
}

func TestTrackingInfo_LatestEvent(t *testing.T) {
	info := TrackingInfo{Status: valueobject.TrackingStatusInTransit}
	_, ok := info.LatestEvent()
	assert.False(t, ok)

	now := time.Now()
	info.Events = []TrackingEvent{
		{Timestamp: now.Add(-time.Hour), Status: valueobject.TrackingStatusPicked},
		{Timestamp: now, Status: valueobject.TrackingStatusInTransit},
	}
	ev, ok := info.LatestEvent()
	require.True(t, ok)
	assert.Equal(t, valueobject.TrackingStatusInTransit, ev.Status)
	assert.False(t, info.Delivered())
}
