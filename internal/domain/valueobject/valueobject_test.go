package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCarrier(t *testing.T) {
	tests := []struct {
		raw     string
		want    Carrier
		wantErr bool
	}{
		{raw: "envia", want: CarrierEnvia},
		{raw: " Welivery ", want: CarrierWelivery},
		{raw: "CORREO", want: CarrierCorreo},
		{raw: "dhl", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCarrier(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownCarrier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCarrier_TrackingPrefix(t *testing.T) {
	assert.Equal(t, "ENV", CarrierEnvia.TrackingPrefix())
	assert.Equal(t, "WLV", CarrierWelivery.TrackingPrefix())
	assert.Equal(t, "COR", CarrierCorreo.TrackingPrefix())
	assert.Empty(t, Carrier("dhl").TrackingPrefix())
}

func TestAllCarriers_AreValid(t *testing.T) {
	for _, c := range AllCarriers() {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Carrier("").IsValid())
}

func TestNewDimensions(t *testing.T) {
	d, err := NewDimensions(50, 20, 10)
	require.NoError(t, err)
	assert.InDelta(t, 10000.0, d.Volume(), 1e-9)
	assert.InDelta(t, 2.0, d.VolumetricWeight(), 1e-9)
	assert.Equal(t, "50.0x20.0x10.0 cm", d.String())
	assert.False(t, d.IsEmpty())

	_, err = NewDimensions(-1, 2, 3)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	assert.True(t, Dimensions{}.IsEmpty())
}

func TestTrackingStatus_IsFinal(t *testing.T) {
	assert.True(t, TrackingStatusDelivered.IsFinal())
	assert.False(t, TrackingStatusInTransit.IsFinal())
}
