package carrier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hapkiduki/shipping-go/internal/application/port"
	"github.com/hapkiduki/shipping-go/internal/domain/entity"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"github.com/hapkiduki/shipping-go/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, c valueobject.Carrier) *Adapter {
	t.Helper()
	a, err := New(c, Config{APIKey: "test-key"}, logging.Nop())
	require.NoError(t, err)
	return a
}

func TestCalculateShipping_Tariffs(t *testing.T) {
	details := entity.ShipmentDetails{Weight: 10, Value: 1000, Origin: "CDMX", Destination: "GDL"}

	tests := []struct {
		carrier valueobject.Carrier
		price   float64
		days    int
		service string
	}{
		{carrier: valueobject.CarrierEnvia, price: 80 + 10*15, days: 2, service: "Envia Express"},
		{carrier: valueobject.CarrierWelivery, price: 120 + 10*10 + 1000*0.02, days: 3, service: "Welivery Standard"},
		{carrier: valueobject.CarrierCorreo, price: 200 + 10*8 + 1000*0.03, days: 5, service: "Correo Certificado"},
	}

	for _, tt := range tests {
		t.Run(string(tt.carrier), func(t *testing.T) {
			a := newTestAdapter(t, tt.carrier)

			q, err := a.CalculateShipping(context.Background(), details)
			require.NoError(t, err)
			assert.Equal(t, tt.carrier, q.Carrier)
			assert.InDelta(t, tt.price, q.Price, 1e-9)
			assert.Equal(t, tt.days, q.EstimatedDays)
			assert.Equal(t, tt.service, q.Service)
		})
	}
}

func TestCalculateShipping_Idempotent(t *testing.T) {
	details := entity.ShipmentDetails{Weight: 7.3, Value: 412.5}
	for _, c := range valueobject.AllCarriers() {
		a := newTestAdapter(t, c)
		first, err := a.CalculateShipping(context.Background(), details)
		require.NoError(t, err)
		second, err := a.CalculateShipping(context.Background(), details)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestCreateShipment_TrackingNumber(t *testing.T) {
	prefixes := map[valueobject.Carrier]string{
		valueobject.CarrierEnvia:    "ENV",
		valueobject.CarrierWelivery: "WLV",
		valueobject.CarrierCorreo:   "COR",
	}

	for c, prefix := range prefixes {
		t.Run(string(c), func(t *testing.T) {
			a := newTestAdapter(t, c)
			a.now = func() time.Time { return time.UnixMilli(1736937000000) }

			first, err := a.CreateShipment(context.Background(), entity.ShipmentDetails{Weight: 1})
			require.NoError(t, err)
			second, err := a.CreateShipment(context.Background(), entity.ShipmentDetails{Weight: 1})
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(first.TrackingNumber, prefix+"1736937000000"), first.TrackingNumber)
			assert.Len(t, first.TrackingNumber, len(prefix)+13+8)
			assert.Equal(t, strings.ToUpper(first.TrackingNumber), first.TrackingNumber)
			assert.NotEqual(t, first.TrackingNumber, second.TrackingNumber, "same clock, random part must differ")
			assert.Equal(t, "https://example.com/labels/"+string(c)+"-label.pdf", first.LabelURL)
			assert.Equal(t, c, first.Carrier)
		})
	}
}

func TestCreateShipment_CustomLabelBaseURL(t *testing.T) {
	a, err := NewWelivery(Config{APIKey: "k", LabelBaseURL: "https://labels.test/v1/"}, logging.Nop())
	require.NoError(t, err)

	label, err := a.CreateShipment(context.Background(), entity.ShipmentDetails{Weight: 1})
	require.NoError(t, err)
	assert.Equal(t, "https://labels.test/v1/welivery-label.pdf", label.LabelURL)
}

func TestGetTracking_Profiles(t *testing.T) {
	tests := []struct {
		carrier     valueobject.Carrier
		status      valueobject.TrackingStatus
		location    string
		eventStatus valueobject.TrackingStatus
	}{
		{valueobject.CarrierEnvia, valueobject.TrackingStatusInTransit, "Centro de Distribución", valueobject.TrackingStatusPicked},
		{valueobject.CarrierWelivery, valueobject.TrackingStatusInTransit, "En ruta", valueobject.TrackingStatusInTransit},
		{valueobject.CarrierCorreo, valueobject.TrackingStatusDelivered, "Oficina Postal", valueobject.TrackingStatusDelivered},
	}

	for _, tt := range tests {
		t.Run(string(tt.carrier), func(t *testing.T) {
			a := newTestAdapter(t, tt.carrier)
			info, err := a.GetTracking(context.Background(), "X123")
			require.NoError(t, err)

			assert.Equal(t, tt.status, info.Status)
			assert.Equal(t, "X123", info.TrackingNumber)
			require.Len(t, info.Events, 1)
			assert.Equal(t, tt.location, info.Events[0].Location)
			assert.Equal(t, tt.eventStatus, info.Events[0].Status)
			assert.False(t, info.Events[0].Timestamp.IsZero())
		})
	}
}

func TestAdapter_ContextDone(t *testing.T) {
	a := newTestAdapter(t, valueobject.CarrierEnvia)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.CalculateShipping(canceled, entity.ShipmentDetails{Weight: 1})
	assert.True(t, entity.IsCarrierError(err, entity.KindUnavailable))
	assert.ErrorIs(t, err, context.Canceled)

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	_, err = a.CreateShipment(expired, entity.ShipmentDetails{Weight: 1})
	assert.True(t, entity.IsCarrierError(err, entity.KindTimeout))

	_, err = a.GetTracking(expired, "ENV1")
	ce, ok := entity.AsCarrierError(err)
	require.True(t, ok)
	assert.Equal(t, entity.OpTracking, ce.Op)
}

func TestNew_Errors(t *testing.T) {
	_, err := NewCorreo(Config{APIKey: "  "}, logging.Nop())
	assert.ErrorIs(t, err, entity.ErrMissingAPIKey)

	_, err = New(valueobject.Carrier("dhl"), Config{APIKey: "k"}, logging.Nop())
	assert.ErrorIs(t, err, valueobject.ErrUnknownCarrier)
}

type recordingRegistrar struct {
	carriers []valueobject.Carrier
	fail     error
}

func (r *recordingRegistrar) RegisterAdapter(c valueobject.Carrier, adapter port.CarrierAdapter) error {
	if r.fail != nil {
		return r.fail
	}
	r.carriers = append(r.carriers, c)
	return nil
}

func TestRegisterConfigured(t *testing.T) {
	reg := &recordingRegistrar{}
	settings := map[valueobject.Carrier]Setting{
		valueobject.CarrierCorreo:   {Enabled: true, Config: Config{APIKey: "c"}},
		valueobject.CarrierEnvia:    {Enabled: true, Config: Config{APIKey: "e"}},
		valueobject.CarrierWelivery: {Enabled: false},
	}

	got, err := RegisterConfigured(reg, settings, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, []valueobject.Carrier{valueobject.CarrierEnvia, valueobject.CarrierCorreo}, got)
	assert.Equal(t, got, reg.carriers)
}

func TestRegisterConfigured_Errors(t *testing.T) {
	_, err := RegisterConfigured(&recordingRegistrar{}, map[valueobject.Carrier]Setting{
		valueobject.CarrierEnvia: {Enabled: true},
	}, logging.Nop())
	assert.ErrorIs(t, err, entity.ErrMissingAPIKey)

	boom := errors.New("boom")
	_, err = RegisterConfigured(&recordingRegistrar{fail: boom}, map[valueobject.Carrier]Setting{
		valueobject.CarrierEnvia: {Enabled: true, Config: Config{APIKey: "e"}},
	}, logging.Nop())
	assert.ErrorIs(t, err, boom)
}
