package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/hapkiduki/shipping-go/internal/application/dto"
	"github.com/hapkiduki/shipping-go/internal/domain/entity"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes shippingctl against the real configuration loader with
// every carrier keyed through the environment.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("ENVIA_API_KEY", "k1")
	t.Setenv("WELIVERY_API_KEY", "k2")
	t.Setenv("CORREO_API_KEY", "k3")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCmd_JSON(t *testing.T) {
	out, err := run(t, "quote", "--weight", "2", "--value", "100", "--origin", "A", "--destination", "B", "--json")
	require.NoError(t, err)

	var resp dto.QuotesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Quotes, 3)
	assert.Equal(t, "envia", resp.Quotes[0].Carrier)
	assert.Equal(t, "envia", resp.Recommended)
}

func TestQuoteCmd_Table(t *testing.T) {
	out, err := run(t, "quote", "--weight", "2", "--value", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "CARRIER")
	assert.Contains(t, out, "110.00")
	assert.Contains(t, out, "recommended: envia")
}

func TestQuoteCmd_InvalidWeight(t *testing.T) {
	_, err := run(t, "quote", "--weight=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight")
}

func TestRecommendCmd(t *testing.T) {
	out, err := run(t, "recommend", "--weight", "5", "--value", "10")
	require.NoError(t, err)
	assert.Equal(t, "welivery", strings.TrimSpace(out))
}

func TestCreateCmd(t *testing.T) {
	out, err := run(t, "create", "--weight", "30", "--value", "100", "--json")
	require.NoError(t, err)

	var resp dto.ShipmentResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "correo", resp.Carrier)
	assert.True(t, strings.HasPrefix(resp.TrackingNumber, "COR"))

	_, err = run(t, "create", "--weight", "1", "--carrier", "ups")
	assert.ErrorIs(t, err, valueobject.ErrUnknownCarrier)
}

func TestTrackCmd(t *testing.T) {
	out, err := run(t, "track", "--carrier", "envia", "--tracking-number", "ENV1")
	require.NoError(t, err)
	assert.Contains(t, out, "envia ENV1: in_transit")
	assert.Contains(t, out, "Centro de Distribución")

	_, err = run(t, "track", "--carrier", "envia", "--tracking-number", "  ")
	assert.ErrorIs(t, err, entity.ErrInvalidTrackingNumber)
}

func TestBuildService_MissingKey(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENVIA_API_KEY", "")

	_, err := buildService(&cliOptions{})
	assert.ErrorIs(t, err, entity.ErrMissingAPIKey)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
