package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockdnd5e "github.com/KirkDiggler/dnd-dpr/internal/clients/dnd5e/mock"
	"github.com/KirkDiggler/dnd-dpr/internal/services"
)

func TestNewProvider_Defaults(t *testing.T) {
	p, err := services.NewProvider(&services.ProviderConfig{})
	require.NoError(t, err)

	reports, err := p.DPRService.ListReports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)

	w, err := p.Weapons.GetWeapon("longbow")
	require.NoError(t, err)
	assert.Equal(t, "Longbow", w.Name)
}

func TestNewProvider_FallsBackToCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mockdnd5e.NewMockClient(ctrl)
	client.EXPECT().GetWeapon("glaive").Return(nil, errors.New("no network"))

	p, err := services.NewProvider(&services.ProviderConfig{DNDClient: client})
	require.NoError(t, err)

	w, err := p.Weapons.GetWeapon("glaive")
	require.NoError(t, err)
	assert.True(t, w.HasProperty("reach"))
}

func TestNewProvider_RejectsBadBand(t *testing.T) {
	_, err := services.NewProvider(&services.ProviderConfig{DefaultBand: "deadly"})
	assert.Error(t, err)
}
