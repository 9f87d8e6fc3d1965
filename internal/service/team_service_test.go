package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

func TestCreateTeamDefaultsToActive(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo())

	team, appErr := svc.CreateTeam(context.Background(), storage.Team{
		Name:      "Ward 12 crew",
		CenterLat: 19.08,
		CenterLng: 72.88,
		RadiusKm:  5,
	})
	require.Nil(t, appErr)

	assert.Equal(t, storage.TeamActive, team.Status)
	assert.NotZero(t, team.ID)
}

func TestCreateTeamValidation(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo())

	_, appErr := svc.CreateTeam(context.Background(), storage.Team{CenterLat: 19, CenterLng: 72})
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)

	_, appErr = svc.CreateTeam(context.Background(), storage.Team{Name: "x", CenterLat: 95, CenterLng: 72})
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidCoordinates, appErr.Code)

	_, appErr = svc.CreateTeam(context.Background(), storage.Team{Name: "x", CenterLat: 19, CenterLng: 72, RadiusKm: -1})
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestSetStatusValidatesValue(t *testing.T) {
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo)

	team, appErr := svc.CreateTeam(context.Background(), storage.Team{
		Name:      "crew",
		CenterLat: 19.08,
		CenterLng: 72.88,
	})
	require.Nil(t, appErr)

	_, appErr = svc.SetStatus(context.Background(), team.ID, "paused")
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)

	updated, appErr := svc.SetStatus(context.Background(), team.ID, storage.TeamInactive)
	require.Nil(t, appErr)
	assert.Equal(t, storage.TeamInactive, updated.Status)
}
