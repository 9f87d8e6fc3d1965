package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/geo"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/notify"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

type assignmentFixture struct {
	teams   *fakeTeamRepo
	reports *fakeReportRepo
	service *AssignmentService
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()

	teams := newFakeTeamRepo()
	reports := newFakeReportRepo(nil)
	svc := NewAssignmentService(reports, teams, notify.NoopNotifier{}, zap.NewNop())

	return &assignmentFixture{teams: teams, reports: reports, service: svc}
}

func (f *assignmentFixture) addTeam(t *testing.T, status storage.TeamStatus, lat, lng float64) storage.Team {
	t.Helper()
	team, appErr := f.teams.Create(context.Background(), storage.Team{
		Name:      "team",
		Status:    status,
		CenterLat: lat,
		CenterLng: lng,
	})
	require.Nil(t, appErr)
	return team
}

func (f *assignmentFixture) addSubmittedReport(t *testing.T, id string) storage.Report {
	t.Helper()
	report, appErr := f.reports.Create(context.Background(), storage.Report{
		ID:            id,
		UserID:        "u1",
		Lat:           19.0760,
		Lng:           72.8777,
		PriorityScore: 50,
	})
	require.Nil(t, appErr)
	return report
}

func TestAssignSubmitted(t *testing.T) {
	f := newAssignmentFixture(t)
	team := f.addTeam(t, storage.TeamActive, 19.08, 72.88)
	report := f.addSubmittedReport(t, "r1")

	assigned, sel, appErr := f.service.AssignSubmitted(context.Background(), report.ID,
		geo.Point{Lat: report.Lat, Lng: report.Lng}, nil)
	require.Nil(t, appErr)

	assert.Equal(t, storage.StatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedTeamID)
	assert.Equal(t, team.ID, *assigned.AssignedTeamID)
	assert.Equal(t, team.ID, sel.Team.ID)
	assert.False(t, sel.MatchedByWard)
}

func TestAssignSubmittedLosesRace(t *testing.T) {
	f := newAssignmentFixture(t)
	f.addTeam(t, storage.TeamActive, 19.08, 72.88)
	report := f.addSubmittedReport(t, "r1")

	// Параллельный вызов уже перевёл заявку из submitted.
	f.reports.failAssignCAS = true

	_, _, appErr := f.service.AssignSubmitted(context.Background(), report.ID,
		geo.Point{Lat: report.Lat, Lng: report.Lng}, nil)

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidTransition, appErr.Code)
}

func TestAssignSubmittedNoActiveTeams(t *testing.T) {
	f := newAssignmentFixture(t)
	f.addTeam(t, storage.TeamInactive, 19.08, 72.88)
	report := f.addSubmittedReport(t, "r1")

	_, _, appErr := f.service.AssignSubmitted(context.Background(), report.ID,
		geo.Point{Lat: report.Lat, Lng: report.Lng}, nil)

	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrNoActiveTeams, appErr.Code)
}

func TestAdminAutoAssignKeepsInProgress(t *testing.T) {
	f := newAssignmentFixture(t)
	first := f.addTeam(t, storage.TeamActive, 19.08, 72.88)
	report := f.addSubmittedReport(t, "r1")

	_, _, appErr := f.service.AssignSubmitted(context.Background(), report.ID,
		geo.Point{Lat: report.Lat, Lng: report.Lng}, nil)
	require.Nil(t, appErr)

	_, upErr := f.reports.UpdateStatus(context.Background(), report.ID, storage.StatusAssigned, storage.StatusInProgress)
	require.Nil(t, upErr)

	// Новая команда ближе, статус не понижается обратно в assigned.
	second := f.addTeam(t, storage.TeamActive, 19.076, 72.877)
	_, setErr := f.teams.SetStatus(context.Background(), first.ID, storage.TeamInactive)
	require.Nil(t, setErr)

	updated, sel, appErr := f.service.AdminAutoAssign(context.Background(), report.ID)
	require.Nil(t, appErr)

	assert.Equal(t, storage.StatusInProgress, updated.Status)
	require.NotNil(t, updated.AssignedTeamID)
	assert.Equal(t, second.ID, *updated.AssignedTeamID)
	assert.Equal(t, second.ID, sel.Team.ID)
}

func TestAdminAutoAssignRejectsTerminalReport(t *testing.T) {
	f := newAssignmentFixture(t)
	f.addTeam(t, storage.TeamActive, 19.08, 72.88)
	report := f.addSubmittedReport(t, "r1")

	_, upErr := f.reports.UpdateStatus(context.Background(), report.ID, storage.StatusSubmitted, storage.StatusRejected)
	require.Nil(t, upErr)

	_, _, appErr := f.service.AdminAutoAssign(context.Background(), report.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidTransition, appErr.Code)
}

func TestAdminManualAssignRejectsInactiveTeam(t *testing.T) {
	f := newAssignmentFixture(t)
	inactive := f.addTeam(t, storage.TeamInactive, 19.08, 72.88)
	report := f.addSubmittedReport(t, "r1")

	_, appErr := f.service.AdminManualAssign(context.Background(), report.ID, inactive.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrTeamInactive, appErr.Code)
}

func TestAdminManualAssignUnknownTeam(t *testing.T) {
	f := newAssignmentFixture(t)
	report := f.addSubmittedReport(t, "r1")

	_, appErr := f.service.AdminManualAssign(context.Background(), report.ID, 42)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestAdminManualAssign(t *testing.T) {
	f := newAssignmentFixture(t)
	far := f.addTeam(t, storage.TeamActive, 28.6, 77.2)
	f.addTeam(t, storage.TeamActive, 19.08, 72.88)
	report := f.addSubmittedReport(t, "r1")

	// Админ волен назначить и не ближайшую команду.
	updated, appErr := f.service.AdminManualAssign(context.Background(), report.ID, far.ID)
	require.Nil(t, appErr)

	require.NotNil(t, updated.AssignedTeamID)
	assert.Equal(t, far.ID, *updated.AssignedTeamID)
	assert.Equal(t, storage.StatusAssigned, updated.Status)
}

func TestNearbyTeamsClampsLimit(t *testing.T) {
	f := newAssignmentFixture(t)
	for i := 0; i < 8; i++ {
		f.addTeam(t, storage.TeamActive, 19.0+float64(i)*0.1, 72.8)
	}

	cands, appErr := f.service.NearbyTeams(context.Background(), geo.Point{Lat: 19.0, Lng: 72.8}, 50)
	require.Nil(t, appErr)
	assert.Len(t, cands, 5)
}

func TestNearbyTeamsInvalidPoint(t *testing.T) {
	f := newAssignmentFixture(t)
	f.addTeam(t, storage.TeamActive, 19.0, 72.8)

	_, appErr := f.service.NearbyTeams(context.Background(), geo.Point{Lat: -100, Lng: 0}, 3)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidCoordinates, appErr.Code)
}
