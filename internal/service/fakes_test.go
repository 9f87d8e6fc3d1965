package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/apperrors"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

var errFakeCache = errors.New("cache unavailable")

// In-memory репозитории для unit-тестов сервисного слоя.
// Повторяют контракт postgres-реализаций, включая CAS и идемпотентный бонус.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]storage.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]storage.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user storage.User) (storage.User, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return storage.User{}, apperrors.New(apperrors.ErrEmailExists)
		}
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Get(_ context.Context, userID string) (storage.User, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return storage.User{}, apperrors.New(apperrors.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (storage.User, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return storage.User{}, apperrors.New(apperrors.ErrNotFound)
}

func (f *fakeUserRepo) TopByPoints(_ context.Context, limit int) ([]storage.User, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	citizens := make([]storage.User, 0, len(f.users))
	for _, u := range f.users {
		if u.Role == storage.RoleCitizen {
			citizens = append(citizens, u)
		}
	}
	sort.Slice(citizens, func(i, j int) bool { return citizens[i].Points > citizens[j].Points })
	if limit < len(citizens) {
		citizens = citizens[:limit]
	}
	return citizens, nil
}

func (f *fakeUserRepo) addPoints(userID string, points int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.Points += points
		f.users[userID] = u
	}
}

type fakeTeamRepo struct {
	teams  map[int]storage.Team
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]storage.Team), nextID: 1}
}

func (f *fakeTeamRepo) Create(_ context.Context, team storage.Team) (storage.Team, *apperrors.AppError) {
	team.ID = f.nextID
	team.CreatedAt = time.Now()
	f.nextID++
	f.teams[team.ID] = team
	return team, nil
}

func (f *fakeTeamRepo) Get(_ context.Context, teamID int) (storage.Team, *apperrors.AppError) {
	t, ok := f.teams[teamID]
	if !ok {
		return storage.Team{}, apperrors.New(apperrors.ErrNotFound)
	}
	return t, nil
}

func (f *fakeTeamRepo) List(_ context.Context, page storage.Page) ([]storage.Team, *apperrors.AppError) {
	out := make([]storage.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if page.Offset < len(out) {
		out = out[page.Offset:]
	} else {
		out = nil
	}
	if page.Limit > 0 && page.Limit < len(out) {
		out = out[:page.Limit]
	}
	return out, nil
}

func (f *fakeTeamRepo) ListActive(_ context.Context) ([]storage.Team, *apperrors.AppError) {
	out := make([]storage.Team, 0, len(f.teams))
	for _, t := range f.teams {
		if t.Status == storage.TeamActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTeamRepo) SetStatus(_ context.Context, teamID int, status storage.TeamStatus) (storage.Team, *apperrors.AppError) {
	t, ok := f.teams[teamID]
	if !ok {
		return storage.Team{}, apperrors.New(apperrors.ErrNotFound)
	}
	t.Status = status
	f.teams[teamID] = t
	return t, nil
}

type fakeReportRepo struct {
	mu            sync.Mutex
	reports       map[string]storage.Report
	bonusAwarded  map[string]bool
	users         *fakeUserRepo
	failAssignCAS bool
}

func newFakeReportRepo(users *fakeUserRepo) *fakeReportRepo {
	return &fakeReportRepo{
		reports:      make(map[string]storage.Report),
		bonusAwarded: make(map[string]bool),
		users:        users,
	}
}

func (f *fakeReportRepo) Create(_ context.Context, report storage.Report) (storage.Report, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report.Status = storage.StatusSubmitted
	report.CreatedAt = time.Now()
	f.reports[report.ID] = report
	return report, nil
}

func (f *fakeReportRepo) Get(_ context.Context, reportID string) (storage.Report, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[reportID]
	if !ok {
		return storage.Report{}, apperrors.New(apperrors.ErrNotFound)
	}
	return r, nil
}

func (f *fakeReportRepo) List(_ context.Context, filters storage.ReportFilters, page storage.Page) ([]storage.Report, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]storage.Report, 0, len(f.reports))
	for _, r := range f.reports {
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		if filters.WasteType != "" && r.WasteType != filters.WasteType {
			continue
		}
		if filters.UserID != "" && r.UserID != filters.UserID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if page.Offset > 0 {
		if page.Offset >= len(out) {
			return nil, nil
		}
		out = out[page.Offset:]
	}
	if page.Limit > 0 && page.Limit < len(out) {
		out = out[:page.Limit]
	}
	return out, nil
}

func (f *fakeReportRepo) ListQueue(_ context.Context, teamID int, page storage.Page) ([]storage.Report, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]storage.Report, 0)
	for _, r := range f.reports {
		if r.AssignedTeamID != nil && *r.AssignedTeamID == teamID && !r.Status.IsTerminal() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PriorityScore != out[j].PriorityScore {
			return out[i].PriorityScore > out[j].PriorityScore
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if page.Limit > 0 && page.Limit < len(out) {
		out = out[:page.Limit]
	}
	return out, nil
}

func (f *fakeReportRepo) AssignIfSubmitted(_ context.Context, reportID string, upd storage.AssignmentUpdate) (bool, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAssignCAS {
		return false, nil
	}
	r, ok := f.reports[reportID]
	if !ok || r.Status != storage.StatusSubmitted {
		return false, nil
	}
	r.Status = storage.StatusAssigned
	r.AssignedTeamID = &upd.TeamID
	r.AssignedMunicipality = upd.Municipality
	r.AssignmentDate = &upd.AssignmentDate
	f.reports[reportID] = r
	return true, nil
}

func (f *fakeReportRepo) Assign(_ context.Context, reportID string, upd storage.AssignmentUpdate) (storage.Report, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[reportID]
	if !ok {
		return storage.Report{}, apperrors.New(apperrors.ErrNotFound)
	}
	if r.Status.IsTerminal() {
		return storage.Report{}, apperrors.New(apperrors.ErrInvalidTransition)
	}
	if r.Status == storage.StatusSubmitted {
		r.Status = storage.StatusAssigned
	}
	r.AssignedTeamID = &upd.TeamID
	r.AssignedMunicipality = upd.Municipality
	r.AssignmentDate = &upd.AssignmentDate
	f.reports[reportID] = r
	return r, nil
}

func (f *fakeReportRepo) UpdateStatus(_ context.Context, reportID string, from, to storage.ReportStatus) (storage.Report, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[reportID]
	if !ok {
		return storage.Report{}, apperrors.New(apperrors.ErrNotFound)
	}
	if r.Status != from {
		return storage.Report{}, apperrors.New(apperrors.ErrInvalidTransition)
	}
	r.Status = to
	f.reports[reportID] = r
	return r, nil
}

func (f *fakeReportRepo) Reject(_ context.Context, reportID string) (storage.Report, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[reportID]
	if !ok {
		return storage.Report{}, apperrors.New(apperrors.ErrNotFound)
	}
	if r.Status != storage.StatusSubmitted && r.Status != storage.StatusAssigned {
		return storage.Report{}, apperrors.New(apperrors.ErrInvalidTransition)
	}
	r.Status = storage.StatusRejected
	r.AssignedTeamID = nil
	r.AssignedMunicipality = ""
	r.AssignmentDate = nil
	f.reports[reportID] = r
	return r, nil
}

func (f *fakeReportRepo) Resolve(_ context.Context, reportID string, bonusPoints int) (storage.Report, bool, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[reportID]
	if !ok {
		return storage.Report{}, false, apperrors.New(apperrors.ErrNotFound)
	}
	if r.Status != storage.StatusInProgress {
		return storage.Report{}, false, apperrors.New(apperrors.ErrInvalidTransition)
	}
	now := time.Now()
	r.Status = storage.StatusResolved
	r.ResolvedAt = &now
	f.reports[reportID] = r

	awarded := !f.bonusAwarded[reportID]
	if awarded {
		f.bonusAwarded[reportID] = true
		if f.users != nil {
			f.users.addPoints(r.UserID, bonusPoints)
		}
	}
	return r, awarded, nil
}

func (f *fakeReportRepo) Delete(_ context.Context, reportID string) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[reportID]; !ok {
		return apperrors.New(apperrors.ErrNotFound)
	}
	delete(f.reports, reportID)
	return nil
}

type fakeDriveRepo struct {
	drives       map[string]storage.Drive
	participants map[string]map[string]bool
}

func newFakeDriveRepo() *fakeDriveRepo {
	return &fakeDriveRepo{
		drives:       make(map[string]storage.Drive),
		participants: make(map[string]map[string]bool),
	}
}

func (f *fakeDriveRepo) Create(_ context.Context, drive storage.Drive) (storage.Drive, *apperrors.AppError) {
	drive.CreatedAt = time.Now()
	f.drives[drive.ID] = drive
	return drive, nil
}

func (f *fakeDriveRepo) Get(_ context.Context, driveID string) (storage.Drive, *apperrors.AppError) {
	d, ok := f.drives[driveID]
	if !ok {
		return storage.Drive{}, apperrors.New(apperrors.ErrNotFound)
	}
	d.Participants = len(f.participants[driveID])
	return d, nil
}

func (f *fakeDriveRepo) List(_ context.Context, page storage.Page) ([]storage.Drive, *apperrors.AppError) {
	out := make([]storage.Drive, 0, len(f.drives))
	for id, d := range f.drives {
		d.Participants = len(f.participants[id])
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (f *fakeDriveRepo) Register(_ context.Context, driveID, userID string) *apperrors.AppError {
	if _, ok := f.drives[driveID]; !ok {
		return apperrors.New(apperrors.ErrNotFound)
	}
	if f.participants[driveID] == nil {
		f.participants[driveID] = make(map[string]bool)
	}
	if f.participants[driveID][userID] {
		return apperrors.New(apperrors.ErrAlreadyRegistered)
	}
	f.participants[driveID][userID] = true
	return nil
}

type fakeOrgRepo struct {
	orgs map[string]storage.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]storage.Organization)}
}

func (f *fakeOrgRepo) Create(_ context.Context, org storage.Organization) (storage.Organization, *apperrors.AppError) {
	org.CreatedAt = time.Now()
	f.orgs[org.ID] = org
	return org, nil
}

func (f *fakeOrgRepo) Get(_ context.Context, orgID string) (storage.Organization, *apperrors.AppError) {
	o, ok := f.orgs[orgID]
	if !ok {
		return storage.Organization{}, apperrors.NewWithMessage(apperrors.ErrNotFound, "organization not found")
	}
	return o, nil
}

type fakeContribRepo struct {
	mu      sync.Mutex
	awarded []storage.Contribution
	users   *fakeUserRepo
}

func newFakeContribRepo(users *fakeUserRepo) *fakeContribRepo {
	return &fakeContribRepo{users: users}
}

func (f *fakeContribRepo) Award(_ context.Context, c storage.Contribution) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.CreatedAt = time.Now()
	f.awarded = append(f.awarded, c)
	if f.users != nil {
		f.users.addPoints(c.UserID, c.Points)
	}
	return nil
}

func (f *fakeContribRepo) ListByUser(_ context.Context, userID string, page storage.Page) ([]storage.Contribution, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]storage.Contribution, 0)
	for _, c := range f.awarded {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePointsCache struct {
	mu      sync.Mutex
	scores  map[string]int
	failing bool
}

func newFakePointsCache() *fakePointsCache {
	return &fakePointsCache{scores: make(map[string]int)}
}

func (f *fakePointsCache) Add(_ context.Context, userID string, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errFakeCache
	}
	f.scores[userID] += points
	return nil
}

func (f *fakePointsCache) Set(_ context.Context, userID string, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errFakeCache
	}
	f.scores[userID] = points
	return nil
}

func (f *fakePointsCache) Top(_ context.Context, limit int) ([]CacheEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errFakeCache
	}
	out := make([]CacheEntry, 0, len(f.scores))
	for id, pts := range f.scores {
		out = append(out, CacheEntry{UserID: id, Points: pts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
