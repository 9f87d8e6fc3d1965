package dto

import (
	"time"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/assignment"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/geo"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/service"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// FromStorageUser storage.User -> UserDetail.
func FromStorageUser(u storage.User) UserDetail {
	return UserDetail{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		TeamID:    u.TeamID,
		Points:    u.Points,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// FromStorageReport storage.Report -> ReportResponse.
func FromStorageReport(r storage.Report) ReportResponse {
	return ReportResponse{
		ReportID:             r.ID,
		UserID:               r.UserID,
		PhotoURL:             r.PhotoURL,
		WasteType:            r.WasteType,
		Biodegradable:        r.Biodegradable,
		Severity:             string(r.Severity),
		Description:          r.Description,
		Status:               string(r.Status),
		PriorityScore:        r.PriorityScore,
		WardNumber:           r.WardNumber,
		Location:             Location{Lat: r.Lat, Lng: r.Lng, Address: r.Address},
		AssignedTeamID:       r.AssignedTeamID,
		AssignedMunicipality: r.AssignedMunicipality,
		AssignmentDate:       r.AssignmentDate,
		ResolvedAt:           r.ResolvedAt,
		CreatedAt:            r.CreatedAt,
	}
}

// FromStorageReportList storage.Report -> массив ReportResponse.
func FromStorageReportList(reports []storage.Report) []ReportResponse {
	res := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		res = append(res, FromStorageReport(r))
	}
	return res
}

// FromStorageTeam storage.Team -> TeamResponse.
func FromStorageTeam(t storage.Team) TeamResponse {
	wards := t.WardNumbers
	if wards == nil {
		wards = []int{}
	}
	return TeamResponse{
		TeamID:       t.ID,
		Name:         t.Name,
		Status:       string(t.Status),
		CenterLat:    t.CenterLat,
		CenterLng:    t.CenterLng,
		RadiusKm:     t.RadiusKm,
		WardNumbers:  wards,
		ContactEmail: t.ContactEmail,
	}
}

// FromStorageTeamList storage.Team -> массив TeamResponse.
func FromStorageTeamList(teams []storage.Team) []TeamResponse {
	res := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		res = append(res, FromStorageTeam(t))
	}
	return res
}

// FromCandidates assignment.Candidate -> массив NearbyTeam.
// Дистанция округляется до двух знаков только на выдаче.
func FromCandidates(cands []assignment.Candidate) []NearbyTeam {
	res := make([]NearbyTeam, 0, len(cands))
	for _, c := range cands {
		res = append(res, NearbyTeam{
			Team:       FromStorageTeam(c.Team),
			DistanceKm: geo.RoundKm(c.DistanceKm),
		})
	}
	return res
}

// FromSelection заявка + результат выбора -> AssignmentResponse.
func FromSelection(report storage.Report, sel assignment.Selection) AssignmentResponse {
	return AssignmentResponse{
		Report:        FromStorageReport(report),
		Team:          FromStorageTeam(sel.Team),
		DistanceKm:    geo.RoundKm(sel.DistanceKm),
		MatchedByWard: sel.MatchedByWard,
	}
}

// ToNewReportInput CreateReportRequest -> service.NewReportInput.
func (r CreateReportRequest) ToNewReportInput(userID string) service.NewReportInput {
	return service.NewReportInput{
		UserID:        userID,
		PhotoURL:      r.PhotoURL,
		WasteType:     r.WasteType,
		Biodegradable: r.Biodegradable,
		Severity:      storage.Severity(r.Severity),
		Description:   r.Description,
		PriorityScore: r.PriorityScore,
		WardNumber:    r.WardNumber,
		Lat:           r.Location.Lat,
		Lng:           r.Location.Lng,
		Address:       r.Location.Address,
	}
}

// ToStorageTeam CreateTeamRequest -> storage.Team.
func (r CreateTeamRequest) ToStorageTeam() storage.Team {
	return storage.Team{
		Name:         r.Name,
		Status:       storage.TeamStatus(r.Status),
		CenterLat:    r.CenterLat,
		CenterLng:    r.CenterLng,
		RadiusKm:     r.RadiusKm,
		WardNumbers:  r.WardNumbers,
		ContactEmail: r.ContactEmail,
	}
}

// FromStorageOrganization storage.Organization -> OrganizationResponse.
func FromStorageOrganization(o storage.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.ID,
		Name:           o.Name,
		ContactEmail:   o.ContactEmail,
	}
}

// FromStorageDrive storage.Drive -> DriveResponse.
func FromStorageDrive(d storage.Drive) DriveResponse {
	return DriveResponse{
		DriveID:        d.ID,
		OrganizationID: d.OrganizationID,
		Title:          d.Title,
		Description:    d.Description,
		Location:       Location{Lat: d.Lat, Lng: d.Lng, Address: d.Address},
		ScheduledAt:    d.ScheduledAt.Format(time.RFC3339),
		CreatedBy:      d.CreatedBy,
		Participants:   d.Participants,
	}
}

// FromStorageDriveList storage.Drive -> массив DriveResponse.
func FromStorageDriveList(drives []storage.Drive) []DriveResponse {
	res := make([]DriveResponse, 0, len(drives))
	for _, d := range drives {
		res = append(res, FromStorageDrive(d))
	}
	return res
}

// FromLeaderboard service.LeaderboardEntry -> массив LeaderboardEntryResponse.
func FromLeaderboard(entries []service.LeaderboardEntry) []LeaderboardEntryResponse {
	res := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, LeaderboardEntryResponse{
			Rank:   e.Rank,
			UserID: e.UserID,
			Name:   e.Name,
			Points: e.Points,
		})
	}
	return res
}

// FromStorageContributions storage.Contribution -> массив ContributionResponse.
func FromStorageContributions(contribs []storage.Contribution) []ContributionResponse {
	res := make([]ContributionResponse, 0, len(contribs))
	for _, c := range contribs {
		res = append(res, ContributionResponse{
			Kind:      string(c.Kind),
			ReportID:  c.ReportID,
			DriveID:   c.DriveID,
			Points:    c.Points,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}
	return res
}
