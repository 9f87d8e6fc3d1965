// Package assignment выбирает ближайшую активную команду для точки заявки.
package assignment

import (
	"errors"
	"sort"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/geo"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

// ErrNoActiveTeams - среди кандидатов нет ни одной активной команды.
var ErrNoActiveTeams = errors.New("no active teams among candidates")

// ErrInvalidPoint - координаты точки вне допустимых диапазонов.
var ErrInvalidPoint = errors.New("invalid coordinates")

// Candidate - команда с вычисленной дистанцией до точки заявки.
type Candidate struct {
	Team       storage.Team
	DistanceKm float64
}

// Selection - результат выбора команды.
// MatchedByWard=true, когда сработало переопределение по номеру района.
type Selection struct {
	Team          storage.Team
	DistanceKm    float64
	MatchedByWard bool
}

// Rank фильтрует активные команды и сортирует их по дистанции до точки.
// Тай-брейк - по возрастанию id команды, порядок входа значения не имеет.
func Rank(p geo.Point, teams []storage.Team) ([]Candidate, error) {
	if !p.Valid() {
		return nil, ErrInvalidPoint
	}

	cands := make([]Candidate, 0, len(teams))
	for _, t := range teams {
		if t.Status != storage.TeamActive {
			continue
		}
		d := geo.HaversineKm(p, geo.Point{Lat: t.CenterLat, Lng: t.CenterLng})
		cands = append(cands, Candidate{Team: t, DistanceKm: d})
	}

	if len(cands) == 0 {
		return nil, ErrNoActiveTeams
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].DistanceKm != cands[j].DistanceKm {
			return cands[i].DistanceKm < cands[j].DistanceKm
		}
		return cands[i].Team.ID < cands[j].Team.ID
	})

	return cands, nil
}

// Select возвращает команду для заявки: ближайшую, либо первую по дистанции
// команду, обслуживающую wardNumber. Несовпадение района не блокирует
// назначение - выбирается ближайшая команда.
func Select(p geo.Point, teams []storage.Team, wardNumber *int) (Selection, error) {
	cands, err := Rank(p, teams)
	if err != nil {
		return Selection{}, err
	}

	if wardNumber != nil {
		for _, c := range cands {
			if servesWard(c.Team, *wardNumber) {
				return Selection{Team: c.Team, DistanceKm: c.DistanceKm, MatchedByWard: true}, nil
			}
		}
	}

	nearest := cands[0]
	return Selection{Team: nearest.Team, DistanceKm: nearest.DistanceKm}, nil
}

const (
	minNearestLimit = 1
	maxNearestLimit = 5
)

// Nearest возвращает top-K ближайших активных команд, K ограничен [1,5].
func Nearest(p geo.Point, teams []storage.Team, limit int) ([]Candidate, error) {
	cands, err := Rank(p, teams)
	if err != nil {
		return nil, err
	}

	if limit < minNearestLimit {
		limit = minNearestLimit
	}
	if limit > maxNearestLimit {
		limit = maxNearestLimit
	}
	if limit > len(cands) {
		limit = len(cands)
	}

	return cands[:limit], nil
}

func servesWard(t storage.Team, ward int) bool {
	for _, w := range t.WardNumbers {
		if w == ward {
			return true
		}
	}
	return false
}
