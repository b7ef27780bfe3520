package services

import (
	"context"
	"sort"
	"time"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
)

// In-memory repository fakes. They ignore the SQLExecutor argument; the
// transactional tests pair them with a sqlmock database that only serves
// Begin/Commit.

type fakeMatchRepo struct {
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
}

func copyMatch(m *models.Match) *models.Match {
	c := *m
	return &c
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	match.ID = r.nextID
	r.nextID++
	match.CreatedAt = time.Now()
	match.UpdatedAt = match.CreatedAt
	r.matches[match.ID] = copyMatch(match)
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return copyMatch(m), nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.matches[match.ID] = copyMatch(match)
	return nil
}

func (r *fakeMatchRepo) UpdateTeams(ctx context.Context, exec repositories.SQLExecutor, id, homeTeamID, awayTeamID int) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.HomeTeamID = homeTeamID
	m.AwayTeamID = awayTeamID
	return nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) sorted() []*models.Match {
	ids := make([]int, 0, len(r.matches))
	for id := range r.matches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*models.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyMatch(r.matches[id]))
	}
	return out
}

func (r *fakeMatchRepo) ListAll(ctx context.Context) ([]*models.Match, error) {
	return r.sorted(), nil
}

func (r *fakeMatchRepo) ListByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range r.sorted() {
		if m.DivisionID == divisionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range r.sorted() {
		if m.HomeTeamID == teamID || m.AwayTeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByDivisionAndPlayoffRound(ctx context.Context, exec repositories.SQLExecutor, divisionID int, round models.PlayoffRound) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range r.sorted() {
		if m.DivisionID == divisionID && m.PlayoffRound != nil && *m.PlayoffRound == round {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) DeleteScheduledLeagueByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) error {
	for id, m := range r.matches {
		if m.DivisionID == divisionID && m.PlayoffRound == nil && m.Status == models.MatchStatusScheduled {
			delete(r.matches, id)
		}
	}
	return nil
}

func (r *fakeMatchRepo) DeletePlayoffsByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) error {
	for id, m := range r.matches {
		if m.DivisionID == divisionID && m.PlayoffRound != nil {
			delete(r.matches, id)
		}
	}
	return nil
}

type fakeStandingRepo struct {
	standings map[int]*models.Standing
	nextID    int
}

func newFakeStandingRepo() *fakeStandingRepo {
	return &fakeStandingRepo{standings: make(map[int]*models.Standing), nextID: 1}
}

func copyStanding(s *models.Standing) *models.Standing {
	c := *s
	return &c
}

func (r *fakeStandingRepo) Create(ctx context.Context, exec repositories.SQLExecutor, standing *models.Standing) error {
	standing.ID = r.nextID
	r.nextID++
	r.standings[standing.ID] = copyStanding(standing)
	return nil
}

func (r *fakeStandingRepo) GetByDivisionAndTeam(ctx context.Context, exec repositories.SQLExecutor, divisionID, teamID int) (*models.Standing, error) {
	for _, s := range r.standings {
		if s.DivisionID == divisionID && s.TeamID == teamID {
			return copyStanding(s), nil
		}
	}
	return nil, repositories.ErrStandingNotFound
}

func (r *fakeStandingRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, divisionID, teamID int) (*models.Standing, error) {
	if s, err := r.GetByDivisionAndTeam(ctx, exec, divisionID, teamID); err == nil {
		return s, nil
	}
	s := &models.Standing{DivisionID: divisionID, TeamID: teamID}
	if err := r.Create(ctx, exec, s); err != nil {
		return nil, err
	}
	return copyStanding(s), nil
}

func (r *fakeStandingRepo) Update(ctx context.Context, exec repositories.SQLExecutor, standing *models.Standing) error {
	if _, ok := r.standings[standing.ID]; !ok {
		return repositories.ErrStandingNotFound
	}
	r.standings[standing.ID] = copyStanding(standing)
	return nil
}

func (r *fakeStandingRepo) ListByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) ([]*models.Standing, error) {
	out := make([]*models.Standing, 0)
	for _, s := range r.standings {
		if s.DivisionID == divisionID {
			out = append(out, copyStanding(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})
	return out, nil
}

func (r *fakeStandingRepo) DeleteByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) error {
	for id, s := range r.standings {
		if s.DivisionID == divisionID {
			delete(r.standings, id)
		}
	}
	return nil
}

type fakeDivisionRepo struct {
	divisions map[int]*models.Division
}

func newFakeDivisionRepo(divisions ...*models.Division) *fakeDivisionRepo {
	r := &fakeDivisionRepo{divisions: make(map[int]*models.Division)}
	for _, d := range divisions {
		r.divisions[d.ID] = d
	}
	return r
}

func (r *fakeDivisionRepo) Create(ctx context.Context, division *models.Division) error {
	division.ID = len(r.divisions) + 1
	r.divisions[division.ID] = division
	return nil
}

func (r *fakeDivisionRepo) GetByID(ctx context.Context, id int) (*models.Division, error) {
	d, ok := r.divisions[id]
	if !ok {
		return nil, repositories.ErrDivisionNotFound
	}
	c := *d
	return &c, nil
}

func (r *fakeDivisionRepo) GetAll(ctx context.Context) ([]models.Division, error) {
	out := make([]models.Division, 0, len(r.divisions))
	for _, d := range r.divisions {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDivisionRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Division, error) {
	out := make([]models.Division, 0)
	for _, d := range r.divisions {
		if d.TournamentID == tournamentID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDivisionRepo) Update(ctx context.Context, division *models.Division) error {
	if _, ok := r.divisions[division.ID]; !ok {
		return repositories.ErrDivisionNotFound
	}
	r.divisions[division.ID] = division
	return nil
}

func (r *fakeDivisionRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.divisions[id]; !ok {
		return repositories.ErrDivisionNotFound
	}
	delete(r.divisions, id)
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, t := range tournaments {
		r.tournaments[t.ID] = t
	}
	return r
}

func (r *fakeTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = len(r.tournaments) + 1
	r.tournaments[tournament.ID] = tournament
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	c := *t
	return &c, nil
}

func (r *fakeTournamentRepo) GetAll(ctx context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) ListByOrganization(ctx context.Context, organizationID int) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0)
	for _, t := range r.tournaments {
		if t.OrganizationID == organizationID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) ListByStatus(ctx context.Context, statuses ...models.TournamentStatus) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0)
	for _, t := range r.tournaments {
		for _, status := range statuses {
			if t.Status == status {
				out = append(out, *t)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, tournament *models.Tournament) error {
	if _, ok := r.tournaments[tournament.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	c := *tournament
	r.tournaments[tournament.ID] = &c
	return nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	team.ID = len(r.teams) + 1
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	c := *t
	return &c, nil
}

func (r *fakeTeamRepo) GetAll(ctx context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeamRepo) ListByDivision(ctx context.Context, divisionID int) ([]models.Team, error) {
	out := make([]models.Team, 0)
	for _, t := range r.teams {
		if t.DivisionID == divisionID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	t, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.CrestKey = crestKey
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakeVenueRepo struct {
	venues []models.Venue
}

func newFakeVenueRepo(venues ...models.Venue) *fakeVenueRepo {
	return &fakeVenueRepo{venues: venues}
}

func (r *fakeVenueRepo) Create(ctx context.Context, venue *models.Venue) error {
	venue.ID = len(r.venues) + 1
	r.venues = append(r.venues, *venue)
	return nil
}

func (r *fakeVenueRepo) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	for _, v := range r.venues {
		if v.ID == id {
			c := v
			return &c, nil
		}
	}
	return nil, repositories.ErrVenueNotFound
}

func (r *fakeVenueRepo) GetAll(ctx context.Context) ([]models.Venue, error) {
	out := make([]models.Venue, len(r.venues))
	copy(out, r.venues)
	return out, nil
}

func (r *fakeVenueRepo) Update(ctx context.Context, venue *models.Venue) error {
	for i, v := range r.venues {
		if v.ID == venue.ID {
			r.venues[i] = *venue
			return nil
		}
	}
	return repositories.ErrVenueNotFound
}

func (r *fakeVenueRepo) Delete(ctx context.Context, id int) error {
	for i, v := range r.venues {
		if v.ID == id {
			r.venues = append(r.venues[:i], r.venues[i+1:]...)
			return nil
		}
	}
	return repositories.ErrVenueNotFound
}
