package domain

// LeagueState holds the season-accumulated slices touched by the ingest
// path. Draft, contract, and trade ledgers belong to external collaborators
// and are not modeled here.
type LeagueState struct {
	ActiveSeasonID string

	PlayerStats map[string]*PlayerSeasonStat // player_id -> stat
	TeamStats   map[string]*TeamSeasonStat   // team_id -> stat

	Games        []GameSummary
	GameResults  map[string]GameResultV2 // game_id -> full v2 payload

	MasterSchedule MasterSchedule

	PhaseContainers map[string]*PhaseContainer // preseason/play_in/playoffs

	SeasonHistory map[string]*SeasonSnapshot
}

type PlayerSeasonStat struct {
	PlayerID string
	Name     string
	TeamID   string
	Games    int
	Totals   map[string]float64
}

type TeamSeasonStat struct {
	TeamID     string
	Games      int
	Totals     map[string]float64
	Breakdowns map[string]int
}

type GameSummary struct {
	GameID     string
	Date       string
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
	Status     string
	IsOvertime bool
	Phase      string
	SeasonID   string
}

type MasterScheduleEntry struct {
	GameID     string
	Date       string
	HomeTeamID string
	AwayTeamID string
	Status     string
	HomeScore  int
	AwayScore  int
}

type MasterSchedule struct {
	Games  []*MasterScheduleEntry
	ByID   map[string]*MasterScheduleEntry
	ByTeam map[string][]*MasterScheduleEntry
	ByDate map[string][]*MasterScheduleEntry
}

// PhaseContainer has the same shape as the top-level regular-season slice,
// used for play_in/playoffs/preseason accumulation.
type PhaseContainer struct {
	PlayerStats map[string]*PlayerSeasonStat
	TeamStats   map[string]*TeamSeasonStat
	Games       []GameSummary
	GameResults map[string]GameResultV2
}

func NewPhaseContainer() *PhaseContainer {
	return &PhaseContainer{
		PlayerStats: map[string]*PlayerSeasonStat{},
		TeamStats:   map[string]*TeamSeasonStat{},
		GameResults: map[string]GameResultV2{},
	}
}

// SeasonSnapshot is the archived regular + phase accumulators for a season
// that has rolled over.
type SeasonSnapshot struct {
	SeasonID        string
	ArchivedAtTurn  int64
	Regular         *PhaseContainer
	PhaseContainers map[string]*PhaseContainer
}

func NewLeagueState() *LeagueState {
	return &LeagueState{
		PlayerStats: map[string]*PlayerSeasonStat{},
		TeamStats:   map[string]*TeamSeasonStat{},
		GameResults: map[string]GameResultV2{},
		MasterSchedule: MasterSchedule{
			ByID:   map[string]*MasterScheduleEntry{},
			ByTeam: map[string][]*MasterScheduleEntry{},
			ByDate: map[string][]*MasterScheduleEntry{},
		},
		PhaseContainers: map[string]*PhaseContainer{
			PhasePreseason: NewPhaseContainer(),
			PhasePlayIn:    NewPhaseContainer(),
			PhasePlayoffs:  NewPhaseContainer(),
		},
		SeasonHistory: map[string]*SeasonSnapshot{},
	}
}
