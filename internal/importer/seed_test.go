package importer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pable/go-poker-ledger/internal/model"
)

const ledgerCSV = `Player,Totals,Num Games Played,Per Game,11/20,1/15,1/15 -1,2/1,13/40
Garrett,1000,3,333,500,-200,700,,
Nary,-1000,two,,-500,200,-700,,
Ano,0,1,0,,,,,
`

func (s *ImporterSuite) seedImporter() *Importer {
	imp := New(s.db, known, s.imp.logger)
	imp.SeedNicknames = map[string]string{"Nary": "Nary"}
	return imp
}

func (s *ImporterSuite) TestSeedLedger() {
	res, err := s.seedImporter().Seed(s.ctx, strings.NewReader(ledgerCSV), 2024, true)
	s.Require().NoError(err)

	s.Equal(3, res.PlayersCreated)
	s.Equal([]string{"2024-11-20", "2025-01-15", "2025-01-15-2"}, res.Games)
	s.Equal([]string{"2/1", "13/40"}, res.Skipped)

	players, err := s.db.ListPlayers(s.ctx)
	s.Require().NoError(err)
	byName := map[string]model.Player{}
	for _, p := range players {
		byName[p.Name] = p
	}
	s.True(byName["Garrett"].HasPlayerID("Gx6CTDK1-V"))
	s.Require().NotNil(byName["Garrett"].GamesPlayedFromLedger)
	s.Equal(3, *byName["Garrett"].GamesPlayedFromLedger)
	s.Nil(byName["Nary"].GamesPlayedFromLedger)
	s.True(byName["Nary"].HasNickname("nary"))
	s.True(byName["Ano"].HasPlayerID("dLUVSEvjqU"))

	second, err := s.db.GetGameByDate(s.ctx, "2025-01-15-2")
	s.Require().NoError(err)
	s.Equal("1/15", second.DisplayDate)
	s.Equal(int64(700), second.Results[byName["Garrett"].ID])
	s.Equal(int64(-700), second.Results[byName["Nary"].ID])
	_, played := second.Results[byName["Ano"].ID]
	s.False(played)
}

func (s *ImporterSuite) TestSeedResetClearsExisting() {
	s.addPlayer("Old Timer", nil, nil)
	_, err := s.seedImporter().Seed(s.ctx, strings.NewReader(ledgerCSV), 2024, true)
	s.Require().NoError(err)

	players, _ := s.db.ListPlayers(s.ctx)
	s.Len(players, 3)
}

func (s *ImporterSuite) TestSeedWithoutResetReusesPlayersAndSkipsTakenDates() {
	garrett := s.addPlayer("Garrett", nil, nil)
	_, err := s.db.CreateGameIfAbsent(s.ctx, &model.Game{Date: "2024-11-20", DisplayDate: "11/20", Results: map[string]int64{garrett.ID: 1}})
	s.Require().NoError(err)

	res, err := s.seedImporter().Seed(s.ctx, strings.NewReader(ledgerCSV), 2024, false)
	s.Require().NoError(err)
	s.Equal(2, res.PlayersCreated)
	s.Equal(1, res.PlayersReused)
	s.Contains(res.Skipped, "11/20")
	s.Equal([]string{"2025-01-15", "2025-01-15-2"}, res.Games)

	g, err := s.db.GetGameByDate(s.ctx, "2025-01-15")
	s.Require().NoError(err)
	s.Equal(int64(-200), g.Results[garrett.ID])
}

func (s *ImporterSuite) TestSeedSecondSessionWithoutFirst() {
	csv := "Player,Totals,1/15 -1\nGarrett,5,5\n"
	res, err := s.seedImporter().Seed(s.ctx, strings.NewReader(csv), 2024, true)
	s.Require().NoError(err)
	s.Equal([]string{"2025-01-15"}, res.Games)
}

func (s *ImporterSuite) TestSeedSecondSessionBeforeFirst() {
	csv := "Player,Totals,1/15 -1,1/15\nGarrett,5,5,-3\n"
	res, err := s.seedImporter().Seed(s.ctx, strings.NewReader(csv), 2024, true)
	s.Require().NoError(err)
	s.Equal([]string{"2025-01-15", "2025-01-15-2"}, res.Games)
	s.Empty(res.Skipped)

	g, err := s.db.GetGameByDate(s.ctx, "2025-01-15-2")
	s.Require().NoError(err)
	for _, cents := range g.Results {
		s.Equal(int64(-3), cents)
	}
}

func (s *ImporterSuite) TestSeedEmptyLedger() {
	_, err := s.seedImporter().Seed(s.ctx, strings.NewReader("Player,Totals,1/1\n"), 2024, true)
	s.ErrorIs(err, model.ErrEmptyImport)
}

func (s *ImporterSuite) TestSeedFile() {
	path := filepath.Join(s.T().TempDir(), "ledger.csv")
	s.Require().NoError(os.WriteFile(path, []byte(ledgerCSV), 0644))

	res, err := s.seedImporter().SeedFile(s.ctx, path, 2024, true)
	s.Require().NoError(err)
	s.Equal(3, res.PlayersCreated)
	s.Len(res.Games, 3)
}
