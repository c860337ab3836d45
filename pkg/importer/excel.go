package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/entities"
	"github.com/webstats/crm/pkg/scraper"
	"github.com/webstats/crm/pkg/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// eventsSheet is the workbook tab holding the per-action event log.
const eventsSheet = "BD_EVENTOS"

// ImportMatchWorkbook processes a match statistics workbook: every row of the
// BD_EVENTOS sheet becomes a MatchEvent, fixtures and opposing teams and
// players are created on first sight, and a MatchReport plus DataImportLog
// record the import.
func (s *Service) ImportMatchWorkbook(ctx context.Context, path string, ref standings.LeagueRef) (int, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return 0, err
	}
	defer workbook.Close()

	league, err := s.standings.EnsureLeagueStructure(ctx, ref)
	if err != nil {
		return 0, err
	}
	primary, err := s.ensurePrimaryTeam(ctx, league.Group.ID)
	if err != nil {
		return 0, err
	}

	totalRows := uint(0)
	sheetInfo := map[string]int{}
	for _, name := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(name)
		if err != nil {
			continue
		}
		sheetInfo[name] = len(rows)
		totalRows += uint(len(rows))
	}

	events := extractEvents(workbook)
	created, err := s.ingestEvents(ctx, events, league, primary, filepath.Base(path))
	if err != nil {
		return 0, err
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"sheets": sheetInfo,
		"events": len(events),
	})
	report := entities.MatchReport{
		SourceFile: filepath.Base(path),
		ImportedAt: time.Now(),
		RawData:    string(payload),
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return created, err
	}
	if err := s.logImport(ctx, filepath.Base(path), totalRows,
		fmt.Sprintf("match workbook import from %s", path)); err != nil {
		return created, err
	}

	log.Printf("[info] processed %s: %d sheets, %d rows, %d events",
		filepath.Base(path), len(sheetInfo), totalRows, created)
	return created, nil
}

func extractEvents(workbook *excelize.File) []map[string]string {
	rows, err := workbook.GetRows(eventsSheet)
	if err != nil || len(rows) < 2 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = utils.NormalizeKey(h)
	}

	var events []map[string]string
	for _, row := range rows[1:] {
		payload := map[string]string{}
		empty := true
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			payload[headers[i]] = cell
		}
		if !empty {
			events = append(events, payload)
		}
	}
	return events
}

func (s *Service) ingestEvents(ctx context.Context, events []map[string]string, league standings.League, primary entities.Team, sourceFile string) (int, error) {
	matchCache := map[string]*entities.Match{}
	playerCache := map[string]*entities.Player{}
	cleansed := map[uint]bool{}
	created := 0

	for _, row := range events {
		partidoID := row["partidoid"]
		if partidoID == "" {
			continue
		}
		rival := row["rival"]
		if rival == "" {
			rival = "Rival desconocido"
		}

		matchKey := partidoID + "|" + rival
		match := matchCache[matchKey]
		if match == nil {
			var err error
			match, err = s.findOrCreateMatch(ctx, row, partidoID, rival, league, primary, sourceFile)
			if err != nil {
				return created, err
			}
			matchCache[matchKey] = match
		}

		// Re-importing the same workbook replaces its events instead of
		// stacking duplicates.
		if !cleansed[match.ID] {
			if err := s.db.WithContext(ctx).
				Where("match_id = ? AND source_file = ?", match.ID, sourceFile).
				Delete(&entities.MatchEvent{}).Error; err != nil {
				return created, err
			}
			cleansed[match.ID] = true
		}

		var playerID *uint
		if name := row["jugador"]; name != "" {
			player := playerCache[name]
			if player == nil {
				var err error
				player, err = s.findOrCreatePlayer(ctx, primary.ID, name)
				if err != nil {
					return created, err
				}
				playerCache[name] = player
			}
			playerID = &player.ID
		}

		raw, _ := json.Marshal(row)
		event := entities.MatchEvent{
			MatchID:     match.ID,
			PlayerID:    playerID,
			Minute:      parseMinute(row["minuto"]),
			EventType:   row["evento"],
			Result:      row["resultadoaccion"],
			Zone:        row["zona"],
			Tercio:      row["tercio"],
			Observation: row["observacion"],
			System:      row["sistema"],
			SourceFile:  sourceFile,
			RawData:     string(raw),
			IsConfirmed: true,
		}
		if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Service) findOrCreateMatch(ctx context.Context, row map[string]string, partidoID, rival string, league standings.League, primary entities.Team, sourceFile string) (*entities.Match, error) {
	slug := utils.Slugify(rival)
	if slug == "" {
		slug = "rival-" + partidoID
	}
	var opponent entities.Team
	if err := s.db.WithContext(ctx).
		Where(entities.Team{Slug: slug}).
		Attrs(entities.Team{Name: rival, GroupID: &league.Group.ID}).
		FirstOrCreate(&opponent).Error; err != nil {
		return nil, err
	}

	round := row["jornada"]
	if round == "" {
		round = "Partido " + partidoID
	}

	var match entities.Match
	err := s.db.WithContext(ctx).
		Where("season_id = ? AND round = ? AND home_team_id = ? AND away_team_id = ?",
			league.Season.ID, round, primary.ID, opponent.ID).
		First(&match).Error
	if err == gorm.ErrRecordNotFound {
		match = entities.Match{
			SeasonID:   league.Season.ID,
			GroupID:    &league.Group.ID,
			Round:      round,
			Date:       parseWorkbookDate(row["fecha"]),
			Location:   row["campo"],
			HomeTeamID: &primary.ID,
			AwayTeamID: &opponent.ID,
			Source:     sourceFile,
		}
		err = s.db.WithContext(ctx).Create(&match).Error
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Service) findOrCreatePlayer(ctx context.Context, teamID uint, name string) (*entities.Player, error) {
	player, err := s.roster.FindPlayerByName(ctx, teamID, name)
	if err == nil {
		return &player, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	player = entities.Player{TeamID: teamID, Name: name, IsActive: true}
	if err := s.roster.CreatePlayer(ctx, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Service) ensurePrimaryTeam(ctx context.Context, groupID uint) (entities.Team, error) {
	var team entities.Team
	err := s.db.WithContext(ctx).
		Where(entities.Team{Slug: "cd-benagalbon"}).
		Attrs(entities.Team{
			Name:      "C.D. Benagalbón",
			ShortName: "Benagalbón",
			GroupID:   &groupID,
			IsPrimary: true,
		}).
		FirstOrCreate(&team).Error
	if err != nil {
		return team, err
	}
	if !team.IsPrimary || team.GroupID == nil || *team.GroupID != groupID {
		team.IsPrimary = true
		team.GroupID = &groupID
		err = s.db.WithContext(ctx).Save(&team).Error
	}
	return team, err
}

func parseMinute(value string) *uint {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}
	m := uint(n)
	return &m
}

func parseWorkbookDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02-01-2006", "01-02-06", "1/2/06 15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// ParseWorkbookRows reads the first sheet of an Excel download into
// normalized rows, for standings files linked from the federation site.
func ParseWorkbookRows(content []byte) ([]scraper.Row, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		return nil, err
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = utils.NormalizeKey(h)
	}

	var out []scraper.Row
	for _, record := range rows[1:] {
		row := scraper.Row{}
		for i, cell := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = strings.TrimSpace(cell)
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return out, nil
}
