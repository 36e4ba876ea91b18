package main

import (
	"fmt"
	"strings"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/matchtime"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/models"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/service"
)

func teams(m models.Match) string {
	return fmt.Sprintf("%s x %s", m.HomeTeam.Name, m.AwayTeam.Name)
}

func cardState(info models.MatchTimeInfo) string {
	switch {
	case info.IsLive:
		return "AO VIVO"
	case info.IsFuture && info.CountdownText != nil:
		return "começa em " + *info.CountdownText
	case info.IsFinished:
		return "encerrado"
	default:
		return "-"
	}
}

func guess(p *models.Prediction) string {
	if p == nil {
		return "sem palpite"
	}
	return fmt.Sprintf("palpite %dx%d", p.PredictedHomeGoals, p.PredictedAwayGoals)
}

func cardLine(c service.Card) string {
	return fmt.Sprintf("%-16s  %-36s  %-22s  %s", c.Info.KickoffText, teams(c.Match), cardState(c.Info), guess(c.Prediction))
}

func score(m *models.Match) string {
	if m == nil || m.HomeScore == nil || m.AwayScore == nil {
		return "-"
	}
	return fmt.Sprintf("%d x %d", *m.HomeScore, *m.AwayScore)
}

func historyLine(e service.HistoryEntry) string {
	name, kickoff := "partida "+e.Prediction.MatchID, matchtime.InvalidText
	if e.Match != nil {
		name = teams(*e.Match)
		kickoff = matchtime.FormatKickoff(e.Match.Date, e.Match.Time)
	}
	return fmt.Sprintf("%-16s  %-36s  %-16s  placar %-7s  %s", kickoff, name, guess(&e.Prediction), score(e.Match), e.Label.Text)
}

func standingLine(r models.StandingRow) string {
	line := fmt.Sprintf("%2d  %-24s  %3d pts  %2dj  %2dv  %2de  %2dd  %+3d", r.Position, r.TeamName, r.Points, r.Played, r.Wins, r.Draws, r.Losses, r.GoalDiff)
	if r.Zone != "" {
		line += "  [" + r.Zone + "]"
	}
	return line
}

func rankingLine(i int, r models.RankingRow) string {
	marker := "  "
	if r.IsYou {
		marker = "> "
	}
	return fmt.Sprintf("%s%2d  %-20s  %4d pts  %5.1f%%", marker, i+1, r.User, r.Points, r.Accuracy)
}

func metricsLine(m models.UserMetrics) string {
	return strings.Join([]string{
		fmt.Sprintf("palpites: %d", m.Predictions),
		fmt.Sprintf("precisão: %.1f%%", m.Accuracy),
		fmt.Sprintf("pontos: %d", m.Points),
		fmt.Sprintf("figurinhas: %d", m.Stickers),
	}, "  |  ")
}

// openCards are the matches that still accept a prediction.
func openCards(cards []service.Card) []service.Card {
	var open []service.Card
	for _, c := range cards {
		if c.CanPredict {
			open = append(open, c)
		}
	}
	return open
}
