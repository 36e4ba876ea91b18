package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/backend"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/service"
)

const (
	optDashboard = "Painel"
	optPredict   = "Dar palpite"
	optHistory   = "Meus palpites"
	optStandings = "Tabela"
	optRanking   = "Ranking"
	optExit      = "Sair"
)

func main() {
	baseURL := os.Getenv("HUB_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	token := os.Getenv("HUB_TOKEN")
	if token == "" {
		prompt := promptui.Prompt{
			Label: "Token de acesso (vazio para visitante)",
			Mask:  '*',
		}
		var err error
		if token, err = prompt.Run(); err != nil {
			return
		}
	}

	c := newHubClient(baseURL, token)
	color.Cyan("\n=== HUB DO TORCEDOR ===\n")

	for {
		menu := promptui.Select{
			Label: "Escolha uma opção",
			Items: []string{optDashboard, optPredict, optHistory, optStandings, optRanking, optExit},
		}
		_, choice, err := menu.Run()
		if err != nil || choice == optExit {
			color.Yellow("Saindo...\n")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		switch choice {
		case optDashboard:
			err = showDashboard(ctx, c)
		case optPredict:
			err = predict(ctx, c)
		case optHistory:
			err = showHistory(ctx, c)
		case optStandings:
			err = showStandings(ctx, c)
		case optRanking:
			err = showRanking(ctx, c)
		}
		cancel()

		if err != nil {
			color.Red("✗ %v\n", err)
		}
	}
}

func printNotices(notices ...string) {
	for _, n := range notices {
		if n != "" {
			color.Yellow("⚠ %s\n", n)
		}
	}
}

func showDashboard(ctx context.Context, c *hubClient) error {
	d, err := c.Dashboard(ctx)
	if err != nil {
		return err
	}

	color.Cyan("\n=== PRÓXIMAS PARTIDAS ===\n")
	printNotices(d.Notices...)
	color.Green("%s\n\n", metricsLine(d.Metrics))

	if len(d.Cards) == 0 {
		fmt.Println("Nenhuma partida encontrada.")
	}
	for _, card := range d.Cards {
		line := cardLine(card)
		switch {
		case card.Info.IsLive:
			color.New(color.FgRed, color.Bold).Println(line)
		case card.Info.IsSoon:
			color.Yellow("%s", line)
		default:
			fmt.Println(line)
		}
	}
	return nil
}

func predict(ctx context.Context, c *hubClient) error {
	d, err := c.Dashboard(ctx)
	if err != nil {
		return err
	}

	open := openCards(d.Cards)
	if len(open) == 0 {
		color.Yellow("Nenhuma partida aberta para palpites.\n")
		return nil
	}

	items := make([]string, 0, len(open))
	for _, card := range open {
		items = append(items, cardLine(card))
	}
	sel := promptui.Select{Label: "Partida", Items: items, Size: 10}
	idx, _, err := sel.Run()
	if err != nil {
		return err
	}
	card := open[idx]

	home, err := askGoals(card.Match.HomeTeam.Name)
	if err != nil {
		return err
	}
	away, err := askGoals(card.Match.AwayTeam.Name)
	if err != nil {
		return err
	}

	if err := c.Submit(ctx, card.Match.ID.String(), home, away); err != nil {
		return err
	}
	color.Green("✓ Palpite %dx%d salvo para %s\n", home, away, teams(card.Match))
	return nil
}

func askGoals(team string) (int, error) {
	prompt := promptui.Prompt{
		Label: "Gols " + team,
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("informe um número inteiro não negativo")
			}
			return nil
		},
	}
	s, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

func showHistory(ctx context.Context, c *hubClient) error {
	h, err := c.History(ctx)
	if err != nil {
		return err
	}

	color.Cyan("\n=== MEUS PALPITES ===\n")
	printNotices(h.Notice)
	color.Green("precisão: %.1f%%\n", h.Accuracy)
	if len(h.Entries) == 0 {
		fmt.Println("Nenhum palpite ainda.")
	}
	for _, e := range h.Entries {
		line := historyLine(e)
		switch e.Label.Code {
		case "correct":
			color.Green("%s", line)
		case "incorrect":
			color.Red("%s", line)
		default:
			fmt.Println(line)
		}
	}
	return nil
}

func showStandings(ctx context.Context, c *hubClient) error {
	s, err := c.Standings(ctx)
	if err != nil {
		return err
	}

	color.Cyan("\n=== TABELA ===\n")
	printNotices(s.Notice)
	for _, row := range s.Rows {
		line := standingLine(row)
		switch service.Zone(row.Position) {
		case "g4":
			color.Green("%s", line)
		case "pre-libertadores":
			color.Cyan("%s", line)
		case "rebaixamento":
			color.Red("%s", line)
		default:
			fmt.Println(line)
		}
	}
	return nil
}

func showRanking(ctx context.Context, c *hubClient) error {
	sel := promptui.Select{Label: "Período", Items: backend.Periods}
	_, period, err := sel.Run()
	if err != nil {
		return err
	}

	r, err := c.Ranking(ctx, period)
	if err != nil {
		return err
	}

	color.Cyan("\n=== RANKING %s ===\n", period)
	printNotices(r.Notice)
	for i, row := range r.Rows {
		line := rankingLine(i, row)
		if row.IsYou {
			color.New(color.FgGreen, color.Bold).Println(line)
			continue
		}
		fmt.Println(line)
	}
	return nil
}
