package service

import "errors"

var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPredictionClosed = errors.New("predictions are closed for this match")
	ErrInvalidGoals     = errors.New("goals must be zero or more")
	ErrMatchNotFound    = errors.New("match not found")
	ErrInvalidPeriod    = errors.New("invalid ranking period")
)

// Notices shown when the hub API fails. They never block rendering.
const (
	NoticeMatchesStale     = "Não foi possível atualizar as partidas. Exibindo os últimos dados disponíveis."
	NoticeMatchesDown      = "Não foi possível carregar as partidas."
	NoticePredictionsStale = "Não foi possível atualizar seus palpites. Exibindo os últimos dados disponíveis."
	NoticePredictionsDown  = "Não foi possível carregar seus palpites."
	NoticeStandingsStale   = "Não foi possível atualizar a tabela. Exibindo os últimos dados disponíveis."
	NoticeStandingsDown    = "Não foi possível carregar a tabela."
	NoticeRankingDown      = "Não foi possível carregar o ranking."
)
