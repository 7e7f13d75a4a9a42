package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ConnectedUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gomoku_connected_users",
			Help: "Registered users currently connected",
		},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gomoku_active_sessions",
			Help: "Game sessions currently held in the session arena",
		},
	)
	WaitingSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gomoku_waiting_sessions",
			Help: "Open sessions listed in the lobby",
		},
	)
	MovesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gomoku_moves_total",
			Help: "Total accepted moves",
		},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gomoku_games_finished_total",
			Help: "Total finished games by end reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(ConnectedUsers)
	prometheus.MustRegister(ActiveSessions)
	prometheus.MustRegister(WaitingSessions)
	prometheus.MustRegister(MovesTotal)
	prometheus.MustRegister(GamesFinished)
}
