package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceCache  = "cache"
	SourceSearch = "search"
)

var (
	// AnalysesTotal counts answered positions by where the answer came from
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_analyses_total",
		Help: "Total analysed positions by source",
	}, []string{"source"})

	// SearchDuration tracks full game-tree searches
	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tictactoe_search_duration_seconds",
		Help:    "Game-tree search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	})

	CacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_cache_errors_total",
		Help: "Total position cache errors by operation",
	}, []string{"operation"})

	BotMovesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_bot_moves_total",
		Help: "Total moves played by the bot by side",
	}, []string{"side"})
)
