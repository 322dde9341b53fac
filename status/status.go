package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"PixBot/ledger"
	"PixBot/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// LeaderboardCacheKey is shared with the /ranking command.
const (
	LeaderboardCacheKey = "leaderboard:wealth"
	LeaderboardTTL      = time.Minute
	LeaderboardSize     = 10
)

type Entry struct {
	UserID string `json:"user_id"`
	Coins  int64  `json:"coins"`
	Bank   int64  `json:"bank"`
	Total  int64  `json:"total"`
}

// Leaderboard returns the wealth ranking, served from Redis when available.
func Leaderboard(ctx context.Context, l *ledger.Ledger, rdb *redis.Client) ([]Entry, error) {
	return utils.Cached(ctx, rdb, LeaderboardCacheKey, LeaderboardTTL, func() ([]Entry, error) {
		accs, err := l.TopWealth(ctx, LeaderboardSize)
		if err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(accs))
		for _, a := range accs {
			entries = append(entries, Entry{UserID: a.UserID, Coins: a.Coins, Bank: a.Bank, Total: a.Total()})
		}
		return entries, nil
	})
}

// Server exposes health and economy stats over HTTP.
type Server struct {
	ledger    *ledger.Ledger
	redis     *redis.Client
	startedAt time.Time
	http      *http.Server
}

func New(addr string, l *ledger.Ledger, rdb *redis.Client, startedAt time.Time) *Server {
	s := &Server{ledger: l, redis: rdb, startedAt: startedAt}
	s.http = &http.Server{Addr: addr, Handler: s.Router()}
	return s
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)
	r.GET("/stats", s.stats)
	r.GET("/leaderboard", s.leaderboard)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) stats(c *gin.Context) {
	st, err := s.ledger.Stats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to load stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accounts":       st.Accounts,
		"total_coins":    st.TotalCoins,
		"total_bank":     st.TotalBank,
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) leaderboard(c *gin.Context) {
	entries, err := Leaderboard(c.Request.Context(), s.ledger, s.redis)
	if err != nil {
		log.WithError(err).Error("Failed to load leaderboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		log.Printf("Status server listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Status server stopped")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
