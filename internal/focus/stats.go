package focus

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sadopc/hashira/internal/store"
)

const dateLayout = "2006-01-02"

// StatsRepository persists the daily stats record.
type StatsRepository interface {
	SaveStats(stats store.DailyStats) error
}

// Stats tracks today's completed focus sessions. A record for any other day
// is never reported: reading it replaces it with a zero count for today.
type Stats struct {
	current store.DailyStats
	repo    StatsRepository
	now     func() time.Time
	logger  zerolog.Logger
}

func NewStats(repo StatsRepository, loaded store.DailyStats, now func() time.Time, logger zerolog.Logger) *Stats {
	if now == nil {
		now = time.Now
	}
	return &Stats{
		current: loaded,
		repo:    repo,
		now:     now,
		logger:  logger.With().Str("component", "stats").Logger(),
	}
}

// Today formats the clock's current date. Days roll over at local midnight.
func (st *Stats) Today() string {
	return st.now().Format(dateLayout)
}

// Current returns today's record, rolling a stale one over first.
func (st *Stats) Current() store.DailyStats {
	st.rollover()
	return st.current
}

// Increment records one completed focus session for today.
func (st *Stats) Increment() store.DailyStats {
	st.rollover()
	st.current.Count++
	st.save()
	return st.current
}

func (st *Stats) rollover() {
	today := st.Today()
	if st.current.Date == today {
		return
	}
	st.logger.Debug().Str("from", st.current.Date).Str("to", today).Msg("daily stats rollover")
	st.current = store.DailyStats{Date: today}
	st.save()
}

func (st *Stats) save() {
	if err := st.repo.SaveStats(st.current); err != nil {
		st.logger.Error().Err(err).Msg("save stats")
	}
}
