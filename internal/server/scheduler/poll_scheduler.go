package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"community-service/internal/ports/models"
	"community-service/internal/server/repository"
	"community-service/internal/server/service"

	"github.com/redis/go-redis/v9"
)

// NoticeCreator is the notice collaborator the sweep publishes results through
type NoticeCreator interface {
	CreateNotice(ctx context.Context, req models.CreateNoticeRequest) error
}

// Config carries the scheduler's operational knobs; the result board id is
// explicit configuration rather than a constant baked into the sweep
type Config struct {
	Interval        time.Duration
	ResultBoardID   uint
	NoticeMaxLength int
}

// PollScheduler closes polls whose window has ended, tallies their results and
// publishes a result notice. It runs one sweep immediately and then on every
// tick until stopped.
type PollScheduler struct {
	polls   repository.PollStore
	notices NoticeCreator
	redis   *redis.Client
	events  service.EventPublisher
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
	stop    chan struct{}
	done    chan struct{}
}

func NewPollScheduler(
	polls repository.PollStore,
	notices NoticeCreator,
	redisClient *redis.Client,
	events service.EventPublisher,
	cfg Config,
	logger *slog.Logger,
) *PollScheduler {
	return &PollScheduler{
		polls:   polls,
		notices: notices,
		redis:   redisClient,
		events:  events,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run blocks until Stop is called; callers start it in its own goroutine
func (s *PollScheduler) Run() {
	defer close(s.done)

	s.sweep()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

// Stop halts the tick loop and waits for an in-flight sweep to finish
func (s *PollScheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *PollScheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.RunExpirySweep(ctx); err != nil {
		s.logger.Error("expiry sweep failed", "error", err)
	}
}

// RunExpirySweep executes one find-close-tally-notify cycle. A single poll's
// failure is logged and does not abort the rest of the run.
func (s *PollScheduler) RunExpirySweep(ctx context.Context) error {
	expired, err := s.polls.FindExpired(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to query expired polls: %w", err)
	}

	for i := range expired {
		if err := s.closePoll(ctx, &expired[i]); err != nil {
			s.logger.Error("failed to close expired poll",
				"poll_id", expired[i].ID, "error", err)
		}
	}
	return nil
}

// closePoll publishes the result notice and then flips the persisted status.
// The notice is guarded by a redis idempotency key, so a crash between the
// two steps makes the next sweep retry the status flip without duplicating
// the notice.
func (s *PollScheduler) closePoll(ctx context.Context, poll *models.Poll) error {
	tally := Tally(poll.Options)

	if err := s.publishResultNotice(ctx, poll, tally); err != nil {
		return err
	}

	if err := s.polls.UpdateStatus(ctx, poll.ID, models.PollStatusClosed); err != nil {
		return fmt.Errorf("failed to mark poll closed: %w", err)
	}

	if s.events != nil {
		var winnerID uint
		if tally.Winner != nil {
			winnerID = tally.Winner.ID
		}
		if err := s.events.PublishPollClosed(ctx, poll.ID, winnerID, tally.Total); err != nil {
			s.logger.Error("poll closed event publication failed",
				"poll_id", poll.ID, "error", err)
		}
	}

	s.logger.Info("poll closed", "poll_id", poll.ID,
		"total_votes", tally.Total)
	return nil
}

func (s *PollScheduler) publishResultNotice(ctx context.Context, poll *models.Poll, tally TallyResult) error {
	if s.redis != nil {
		key := fmt.Sprintf("poll:result-notice:%d", poll.ID)
		acquired, err := s.redis.SetNX(ctx, key, 1, 0).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire notice guard: %w", err)
		}
		if !acquired {
			// an earlier run already published this poll's notice
			return nil
		}
		if err := s.notices.CreateNotice(ctx, s.resultNotice(poll, tally)); err != nil {
			s.redis.Del(ctx, key)
			return fmt.Errorf("failed to publish result notice: %w", err)
		}
		return nil
	}

	if err := s.notices.CreateNotice(ctx, s.resultNotice(poll, tally)); err != nil {
		return fmt.Errorf("failed to publish result notice: %w", err)
	}
	return nil
}

func (s *PollScheduler) resultNotice(poll *models.Poll, tally TallyResult) models.CreateNoticeRequest {
	return models.CreateNoticeRequest{
		BoardID:  s.cfg.ResultBoardID,
		AuthorID: poll.AuthorID,
		Category: models.NoticeCategoryPollResult,
		Title:    fmt.Sprintf("[Poll Results] %s", poll.Title),
		Content:  truncate(FormatResult(poll, tally), s.cfg.NoticeMaxLength),
	}
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
