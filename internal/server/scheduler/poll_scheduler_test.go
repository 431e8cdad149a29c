package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"community-service/internal/ports/models"
	"community-service/internal/server/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakePollStore serves FindExpired and UpdateStatus; the CRUD methods are
// unused by the scheduler
type fakePollStore struct {
	expired      []models.Poll
	closed       []uint
	statusErrFor uint
}

func (f *fakePollStore) Create(context.Context, *models.Poll) error { return nil }

func (f *fakePollStore) FindByID(context.Context, uint) (*models.Poll, error) { return nil, nil }

func (f *fakePollStore) List(context.Context, repository.PollListFilter) ([]models.Poll, int64, error) {
	return nil, 0, nil
}

func (f *fakePollStore) Update(context.Context, *models.Poll, []models.PollOption) error { return nil }

func (f *fakePollStore) Delete(context.Context, uint) error { return nil }

func (f *fakePollStore) FindExpired(_ context.Context, _ time.Time) ([]models.Poll, error) {
	var out []models.Poll
	for _, poll := range f.expired {
		if !f.isClosed(poll.ID) {
			out = append(out, poll)
		}
	}
	return out, nil
}

func (f *fakePollStore) UpdateStatus(_ context.Context, id uint, status models.PollStatus) error {
	if id == f.statusErrFor {
		return errors.New("status update rejected")
	}
	if status == models.PollStatusClosed {
		f.closed = append(f.closed, id)
	}
	return nil
}

func (f *fakePollStore) isClosed(id uint) bool {
	for _, closed := range f.closed {
		if closed == id {
			return true
		}
	}
	return false
}

type noticeRecorder struct {
	notices []models.CreateNoticeRequest
	err     error
}

func (r *noticeRecorder) CreateNotice(_ context.Context, req models.CreateNoticeRequest) error {
	if r.err != nil {
		return r.err
	}
	r.notices = append(r.notices, req)
	return nil
}

func expiredPoll(id uint, title string, counts ...uint) models.Poll {
	poll := models.Poll{
		Model:     gorm.Model{ID: id},
		AuthorID:  1,
		Title:     title,
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-time.Hour),
		Status:    models.PollStatusInProgress,
	}
	for i, count := range counts {
		poll.Options = append(poll.Options, models.PollOption{
			Model:     gorm.Model{ID: id*10 + uint(i)},
			PollID:    id,
			Title:     string(rune('A' + i)),
			VoteCount: count,
		})
	}
	return poll
}

func newTestScheduler(polls *fakePollStore, notices NoticeCreator, redisClient *redis.Client) *PollScheduler {
	cfg := Config{Interval: time.Minute, ResultBoardID: 11, NoticeMaxLength: 1000}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPollScheduler(polls, notices, redisClient, nil, cfg, logger)
}

func TestRunExpirySweep(t *testing.T) {
	polls := &fakePollStore{expired: []models.Poll{expiredPoll(1, "Gym hours", 3, 2)}}
	notices := &noticeRecorder{}
	sched := newTestScheduler(polls, notices, nil)

	err := sched.RunExpirySweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, polls.closed)
	require.Len(t, notices.notices, 1)
	notice := notices.notices[0]
	assert.Equal(t, uint(11), notice.BoardID)
	assert.Equal(t, models.NoticeCategoryPollResult, notice.Category)
	assert.Equal(t, "[Poll Results] Gym hours", notice.Title)
	assert.Contains(t, notice.Content, "Total votes: 5")
	assert.Contains(t, notice.Content, "(60.0%)")
}

func TestRunExpirySweepIsolatesFailures(t *testing.T) {
	polls := &fakePollStore{
		expired: []models.Poll{
			expiredPoll(1, "First", 1),
			expiredPoll(2, "Second", 1),
		},
		statusErrFor: 1,
	}
	notices := &noticeRecorder{}
	sched := newTestScheduler(polls, notices, nil)

	err := sched.RunExpirySweep(context.Background())
	require.NoError(t, err)

	// poll 1 failed to close but poll 2 still went through
	assert.Equal(t, []uint{2}, polls.closed)
}

func TestRunExpirySweepNoticeFailureSkipsClose(t *testing.T) {
	polls := &fakePollStore{expired: []models.Poll{expiredPoll(1, "Gym hours", 1)}}
	notices := &noticeRecorder{err: errors.New("board unavailable")}
	sched := newTestScheduler(polls, notices, nil)

	err := sched.RunExpirySweep(context.Background())
	require.NoError(t, err)

	assert.Empty(t, polls.closed)
}

func TestResultNoticePublishedOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	poll := expiredPoll(1, "Gym hours", 2, 1)
	polls := &fakePollStore{expired: []models.Poll{poll}}
	notices := &noticeRecorder{}
	sched := newTestScheduler(polls, notices, client)

	// first sweep publishes; pretend the status flip was lost so the poll
	// shows up expired again on the next sweep
	require.NoError(t, sched.RunExpirySweep(context.Background()))
	polls.closed = nil
	require.NoError(t, sched.RunExpirySweep(context.Background()))

	assert.Len(t, notices.notices, 1)
	assert.Equal(t, []uint{1}, polls.closed)
	assert.True(t, mr.Exists("poll:result-notice:1"))
}

func TestResultNoticeGuardReleasedOnFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	polls := &fakePollStore{expired: []models.Poll{expiredPoll(1, "Gym hours", 1)}}
	notices := &noticeRecorder{err: errors.New("board unavailable")}
	sched := newTestScheduler(polls, notices, client)

	require.NoError(t, sched.RunExpirySweep(context.Background()))
	assert.False(t, mr.Exists("poll:result-notice:1"))

	// once the board recovers the notice goes out
	notices.err = nil
	require.NoError(t, sched.RunExpirySweep(context.Background()))
	assert.Len(t, notices.notices, 1)
	assert.Equal(t, []uint{1}, polls.closed)
}

func TestSchedulerRunStop(t *testing.T) {
	polls := &fakePollStore{expired: []models.Poll{expiredPoll(1, "Gym hours", 1)}}
	notices := &noticeRecorder{}
	sched := newTestScheduler(polls, notices, nil)
	sched.cfg.Interval = 10 * time.Millisecond

	go sched.Run()
	time.Sleep(30 * time.Millisecond)
	sched.Stop()

	// the immediate sweep closed the poll exactly once
	assert.Equal(t, []uint{1}, polls.closed)
	assert.Len(t, notices.notices, 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abc", truncate("abc", 0))
	assert.Equal(t, "héll", truncate("héllo", 4))
}
