package service

import (
	"context"
	"sync"
	"time"

	"community-service/internal/ports/models"
	"community-service/internal/server/repository"
)

// memStore is an in-memory stand-in for the gorm repositories, keeping option
// counts and vote rows consistent the way the real transactions do
type memStore struct {
	mu sync.Mutex

	apartments map[uint]models.Apartment
	boards     map[uint]models.Board
	users      map[uint]models.User
	polls      map[uint]models.Poll
	votes      map[uint]models.Vote
	notices    []models.Notice

	nextPollID   uint
	nextOptionID uint
	nextVoteID   uint

	lastFilter repository.PollListFilter
	createErr  error
	updateErr  error
}

func newMemStore() *memStore {
	return &memStore{
		apartments: make(map[uint]models.Apartment),
		boards:     make(map[uint]models.Board),
		users:      make(map[uint]models.User),
		polls:      make(map[uint]models.Poll),
		votes:      make(map[uint]models.Vote),
	}
}

func (m *memStore) seedApartment(id uint, startNo, endNo int) {
	m.apartments[id] = models.Apartment{Name: "apt", StartBuildingNo: startNo, EndBuildingNo: endNo}
	apartment := m.apartments[id]
	apartment.ID = id
	m.apartments[id] = apartment
}

func (m *memStore) seedBoard(id, apartmentID uint, boardType models.BoardType) {
	board := models.Board{ApartmentID: apartmentID, Type: boardType, Name: string(boardType)}
	board.ID = id
	m.boards[id] = board
}

func (m *memStore) seedUser(id uint, apartmentID *uint, role string, building *string) {
	user := models.User{ApartmentID: apartmentID, Name: "user", Role: role, ResidentBuilding: building}
	user.ID = id
	m.users[id] = user
}

func (m *memStore) seedPoll(boardID uint, permission int, start, end time.Time, optionTitles ...string) *models.Poll {
	m.nextPollID++
	poll := models.Poll{
		BoardID:            boardID,
		AuthorID:           1,
		Title:              "poll",
		BuildingPermission: permission,
		StartDate:          start,
		EndDate:            end,
		Status:             models.PollStatusPending,
	}
	poll.ID = m.nextPollID
	for _, title := range optionTitles {
		m.nextOptionID++
		option := models.PollOption{PollID: poll.ID, Title: title}
		option.ID = m.nextOptionID
		poll.Options = append(poll.Options, option)
	}
	m.polls[poll.ID] = poll
	return &poll
}

/* PollStore */

func (m *memStore) Create(_ context.Context, poll *models.Poll) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextPollID++
	poll.ID = m.nextPollID
	for i := range poll.Options {
		m.nextOptionID++
		poll.Options[i].ID = m.nextOptionID
		poll.Options[i].PollID = poll.ID
	}
	m.polls[poll.ID] = *poll
	return nil
}

func (m *memStore) FindByID(_ context.Context, id uint) (*models.Poll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	poll, ok := m.polls[id]
	if !ok {
		return nil, nil
	}
	copied := poll
	copied.Options = append([]models.PollOption(nil), poll.Options...)
	return &copied, nil
}

func (m *memStore) List(_ context.Context, filter repository.PollListFilter) ([]models.Poll, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	var matched []models.Poll
	for _, poll := range m.polls {
		if poll.BoardID != filter.BoardID {
			continue
		}
		if filter.RestrictBuilding &&
			poll.BuildingPermission != 0 &&
			poll.BuildingPermission%100 != filter.BuildingNo {
			continue
		}
		matched = append(matched, poll)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (m *memStore) Update(_ context.Context, poll *models.Poll, options []models.PollOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	stored := m.polls[poll.ID]
	updated := *poll
	if options == nil {
		updated.Options = stored.Options
	} else {
		updated.Options = nil
		for i := range options {
			m.nextOptionID++
			options[i].ID = m.nextOptionID
			options[i].PollID = poll.ID
			options[i].VoteCount = 0
			updated.Options = append(updated.Options, options[i])
		}
	}
	m.polls[poll.ID] = updated
	return nil
}

func (m *memStore) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.polls, id)
	return nil
}

func (m *memStore) FindExpired(_ context.Context, now time.Time) ([]models.Poll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []models.Poll
	for _, poll := range m.polls {
		if !poll.EndDate.After(now) && poll.Status != models.PollStatusClosed {
			expired = append(expired, poll)
		}
	}
	return expired, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id uint, status models.PollStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	poll := m.polls[id]
	poll.Status = status
	m.polls[id] = poll
	return nil
}

/* OptionStore */

func (m *memStore) findOption(id uint) (poll models.Poll, idx int, ok bool) {
	for _, p := range m.polls {
		for i := range p.Options {
			if p.Options[i].ID == id {
				return p, i, true
			}
		}
	}
	return models.Poll{}, 0, false
}

func (m *memStore) FindOptionByID(_ context.Context, id uint) (*models.PollOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	poll, idx, ok := m.findOption(id)
	if !ok {
		return nil, nil
	}
	option := poll.Options[idx]
	return &option, nil
}

func (m *memStore) FindByPoll(_ context.Context, pollID uint) ([]models.PollOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	poll, ok := m.polls[pollID]
	if !ok {
		return nil, nil
	}
	return append([]models.PollOption(nil), poll.Options...), nil
}

/* VoteStore */

func (m *memStore) FindByUserAndPoll(_ context.Context, userID, pollID uint) (*models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, vote := range m.votes {
		if vote.UserID == userID && vote.PollID == pollID {
			copied := vote
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByUserPollOption(_ context.Context, userID, pollID, optionID uint) (*models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, vote := range m.votes {
		if vote.UserID == userID && vote.PollID == pollID && vote.OptionID == optionID {
			copied := vote
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) Cast(_ context.Context, vote *models.Vote) (*models.PollOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.votes {
		if existing.UserID == vote.UserID && existing.PollID == vote.PollID {
			return nil, repository.ErrDuplicateVote
		}
	}
	m.nextVoteID++
	vote.ID = m.nextVoteID
	m.votes[vote.ID] = *vote

	poll, idx, ok := m.findOption(vote.OptionID)
	if !ok {
		return nil, nil
	}
	poll.Options[idx].VoteCount++
	m.polls[poll.ID] = poll
	option := poll.Options[idx]
	return &option, nil
}

func (m *memStore) Retract(_ context.Context, vote *models.Vote) (*models.PollOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.votes, vote.ID)
	poll, idx, ok := m.findOption(vote.OptionID)
	if !ok {
		return nil, nil
	}
	if poll.Options[idx].VoteCount > 0 {
		poll.Options[idx].VoteCount--
	}
	m.polls[poll.ID] = poll
	option := poll.Options[idx]
	return &option, nil
}

/* UserStore */

func (m *memStore) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := user
	return &copied, nil
}

/* ApartmentStore */

func (m *memStore) FindApartmentByID(_ context.Context, id uint) (*models.Apartment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	apartment, ok := m.apartments[id]
	if !ok {
		return nil, nil
	}
	copied := apartment
	return &copied, nil
}

func (m *memStore) FindBoardByID(_ context.Context, boardID uint) (*models.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	board, ok := m.boards[boardID]
	if !ok {
		return nil, nil
	}
	copied := board
	return &copied, nil
}

func (m *memStore) FindBoard(_ context.Context, apartmentID uint, boardType models.BoardType) (*models.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, board := range m.boards {
		if board.ApartmentID == apartmentID && board.Type == boardType {
			copied := board
			return &copied, nil
		}
	}
	return nil, nil
}

/* NoticeStore */

func (m *memStore) CreateNotice(_ context.Context, notice *models.Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, *notice)
	return nil
}

// Interface views: FindByID and Create collide across the store interfaces,
// so each entity gets a thin wrapper over the shared state.

type memOptions struct{ *memStore }

func (m memOptions) FindByID(ctx context.Context, id uint) (*models.PollOption, error) {
	return m.FindOptionByID(ctx, id)
}

type memUsers struct{ *memStore }

func (m memUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.FindUserByID(ctx, id)
}

type memApartments struct{ *memStore }

func (m memApartments) FindByID(ctx context.Context, id uint) (*models.Apartment, error) {
	return m.FindApartmentByID(ctx, id)
}

type memNotices struct{ *memStore }

func (m memNotices) Create(ctx context.Context, notice *models.Notice) error {
	return m.CreateNotice(ctx, notice)
}
