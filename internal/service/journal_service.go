package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository"
)

const (
	DefaultJournalLimit = 20
	MaxJournalLimit     = 100
)

var (
	ErrJournalNotFound = errors.New("journal entry not found")
	ErrInvalidDate     = errors.New("invalid date format")
	ErrInvalidMood     = errors.New("invalid mood")
)

// JournalQuery is the raw listing query; zero values select the defaults.
type JournalQuery struct {
	Page      int
	Limit     int
	StartDate string
	EndDate   string
}

type JournalService interface {
	List(ctx context.Context, userID primitive.ObjectID, q JournalQuery) (*model.JournalPage, error)
	Get(ctx context.Context, userID, entryID primitive.ObjectID) (*model.JournalEntry, error)
	Create(ctx context.Context, userID primitive.ObjectID, req model.JournalRequest) (*model.JournalEntry, error)
	Update(ctx context.Context, userID, entryID primitive.ObjectID, req model.JournalRequest) (*model.JournalEntry, error)
	Delete(ctx context.Context, userID, entryID primitive.ObjectID) error
}

type journalService struct {
	journalRepo repository.JournalRepository
	now         func() time.Time
}

func NewJournalService(journalRepo repository.JournalRepository) JournalService {
	return &journalService{
		journalRepo: journalRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *journalService) List(ctx context.Context, userID primitive.ObjectID, q JournalQuery) (*model.JournalPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = DefaultJournalLimit
	}
	if limit > MaxJournalLimit {
		limit = MaxJournalLimit
	}

	// Pages past the addressable range are simply empty.
	skip := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		skip = (page - 1) * limit
	}
	filter := repository.JournalFilter{UserID: userID, Skip: skip, Limit: limit}
	if q.StartDate != "" {
		from, _, err := parseJournalDate(q.StartDate)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if q.EndDate != "" {
		to, dateOnly, err := parseJournalDate(q.EndDate)
		if err != nil {
			return nil, err
		}
		// A bare date includes the whole day.
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &to
	}

	entries, total, err := s.journalRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]model.JournalEntry, 0, len(entries))
	for i := range entries {
		out = append(out, toJournalEntry(&entries[i]))
	}
	return &model.JournalPage{
		Journals: out,
		Pagination: model.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}, nil
}

func (s *journalService) Get(ctx context.Context, userID, entryID primitive.ObjectID) (*model.JournalEntry, error) {
	entry, err := s.journalRepo.GetByID(ctx, entryID, userID)
	if err != nil {
		return nil, journalError(err)
	}
	out := toJournalEntry(entry)
	return &out, nil
}

func (s *journalService) Create(ctx context.Context, userID primitive.ObjectID, req model.JournalRequest) (*model.JournalEntry, error) {
	entry := &domain.JournalEntry{UserID: userID}
	if err := s.apply(entry, req); err != nil {
		return nil, err
	}
	if _, err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	out := toJournalEntry(entry)
	return &out, nil
}

func (s *journalService) Update(ctx context.Context, userID, entryID primitive.ObjectID, req model.JournalRequest) (*model.JournalEntry, error) {
	entry, err := s.journalRepo.GetByID(ctx, entryID, userID)
	if err != nil {
		return nil, journalError(err)
	}
	if err := s.apply(entry, req); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Update(ctx, entry); err != nil {
		return nil, journalError(err)
	}
	out := toJournalEntry(entry)
	return &out, nil
}

func (s *journalService) Delete(ctx context.Context, userID, entryID primitive.ObjectID) error {
	return journalError(s.journalRepo.Delete(ctx, entryID, userID))
}

// apply validates req and copies it onto entry. An empty date means today.
func (s *journalService) apply(entry *domain.JournalEntry, req model.JournalRequest) error {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return ErrContentRequired
	}
	if req.Mood != "" && !req.Mood.Valid() {
		return ErrInvalidMood
	}
	date := s.now().Truncate(24 * time.Hour)
	if req.Date != "" {
		d, _, err := parseJournalDate(req.Date)
		if err != nil {
			return err
		}
		date = d
	}

	entry.Date = date
	entry.Title = strings.TrimSpace(req.Title)
	entry.Content = content
	entry.Mood = req.Mood
	entry.Tags = req.Tags
	return nil
}

// parseJournalDate accepts YYYY-MM-DD or RFC 3339 and reports which one it saw.
func parseJournalDate(v string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, ErrInvalidDate
}

func journalError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrJournalNotFound
	}
	return err
}
