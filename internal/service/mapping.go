package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository"
)

// Functions that turn stored entities into the populated wire shapes.

func toUser(u domain.User) model.User {
	return model.User{ID: u.ID.Hex(), Username: u.Username}
}

// ToAccount includes the email; only the account owner sees it.
func ToAccount(u *domain.User) model.User {
	return model.User{ID: u.ID.Hex(), Username: u.Username, Email: u.Email}
}

func ToExercise(e *domain.Exercise) model.Exercise {
	return model.Exercise{
		ID:            e.ID.Hex(),
		Name:          e.Name,
		Description:   e.Description,
		Type:          e.Type,
		Difficulty:    e.Difficulty,
		Duration:      e.Duration,
		Reps:          e.Reps,
		Demonstration: e.Demonstration,
	}
}

func toJournalEntry(e *domain.JournalEntry) model.JournalEntry {
	return model.JournalEntry{
		ID:        e.ID.Hex(),
		UserID:    e.UserID.Hex(),
		Date:      e.Date,
		Title:     e.Title,
		Content:   e.Content,
		Mood:      e.Mood,
		Tags:      e.Tags,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// userDirectory resolves ids to public users; unknown ids render with an empty username.
type userDirectory map[primitive.ObjectID]model.User

func loadUsers(ctx context.Context, repo repository.UserRepository, ids []primitive.ObjectID) (userDirectory, error) {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	users, err := repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	dir := make(userDirectory, len(users))
	for _, u := range users {
		dir[u.ID] = toUser(u)
	}
	return dir, nil
}

func (d userDirectory) get(id primitive.ObjectID) model.User {
	if u, ok := d[id]; ok {
		return u
	}
	return model.User{ID: id.Hex()}
}

func (d userDirectory) post(p *domain.Post) model.Post {
	out := model.Post{
		ID:        p.ID.Hex(),
		Author:    d.get(p.UserID),
		Content:   p.Content,
		Type:      p.Type,
		Likes:     make([]string, 0, len(p.Likes)),
		Comments:  make([]model.Comment, 0, len(p.Comments)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, id := range p.Likes {
		out.Likes = append(out.Likes, id.Hex())
	}
	for _, c := range p.Comments {
		out.Comments = append(out.Comments, d.comment(c))
	}
	return out
}

func (d userDirectory) comment(c domain.Comment) model.Comment {
	return model.Comment{
		ID:        c.ID.Hex(),
		Author:    d.get(c.UserID),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (d userDirectory) friendRequest(f *domain.Friendship) model.FriendRequest {
	return model.FriendRequest{
		ID:        f.ID.Hex(),
		Requester: d.get(f.RequesterID),
		Recipient: d.get(f.RecipientID),
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}
}

// challenge populates the exercise when it still exists; otherwise the
// snapshot is all the client gets.
func (d userDirectory) challenge(c *domain.Challenge, exercises map[primitive.ObjectID]*domain.Exercise) model.Challenge {
	out := model.Challenge{
		ID:               c.ID.Hex(),
		FromUser:         d.get(c.FromUserID),
		ToUser:           d.get(c.ToUserID),
		ExerciseSnapshot: c.ExerciseSnapshot,
		Message:          c.Message,
		Status:           c.Status,
		IsComplete:       c.IsComplete,
		DurationDays:     c.DurationDays,
		AcceptedAt:       c.AcceptedAt,
		CompletedAt:      c.CompletedAt,
		Deadline:         c.Deadline,
		CreatedAt:        c.CreatedAt,
	}
	if c.ExerciseID != nil {
		if ex, ok := exercises[*c.ExerciseID]; ok && ex != nil {
			populated := ToExercise(ex)
			out.ExerciseID = &model.ExerciseRef{ID: populated.ID, Exercise: &populated}
		}
	}
	return out
}

func postAuthors(posts []domain.Post) []primitive.ObjectID {
	var ids []primitive.ObjectID
	for _, p := range posts {
		ids = append(ids, p.UserID)
		for _, c := range p.Comments {
			ids = append(ids, c.UserID)
		}
	}
	return ids
}
