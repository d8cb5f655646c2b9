package memory

import "shukuma/webapp/internal/repository"

// New returns a fresh, empty set of in-memory repositories.
func New() repository.Repositories {
	return repository.Repositories{
		Users:       NewUserRepository(),
		Exercises:   NewExerciseRepository(),
		Posts:       NewPostRepository(),
		Friendships: NewFriendshipRepository(),
		Challenges:  NewChallengeRepository(),
		Journal:     NewJournalRepository(),
		Tracks:      NewTrackRepository(),
	}
}
