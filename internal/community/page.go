package community

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/session"
	"shukuma/webapp/internal/upstream"
	"shukuma/webapp/internal/view"
)

const defaultChallengeDays = 7

// refresher is the type-erased side of a Resource.
type refresher interface {
	Name() string
	Refresh(ctx context.Context) error
}

// Page is the state behind one visit to the community page.
type Page struct {
	backend Backend
	guard   guard
	now     func() time.Time

	feed       *Resource[[]model.Post]
	friends    *Resource[[]model.FriendRequest]
	challenges *Resource[[]model.Challenge]
	active     *Resource[*model.Challenge]
	exercises  *Resource[[]model.Exercise]

	sendingChallenge atomic.Bool

	mu         sync.Mutex
	commenting map[string]bool
	expanded   map[string]bool
}

type Option func(*Page)

// WithClock replaces time.Now, for time-remaining computations in tests.
func WithClock(now func() time.Time) Option {
	return func(p *Page) { p.now = now }
}

// NewPage binds a page to a backend and an explicit session. onLogout is
// called once when the backend rejects the session.
func NewPage(backend Backend, sess *session.Session, onLogout func(), opts ...Option) *Page {
	p := &Page{
		backend:    backend,
		guard:      guard{session: sess, onLogout: onLogout},
		now:        time.Now,
		commenting: make(map[string]bool),
		expanded:   make(map[string]bool),
	}
	p.feed = NewResource(view.ResourceFeed, func(ctx context.Context) ([]model.Post, error) {
		return withToken(p.guard, func(token string) ([]model.Post, error) { return backend.Feed(ctx, token) })
	})
	p.friends = NewResource(view.ResourceFriends, func(ctx context.Context) ([]model.FriendRequest, error) {
		return withToken(p.guard, func(token string) ([]model.FriendRequest, error) { return backend.Friends(ctx, token) })
	})
	p.challenges = NewResource(view.ResourceChallenges, func(ctx context.Context) ([]model.Challenge, error) {
		return withToken(p.guard, func(token string) ([]model.Challenge, error) { return backend.Challenges(ctx, token) })
	})
	p.active = NewResource(view.ResourceActive, func(ctx context.Context) (*model.Challenge, error) {
		return withToken(p.guard, func(token string) (*model.Challenge, error) { return backend.ActiveChallenge(ctx, token) })
	})
	p.exercises = NewResource(view.ResourceExercises, backend.Exercises)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func withToken[T any](g guard, call func(token string) (T, error)) (T, error) {
	token, err := g.token()
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := call(token)
	return v, g.check(err)
}

// Load fetches all five resources concurrently. Failures other than a
// rejected session are logged and leave that resource's previous state; the
// other resources are unaffected. Load returns an error only when the session
// is missing or rejected.
func (p *Page) Load(ctx context.Context) error {
	if _, err := p.guard.require(); err != nil {
		return err
	}
	return p.refresh(ctx, p.feed, p.friends, p.challenges, p.active, p.exercises)
}

func (p *Page) refresh(ctx context.Context, resources ...refresher) error {
	var g errgroup.Group
	for _, r := range resources {
		r := r
		g.Go(func() error {
			err := r.Refresh(ctx)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, upstream.ErrUnauthorized), errors.Is(err, ErrNotSignedIn):
				return err
			}
			log.Printf("WARN: community: failed to load %s: %v", r.Name(), err)
			return nil
		})
	}
	return g.Wait()
}

// after runs a mutation and, when it succeeds, refetches the affected resources.
func (p *Page) after(ctx context.Context, call func(token string) error, affected ...refresher) error {
	token, err := p.guard.require()
	if err != nil {
		return err
	}
	if err := p.guard.check(call(token)); err != nil {
		return err
	}
	return p.refresh(ctx, affected...)
}

// CreatePost shares trimmed, non-empty content and refetches the feed.
func (p *Page) CreatePost(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	return p.after(ctx, func(token string) error {
		return p.backend.CreatePost(ctx, token, model.CreatePostRequest{Content: content, Type: "general"})
	}, p.feed)
}

// ToggleLike likes or unlikes a post depending on whether the viewer is in
// its likes list right now.
func (p *Page) ToggleLike(ctx context.Context, postID string) error {
	post, ok := p.post(postID)
	if !ok {
		return ErrPostNotFound
	}
	if view.IsLiked(post, p.guard.viewerID()) {
		return p.Unlike(ctx, postID)
	}
	return p.Like(ctx, postID)
}

// Like is idempotent: a repeated like is not an error.
func (p *Page) Like(ctx context.Context, postID string) error {
	return p.after(ctx, func(token string) error {
		err := p.backend.Like(ctx, token, postID)
		if isAlreadyLiked(err) {
			return nil
		}
		return err
	}, p.feed)
}

func (p *Page) Unlike(ctx context.Context, postID string) error {
	return p.after(ctx, func(token string) error {
		return p.backend.Unlike(ctx, token, postID)
	}, p.feed)
}

func (p *Page) post(postID string) (model.Post, bool) {
	posts, _ := p.feed.Get()
	for _, post := range posts {
		if post.ID == postID {
			return post, true
		}
	}
	return model.Post{}, false
}

// ToggleComments flips whether a post's comments are shown and returns the new state.
func (p *Page) ToggleComments(postID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.expanded[postID] {
		delete(p.expanded, postID)
		return false
	}
	p.expanded[postID] = true
	return true
}

func (p *Page) CommentsExpanded(postID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded[postID]
}

// Comments expands a post's comments and fetches them fresh.
func (p *Page) Comments(ctx context.Context, postID string) ([]view.CommentView, error) {
	token, err := p.guard.require()
	if err != nil {
		return nil, err
	}
	comments, err := p.backend.Comments(ctx, token, postID)
	if err := p.guard.check(err); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.expanded[postID] = true
	p.mu.Unlock()

	post, _ := p.post(postID)
	return view.BuildComments(post, comments, p.guard.viewerID(), p.now()), nil
}

// CommentSubmitting reports whether a comment on postID is in flight.
func (p *Page) CommentSubmitting(postID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commenting[postID]
}

// AddComment submits a comment. Only one submission per post may be in
// flight; comments on other posts are independent.
func (p *Page) AddComment(ctx context.Context, postID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}

	p.mu.Lock()
	if p.commenting[postID] {
		p.mu.Unlock()
		return ErrCommentInFlight
	}
	p.commenting[postID] = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.commenting, postID)
		p.mu.Unlock()
	}()

	return p.after(ctx, func(token string) error {
		return p.backend.AddComment(ctx, token, postID, content)
	}, p.feed)
}

func (p *Page) DeleteComment(ctx context.Context, postID, commentID string) error {
	return p.after(ctx, func(token string) error {
		return p.backend.DeleteComment(ctx, token, postID, commentID)
	}, p.feed)
}

func (p *Page) SendFriendRequest(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	return p.after(ctx, func(token string) error {
		return p.backend.SendFriendRequest(ctx, token, username)
	}, p.friends)
}

func (p *Page) RespondFriendRequest(ctx context.Context, requestID string, accept bool) error {
	return p.after(ctx, func(token string) error {
		return p.backend.RespondFriendRequest(ctx, token, requestID, accept)
	}, p.friends)
}

// ChallengeTargets refetches the friends list and returns the accepted
// friends, for populating the challenge dialog when it opens.
func (p *Page) ChallengeTargets(ctx context.Context) ([]model.User, error) {
	if err := p.refresh(ctx, p.friends); err != nil {
		return nil, err
	}
	friends, _ := p.friends.Get()
	return view.AcceptedFriends(friends, p.guard.viewerID()), nil
}

// ChallengeDraft is the challenge dialog's form.
type ChallengeDraft struct {
	ToUserID     string
	ExerciseID   string
	Message      string
	DurationDays int
}

// SendChallenge is blocked while the viewer has an active challenge or another
// send is in flight. The duration is forwarded as entered (default 7); the
// backend owns its bounds.
func (p *Page) SendChallenge(ctx context.Context, draft ChallengeDraft) error {
	if draft.ToUserID == "" {
		return ErrNoFriendSelected
	}
	if active, _ := p.active.Get(); !view.CanSendChallenge(active) {
		return ErrActiveChallenge
	}
	if !p.sendingChallenge.CompareAndSwap(false, true) {
		return ErrChallengeInFlight
	}
	defer p.sendingChallenge.Store(false)

	if draft.DurationDays <= 0 {
		draft.DurationDays = defaultChallengeDays
	}
	req := model.ChallengeRequest{
		ToUserID:     draft.ToUserID,
		ExerciseID:   draft.ExerciseID,
		Message:      strings.TrimSpace(draft.Message),
		DurationDays: draft.DurationDays,
	}
	return p.after(ctx, func(token string) error {
		_, err := p.backend.SendChallenge(ctx, token, req)
		return err
	}, p.challenges, p.active)
}

// SendingChallenge reports whether a send is in flight.
func (p *Page) SendingChallenge() bool {
	return p.sendingChallenge.Load()
}

// RespondChallenge accepts or declines; accepting is blocked while the viewer
// already has an active challenge.
func (p *Page) RespondChallenge(ctx context.Context, challengeID string, accept bool) error {
	if active, _ := p.active.Get(); accept && view.IsActiveChallenge(active) {
		return ErrActiveChallenge
	}
	return p.after(ctx, func(token string) error {
		return p.backend.RespondChallenge(ctx, token, challengeID, accept)
	}, p.challenges, p.active)
}

func (p *Page) CompleteChallenge(ctx context.Context, challengeID string) error {
	return p.after(ctx, func(token string) error {
		return p.backend.CompleteChallenge(ctx, token, challengeID)
	}, p.challenges, p.active)
}

// Snapshot copies the current state of every resource.
func (p *Page) Snapshot() view.Snapshot {
	s := view.Snapshot{
		ViewerID: p.guard.viewerID(),
		Status:   make(map[string]view.ResourceStatus, 5),
	}
	var st view.ResourceStatus
	s.Feed, st = p.feed.Get()
	s.Status[view.ResourceFeed] = st
	s.Friends, st = p.friends.Get()
	s.Status[view.ResourceFriends] = st
	s.Challenges, st = p.challenges.Get()
	s.Status[view.ResourceChallenges] = st
	s.Active, st = p.active.Get()
	s.Status[view.ResourceActive] = st
	s.Exercises, st = p.exercises.Get()
	s.Status[view.ResourceExercises] = st
	return s
}

// View derives the viewer-relative view model at the current time.
func (p *Page) View() view.CommunityView {
	return view.BuildCommunity(p.Snapshot(), p.now())
}
