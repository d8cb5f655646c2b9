package community

import (
	"context"
	"sync/atomic"

	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/session"
	"shukuma/webapp/internal/view"
)

// ProfilePage is the state behind one visit to a user's profile.
type ProfilePage struct {
	backend  Backend
	guard    guard
	username string

	profile *Resource[*model.Profile]
	friends *Resource[[]model.FriendRequest]

	requestPending atomic.Bool
}

func NewProfilePage(backend Backend, sess *session.Session, onLogout func(), username string) *ProfilePage {
	p := &ProfilePage{
		backend:  backend,
		guard:    guard{session: sess, onLogout: onLogout},
		username: username,
	}
	p.profile = NewResource("profile", func(ctx context.Context) (*model.Profile, error) {
		return withToken(p.guard, func(token string) (*model.Profile, error) { return backend.Profile(ctx, token, username) })
	})
	p.friends = NewResource(view.ResourceFriends, func(ctx context.Context) ([]model.FriendRequest, error) {
		return withToken(p.guard, func(token string) ([]model.FriendRequest, error) { return backend.Friends(ctx, token) })
	})
	return p
}

// Load fetches the profile. Unlike the community page, a failure here is
// returned since the page has nothing else to show.
func (p *ProfilePage) Load(ctx context.Context) error {
	if _, err := p.guard.require(); err != nil {
		return err
	}
	return p.profile.Refresh(ctx)
}

// View returns nil until the profile has loaded.
func (p *ProfilePage) View() *view.ProfileView {
	profile, _ := p.profile.Get()
	if profile == nil {
		return nil
	}
	v := view.BuildProfile(*profile, p.guard.viewerID())
	return &v
}

func (p *ProfilePage) RequestPending() bool {
	return p.requestPending.Load()
}

// AddFriend sends a friend request to the profile's user and reloads the profile.
func (p *ProfilePage) AddFriend(ctx context.Context) error {
	return p.mutate(ctx, func(token string) error {
		return p.backend.SendFriendRequest(ctx, token, p.username)
	})
}

// RespondFriendRequest answers the pending request the profile's user sent to
// the viewer. The profile only knows the relationship, so the request id is
// resolved from a fresh friends list.
func (p *ProfilePage) RespondFriendRequest(ctx context.Context, accept bool) error {
	return p.mutate(ctx, func(token string) error {
		if err := p.friends.Refresh(ctx); err != nil {
			return err
		}
		friends, _ := p.friends.Get()
		fr, ok := view.PendingRequestFrom(friends, p.guard.viewerID(), p.username)
		if !ok {
			return ErrRequestNotFound
		}
		return p.backend.RespondFriendRequest(ctx, token, fr.ID, accept)
	})
}

func (p *ProfilePage) mutate(ctx context.Context, call func(token string) error) error {
	if !p.requestPending.CompareAndSwap(false, true) {
		return ErrRequestInFlight
	}
	defer p.requestPending.Store(false)

	token, err := p.guard.require()
	if err != nil {
		return err
	}
	if err := p.guard.check(call(token)); err != nil {
		return err
	}
	return p.profile.Refresh(ctx)
}
