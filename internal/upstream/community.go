package upstream

import (
	"context"
	"net/http"
	"net/url"

	"shukuma/webapp/internal/model"
)

// Backend paths of the community endpoints.
const (
	pathFeed             = "/api/community/feed"
	pathFriends          = "/api/community/friends"
	pathChallenges       = "/api/community/challenges"
	pathActiveChallenge  = "/api/community/active-challenge"
	pathShare            = "/api/community/share"
	pathFriendRequest    = "/api/community/friend-request"
	pathFriendAccept     = "/api/community/friend-accept"
	pathChallenge        = "/api/community/challenge"
	pathChallengeRespond = "/api/community/challenge-respond"
	pathChallengeDone    = "/api/community/challenge-complete"
)

func (c *Client) Feed(ctx context.Context, token string) ([]model.Post, error) {
	var posts []model.Post
	err := c.do(ctx, http.MethodGet, pathFeed, token, nil, &posts)
	return posts, err
}

func (c *Client) Friends(ctx context.Context, token string) ([]model.FriendRequest, error) {
	var friends []model.FriendRequest
	err := c.do(ctx, http.MethodGet, pathFriends, token, nil, &friends)
	return friends, err
}

func (c *Client) Challenges(ctx context.Context, token string) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := c.do(ctx, http.MethodGet, pathChallenges, token, nil, &challenges)
	return challenges, err
}

// ActiveChallenge returns nil when the user has no active challenge.
func (c *Client) ActiveChallenge(ctx context.Context, token string) (*model.Challenge, error) {
	var active *model.Challenge
	err := c.do(ctx, http.MethodGet, pathActiveChallenge, token, nil, &active)
	return active, err
}

// Exercises lists the public catalog; no token is sent.
func (c *Client) Exercises(ctx context.Context) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := c.do(ctx, http.MethodGet, "/api/exercises", "", nil, &exercises)
	return exercises, err
}

func (c *Client) CreatePost(ctx context.Context, token string, req model.CreatePostRequest) error {
	return c.do(ctx, http.MethodPost, pathShare, token, req, nil)
}

func (c *Client) Like(ctx context.Context, token, postID string) error {
	return c.do(ctx, http.MethodPost, "/api/community/like/"+url.PathEscape(postID), token, nil, nil)
}

func (c *Client) Unlike(ctx context.Context, token, postID string) error {
	return c.do(ctx, http.MethodPost, "/api/community/unlike/"+url.PathEscape(postID), token, nil, nil)
}

func (c *Client) Comments(ctx context.Context, token, postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := c.do(ctx, http.MethodGet, "/api/community/comments/"+url.PathEscape(postID), token, nil, &comments)
	return comments, err
}

func (c *Client) AddComment(ctx context.Context, token, postID, content string) error {
	return c.do(ctx, http.MethodPost, "/api/community/comment/"+url.PathEscape(postID), token, model.CommentRequest{Content: content}, nil)
}

func (c *Client) DeleteComment(ctx context.Context, token, postID, commentID string) error {
	path := "/api/community/comment/" + url.PathEscape(postID) + "/" + url.PathEscape(commentID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *Client) SendFriendRequest(ctx context.Context, token, username string) error {
	return c.do(ctx, http.MethodPost, pathFriendRequest, token, model.FriendRequestBody{Username: username}, nil)
}

func (c *Client) RespondFriendRequest(ctx context.Context, token, requestID string, accept bool) error {
	return c.do(ctx, http.MethodPost, pathFriendAccept, token, model.FriendAcceptBody{RequestID: requestID, Accept: accept}, nil)
}

func (c *Client) SendChallenge(ctx context.Context, token string, req model.ChallengeRequest) (*model.Challenge, error) {
	var created model.Challenge
	if err := c.do(ctx, http.MethodPost, pathChallenge, token, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) RespondChallenge(ctx context.Context, token, challengeID string, accept bool) error {
	return c.do(ctx, http.MethodPost, pathChallengeRespond, token, model.ChallengeRespondBody{ChallengeID: challengeID, Accept: accept}, nil)
}

func (c *Client) CompleteChallenge(ctx context.Context, token, challengeID string) error {
	return c.do(ctx, http.MethodPost, pathChallengeDone, token, model.ChallengeCompleteBody{ChallengeID: challengeID}, nil)
}

func (c *Client) Profile(ctx context.Context, token, username string) (*model.Profile, error) {
	var profile model.Profile
	if err := c.do(ctx, http.MethodGet, "/api/community/profile/"+url.PathEscape(username), token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
