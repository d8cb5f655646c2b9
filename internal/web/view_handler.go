package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/community"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/view"
)

// Library is the backend surface behind the journal and white-noise views.
// *upstream.Client implements it.
type Library interface {
	Tracks(ctx context.Context) ([]model.Track, error)
	Journal(ctx context.Context, token string, query url.Values) (*model.JournalPage, error)
}

// ViewHandler serves the reconciled, viewer-relative page state and the
// actions that change it. Every action answers with the refetched view.
type ViewHandler struct {
	backend community.Backend
	library Library
}

func NewViewHandler(backend community.Backend, library Library) *ViewHandler {
	return &ViewHandler{backend: backend, library: library}
}

// loadPage builds the community page for the request's session and loads it.
func (h *ViewHandler) loadPage(c *gin.Context) (*community.Page, bool) {
	sess, err := sessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, msgInternalError)
		return nil, false
	}
	page := community.NewPage(h.backend, sess, nil)
	if err := page.Load(c.Request.Context()); err != nil {
		abortWithPageError(c, "load community", err)
		return nil, false
	}
	return page, true
}

// act loads the page, runs one action on it and answers with the new view.
func (h *ViewHandler) act(c *gin.Context, op string, action func(ctx context.Context, page *community.Page) error) {
	page, ok := h.loadPage(c)
	if !ok {
		return
	}
	if err := action(c.Request.Context(), page); err != nil {
		abortWithPageError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, page.View())
}

// Community godoc
// @Summary Community page state
// @Description Loads feed, friends, challenges, active challenge and exercises concurrently and returns them reconciled for the viewer. Resources that failed to load carry their own error.
// @Tags View
// @Produce json
// @Security BearerAuth
// @Success 200 {object} view.CommunityView
// @Failure 401 {object} model.ErrorBody "Missing or rejected session"
// @Router /view/community [get]
func (h *ViewHandler) Community(c *gin.Context) {
	page, ok := h.loadPage(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, page.View())
}

func (h *ViewHandler) Share(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithPageError(c, "share", errInvalidBody)
		return
	}
	h.act(c, "share", func(ctx context.Context, page *community.Page) error {
		return page.CreatePost(ctx, req.Content)
	})
}

// Like godoc
// @Summary Like a post
// @Description Idempotent: liking an already liked post answers 200 with the current view.
// @Tags View
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post ID"
// @Success 200 {object} view.CommunityView
// @Router /view/community/like/{postId} [post]
func (h *ViewHandler) Like(c *gin.Context) {
	h.act(c, "like", func(ctx context.Context, page *community.Page) error {
		return page.Like(ctx, c.Param("postId"))
	})
}

func (h *ViewHandler) Unlike(c *gin.Context) {
	h.act(c, "unlike", func(ctx context.Context, page *community.Page) error {
		return page.Unlike(ctx, c.Param("postId"))
	})
}

func (h *ViewHandler) ToggleLike(c *gin.Context) {
	h.act(c, "toggle like", func(ctx context.Context, page *community.Page) error {
		return page.ToggleLike(ctx, c.Param("postId"))
	})
}

func (h *ViewHandler) Comments(c *gin.Context) {
	page, ok := h.loadPage(c)
	if !ok {
		return
	}
	comments, err := page.Comments(c.Request.Context(), c.Param("postId"))
	if err != nil {
		abortWithPageError(c, "comments", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *ViewHandler) AddComment(c *gin.Context) {
	var req model.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithPageError(c, "add comment", errInvalidBody)
		return
	}
	h.act(c, "add comment", func(ctx context.Context, page *community.Page) error {
		return page.AddComment(ctx, c.Param("postId"), req.Content)
	})
}

func (h *ViewHandler) DeleteComment(c *gin.Context) {
	h.act(c, "delete comment", func(ctx context.Context, page *community.Page) error {
		return page.DeleteComment(ctx, c.Param("postId"), c.Param("commentId"))
	})
}

func (h *ViewHandler) FriendRequest(c *gin.Context) {
	var req model.FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithPageError(c, "friend request", errInvalidBody)
		return
	}
	h.act(c, "friend request", func(ctx context.Context, page *community.Page) error {
		return page.SendFriendRequest(ctx, req.Username)
	})
}

func (h *ViewHandler) FriendAccept(c *gin.Context) {
	var req model.FriendAcceptBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithPageError(c, "friend accept", errInvalidBody)
		return
	}
	h.act(c, "friend accept", func(ctx context.Context, page *community.Page) error {
		return page.RespondFriendRequest(ctx, req.RequestID, req.Accept)
	})
}

// ChallengeTargets lists the accepted friends for the challenge dialog.
func (h *ViewHandler) ChallengeTargets(c *gin.Context) {
	page, ok := h.loadPage(c)
	if !ok {
		return
	}
	targets, err := page.ChallengeTargets(c.Request.Context())
	if err != nil {
		abortWithPageError(c, "challenge targets", err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

// SendChallenge godoc
// @Summary Challenge a friend
// @Description Refused with 400 while the viewer has an active challenge; the backend enforces the same rule for the recipient.
// @Tags View
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challenge body model.ChallengeRequest true "Challenge"
// @Success 200 {object} view.CommunityView
// @Router /view/community/challenge [post]
func (h *ViewHandler) SendChallenge(c *gin.Context) {
	var req model.ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithPageError(c, "send challenge", errInvalidBody)
		return
	}
	h.act(c, "send challenge", func(ctx context.Context, page *community.Page) error {
		return page.SendChallenge(ctx, community.ChallengeDraft{
			ToUserID:     req.ToUserID,
			ExerciseID:   req.ExerciseID,
			Message:      req.Message,
			DurationDays: req.DurationDays,
		})
	})
}

func (h *ViewHandler) RespondChallenge(c *gin.Context) {
	var req model.ChallengeRespondBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithPageError(c, "respond challenge", errInvalidBody)
		return
	}
	h.act(c, "respond challenge", func(ctx context.Context, page *community.Page) error {
		return page.RespondChallenge(ctx, req.ChallengeID, req.Accept)
	})
}

func (h *ViewHandler) CompleteChallenge(c *gin.Context) {
	var req model.ChallengeCompleteBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithPageError(c, "complete challenge", errInvalidBody)
		return
	}
	h.act(c, "complete challenge", func(ctx context.Context, page *community.Page) error {
		return page.CompleteChallenge(ctx, req.ChallengeID)
	})
}

// loadProfile builds and loads the profile page named in the path.
func (h *ViewHandler) loadProfile(c *gin.Context) (*community.ProfilePage, bool) {
	sess, err := sessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, msgInternalError)
		return nil, false
	}
	page := community.NewProfilePage(h.backend, sess, nil, c.Param("username"))
	if err := page.Load(c.Request.Context()); err != nil {
		abortWithPageError(c, "load profile", err)
		return nil, false
	}
	return page, true
}

func writeProfile(c *gin.Context, page *community.ProfilePage) {
	v := page.View()
	if v == nil {
		abortWithError(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, v)
}

// Profile godoc
// @Summary Profile page state
// @Description Returns a user's profile with achievement badges and the viewer's friend action.
// @Tags View
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} view.ProfileView
// @Failure 401 {object} model.ErrorBody "Missing or rejected session"
// @Failure 404 {object} model.ErrorBody "User not found"
// @Router /view/profile/{username} [get]
func (h *ViewHandler) Profile(c *gin.Context) {
	page, ok := h.loadProfile(c)
	if !ok {
		return
	}
	writeProfile(c, page)
}

func (h *ViewHandler) AddFriend(c *gin.Context) {
	page, ok := h.loadProfile(c)
	if !ok {
		return
	}
	if err := page.AddFriend(c.Request.Context()); err != nil {
		abortWithPageError(c, "add friend", err)
		return
	}
	writeProfile(c, page)
}

// RespondFriend accepts or rejects the request the profile's user sent the viewer.
func (h *ViewHandler) RespondFriend(c *gin.Context) {
	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithPageError(c, "respond friend", errInvalidBody)
		return
	}
	page, ok := h.loadProfile(c)
	if !ok {
		return
	}
	if err := page.RespondFriendRequest(c.Request.Context(), req.Accept); err != nil {
		abortWithPageError(c, "respond friend", err)
		return
	}
	writeProfile(c, page)
}

// Journal godoc
// @Summary Journal page state
// @Description One page of the viewer's journal with mood labels, plus the mood picker options.
// @Tags View
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} view.JournalView
// @Router /view/journal [get]
func (h *ViewHandler) Journal(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, msgInternalError)
		return
	}
	page, err := h.library.Journal(c.Request.Context(), sess.Token(), forwardQuery(journalQuery, c.Request.URL.Query()))
	if err != nil {
		abortWithPageError(c, "journal", err)
		return
	}
	c.JSON(http.StatusOK, view.BuildJournal(*page))
}

// WhiteNoise lists the tracks with their icons and formatted durations.
func (h *ViewHandler) WhiteNoise(c *gin.Context) {
	tracks, err := h.library.Tracks(c.Request.Context())
	if err != nil {
		abortWithPageError(c, "white noise", err)
		return
	}
	c.JSON(http.StatusOK, view.BuildTracks(tracks))
}
