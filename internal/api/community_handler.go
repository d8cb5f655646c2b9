package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/service"
)

// CommunityHandler serves posts, friendships, challenges and profiles.
// Every route requires AuthMiddleware.
type CommunityHandler struct {
	communityService service.CommunityService
}

func NewCommunityHandler(communityService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

func message(c *gin.Context, text string) {
	c.JSON(http.StatusOK, model.MessageResponse{Message: text})
}

// --- Posts ---

// Feed godoc
// @Summary The caller's and their friends' newest posts
// @Tags Community
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Post
// @Router /community/feed [get]
func (h *CommunityHandler) Feed(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	posts, err := h.communityService.Feed(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, "feed", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Share godoc
// @Summary Create a post
// @Tags Community
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param post body model.CreatePostRequest true "Post"
// @Success 201 {object} model.Post
// @Router /community/share [post]
func (h *CommunityHandler) Share(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Content is required")
		return
	}
	post, err := h.communityService.CreatePost(c.Request.Context(), userID, req.Content, req.Type)
	if err != nil {
		abortWithServiceError(c, "share", err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Like godoc
// @Summary Like a post
// @Tags Community
// @Security BearerAuth
// @Param postId path string true "Post ID"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.ErrorBody "Already liked this post"
// @Router /community/like/{postId} [post]
func (h *CommunityHandler) Like(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	postID, ok := paramObjectID(c, "postId")
	if !ok {
		return
	}
	if err := h.communityService.Like(c.Request.Context(), userID, postID); err != nil {
		abortWithServiceError(c, "like", err)
		return
	}
	message(c, "Post liked")
}

// Unlike godoc
// @Summary Remove the caller's like
// @Tags Community
// @Security BearerAuth
// @Param postId path string true "Post ID"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.ErrorBody "Post not liked yet"
// @Router /community/unlike/{postId} [post]
func (h *CommunityHandler) Unlike(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	postID, ok := paramObjectID(c, "postId")
	if !ok {
		return
	}
	if err := h.communityService.Unlike(c.Request.Context(), userID, postID); err != nil {
		abortWithServiceError(c, "unlike", err)
		return
	}
	message(c, "Post unliked")
}

func (h *CommunityHandler) Comments(c *gin.Context) {
	postID, ok := paramObjectID(c, "postId")
	if !ok {
		return
	}
	comments, err := h.communityService.Comments(c.Request.Context(), postID)
	if err != nil {
		abortWithServiceError(c, "comments", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommunityHandler) AddComment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	postID, ok := paramObjectID(c, "postId")
	if !ok {
		return
	}
	var req model.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Content is required")
		return
	}
	comment, err := h.communityService.AddComment(c.Request.Context(), userID, postID, req.Content)
	if err != nil {
		abortWithServiceError(c, "add comment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment is allowed to the comment's author and the post's author.
func (h *CommunityHandler) DeleteComment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	postID, ok := paramObjectID(c, "postId")
	if !ok {
		return
	}
	commentID, ok := paramObjectID(c, "commentId")
	if !ok {
		return
	}
	if err := h.communityService.DeleteComment(c.Request.Context(), userID, postID, commentID); err != nil {
		abortWithServiceError(c, "delete comment", err)
		return
	}
	message(c, "Comment deleted")
}

// --- Friends ---

func (h *CommunityHandler) Friends(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	friends, err := h.communityService.Friends(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, "friends", err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *CommunityHandler) FriendRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req model.FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Username is required")
		return
	}
	created, err := h.communityService.SendFriendRequest(c.Request.Context(), userID, req.Username)
	if err != nil {
		abortWithServiceError(c, "friend request", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CommunityHandler) FriendAccept(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req model.FriendAcceptBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Request ID is required")
		return
	}
	requestID, ok := bodyObjectID(c, req.RequestID)
	if !ok {
		return
	}
	if err := h.communityService.RespondFriendRequest(c.Request.Context(), userID, requestID, req.Accept); err != nil {
		abortWithServiceError(c, "friend accept", err)
		return
	}
	if req.Accept {
		message(c, "Friend request accepted")
		return
	}
	message(c, "Friend request rejected")
}

// --- Challenges ---

func (h *CommunityHandler) Challenges(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	challenges, err := h.communityService.Challenges(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, "challenges", err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// ActiveChallenge godoc
// @Summary The caller's active challenge, or null
// @Tags Community
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Challenge
// @Router /community/active-challenge [get]
func (h *CommunityHandler) ActiveChallenge(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	active, err := h.communityService.ActiveChallenge(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, "active challenge", err)
		return
	}
	c.JSON(http.StatusOK, active)
}

// SendChallenge godoc
// @Summary Challenge a friend
// @Tags Community
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param challenge body model.ChallengeRequest true "Challenge"
// @Success 201 {object} model.Challenge
// @Failure 400 {object} model.ErrorBody "User already has an active challenge"
// @Router /community/challenge [post]
func (h *CommunityHandler) SendChallenge(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req model.ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Recipient is required")
		return
	}
	toUserID, ok := bodyObjectID(c, req.ToUserID)
	if !ok {
		return
	}
	in := service.ChallengeInput{
		ToUserID:     toUserID,
		Message:      req.Message,
		DurationDays: req.DurationDays,
	}
	if req.ExerciseID != "" {
		exerciseID, ok := bodyObjectID(c, req.ExerciseID)
		if !ok {
			return
		}
		in.ExerciseID = &exerciseID
	}

	created, err := h.communityService.SendChallenge(c.Request.Context(), userID, in)
	if err != nil {
		abortWithServiceError(c, "send challenge", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CommunityHandler) RespondChallenge(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req model.ChallengeRespondBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Challenge ID is required")
		return
	}
	challengeID, ok := bodyObjectID(c, req.ChallengeID)
	if !ok {
		return
	}
	updated, err := h.communityService.RespondChallenge(c.Request.Context(), userID, challengeID, req.Accept)
	if err != nil {
		abortWithServiceError(c, "respond challenge", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CommunityHandler) CompleteChallenge(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req model.ChallengeCompleteBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Challenge ID is required")
		return
	}
	challengeID, ok := bodyObjectID(c, req.ChallengeID)
	if !ok {
		return
	}
	updated, err := h.communityService.CompleteChallenge(c.Request.Context(), userID, challengeID)
	if err != nil {
		abortWithServiceError(c, "complete challenge", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// --- Profile ---

// Profile godoc
// @Summary A user's public profile and the caller's relation to them
// @Tags Community
// @Security BearerAuth
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.Profile
// @Failure 404 {object} model.ErrorBody
// @Router /community/profile/{username} [get]
func (h *CommunityHandler) Profile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	profile, err := h.communityService.Profile(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		abortWithServiceError(c, "profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

