package view

import (
	"time"

	"shukuma/webapp/internal/model"
)

type CommentView struct {
	Comment model.Comment `json:"comment"`
	IsMine  bool          `json:"isMine"`
	// CanDelete is display logic only; the backend decides.
	CanDelete bool   `json:"canDelete"`
	Date      string `json:"date"`
}

type PostView struct {
	Post      model.Post    `json:"post"`
	IsMine    bool          `json:"isMine"`
	Liked     bool          `json:"liked"`
	LikeCount int           `json:"likeCount"`
	Date      string        `json:"date"`
	Comments  []CommentView `json:"comments"`
}

// IsLiked derives the like toggle from the authoritative likes list.
func IsLiked(p model.Post, viewerID string) bool {
	if viewerID == "" {
		return false
	}
	for _, id := range p.Likes {
		if id == viewerID {
			return true
		}
	}
	return false
}

// CanDeleteComment allows the comment's author and the post's author.
func CanDeleteComment(p model.Post, c model.Comment, viewerID string) bool {
	if viewerID == "" {
		return false
	}
	return c.Author.ID == viewerID || p.Author.ID == viewerID
}

func BuildPost(p model.Post, viewerID string, now time.Time) PostView {
	v := PostView{
		Post:      p,
		IsMine:    viewerID != "" && p.Author.ID == viewerID,
		Liked:     IsLiked(p, viewerID),
		LikeCount: len(p.Likes),
		Date:      RelativeDate(p.CreatedAt, now),
		Comments:  BuildComments(p, p.Comments, viewerID, now),
	}
	return v
}

// BuildComments derives comment state against the post they belong to.
func BuildComments(p model.Post, comments []model.Comment, viewerID string, now time.Time) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentView{
			Comment:   c,
			IsMine:    viewerID != "" && c.Author.ID == viewerID,
			CanDelete: CanDeleteComment(p, c, viewerID),
			Date:      RelativeDate(c.CreatedAt, now),
		})
	}
	return out
}

func BuildPosts(posts []model.Post, viewerID string, now time.Time) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, BuildPost(p, viewerID, now))
	}
	return out
}
