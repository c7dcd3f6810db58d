package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/internal/controller"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/middleware"
	"github.com/hxann/eduscore/internal/service"
	"github.com/rs/zerolog/log"
)

// FeedController serves the activity news feed with likes and comments.
type FeedController struct {
	newsFeedService service.NewsFeedService
}

func NewFeedController(newsFeedService service.NewsFeedService) *FeedController {
	return &FeedController{newsFeedService: newsFeedService}
}

// GetFeed godoc
// @Summary List news feed posts
// @Tags News Feed
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse
// @Router /newsfeed [get]
func (ctrl *FeedController) GetFeed(c *gin.Context) {
	page, pageSize := controller.Pagination(c)
	feed, err := ctrl.newsFeedService.GetAll(page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// CreatePost godoc
// @Summary (Staff) Publish an activity to the feed
// @Description One feed post per activity.
// @Tags News Feed
// @Accept json
// @Produce json
// @Param post body dto.CreateNewsFeedRequest true "Post data"
// @Success 201 {object} dto.NewsFeedResponse
// @Failure 409 {object} dto.ErrorResponse "Activity already posted"
// @Router /newsfeed [post]
func (ctrl *FeedController) CreatePost(c *gin.Context) {
	var req dto.CreateNewsFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	post, err := ctrl.newsFeedService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		log.Error().Err(err).Uint("activity_id", req.ActivityID).Msg("CreatePost: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Description A second call from the same user removes the like.
// @Tags News Feed
// @Produce json
// @Param newsfeed_id path int true "Post ID"
// @Success 200 {object} dto.LikeToggleResponse
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /newsfeed/{newsfeed_id}/likes [post]
func (ctrl *FeedController) ToggleLike(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "newsfeed_id")
	if !ok {
		return
	}

	result, err := ctrl.newsFeedService.ToggleLike(middleware.CurrentUser(c), id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLikeUsers godoc
// @Summary List users who liked a post
// @Tags News Feed
// @Produce json
// @Param newsfeed_id path int true "Post ID"
// @Success 200 {array} dto.UserResponse
// @Router /newsfeed/{newsfeed_id}/likes [get]
func (ctrl *FeedController) GetLikeUsers(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "newsfeed_id")
	if !ok {
		return
	}

	users, err := ctrl.newsFeedService.GetLikeUsers(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CountLikes godoc
// @Summary Count likes on a post
// @Tags News Feed
// @Produce json
// @Param newsfeed_id path int true "Post ID"
// @Success 200 {object} dto.CountResponse
// @Router /newsfeed/{newsfeed_id}/likes/count [get]
func (ctrl *FeedController) CountLikes(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "newsfeed_id")
	if !ok {
		return
	}

	count, err := ctrl.newsFeedService.CountLikes(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// AddComment godoc
// @Summary Comment on a post
// @Tags News Feed
// @Accept json
// @Produce json
// @Param newsfeed_id path int true "Post ID"
// @Param comment body dto.CreateCommentRequest true "Comment data"
// @Success 201 {object} dto.CommentResponse
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /newsfeed/{newsfeed_id}/comments [post]
func (ctrl *FeedController) AddComment(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "newsfeed_id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	comment, err := ctrl.newsFeedService.AddComment(middleware.CurrentUser(c), id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetComments godoc
// @Summary List comments on a post
// @Tags News Feed
// @Produce json
// @Param newsfeed_id path int true "Post ID"
// @Success 200 {array} dto.CommentResponse
// @Router /newsfeed/{newsfeed_id}/comments [get]
func (ctrl *FeedController) GetComments(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "newsfeed_id")
	if !ok {
		return
	}

	comments, err := ctrl.newsFeedService.GetComments(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CountComments godoc
// @Summary Count comments on a post
// @Tags News Feed
// @Produce json
// @Param newsfeed_id path int true "Post ID"
// @Success 200 {object} dto.CountResponse
// @Router /newsfeed/{newsfeed_id}/comments/count [get]
func (ctrl *FeedController) CountComments(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "newsfeed_id")
	if !ok {
		return
	}

	count, err := ctrl.newsFeedService.CountComments(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// DeleteComment godoc
// @Summary Delete own comment
// @Description Comment owners and admins only.
// @Tags News Feed
// @Param comment_id path int true "Comment ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the comment owner"
// @Router /comments/{comment_id} [delete]
func (ctrl *FeedController) DeleteComment(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "comment_id")
	if !ok {
		return
	}

	if err := ctrl.newsFeedService.DeleteComment(middleware.CurrentUser(c), id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
