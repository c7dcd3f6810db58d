package service

import (
	"errors"

	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/policy"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type NewsFeedService interface {
	Create(creator *model.User, req dto.CreateNewsFeedRequest) (*dto.NewsFeedResponse, error)
	GetAll(page, pageSize int) (*dto.PaginatedResponse, error)

	ToggleLike(user *model.User, newsfeedID uint) (*dto.LikeToggleResponse, error)
	GetLikeUsers(newsfeedID uint) ([]dto.UserResponse, error)
	CountLikes(newsfeedID uint) (int64, error)

	AddComment(user *model.User, newsfeedID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComments(newsfeedID uint) ([]dto.CommentResponse, error)
	CountComments(newsfeedID uint) (int64, error)
	DeleteComment(actor *model.User, commentID uint) error
}

type newsFeedService struct {
	feedRepo     repository.NewsFeedRepository
	activityRepo repository.ActivityRepository
	authorizer   policy.Authorizer
}

func NewNewsFeedService(
	feedRepo repository.NewsFeedRepository,
	activityRepo repository.ActivityRepository,
	authorizer policy.Authorizer,
) NewsFeedService {
	return &newsFeedService{feedRepo: feedRepo, activityRepo: activityRepo, authorizer: authorizer}
}

func (s *newsFeedService) Create(creator *model.User, req dto.CreateNewsFeedRequest) (*dto.NewsFeedResponse, error) {
	activity, err := s.activityRepo.FindByID(req.ActivityID)
	if err != nil {
		return nil, asNotFound(err, "activity", req.ActivityID)
	}

	feed := model.NewsFeed{
		ActivityID:  activity.ID,
		CreatedByID: creator.ID,
		Description: req.Description,
	}
	if err := s.feedRepo.Create(&feed); err != nil {
		return nil, err
	}
	feed.Activity = *activity

	return feedToDTO(&feed), nil
}

func (s *newsFeedService) GetAll(page, pageSize int) (*dto.PaginatedResponse, error) {
	offset := (page - 1) * pageSize
	feeds, total, err := s.feedRepo.FindAll(offset, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NewsFeedResponse, 0, len(feeds))
	for i := range feeds {
		items = append(items, *feedToDTO(&feeds[i]))
	}
	return &dto.PaginatedResponse{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *newsFeedService) ToggleLike(user *model.User, newsfeedID uint) (*dto.LikeToggleResponse, error) {
	if _, err := s.feedRepo.FindByID(newsfeedID); err != nil {
		return nil, asNotFound(err, "newsfeed", newsfeedID)
	}

	like, err := s.feedRepo.FindLike(user.ID, newsfeedID)
	switch {
	case err == nil:
		if err := s.feedRepo.DeleteLike(like.ID); err != nil {
			return nil, err
		}
		return &dto.LikeToggleResponse{Liked: false}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.feedRepo.CreateLike(&model.Like{UserID: user.ID, NewsFeedID: newsfeedID}); err != nil {
			return nil, err
		}
		return &dto.LikeToggleResponse{Liked: true}, nil
	default:
		return nil, err
	}
}

func (s *newsFeedService) GetLikeUsers(newsfeedID uint) ([]dto.UserResponse, error) {
	if _, err := s.feedRepo.FindByID(newsfeedID); err != nil {
		return nil, asNotFound(err, "newsfeed", newsfeedID)
	}
	users, err := s.feedRepo.FindLikeUsers(newsfeedID)
	if err != nil {
		return nil, err
	}
	return usersToDTO(users), nil
}

func (s *newsFeedService) CountLikes(newsfeedID uint) (int64, error) {
	if _, err := s.feedRepo.FindByID(newsfeedID); err != nil {
		return 0, asNotFound(err, "newsfeed", newsfeedID)
	}
	return s.feedRepo.CountLikes(newsfeedID)
}

func (s *newsFeedService) AddComment(user *model.User, newsfeedID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.feedRepo.FindByID(newsfeedID); err != nil {
		return nil, asNotFound(err, "newsfeed", newsfeedID)
	}

	comment := model.Comment{
		UserID:     user.ID,
		NewsFeedID: newsfeedID,
		Content:    req.Content,
	}
	if err := s.feedRepo.CreateComment(&comment); err != nil {
		return nil, err
	}
	comment.User = *user

	return commentToDTO(&comment), nil
}

func (s *newsFeedService) GetComments(newsfeedID uint) ([]dto.CommentResponse, error) {
	if _, err := s.feedRepo.FindByID(newsfeedID); err != nil {
		return nil, asNotFound(err, "newsfeed", newsfeedID)
	}
	comments, err := s.feedRepo.FindComments(newsfeedID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, *commentToDTO(&comments[i]))
	}
	return resp, nil
}

func (s *newsFeedService) CountComments(newsfeedID uint) (int64, error) {
	if _, err := s.feedRepo.FindByID(newsfeedID); err != nil {
		return 0, asNotFound(err, "newsfeed", newsfeedID)
	}
	return s.feedRepo.CountComments(newsfeedID)
}

func (s *newsFeedService) DeleteComment(actor *model.User, commentID uint) error {
	comment, err := s.feedRepo.FindCommentByID(commentID)
	if err != nil {
		return asNotFound(err, "comment", commentID)
	}
	if !s.authorizer.Allow(actor, policy.ActionDelete, comment) {
		return policy.ErrForbidden
	}
	return s.feedRepo.DeleteComment(commentID)
}

func feedToDTO(feed *model.NewsFeed) *dto.NewsFeedResponse {
	var resp dto.NewsFeedResponse
	copier.Copy(&resp, feed)
	resp.Activity = *activityToDTO(&feed.Activity)
	return &resp
}

func commentToDTO(comment *model.Comment) *dto.CommentResponse {
	var resp dto.CommentResponse
	copier.Copy(&resp, comment)
	var user dto.UserResponse
	copier.Copy(&user, &comment.User)
	resp.User = user
	return &resp
}
