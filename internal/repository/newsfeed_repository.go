package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

type NewsFeedRepository interface {
	Create(feed *model.NewsFeed) error
	FindByID(id uint) (*model.NewsFeed, error)
	FindAll(offset, limit int) ([]model.NewsFeed, int64, error)

	FindLike(userID, newsfeedID uint) (*model.Like, error)
	CreateLike(like *model.Like) error
	DeleteLike(id uint) error
	CountLikes(newsfeedID uint) (int64, error)
	FindLikeUsers(newsfeedID uint) ([]model.User, error)

	CreateComment(comment *model.Comment) error
	FindCommentByID(id uint) (*model.Comment, error)
	FindComments(newsfeedID uint) ([]model.Comment, error)
	CountComments(newsfeedID uint) (int64, error)
	DeleteComment(id uint) error
}

type newsFeedRepository struct {
	db *gorm.DB
}

func NewNewsFeedRepository(db *gorm.DB) NewsFeedRepository {
	return &newsFeedRepository{db: db}
}

func (r *newsFeedRepository) Create(feed *model.NewsFeed) error {
	return r.db.Create(feed).Error
}

func (r *newsFeedRepository) FindByID(id uint) (*model.NewsFeed, error) {
	var feed model.NewsFeed
	err := r.db.Preload("Activity").Preload("CreatedBy").First(&feed, id).Error
	return &feed, err
}

func (r *newsFeedRepository) FindAll(offset, limit int) ([]model.NewsFeed, int64, error) {
	query := r.db.Model(&model.NewsFeed{}).Where("active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var feeds []model.NewsFeed
	err := query.Preload("Activity").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&feeds).Error
	return feeds, total, err
}

func (r *newsFeedRepository) FindLike(userID, newsfeedID uint) (*model.Like, error) {
	var like model.Like
	err := r.db.Where("user_id = ? AND news_feed_id = ?", userID, newsfeedID).First(&like).Error
	return &like, err
}

func (r *newsFeedRepository) CreateLike(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *newsFeedRepository) DeleteLike(id uint) error {
	return r.db.Unscoped().Delete(&model.Like{}, id).Error
}

func (r *newsFeedRepository) CountLikes(newsfeedID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("news_feed_id = ?", newsfeedID).Count(&count).Error
	return count, err
}

func (r *newsFeedRepository) FindLikeUsers(newsfeedID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.news_feed_id = ? AND likes.deleted_at IS NULL", newsfeedID).
		Find(&users).Error
	return users, err
}

func (r *newsFeedRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *newsFeedRepository) FindCommentByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("User").First(&comment, id).Error
	return &comment, err
}

func (r *newsFeedRepository) FindComments(newsfeedID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Preload("User").Where("news_feed_id = ? AND active = ?", newsfeedID, true).
		Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *newsFeedRepository) CountComments(newsfeedID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("news_feed_id = ?", newsfeedID).Count(&count).Error
	return count, err
}

func (r *newsFeedRepository) DeleteComment(id uint) error {
	return r.db.Delete(&model.Comment{}, id).Error
}
