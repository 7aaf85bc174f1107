package service

import (
	"github.com/feedbackboard/feedbackboard/database"
	"github.com/feedbackboard/feedbackboard/database/model"
)

// FeedbackService persists feedback entries.
type FeedbackService struct{}

// Create stores a new entry owned by username and returns it with the
// assigned id.
func (s *FeedbackService) Create(title, content, username string) (*model.Feedback, error) {
	feedback := &model.Feedback{
		Title:    title,
		Content:  content,
		Username: username,
	}

	db := database.GetDB()
	if err := db.Create(feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

// Get looks up one entry; database.IsNotFound classifies a missing id.
func (s *FeedbackService) Get(id int) (*model.Feedback, error) {
	db := database.GetDB()

	feedback := &model.Feedback{}
	if err := db.First(feedback, id).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

// GetByUser returns all entries owned by username, oldest first.
func (s *FeedbackService) GetByUser(username string) ([]model.Feedback, error) {
	db := database.GetDB()

	var feedbacks []model.Feedback
	err := db.Where("username = ?", username).
		Order("id ASC").
		Find(&feedbacks).
		Error
	return feedbacks, err
}

// Update mutates title and content only; the owner never changes.
func (s *FeedbackService) Update(id int, title, content string) error {
	db := database.GetDB()
	return db.Model(model.Feedback{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "content": content}).
		Error
}

// Delete removes one entry.
func (s *FeedbackService) Delete(id int) error {
	db := database.GetDB()
	return db.Delete(&model.Feedback{}, id).Error
}
