// Package taskstore is the single access path to the tasks table. It comes
// in two capability levels: a Scoped store bound to one owner (the HTTP
// handlers and the assistant tools) and an Admin store that sees every
// user's tasks (the reminder job).
package taskstore

import (
	"errors"
	"time"

	"github.com/mindsender/mindsender/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("task not found")

type CreateTaskInput struct {
	Subject     string
	Description string
	DueDate     time.Time
}

// UpdateTaskInput carries partial updates; nil fields are left untouched.
type UpdateTaskInput struct {
	Subject     *string
	Description *string
	DueDate     *time.Time
	IsCompleted *bool
}

type ScopedStore struct {
	db      *gorm.DB
	ownerID uint
}

func Scoped(db *gorm.DB, ownerID uint) *ScopedStore {
	return &ScopedStore{db: db, ownerID: ownerID}
}

func (s *ScopedStore) Create(in CreateTaskInput) (*models.Task, error) {
	task := models.Task{
		UserID:      s.ownerID,
		Subject:     in.Subject,
		Description: in.Description,
		DueDate:     in.DueDate,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *ScopedStore) List() ([]models.Task, error) {
	var tasks []models.Task

	if err := s.db.Where("user_id = ?", s.ownerID).Order("due_date asc").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *ScopedStore) Update(id string, in UpdateTaskInput) (*models.Task, error) {
	updates := make(map[string]interface{})

	if in.Subject != nil {
		updates["subject"] = *in.Subject
	}

	if in.Description != nil {
		updates["description"] = *in.Description
	}

	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}

	if in.IsCompleted != nil {
		updates["is_completed"] = *in.IsCompleted
	}

	if len(updates) == 0 {
		return s.get(id)
	}

	result := s.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, s.ownerID).
		Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	// Zero rows means the task does not exist or belongs to someone else;
	// the two cases are indistinguishable on purpose.
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.get(id)
}

func (s *ScopedStore) Delete(id string) error {
	result := s.db.Where("id = ? AND user_id = ?", id, s.ownerID).Delete(&models.Task{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *ScopedStore) get(id string) (*models.Task, error) {
	var task models.Task

	if err := s.db.Where("id = ? AND user_id = ?", id, s.ownerID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &task, nil
}

type AdminStore struct {
	db *gorm.DB
}

func Admin(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// DueBetween returns unreminded tasks whose due date falls inside
// [start, end], inclusive on both ends, across all owners.
func (a *AdminStore) DueBetween(start, end time.Time) ([]models.Task, error) {
	var tasks []models.Task

	err := a.db.
		Where("reminder_sent = ? AND due_date >= ? AND due_date <= ?", false, start, end).
		Order("due_date asc").
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (a *AdminStore) ProfilesByID(ids []uint) (map[uint]models.User, error) {
	var users []models.User

	if len(ids) == 0 {
		return map[uint]models.User{}, nil
	}

	if err := a.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	profiles := make(map[uint]models.User, len(users))
	for _, user := range users {
		profiles[user.ID] = user
	}

	return profiles, nil
}

// MarkReminded flips reminder_sent only if it is still false. Returns false
// with no error when another invocation got there first.
func (a *AdminStore) MarkReminded(taskID string) (bool, error) {
	result := a.db.Model(&models.Task{}).
		Where("id = ? AND reminder_sent = ?", taskID, false).
		Update("reminder_sent", true)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
