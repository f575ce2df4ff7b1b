package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uuid.UUID) (*models.User, error)
	UpdateRole(id uuid.UUID, role string) (*models.User, error)
	IsAdmin(id uuid.UUID) (bool, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	var existing models.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return models.ErrConflictingEmail
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	return s.db.Create(user).Error
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateRole(id uuid.UUID, role string) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, models.ErrInvalidArgument
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) IsAdmin(id uuid.UUID) (bool, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
