package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/HrudhyaRadesh/EcoSphereLive/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB    *gorm.DB
	Stats *StatsService
}

func NewUserService(db *gorm.DB, stats *StatsService) *UserService {
	return &UserService{DB: db, Stats: stats}
}

// Register creates the account plus everything a user owns from day one: a
// zeroed metrics row and the full locked badge catalog. Global stats are
// refreshed afterwards so the registered-population counter stays current.
func (s *UserService) Register(username, password string, city, email *string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: string(hash),
		City:     city,
		Email:    email,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: username %q is taken", ErrConflict, username)
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		metrics := models.UserMetrics{
			ID:     uuid.NewString(),
			UserID: user.ID,
			Level:  1,
		}
		if err := tx.Create(&metrics).Error; err != nil {
			return err
		}

		for _, def := range models.BadgeCatalog {
			badge := models.Badge{
				ID:          uuid.NewString(),
				UserID:      user.ID,
				BadgeType:   def.Type,
				Title:       def.Title,
				Description: def.Description,
			}
			if err := tx.Create(&badge).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.Stats.Recalculate(); err != nil {
		log.Printf("⚠️ Global stats refresh after registration failed: %v", err)
	}

	log.Printf("🌱 User registered: %s (%s)", user.Username, user.ID)
	return &user, nil
}

// Authenticate verifies the credential pair and returns the account. A bad
// username and a bad password are indistinguishable to the caller.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
	}
	return &user, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}
