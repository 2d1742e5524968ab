package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/repository/mysql/model"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository will create an implementation of domain.UserRepository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (m *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user.ToDomain(), nil
}

func (m *userRepository) GetByIDs(ctx context.Context, uids []int64) ([]domain.User, error) {
	var users []model.User
	err := m.DB.WithContext(ctx).Model(&model.User{}).Where("id IN ?", uids).Find(&users).Error
	res := make([]domain.User, len(users))
	for i := range users {
		res[i] = users[i].ToDomain()
	}
	return res, err
}

func (m *userRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user.ToDomain(), nil
}

func (m *userRepository) Insert(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	result := m.DB.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		if isDuplicateEntry(result.Error) {
			return domain.ErrConflict
		}
		return result.Error
	}

	u.ID = userModel.ID

	return nil
}

func (m *userRepository) Update(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	err := m.DB.WithContext(ctx).Model(&userModel).Updates(&userModel).Error
	return err
}
