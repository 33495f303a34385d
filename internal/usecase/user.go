package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sharevid/video-share-api/internal/model"
	"github.com/sharevid/video-share-api/internal/repository"
)

// UserUsecase defines the profile use cases for an authenticated user.
type UserUsecase interface {
	GetDetails(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*model.User, error)
}

// UpdateProfileParams defines the profile fields a user may change.
type UpdateProfileParams struct {
	Name  string
	Email string
}

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetDetails(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateProfile(
	ctx context.Context,
	userID string,
	params UpdateProfileParams,
) (*model.User, error) {
	update := repository.UpdateUserParams{Name: &params.Name}
	if params.Email != "" {
		update.Email = &params.Email
	}

	user, err := u.userRepo.UpdateUser(ctx, userID, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return user, nil
}
