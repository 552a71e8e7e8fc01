package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/pkg/cache"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	Create(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
	Update(ctx context.Context, userID int64, req *request.UserRequest) (*response.UserResponse, error)
	FindByID(ctx context.Context, userID int64) (*response.UserResponse, error)
	FindAll(ctx context.Context) ([]response.UserResponse, error)
	Delete(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo  repository.UserRepository
	cache     cache.PopularCache
	validator *utils.Validator
	log       *zap.Logger
}

func NewUserService(repo *repository.Repository, popularCache cache.PopularCache, validator *utils.Validator, log *zap.Logger) UserService {
	return &userService{
		userRepo:  repo.User,
		cache:     popularCache,
		validator: validator,
		log:       log.With(zap.String("service", "user")),
	}
}

// toUser validates req and builds the entity. A blank name becomes the login.
func (us *userService) toUser(req *request.UserRequest) (*entity.User, error) {
	if err := us.validator.Check(req); err != nil {
		us.log.Warn("User validation failed", zap.Error(err), zap.String("login", req.Login))
		return nil, err
	}

	user := &entity.User{
		Email: strings.TrimSpace(req.Email),
		Login: req.Login,
		Name:  strings.TrimSpace(req.Name),
	}
	if user.Name == "" {
		user.Name = user.Login
	}

	if req.Birthday != nil {
		birthday, err := time.Parse(utils.DateLayout, *req.Birthday)
		if err != nil {
			return nil, utils.BadRequest("invalid birthday %q", *req.Birthday)
		}
		user.Birthday = &birthday
	}

	return user, nil
}

func (us *userService) Create(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	user, err := us.toUser(req)
	if err != nil {
		return nil, err
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	us.log.Info("User created", zap.Int64("user_id", user.ID), zap.String("login", user.Login))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Update(ctx context.Context, userID int64, req *request.UserRequest) (*response.UserResponse, error) {
	user, err := us.toUser(req)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("User updated", zap.Int64("user_id", user.ID))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) FindByID(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, utils.NotFound("user %d", userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) FindAll(ctx context.Context) ([]response.UserResponse, error) {
	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return response.UsersToResponse(users), nil
}

// Delete removes the user with their likes, so cached rankings are dropped.
func (us *userService) Delete(ctx context.Context, userID int64) error {
	if err := us.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	us.cache.Invalidate(ctx)
	return nil
}
