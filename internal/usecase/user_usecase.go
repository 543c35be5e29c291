package usecase

import (
	"context"
	"time"

	"github.com/arav/divvy/internal/domain"
)

// UserUseCase handles user management.
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, idGen: idGen}
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// CreateUser registers a new user.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers lists users.
func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = 20
	}

	if limit > 100 {
		limit = 100
	}

	return uc.userRepo.List(ctx, limit, offset)
}

// GroupUseCase handles group management.
type GroupUseCase struct {
	groupRepo GroupRepository
	userRepo  UserRepository
	idGen     IDGenerator
}

// NewGroupUseCase creates a new GroupUseCase.
func NewGroupUseCase(groupRepo GroupRepository, userRepo UserRepository, idGen IDGenerator) *GroupUseCase {
	return &GroupUseCase{groupRepo: groupRepo, userRepo: userRepo, idGen: idGen}
}

// CreateGroupInput represents input for creating a group.
type CreateGroupInput struct {
	Name      string
	MemberIDs []string
}

// CreateGroup creates a group after verifying every member exists.
func (uc *GroupUseCase) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.Group, error) {
	group := &domain.Group{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		MemberIDs: input.MemberIDs,
		CreatedAt: time.Now().UTC(),
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	if len(input.MemberIDs) > 0 {
		members, err := uc.userRepo.GetByIDs(ctx, input.MemberIDs)
		if err != nil {
			return nil, err
		}

		if len(members) != len(input.MemberIDs) {
			return nil, domain.ErrUserNotFound
		}
	}

	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// GetGroup retrieves a group by ID.
func (uc *GroupUseCase) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	return uc.groupRepo.GetByID(ctx, id)
}

// ListGroups lists groups.
func (uc *GroupUseCase) ListGroups(ctx context.Context, limit, offset int) ([]*domain.Group, error) {
	if limit <= 0 {
		limit = 20
	}

	if limit > 100 {
		limit = 100
	}

	return uc.groupRepo.List(ctx, limit, offset)
}
