package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend/models"
	"backend/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)

type UserService struct {
	users *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{users: db.Collection("users")}
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": normalized}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByUUID(ctx context.Context, userUUID string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"uuid": userUUID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a user with a fresh uuid and a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, email, password, userName string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	if _, err := s.FindByEmail(ctx, normalized); err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		UUID:      uuid.NewString(),
		Email:     normalized,
		Password:  hashed,
		UserName:  userName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, err
	}

	utils.Logger.Infow("registered user", "uuid", user.UUID, "email", user.Email)
	return user, nil
}

// Authenticate checks the password against the stored hash.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// ResetPassword replaces the user's password hash.
func (s *UserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": normalized},
		bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
