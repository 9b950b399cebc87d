package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/panelboard/panelboard/internal/app/system/htmlsanitize"
	"github.com/panelboard/panelboard/internal/app/system/normalize"
	"github.com/panelboard/panelboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password hashes.
const BcryptCost = 12

var (
	// ErrDuplicateUsername is returned when creating a user whose username
	// already exists (case-insensitive).
	ErrDuplicateUsername = errors.New("a user with this username already exists")
	// ErrBadCredentials is returned when a password check fails or the user
	// does not exist. Callers must not distinguish the two.
	ErrBadCredentials = errors.New("invalid username or password")

	errBadRole     = errors.New(`role must be "admin"|"user"`)
	errBadStatus   = errors.New(`status must be "active"|"disabled"`)
	errNoUsername  = errors.New("username is required")
	errNoPassword  = errors.New("password is required for internal accounts")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// EnsureIndexes creates the unique username index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username_ci", Value: 1}},
		Options: options.Index().SetName("idx_users_username_ci").SetUnique(true),
	})
	return err
}

// Create inserts a new user after normalizing & validating fields.
// The Password argument is hashed with bcrypt; the plaintext is not stored.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Username = htmlsanitize.Strip(normalize.Username(u.Username))
	u.UsernameCI = normalize.UsernameCI(u.Username)
	u.Email = normalize.Email(u.Email)
	if u.Status == "" {
		u.Status = "active"
	}
	if u.AuthMethod == "" {
		u.AuthMethod = "internal"
	}

	if u.Username == "" {
		return models.User{}, errNoUsername
	}

	switch normalize.Role(u.Role) {
	case "admin", "user":
		u.Role = normalize.Role(u.Role)
	default:
		return models.User{}, errBadRole
	}

	switch normalize.Status(u.Status) {
	case "active", "disabled":
		u.Status = normalize.Status(u.Status)
	default:
		return models.User{}, errBadStatus
	}

	// Google-auth accounts have no local password.
	if u.AuthMethod == "internal" {
		if password == "" {
			return models.User{}, errNoPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = string(hash)
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks up a user by case-insensitive username.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username_ci": normalize.UsernameCI(username)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByGoogleEmail looks up a Google-authenticated account by email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByGoogleEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	filter := bson.M{"email": normalize.Email(email), "auth_method": models.AuthMethodGoogle}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// VerifyPassword loads a user by username and checks the password.
// Any failure (unknown user, disabled account, wrong password) collapses to
// ErrBadCredentials so callers leak nothing about which part failed.
func (s *Store) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if u.Status == "disabled" || u.PasswordHash == "" {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// Count returns the total number of user records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
