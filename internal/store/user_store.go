package store

import (
	"context"
	"errors"

	"mygamelist/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrDuplicate signals a unique-constraint violation on username or email,
// as opposed to a generic database failure.
var ErrDuplicate = errors.New("email or username already registered")

// bcryptCost matches the work factor used when the schema was seeded.
const bcryptCost = 10

// UserStore issues account queries against the injected pool.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Exists reports whether any account matches the email or the username.
func (s *UserStore) Exists(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create hashes the password and inserts a new account, returning the created
// row with the hash cleared. ErrDuplicate is returned when the unique
// constraint on email or username is violated.
func (s *UserStore) Create(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}

// Authenticate looks up the account by email and compares the password
// against the stored hash. It returns (nil, nil) when no account matches or
// the password is wrong; a non-nil error means the database failed. The
// bcrypt comparison is constant time.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	user.PasswordHash = ""
	return &user, nil
}
