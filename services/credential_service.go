package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/digibistro/digibistro-api/models"
)

// ErrDuplicateUser is returned when a username or email is already taken.
var ErrDuplicateUser = errors.New("username or email already exists")

// ErrInvalidCredentials is returned when a login attempt fails. The caller
// cannot tell an unknown username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrAdminExists is returned when the admin bootstrap has already run.
var ErrAdminExists = errors.New("an admin account already exists")

// adminMarker is the value stored in the unique admin_marker column for the
// single bootstrap admin row.
const adminMarker = "bootstrap"

// NewUserInput carries the fields for registering a user. The password is
// hashed before it is stored.
type NewUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// CredentialService stores and verifies user credentials.
type CredentialService struct {
	db *gorm.DB
}

// NewCredentialService creates a CredentialService backed by the given database.
func NewCredentialService(db *gorm.DB) *CredentialService {
	return &CredentialService{db: db}
}

// LookupUser returns the user with the given username, or nil when absent.
func (s *CredentialService) LookupUser(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// CreateUser registers a new user with a bcrypt-hashed password and returns
// the assigned user id.
func (s *CredentialService) CreateUser(input NewUserInput) (uint, error) {
	return s.createUser(input, false)
}

// CreateAdmin registers the bootstrap admin. The unique admin_marker column
// guarantees at most one admin row even under concurrent registration; a
// second attempt fails with ErrAdminExists.
func (s *CredentialService) CreateAdmin(input NewUserInput) (uint, error) {
	id, err := s.createUser(input, true)
	if errors.Is(err, ErrDuplicateUser) {
		// Could be a duplicate username/email or a duplicate marker; check
		// which so the caller gets the right message.
		var count int64
		s.db.Model(&models.User{}).Where("admin_marker = ?", adminMarker).Count(&count)
		if count > 0 {
			return 0, ErrAdminExists
		}
	}
	return id, err
}

func (s *CredentialService) createUser(input NewUserInput, isAdmin bool) (uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	if isAdmin {
		marker := adminMarker
		user.AdminMarker = &marker
	}

	if err := s.db.Create(&user).Error; err != nil {
		if IsUniqueViolation(err) {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

// Authenticate verifies a username/password pair and returns the user on
// success.
func (s *CredentialService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.LookupUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
