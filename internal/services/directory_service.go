package services

import (
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/ruralpay/banksim/internal/config"
	"github.com/ruralpay/banksim/internal/models"
	"golang.org/x/crypto/argon2"
)

// DirectoryService is the registry of users allowed to sign in.
type DirectoryService struct {
	mu     sync.RWMutex
	users  map[string]*models.User
	argon2 config.Argon2Config
	now    Clock
}

func NewDirectoryService(params config.Argon2Config, now Clock) *DirectoryService {
	return &DirectoryService{
		users:  make(map[string]*models.User),
		argon2: params,
		now:    now,
	}
}

// Register validates username, email and password in that order and stores
// the user with an argon2id password hash.
func (s *DirectoryService) Register(username, email, password string) (string, error) {
	s.mu.RLock()
	_, taken := s.users[username]
	s.mu.RUnlock()

	if err := ValidateUsername(username, taken); err != nil {
		return "", err
	}
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	hashed, err := s.hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another registration may have won the name while we were hashing.
	if _, taken := s.users[username]; taken {
		return "", ValidateUsername(username, true)
	}
	s.users[username] = &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    s.now(),
	}

	log.Printf("[DIRECTORY] User registered: %s", username)
	return "Registration successful", nil
}

func (s *DirectoryService) LoginWithPassword(username, password string) (string, error) {
	user, ok := s.lookup(username)
	if !ok {
		log.Printf("[DIRECTORY] Login failed, unknown user: %s", username)
		return "", notFoundError("Username does not exist")
	}
	if !s.verifyPassword(password, user.PasswordHash) {
		log.Printf("[DIRECTORY] Invalid password for user: %s", username)
		return "", authError("Incorrect password")
	}
	return "Login successful: Welcome " + username, nil
}

// LoginWithMpin only checks that the user exists and the MPIN is well formed.
// No MPIN is stored per user.
func (s *DirectoryService) LoginWithMpin(username, mpin string) (string, error) {
	if _, ok := s.lookup(username); !ok {
		return "", notFoundError("Username does not exist")
	}
	if err := ValidateMpin(mpin); err != nil {
		return "", err
	}
	return "Login successful: Welcome " + username, nil
}

// User returns a copy of the stored user.
func (s *DirectoryService) User(username string) (*models.User, error) {
	user, ok := s.lookup(username)
	if !ok {
		return nil, notFoundError("Username does not exist")
	}
	return &user, nil
}

func (s *DirectoryService) lookup(username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return models.User{}, false
	}
	return *user, true
}

func (s *DirectoryService) hashPassword(password string) (string, error) {
	salt := make([]byte, s.argon2.SaltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, s.argon2.Time, s.argon2.Memory, s.argon2.Threads, s.argon2.KeyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func (s *DirectoryService) verifyPassword(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, s.argon2.Time, s.argon2.Memory, s.argon2.Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computed) == 1
}
