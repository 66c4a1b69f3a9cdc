package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// defaultWalletCurrency is the fixed parameter passed to the wallet
// service for every newly provisioned user.
const defaultWalletCurrency = "INR"

// codeAttempts bounds the generate-and-insert retry loop on user code
// collisions.
const codeAttempts = 3

// UseCase describes user management behavior: the create-user saga plus
// read-side lookups.
type UseCase interface {
	Create(ctx context.Context, cmd CreateUserCommand) (Profile, error)
	GetByUserCode(ctx context.Context, userCode string) (Profile, error)
	Search(ctx context.Context, username, email string) ([]Profile, error)
}

type service struct {
	repo       Repository
	codes      CodeGenerator
	wallet     WalletProvisioner
	events     EventPublisher
	walletWait time.Duration
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository, codes CodeGenerator, wallet WalletProvisioner, events EventPublisher, walletTimeout time.Duration) UseCase {
	return &service{repo: repo, codes: codes, wallet: wallet, events: events, walletWait: walletTimeout}
}

// Create runs the create-user saga:
// validate -> persist -> provision wallet -> publish event.
// A wallet failure after the local insert triggers a best-effort delete
// of the just-created record (compensation); a publish failure is logged
// and never rolls anything back.
func (s *service) Create(ctx context.Context, cmd CreateUserCommand) (Profile, error) {
	if err := cmd.Validate(); err != nil {
		return Profile{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	// Pre-check is an optimization only; the unique constraint on email
	// is the authoritative guard against concurrent creations.
	exists, err := s.repo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return Profile{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return Profile{}, fmt.Errorf("%w: a user with this email already exists", ErrInvalidInput)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return Profile{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Username:     cmd.Username,
		Email:        cmd.Email,
		PhoneNumber:  cmd.PhoneNumber,
		PasswordHash: string(passwordHash),
		Role:         cmd.role(),
		CreatedAt:    time.Now().UTC(),
	}

	saved, err := s.insertWithFreshCode(ctx, u)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// Lost the race between the pre-check and the insert.
			return Profile{}, fmt.Errorf("%w: a user with this email already exists", ErrInvalidInput)
		}
		return Profile{}, fmt.Errorf("create user: %w", err)
	}
	log.Printf("user created: userCode=%s", saved.UserCode)

	walletCtx, cancel := context.WithTimeout(ctx, s.walletWait)
	defer cancel()
	if err := s.wallet.Provision(walletCtx, saved.UserCode, defaultWalletCurrency); err != nil {
		log.Printf("wallet provisioning failed for userCode=%s: %v", saved.UserCode, err)
		// Compensation is attempted exactly once; a failed delete leaves
		// an orphaned record behind and is only logged.
		if delErr := s.repo.Delete(ctx, saved.UserCode); delErr != nil {
			log.Printf("compensation delete failed for userCode=%s: %v", saved.UserCode, delErr)
		}
		return Profile{}, ErrProvisioningFailed
	}

	if err := s.events.UserCreated(ctx, saved); err != nil {
		log.Printf("failed to publish user created event for userCode=%s: %v", saved.UserCode, err)
	}

	return ProfileOf(saved), nil
}

// insertWithFreshCode generates a user code and inserts the record,
// regenerating on a code collision. Codes are randomly salted, so a
// collision is overwhelmingly unlikely; the loop exists because the
// generator itself guarantees nothing about uniqueness.
func (s *service) insertWithFreshCode(ctx context.Context, u User) (User, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := s.codes.Generate(u.Username)
		if err != nil {
			return User{}, fmt.Errorf("generate user code: %w", err)
		}
		u.UserCode = code
		err = s.repo.Create(ctx, u)
		if err == nil {
			return u, nil
		}
		if errors.Is(err, ErrCodeTaken) {
			log.Printf("user code collision, regenerating (attempt %d)", attempt+1)
			continue
		}
		return User{}, err
	}
	return User{}, fmt.Errorf("exhausted %d user code attempts", codeAttempts)
}

func (s *service) GetByUserCode(ctx context.Context, userCode string) (Profile, error) {
	u, err := s.repo.FindByUserCode(ctx, userCode)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("find by user code: %w", err)
	}
	return ProfileOf(u), nil
}

// Search looks up users by username and/or email; at least one criterion
// is required. An empty result set surfaces as ErrNotFound.
func (s *service) Search(ctx context.Context, username, email string) ([]Profile, error) {
	if username == "" && email == "" {
		return nil, fmt.Errorf("%w: at least one search parameter (username or email) must be provided", ErrInvalidInput)
	}

	var users []User
	switch {
	case username != "" && email != "":
		u, err := s.repo.FindByUsernameAndEmail(ctx, username, email)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("find by username and email: %w", err)
		}
		users = []User{u}
	case username != "":
		found, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("find by username: %w", err)
		}
		if len(found) == 0 {
			return nil, ErrNotFound
		}
		users = found
	default:
		u, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("find by email: %w", err)
		}
		users = []User{u}
	}

	profiles := make([]Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, ProfileOf(u))
	}
	return profiles, nil
}
