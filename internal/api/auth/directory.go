package auth

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of the built-in demo accounts.
const DefaultPassword = "password123"

type account struct {
	user domain.User
	hash []byte
}

// Directory is the credential table: users keyed by email with bcrypt hashes.
type Directory struct {
	mu      sync.RWMutex
	byEmail map[string]*account
	cost    int
}

// NewDirectory creates an empty directory. A cost of zero uses bcrypt.DefaultCost.
func NewDirectory(cost int) *Directory {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Directory{
		byEmail: make(map[string]*account),
		cost:    cost,
	}
}

// DemoUsers returns the job seeker and company accounts every directory starts with.
func DemoUsers() []domain.User {
	return []domain.User{
		{ID: "1", Email: "seeker@test.com", Role: domain.RoleJobSeeker, FullName: "John Doe"},
		{ID: "2", Email: "company@test.com", Role: domain.RoleCompany, FullName: "TechCorp Nepal", CompanyName: "TechCorp Nepal"},
	}
}

// SeedDemoUsers adds DemoUsers with DefaultPassword.
func (d *Directory) SeedDemoUsers() error {
	for _, u := range DemoUsers() {
		if err := d.Add(u, DefaultPassword); err != nil {
			return err
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Add stores user with a hash of password. The email must be unused.
func (d *Directory) Add(user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	key := normalizeEmail(user.Email)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byEmail[key]; ok {
		return domain.Conflict("An account with this email already exists", nil)
	}
	user.Email = key
	d.byEmail[key] = &account{user: user, hash: hash}
	return nil
}

// Verify returns the user when email and password match a stored account.
func (d *Directory) Verify(email, password string) (*domain.User, bool) {
	d.mu.RLock()
	acc, ok := d.byEmail[normalizeEmail(email)]
	d.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return nil, false
	}
	u := acc.user
	return &u, true
}

// Exists reports whether an account uses email.
func (d *Directory) Exists(email string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byEmail[normalizeEmail(email)]
	return ok
}

// Update replaces the profile of the account with user's email. The password
// hash is kept.
func (d *Directory) Update(user domain.User) error {
	key := normalizeEmail(user.Email)

	d.mu.Lock()
	defer d.mu.Unlock()

	acc, ok := d.byEmail[key]
	if !ok {
		return domain.NotFound("User not found", nil)
	}
	user.Email = key
	acc.user = user
	return nil
}
