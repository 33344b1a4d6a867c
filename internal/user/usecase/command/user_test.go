package command

import (
	"fmt"
	"testing"

	"github.com/hotelops/housekeeping-inventory/internal/user/domain"
	"github.com/hotelops/housekeeping-inventory/pkg/auth"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User)}
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	f.nextID++
	user.ID = f.nextID
	copy := *user
	f.users[user.ID] = &copy
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	copy := *user
	return &copy, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copy := *user
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var all []domain.User
	for _, user := range f.users {
		all = append(all, *user)
	}
	return all, nil
}

func (f *fakeUserRepo) FindByRole(role string, limit, offset int) ([]domain.User, error) {
	var matched []domain.User
	for _, user := range f.users {
		if user.Role == role {
			matched = append(matched, *user)
		}
	}
	return matched, nil
}

func (f *fakeUserRepo) Update(user *domain.User) error {
	copy := *user
	f.users[user.ID] = &copy
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count() (int64, error) { return int64(len(f.users)), nil }

func (f *fakeUserRepo) CountByRole(role string) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewRegisterUserHandler(repo)

	user, err := h.Handle(RegisterUserCommand{
		Username: "maria",
		Email:    "maria@hotel.test",
		Password: "housekeeping1",
		FullName: "Maria Lopez",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleStaff {
		t.Errorf("role = %s, want staff default", user.Role)
	}
	if !user.IsActive {
		t.Error("new users must be active")
	}
	if user.Password == "housekeeping1" {
		t.Error("password must be stored hashed")
	}
	if !auth.CheckPassword(user.Password, "housekeeping1") {
		t.Error("stored hash must verify against the plain password")
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewRegisterUserHandler(repo)

	cmd := RegisterUserCommand{
		Username: "maria",
		Email:    "maria@hotel.test",
		Password: "housekeeping1",
		FullName: "Maria Lopez",
	}
	if _, err := h.Handle(cmd); err != nil {
		t.Fatalf("first register: %v", err)
	}

	cmd.Email = "other@hotel.test"
	if _, err := h.Handle(cmd); err == nil {
		t.Fatal("expected error for duplicate username")
	}
}

func TestRegisterUser_InvalidRole(t *testing.T) {
	h := NewRegisterUserHandler(newFakeUserRepo())

	_, err := h.Handle(RegisterUserCommand{
		Username: "maria",
		Email:    "maria@hotel.test",
		Password: "housekeeping1",
		FullName: "Maria Lopez",
		Role:     "superuser",
	})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	if _, err := register.Handle(RegisterUserCommand{
		Username: "maria",
		Email:    "maria@hotel.test",
		Password: "housekeeping1",
		FullName: "Maria Lopez",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := login.Handle(LoginUserCommand{Username: "maria", Password: "housekeeping1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("login must return a token")
	}

	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.Username != "maria" || claims.Role != domain.RoleStaff {
		t.Errorf("claims = %+v", claims)
	}

	stored, _ := repo.FindByUsername("maria")
	if stored.LastLogin == nil {
		t.Error("login must record the login time")
	}
}

func TestLoginUser_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	if _, err := register.Handle(RegisterUserCommand{
		Username: "maria",
		Email:    "maria@hotel.test",
		Password: "housekeeping1",
		FullName: "Maria Lopez",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := login.Handle(LoginUserCommand{Username: "maria", Password: "wrong"}); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestLoginUser_DeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserHandler(repo)

	user, err := register.Handle(RegisterUserCommand{
		Username: "maria",
		Email:    "maria@hotel.test",
		Password: "housekeeping1",
		FullName: "Maria Lopez",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	toggle := NewToggleActiveHandler(repo)
	if _, err := toggle.Handle(ToggleActiveCommand{UserID: user.ID, IsActive: false}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	login := NewLoginUserHandler(repo)
	if _, err := login.Handle(LoginUserCommand{Username: "maria", Password: "housekeeping1"}); err == nil {
		t.Fatal("expected error for deactivated account")
	}
}

func TestChangeRole(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserHandler(repo)
	changeRole := NewChangeRoleHandler(repo)

	user, err := register.Handle(RegisterUserCommand{
		Username: "maria",
		Email:    "maria@hotel.test",
		Password: "housekeeping1",
		FullName: "Maria Lopez",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := changeRole.Handle(ChangeRoleCommand{UserID: user.ID, Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if updated.Role != domain.RoleManager {
		t.Errorf("role = %s, want manager", updated.Role)
	}

	if _, err := changeRole.Handle(ChangeRoleCommand{UserID: user.ID, Role: "root"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
