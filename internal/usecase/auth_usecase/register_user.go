package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Name          string
	Username      string
	ContactNumber string
	Email         string
	Password      string
	// "User"/"Admin"。空ならUser
	Role string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.User `json:"user"`
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

const minPasswordLength = 8

var (
	// 入力が不正
	ErrMissingFields      = errors.New("name, username, contactNumber, email and password are required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidRole        = errors.New("invalid role")

	// 競合
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		idGen:    idGen,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	name := strings.TrimSpace(in.Name)
	username := strings.TrimSpace(in.Username)
	contact := strings.TrimSpace(in.ContactNumber)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || username == "" || contact == "" || email == "" || in.Password == "" {
		return out, ErrMissingFields
	}

	// emailの形式チェック
	if !isValidEmailFormat(email) {
		return out, ErrInvalidEmailFormat
	}

	if len(in.Password) < minPasswordLength {
		return out, ErrPasswordTooShort
	}

	// よくある弱いパスワードの拒否
	if isWeakPassword(in.Password) {
		return out, ErrWeakPassword
	}

	role, ok := model.ParseRole(in.Role)
	if !ok {
		return out, ErrInvalidRole
	}

	// email重複チェック
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return out, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	// username重複チェック
	if _, err := u.userRepo.FindByUsername(ctx, username); err == nil {
		return out, ErrUsernameAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		ID:            u.idGen.NewID(),
		Name:          name,
		Username:      username,
		ContactNumber: contact,
		Email:         email,
		PasswordHash:  hashed, // 平文は保存しない
		Role:          role,
		TokenVersion:  0,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// DBへ保存（同時登録のunique違反もここで拾う）
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	out.User = *user
	return out, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	addr, err := mail.ParseAddress(trimmed)
	// "Name <a@b>"形式は不可
	return err == nil && addr.Address == trimmed
}

// パスワードのよくある弱いパスワード
func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":     {},
		"password1":    {},
		"password123":  {},
		"123456789012": {},
		"1234567890":   {},
		"12345678":     {},
		"qwertyui":     {},
		"qwertyuiop":   {},
		"letmein1":     {},
		"admin123":     {},
	}

	_, ok := weak[normalized]
	return ok
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
