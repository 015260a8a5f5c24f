package user

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/go-mail/mail"
	"golang.org/x/crypto/scrypt"
)

func NewService(logger *slog.Logger, uiUrl string, passwordTokenTtl uint, repository *repository, dialer dialer) *Service {
	return &Service{
		logger:           logger,
		uiUrl:            uiUrl,
		passwordTokenTtl: passwordTokenTtl,
		repository:       repository,
		dialer:           dialer,
	}
}

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type Service struct {
	logger           *slog.Logger
	uiUrl            string
	passwordTokenTtl uint
	repository       *repository
	dialer           dialer
}

func (s Service) SignUp(ctx context.Context, email string, password string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	user := &model.User{
		Email:    email,
		Password: hashedPassword,
	}

	err = s.repository.create(ctx, user)
	if err != nil {
		return nil, err
	}

	// sign up succeeds even when the welcome email can't be delivered
	if err := s.sendWelcomeEmail(user); err != nil {
		s.logger.ErrorContext(ctx, "Failed to send welcome email", "error", err, "userId", user.ID)
	}

	return user, nil
}

func (s Service) sendWelcomeEmail(user *model.User) error {
	m := mail.NewMessage()
	m.SetHeader("From", "Gatherly <no-reply@gatherly.dev>")
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Welcome to Gatherly")
	body := fmt.Sprintf("Hello, your account is ready. Find groups and events near you at %s", s.uiUrl)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func hashPassword(password string) (string, error) {
	// example for making salt - https://play.golang.org/p/_Aw6WeWC42I
	salt := make([]byte, 32)
	_, err := rand.Read(salt)
	if err != nil {
		return "", err
	}

	// using recommended cost parameters from - https://godoc.org/golang.org/x/crypto/scrypt
	hash, err := scrypt.Key([]byte(password), salt, 32768, 8, 1, 32)
	if err != nil {
		return "", err
	}

	hashedPassword := fmt.Sprintf("%s.%s", hex.EncodeToString(hash), hex.EncodeToString(salt))

	return hashedPassword, nil
}

func (s Service) SignIn(ctx context.Context, email string, password string) (*model.User, error) {
	unauthorizedError := "invalid email and password combination"

	user, err := s.repository.findByEmail(ctx, email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("%s", unauthorizedError)
		}
		return nil, err
	}

	// OAuth accounts have no password and can only sign in via their provider
	if user.Password == "" {
		return nil, errdef.NewUnauthorized("%s", unauthorizedError)
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	if !match {
		return nil, errdef.NewUnauthorized("%s", unauthorizedError)
	}

	return user, nil
}

func comparePasswords(storedPassword string, suppliedPassword string) (bool, error) {
	passwordAndSalt := strings.Split(storedPassword, ".")
	if len(passwordAndSalt) != 2 {
		return false, fmt.Errorf("wrong password/salt format")
	}

	salt, err := hex.DecodeString(passwordAndSalt[1])
	if err != nil {
		return false, fmt.Errorf("unable to verify user password")
	}

	hash, err := scrypt.Key([]byte(suppliedPassword), salt, 32768, 8, 1, 32)
	if err != nil {
		return false, err
	}

	return hex.EncodeToString(hash) == passwordAndSalt[0], nil
}

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findById(ctx, id)
}

// FindOrCreate matches OAuth sign ins to existing accounts by email, creating
// a passwordless account on first sign in.
func (s Service) FindOrCreate(ctx context.Context, email string, name string, image string) (*model.User, error) {
	user := &model.User{
		Email: email,
		Name:  name,
		Image: image,
	}

	return s.repository.findOrCreate(ctx, user)
}

func (s Service) Update(ctx context.Context, id uint, name string, image string) (*model.User, error) {
	user, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Image = image

	return s.repository.update(ctx, user)
}

// AdminUpdate applies only the fields present in the request, including the
// admin flag.
func (s Service) AdminUpdate(ctx context.Context, id uint, name *string, image *string, isAdmin *bool) (*model.User, error) {
	user, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if image != nil {
		user.Image = *image
	}
	if isAdmin != nil {
		user.IsAdmin = *isAdmin
	}

	return s.repository.update(ctx, user)
}

func (s Service) Save(ctx context.Context, user *model.User) error {
	return s.repository.save(ctx, user)
}

func (s Service) Delete(ctx context.Context, id uint) error {
	return s.repository.delete(ctx, id)
}

func (s Service) sendResetPasswordEmail(user *model.User) error {
	m := mail.NewMessage()
	m.SetHeader("From", "Gatherly <no-reply@gatherly.dev>")
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Reset your Gatherly password")
	link := fmt.Sprintf("%s/reset-password/%s", s.uiUrl, user.PasswordToken.String)
	body := fmt.Sprintf("Hello, please click the link below to reset your password.<br/>%s", link)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

// RequestPasswordReset is deliberately quiet about unknown emails so it can't
// be used to probe which addresses have accounts.
func (s Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repository.findByEmail(ctx, email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil
		}
		return err
	}

	bytes := make([]byte, 64)
	if _, err := rand.Read(bytes); err != nil {
		return err
	}
	token := base64.URLEncoding.EncodeToString(bytes)

	user.PasswordToken = sql.NullString{String: token, Valid: true}
	user.PasswordTokenTTL = uint(time.Now().Unix()) + s.passwordTokenTtl

	err = s.sendResetPasswordEmail(user)
	if err != nil {
		return err
	}

	return s.repository.save(ctx, user)
}

func (s Service) ResetPassword(ctx context.Context, token string, password string) error {
	user, err := s.repository.findByPasswordResetToken(ctx, token)
	if err != nil {
		return err
	}

	tokenTtl := time.Unix(int64(user.PasswordTokenTTL), 0).UTC()
	if tokenTtl.Before(time.Now()) {
		return errdef.NewBadRequest("reset token has expired")
	}

	user.Password, err = hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %s", err)
	}

	user.PasswordToken = sql.NullString{}
	user.PasswordTokenTTL = 0

	return s.repository.save(ctx, user)
}
