// Package classification Gatherly Service.
//
// Gatherly is a community events service. People form groups, schedule
// events, chat on group boards and follow activity in their groups.
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//	Version: 0.1.0
//	License: TODO
//	Contact: <info@gatherly.app> https://github.com/gatherly/gatherly
//
//	Consumes:
//	  - application/json
//
//	Produces:
//	  - application/json
//
//	SecurityDefinitions:
//	  oauth2:
//	    type: oauth2
//	    tokenUrl: /tokens
//	    refreshUrl: /refresh
//	    flow: password
//
// swagger:meta
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/internal/handler"
	"github.com/gatherly/gatherly/internal/log"
	"github.com/gatherly/gatherly/internal/middleware"
	"github.com/gatherly/gatherly/internal/server"
	"github.com/gatherly/gatherly/pkg/admin"
	"github.com/gatherly/gatherly/pkg/config"
	"github.com/gatherly/gatherly/pkg/event"
	"github.com/gatherly/gatherly/pkg/group"
	"github.com/gatherly/gatherly/pkg/location"
	"github.com/gatherly/gatherly/pkg/message"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gatherly/gatherly/pkg/notification"
	"github.com/gatherly/gatherly/pkg/storage"
	"github.com/gatherly/gatherly/pkg/token"
	"github.com/gatherly/gatherly/pkg/user"
	"github.com/go-mail/mail"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := slog.New(log.New(log.NewPrettyJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redisClient, err := storage.NewRedis(cfg.Redis)
	if err != nil {
		return err
	}

	goth.UseProviders(
		google.New(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL, "email", "profile"),
	)

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)

	userRepository := user.NewRepository(db)
	userService := user.NewService(logger, cfg.UIURL, uint(cfg.Authentication.PasswordTokenTTLSeconds), userRepository, dialer)

	tokenRepository := token.NewRepository(redisClient)
	tokenService := token.NewService(
		logger,
		tokenRepository,
		cfg.Authentication.PrivateKey,
		cfg.Authentication.AccessTokenExpirationSeconds,
		cfg.Authentication.RefreshTokenSecretKey,
		cfg.Authentication.RefreshTokenExpirationSeconds,
	)

	groupRepository := group.NewRepository(db)
	groupService := group.NewService(groupRepository)

	broker := notification.NewBroker()
	notificationRepository := notification.NewRepository(db)
	notificationService := notification.NewService(logger, notificationRepository, broker)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository, groupService, notificationService)

	messageRepository := message.NewRepository(db)
	messageService := message.NewService(messageRepository, groupService, notificationService)

	locationClient := location.NewClient("")

	if err := createAdminUser(context.Background(), cfg, userService); err != nil {
		return err
	}

	handlers := server.Handlers{
		User:         user.NewHandler(cfg, userService, tokenService),
		Group:        group.NewHandler(groupService),
		Event:        event.NewHandler(eventService),
		Message:      message.NewHandler(messageService),
		Notification: notification.NewHandler(notificationService, broker),
		Location:     location.NewHandler(locationClient),
		Admin:        admin.NewHandler(userService, groupService, eventService),
	}

	authenticationMiddleware := middleware.NewAuthentication(logger, &cfg.Authentication.PrivateKey.PublicKey, userService)
	authorizationMiddleware := middleware.NewAuthorization(logger, userService)

	sameSiteMode := http.SameSiteStrictMode
	if cfg.Environment == "development" {
		sameSiteMode = http.SameSiteNoneMode
	}
	ssoMiddleware := middleware.NewSSOMiddleware(
		userService,
		tokenService,
		cfg.Hostname,
		sameSiteMode,
		cfg.Authentication.AccessTokenExpirationSeconds,
		cfg.Authentication.RefreshTokenExpirationSeconds,
	)

	r := server.GetEngine(logger, handlers, authenticationMiddleware, authorizationMiddleware, ssoMiddleware)
	return r.Run(fmt.Sprintf(":%d", cfg.Port))
}

type adminUserService interface {
	SignIn(ctx context.Context, email string, password string) (*model.User, error)
	SignUp(ctx context.Context, email string, password string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

// createAdminUser ensures the configured administrator account exists.
func createAdminUser(ctx context.Context, cfg config.Config, userService adminUserService) error {
	email := cfg.AdminUser.Email
	password := cfg.AdminUser.Password

	u, err := userService.SignUp(ctx, email, password)
	if err != nil {
		if !errdef.IsDuplicated(err) {
			return fmt.Errorf("failed to create admin user: %v", err)
		}

		u, err = userService.SignIn(ctx, email, password)
		if err != nil {
			return fmt.Errorf("failed to sign in as admin user: %v", err)
		}
	}

	if u.IsAdmin {
		return nil
	}

	u.IsAdmin = true
	return userService.Save(ctx, u)
}
