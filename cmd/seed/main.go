// Command seed wipes the database and loads the demo data set described by
// a yaml file. Intended for local development, never for production.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gatherly/gatherly/internal/log"
	"github.com/gatherly/gatherly/pkg/config"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gatherly/gatherly/pkg/storage"
	"github.com/gatherly/gatherly/pkg/user"
	"github.com/go-mail/mail"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedData struct {
	Users  []seedUser  `yaml:"users"`
	Groups []seedGroup `yaml:"groups"`
	Events []seedEvent `yaml:"events"`
}

type seedUser struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

type seedGroup struct {
	Name     string   `yaml:"name"`
	City     string   `yaml:"city"`
	Country  string   `yaml:"country"`
	Owner    string   `yaml:"owner"`
	Members  []string `yaml:"members"`
	Messages []struct {
		From    string `yaml:"from"`
		Content string `yaml:"content"`
	} `yaml:"messages"`
}

type seedEvent struct {
	Title       string   `yaml:"title"`
	DaysFromNow int      `yaml:"daysFromNow"`
	City        string   `yaml:"city"`
	Country     string   `yaml:"country"`
	Category    string   `yaml:"category"`
	Capacity    *int     `yaml:"capacity"`
	Group       string   `yaml:"group"`
	Organizer   string   `yaml:"organizer"`
	Attendees   []string `yaml:"attendees"`
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "./cmd/seed/seed.yaml", "seed data file")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := slog.New(log.New(log.NewPrettyJSONHandler(os.Stdout, nil)))

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	data, err := loadSeedData(*file)
	if err != nil {
		return err
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Cleaning database")
	if err := clean(db); err != nil {
		return err
	}

	userService := user.NewService(logger, cfg.UIURL, uint(cfg.Authentication.PasswordTokenTTLSeconds), user.NewRepository(db), nopDialer{})

	users := map[string]*model.User{}
	for _, u := range data.Users {
		created, err := userService.SignUp(ctx, u.Email, u.Password)
		if err != nil {
			return fmt.Errorf("failed to create user %q: %v", u.Email, err)
		}
		created.Name = u.Name
		if err := userService.Save(ctx, created); err != nil {
			return err
		}
		users[u.Email] = created
	}

	groups := map[string]*model.Group{}
	for _, g := range data.Groups {
		owner, ok := users[g.Owner]
		if !ok {
			return fmt.Errorf("unknown group owner %q", g.Owner)
		}

		group := &model.Group{
			Name:    g.Name,
			City:    g.City,
			Country: g.Country,
			OwnerID: owner.ID,
		}
		if err := db.Create(group).Error; err != nil {
			return err
		}

		members := append([]string{g.Owner}, g.Members...)
		for _, email := range members {
			member, ok := users[email]
			if !ok {
				return fmt.Errorf("unknown group member %q", email)
			}
			err := db.Where(model.GroupMember{UserID: member.ID, GroupID: group.ID}).
				FirstOrCreate(&model.GroupMember{}).Error
			if err != nil {
				return err
			}
		}

		for _, m := range g.Messages {
			author, ok := users[m.From]
			if !ok {
				return fmt.Errorf("unknown message author %q", m.From)
			}
			message := &model.GroupMessage{
				Content: m.Content,
				UserID:  author.ID,
				GroupID: group.ID,
			}
			if err := db.Create(message).Error; err != nil {
				return err
			}
		}

		groups[g.Name] = group
	}

	now := time.Now()
	for _, e := range data.Events {
		organizer, ok := users[e.Organizer]
		if !ok {
			return fmt.Errorf("unknown event organizer %q", e.Organizer)
		}

		event := &model.Event{
			Title:    e.Title,
			Date:     now.AddDate(0, 0, e.DaysFromNow),
			City:     e.City,
			Country:  e.Country,
			Category: e.Category,
			Capacity: e.Capacity,
			UserID:   organizer.ID,
		}
		if e.Group != "" {
			group, ok := groups[e.Group]
			if !ok {
				return fmt.Errorf("unknown event group %q", e.Group)
			}
			event.GroupID = &group.ID
		}
		if err := db.Create(event).Error; err != nil {
			return err
		}

		for _, email := range e.Attendees {
			attendee, ok := users[email]
			if !ok {
				return fmt.Errorf("unknown attendee %q", email)
			}
			err := db.Create(&model.Attendee{UserID: attendee.ID, EventID: event.ID}).Error
			if err != nil {
				return err
			}
		}
	}

	logger.InfoContext(ctx, "Seed completed",
		"users", len(data.Users), "groups", len(data.Groups), "events", len(data.Events))
	return nil
}

func loadSeedData(file string) (*seedData, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %v", err)
	}

	data := &seedData{}
	if err := yaml.Unmarshal(bytes, data); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %v", err)
	}

	return data, nil
}

// clean wipes all rows, children before parents.
func clean(db *gorm.DB) error {
	for _, table := range []string{"attendees", "group_messages", "events", "group_members", "groups", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

type nopDialer struct{}

func (nopDialer) DialAndSend(m ...*mail.Message) error {
	return nil
}
