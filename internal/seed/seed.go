// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer",
	"Manager", "Student or Learning", "Instructor or Teacher", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Ruby", "Rust", "Java",
	"HTML", "CSS", "React", "Vue", "PostgreSQL", "Redis", "Docker",
	"Kubernetes", "GraphQL", "gRPC", "AWS", "Terraform", "Linux",
}

// Seed populates the database with fake users, profiles, and posts.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	profiles, err := createProfiles(db, users)
	if err != nil {
		return fmt.Errorf("failed to create profiles: %w", err)
	}
	log.Printf("%d profiles created", len(profiles))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create likes and comments: %w", err)
	}
	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Delete children before parents so FK constraints hold.
	for _, model := range []any{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, n int) ([]*models.User, error) {
	// One shared hash keeps seeding fast; every seeded account logs in
	// with "password123".
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("%s%d@%s",
			strings.ToLower(strings.ReplaceAll(name, " ", ".")), i, gofakeit.DomainName())
		user := &models.User{
			Name:     name,
			Email:    email,
			Password: string(hashed),
			Avatar:   service.GravatarURL(email),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createProfiles(db *gorm.DB, users []*models.User) ([]*models.Profile, error) {
	profiles := make([]*models.Profile, 0, len(users))
	for _, user := range users {
		// Not everyone fills in a profile.
		if rand.Intn(10) < 2 {
			continue
		}

		skills := make([]string, 0, 5)
		for _, idx := range rand.Perm(len(skillPool))[:3+rand.Intn(3)] {
			skills = append(skills, skillPool[idx])
		}

		profile := &models.Profile{
			UserID:         user.ID,
			Company:        gofakeit.Company(),
			Website:        gofakeit.URL(),
			Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Status:         statuses[rand.Intn(len(statuses))],
			Bio:            gofakeit.Sentence(12),
			GithubUsername: gofakeit.Username(),
			Skills:         skills,
			Social: models.SocialLinks{
				Twitter:  "https://twitter.com/" + gofakeit.Username(),
				Linkedin: "https://linkedin.com/in/" + gofakeit.Username(),
			},
		}
		if err := db.Create(profile).Error; err != nil {
			return nil, err
		}

		for i := 0; i < 1+rand.Intn(3); i++ {
			from := gofakeit.DateRange(
				time.Now().AddDate(-10, 0, 0), time.Now().AddDate(-1, 0, 0))
			exp := &models.Experience{
				ProfileID:   profile.ID,
				Title:       gofakeit.JobTitle(),
				Company:     gofakeit.Company(),
				Location:    gofakeit.City(),
				From:        from,
				Current:     i == 0,
				Description: gofakeit.Sentence(10),
			}
			if !exp.Current {
				to := gofakeit.DateRange(from, time.Now())
				exp.To = &to
			}
			if err := db.Create(exp).Error; err != nil {
				return nil, err
			}
		}

		edu := &models.Education{
			ProfileID:    profile.ID,
			School:       gofakeit.Company() + " University",
			Degree:       "BSc",
			FieldOfStudy: "Computer Science",
			From:         gofakeit.DateRange(time.Now().AddDate(-15, 0, 0), time.Now().AddDate(-10, 0, 0)),
			Description:  gofakeit.Sentence(8),
		}
		if err := db.Create(edu).Error; err != nil {
			return nil, err
		}

		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func createPosts(db *gorm.DB, users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			UserID: author.ID,
			Text:   gofakeit.Sentence(8 + rand.Intn(15)),
			Name:   author.Name,
			Avatar: author.Avatar,
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createEngagement(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for _, idx := range rand.Perm(len(users))[:rand.Intn(min(len(users), 6))] {
			like := &models.Like{PostID: post.ID, UserID: users[idx].ID}
			if err := db.Create(like).Error; err != nil {
				return err
			}
		}
		for i := 0; i < rand.Intn(4); i++ {
			commenter := users[rand.Intn(len(users))]
			comment := &models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(5 + rand.Intn(10)),
				Name:   commenter.Name,
				Avatar: commenter.Avatar,
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
