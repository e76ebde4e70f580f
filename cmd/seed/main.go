package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogtab/internal/config"
	"blogtab/internal/db"
	"blogtab/internal/model"
	"blogtab/internal/repository"
)

type seedUser struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Posts     []seedPost
}

type seedPost struct {
	Title       string
	Description string
	Comments    []string
}

var fixtures = []seedUser{
	{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Wright", Password: "password123",
		Posts: []seedPost{
			{Title: "Hello, world", Description: "First post on the new blog.", Comments: []string{"Welcome aboard!"}},
			{Title: "On writing", Description: "Notes on writing regularly."},
		},
	},
	{
		Email: "bob@example.com", FirstName: "Bob", LastName: "Keller", Password: "password123",
		Posts: []seedPost{
			{Title: "Trip report", Description: "Two weeks in the mountains.", Comments: []string{"Great photos", "Where was this?"}},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	ctx := context.Background()

	users, posts, comments, err := seed(ctx, userRepo, postRepo, commentRepo)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", users)
	log.Printf("  - Posts created: %d", posts)
	log.Printf("  - Comments created: %d", comments)
}

// seed inserts the fixture users with their posts and comments, skipping
// users that already exist so the script stays re-runnable.
func seed(
	ctx context.Context,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) (users, posts, comments int, err error) {
	for _, fixture := range fixtures {
		existing, err := userRepo.FindByEmail(ctx, fixture.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return users, posts, comments, err
		}
		if existing != nil {
			log.Printf("Skipping existing user %s", fixture.Email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(fixture.Password), 10)
		if err != nil {
			return users, posts, comments, err
		}
		user := &model.User{
			Email:        fixture.Email,
			FirstName:    fixture.FirstName,
			LastName:     fixture.LastName,
			PasswordHash: string(hashed),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return users, posts, comments, err
		}
		users++

		for _, p := range fixture.Posts {
			post := &model.Post{
				Title:       p.Title,
				Description: p.Description,
				OwnerID:     user.ID,
			}
			if err := postRepo.Create(ctx, post); err != nil {
				return users, posts, comments, err
			}
			posts++

			for _, text := range p.Comments {
				comment := &model.Comment{
					Text:    text,
					PostID:  post.ID,
					OwnerID: user.ID,
				}
				if err := commentRepo.Create(ctx, comment); err != nil {
					return users, posts, comments, err
				}
				comments++
			}
		}
	}
	return users, posts, comments, nil
}
