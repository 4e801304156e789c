package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// CLI flags
var (
	dsn      = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	password = flag.String("password", "DevPass123!", "Password to set on every seeded account")
	dryRun   = flag.Bool("dry-run", false, "Print the plan; no DB writes")
)

type seedUser struct {
	email    string
	username string
	role     string
	approved bool
}

var seedUsers = []seedUser{
	{"admin@careerprix.dev", "admin", "admin", true},
	{"student@careerprix.dev", "demo-student", "student", true},
	{"company@careerprix.dev", "demo-company", "company", true},
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	if *dryRun {
		for _, u := range seedUsers {
			fmt.Printf("would seed %s (%s)\n", u.email, u.role)
		}
		fmt.Println("would seed 2 published jobs and 1 contest")
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fatalf("bcrypt: %v", err)
	}

	ids := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		id := uuid.NewString()
		ids[u.role] = id
		_, err := tx.ExecContext(ctx, `
			INSERT INTO app_auth.users (user_id, email, username, hashed_password, role, approved)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (email) DO NOTHING`,
			id, u.email, u.username, string(hashed), u.role, u.approved)
		if err != nil {
			fatalf("insert user %s: %v", u.email, err)
		}
	}

	jobs := []struct {
		title    string
		location string
	}{
		{"Backend Engineer (New Grad)", "Tokyo"},
		{"Data Analyst Intern", "Remote"},
	}
	for _, j := range jobs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO jobs.jobs (id, company_id, title, description, location, tags, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 'published', now(), now())
			ON CONFLICT DO NOTHING`,
			uuid.NewString(), ids["company"], j.title, "Seeded demo posting", j.location, "{go,sql}")
		if err != nil {
			fatalf("insert job %s: %v", j.title, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO grandprix.contests (id, title, description, skills, starts_at, ends_at, created_at)
		VALUES ($1, 'Algorithm Grand Prix', 'Seeded demo contest', '{algorithms,go}', now(), now() + interval '30 days', now())
		ON CONFLICT DO NOTHING`,
		uuid.NewString())
	if err != nil {
		fatalf("insert contest: %v", err)
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}

	fmt.Printf("Seeded %d users, %d jobs, 1 contest\n", len(seedUsers), len(jobs))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
