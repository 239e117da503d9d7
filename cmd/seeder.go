package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo user and default categories for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"transactions", "budgets", "categories", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		demoEmail := "demo@mail.com"
		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", demoEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("demo user already exists:", demoEmail)
		} else {
			if err := db.Exec(
				"INSERT INTO users (email, password_hash, first_name, last_name, roles, created_at) VALUES (?, ?, ?, ?, ?, now())",
				demoEmail, string(hash), "Demo", "User", `["user"]`,
			).Error; err != nil {
				log.Fatalf("failed to insert demo user: %v", err)
			}
			fmt.Println("Seeded demo user:", demoEmail)
		}

		var demoUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", demoEmail).Row().Scan(&demoUserID); err != nil {
			log.Fatalf("failed to lookup demo user id: %v", err)
		}

		categories := []struct {
			Name string
			Type string
			Desc string
		}{
			{"Salary", "income", "Monthly salary"},
			{"Freelance", "income", "Side projects and freelance work"},
			{"Food", "expense", "Groceries and eating out"},
			{"Transport", "expense", "Public transport and fuel"},
			{"Housing", "expense", "Rent and utilities"},
			{"Entertainment", "expense", "Movies, games and hobbies"},
			{"Other", "expense", "Everything else"},
		}

		for _, c := range categories {
			var exists int
			row := db.Raw("SELECT 1 FROM categories WHERE user_id = ? AND name = ? AND type = ?", demoUserID, c.Name, c.Type).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec(
					"INSERT INTO categories (user_id, name, type, description, created_at) VALUES (?, ?, ?, ?, now())",
					demoUserID, c.Name, c.Type, c.Desc,
				).Error; err != nil {
					log.Fatalf("failed to insert category %s: %v", c.Name, err)
				}
				fmt.Printf("Seeded category: %s (%s)\n", c.Name, c.Type)
			}
		}

		fmt.Println("Seeding complete")
	},
}
