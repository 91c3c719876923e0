package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/pkg/utils"
)

// SeedMasterData наполняет справочники: отделы, команды, категории, оборудование.
// Все вставки идемпотентны через ON CONFLICT DO NOTHING либо проверку наличия.
func SeedMasterData(ctx context.Context, db *pgxpool.Pool) error {
	for _, name := range departmentsData {
		if _, err := db.Exec(ctx,
			`INSERT INTO departments (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("сидер отделов: %w", err)
		}
	}
	log.Printf("Отделы: %d записей обработано", len(departmentsData))

	for _, team := range teamsData {
		if _, err := db.Exec(ctx, `
			INSERT INTO teams (name, department_id)
			SELECT $1, d.id FROM departments d
			WHERE d.name = $2
			  AND NOT EXISTS (SELECT 1 FROM teams t WHERE t.name = $1)`,
			team.Name, team.Department); err != nil {
			return fmt.Errorf("сидер команд: %w", err)
		}
	}
	log.Printf("Команды: %d записей обработано", len(teamsData))

	for _, name := range categoriesData {
		if _, err := db.Exec(ctx,
			`INSERT INTO equipment_categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("сидер категорий: %w", err)
		}
	}
	log.Printf("Категории оборудования: %d записей обработано", len(categoriesData))

	for _, eq := range equipmentsData {
		if _, err := db.Exec(ctx, `
			INSERT INTO equipments (name, category_id, department_id, team_id)
			SELECT $1, c.id, d.id, t.id
			FROM equipment_categories c, departments d, teams t
			WHERE c.name = $2 AND d.name = $3 AND t.name = $4
			  AND NOT EXISTS (SELECT 1 FROM equipments e WHERE e.name = $1)`,
			eq.Name, eq.Category, eq.Department, eq.Team); err != nil {
			return fmt.Errorf("сидер оборудования: %w", err)
		}
	}
	log.Printf("Оборудование: %d записей обработано", len(equipmentsData))

	return nil
}

// SeedUsers создает пользователей и профили техников.
func SeedUsers(ctx context.Context, db *pgxpool.Pool) error {
	for _, user := range usersData {
		hash, err := utils.HashPassword(user.Password)
		if err != nil {
			return fmt.Errorf("сидер пользователей: %w", err)
		}

		var userID uint64
		err = db.QueryRow(ctx, `
			INSERT INTO users (fio, login, password_hash, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (login) DO UPDATE SET fio = EXCLUDED.fio
			RETURNING id`,
			user.Fio, user.Login, hash, user.Role).Scan(&userID)
		if err != nil {
			return fmt.Errorf("сидер пользователей (%s): %w", user.Login, err)
		}

		if user.Team != "" {
			if _, err := db.Exec(ctx, `
				INSERT INTO technicians (user_id, team_id)
				SELECT $1, t.id FROM teams t WHERE t.name = $2
				ON CONFLICT (user_id) DO NOTHING`,
				userID, user.Team); err != nil {
				return fmt.Errorf("сидер техников (%s): %w", user.Login, err)
			}
		}
	}
	log.Printf("Пользователи: %d записей обработано", len(usersData))
	return nil
}
