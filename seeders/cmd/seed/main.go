package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"maintenance-system/pkg/config"
	"maintenance-system/pkg/database/postgresql"
	"maintenance-system/seeders"
)

func main() {
	runMaster := flag.Bool("master", false, "Наполнить справочники (отделы, команды, категории, оборудование)")
	runUsers := flag.Bool("users", false, "Создать пользователей и профили техников")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runMaster && !*runUsers && !*runAll {
		log.Println("Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		log.Println("Пример: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	log.Println("Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	ctx := context.Background()

	if *runMaster || *runAll {
		if err := seeders.SeedMasterData(ctx, dbPool); err != nil {
			log.Fatalf("Ошибка сидера справочников: %v", err)
		}
	}
	if *runUsers || *runAll {
		if err := seeders.SeedUsers(ctx, dbPool); err != nil {
			log.Fatalf("Ошибка сидера пользователей: %v", err)
		}
	}

	log.Println("Сидеры успешно выполнены")
}
