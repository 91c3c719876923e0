package postgresql

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 10 * time.Second

// ConnectDB создает пул соединений и проверяет его пингом.
// Без БД сервису делать нечего, поэтому при ошибке - Fatal.
func ConnectDB(dsn string) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("Ошибка создания пула соединений к БД: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("БД недоступна: %v", err)
	}

	log.Println("✅ Подключено к PostgreSQL")
	return pool
}
