package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rajivgeraev/ads-service/internal/app"
	"github.com/rajivgeraev/ads-service/internal/config"
	"github.com/rajivgeraev/ads-service/internal/db"
	"github.com/rajivgeraev/ads-service/internal/repositories/memory"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка загрузки конфигурации")
	}

	setupLogger(cfg)

	var repos app.Repositories
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn().Msg("Данные хранятся в памяти и пропадут после остановки")
		repos = app.MemoryRepositories(memory.New())
	default:
		if cfg.AutoMigrate {
			if err := db.Migrate(cfg.DatabaseURL); err != nil {
				log.Fatal().Err(err).Msg("Ошибка миграции базы данных")
			}
		}

		// Инициализируем базу данных
		pool, err := db.InitDB(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Ошибка при инициализации базы данных")
		}
		defer pool.Close()

		repos = app.PostgresRepositories(pool)
	}

	server := app.New(cfg, repos)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("Сервис объявлений запущен")
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("Сервер остановлен с ошибкой")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Завершение работы")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Ошибка при остановке сервера")
	}
}

// setupLogger настраивает zerolog: уровень из LOG_LEVEL, консольный вывод вне production
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
