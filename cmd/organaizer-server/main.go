// organAizer server
// Точка входа: конфигурация, AI провайдер, HTTP сервер, graceful shutdown.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/beatercode/organAizer-server/pkg/api"
	"github.com/beatercode/organAizer-server/pkg/config"
	"github.com/beatercode/organAizer-server/pkg/llm"
	"github.com/beatercode/organAizer-server/pkg/llm/openai"
	"github.com/beatercode/organAizer-server/pkg/organizer"
	"github.com/beatercode/organAizer-server/pkg/utils"
)

// shutdownGrace — сколько ждём завершения активных запросов при остановке.
const shutdownGrace = 10 * time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "organaizer-server",
		Short: "HTTP service that suggests how to organize a folder tree",
		Long: "organAizer server accepts a folder tree description and returns\n" +
			"category, rename, organization and search suggestions - AI-assisted\n" +
			"when configured, deterministic fallbacks otherwise.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config.yaml")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// 0. Инициализируем логгер
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}

	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	// 1. Конфигурация
	cfg, err := config.Load(configPath)
	if err != nil {
		utils.Error("Failed to load config", "error", err, "path", configPath)
		return err
	}
	utils.SetDebug(cfg.App.Debug)
	utils.Info("Config loaded", "path", configPath, "port", cfg.Server.Port, "ai_enabled", cfg.AI.Enabled())

	// 2. AI провайдер (nil когда ключ не задан — всё работает на fallback)
	var provider llm.Provider
	if cfg.AI.Enabled() {
		provider = openai.NewClient(cfg.AI)
	}

	// 3. Собираем сервис
	org := organizer.New(cfg, provider)
	srv := api.NewServer(cfg, org)

	printBanner(cfg)

	// 4. Запускаем сервер; ждём сигнал или ошибку запуска
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// 5. Graceful shutdown
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(stopCtx)
}

// printBanner печатает стартовую сводку в терминал.
func printBanner(cfg *config.AppConfig) {
	fmt.Println(titleStyle.Render("organAizer server " + api.Version))
	fmt.Println(infoStyle.Render(fmt.Sprintf("  listening on :%d", cfg.Server.Port)))
	if cfg.AI.Enabled() {
		fmt.Println(infoStyle.Render("  AI: enabled, model " + cfg.AI.Model))
	} else {
		fmt.Println(warnStyle.Render("  AI: disabled (no api key), deterministic fallbacks only"))
	}
}
