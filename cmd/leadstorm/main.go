package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/browser"

	"github.com/octobees/leadstorm/internal/auth"
	"github.com/octobees/leadstorm/internal/client"
	"github.com/octobees/leadstorm/internal/config"
	"github.com/octobees/leadstorm/internal/handler"
	"github.com/octobees/leadstorm/internal/logger"
	middlewarepkg "github.com/octobees/leadstorm/internal/middleware"
	"github.com/octobees/leadstorm/internal/router"
	"github.com/octobees/leadstorm/internal/service"
)

func main() {
	log := logger.New(os.Stderr)

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	sheetsClient, err := client.NewSheetsClient(context.Background(), cfg.GoogleCreds)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up google sheets")
	}

	source, err := client.NewFacebookSource(nil, "", cfg.FacebookGroup)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up facebook source")
	}

	var scorer service.Scorer
	if openAI, err := client.NewOpenAIScorer(cfg.OpenAIKey, "", nil, log); err != nil {
		log.Error().Err(err).Msg("openai scorer unavailable, no leads will qualify")
	} else {
		scorer = openAI
	}
	hunter := client.NewHunterClient(nil, "", cfg.HunterKey, log)

	pipeline := service.NewPipeline(
		service.NewCollector(source, cfg.Pages, cfg.LeadsPerRun, log),
		service.NewQualifier(scorer, service.NewRatePacer(cfg.Pace), cfg.LeadsPerRun, log),
		service.NewEnricher(hunter, service.NewRatePacer(cfg.Pace), cfg.PhoneRegion, log),
		service.NewPublisher(sheetsClient, log),
		log,
	)

	runCtx, stopRuns := context.WithCancel(context.Background())
	defer stopRuns()
	runs := service.NewRunManager(runCtx, pipeline, browser.OpenURL, log)

	sessions, err := auth.NewRandomSessionManager(12 * time.Hour)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session manager")
	}
	token, err := sessions.GenerateToken("local-user")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to issue session token")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, sessions, router.Handlers{
		Form: handler.NewFormHandler(),
		Runs: handler.NewRunHandler(runs, log),
	})

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.ListenAddr).Msg("failed to listen")
	}
	e.Listener = listener

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(cfg.ListenAddr)
	}()

	formURL := fmt.Sprintf("http://%s/?token=%s", listener.Addr().String(), url.QueryEscape(token))
	log.Info().Str("url", formURL).Msg("form ready")
	if err := browser.OpenURL(formURL); err != nil {
		log.Warn().Err(err).Msg("could not open browser, open the form url manually")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	stopRuns()
	if err := runs.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("run did not stop in time")
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
