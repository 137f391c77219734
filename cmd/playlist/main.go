// Package main запускает демонстрацию библиотеки плейлистов.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"playlistbox/internal/config"
	"playlistbox/internal/service"
	"playlistbox/pkg/logger"

	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Path: cfg.LogPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	services, err := service.NewServices(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create services", zap.Error(err))
	}

	if err := run(ctx, services, os.Args[1:]); err != nil {
		log.Error("Command failed", zap.Error(err))
		_ = services.Close()
		os.Exit(1)
	}

	if err := services.Close(); err != nil {
		log.Error("Failed to close services", zap.Error(err))
	}
}

func run(ctx context.Context, services *service.Services, args []string) error {
	if len(args) == 0 {
		return runDemo(ctx, services.Playlist)
	}

	switch args[0] {
	case "demo":
		return runDemo(ctx, services.Playlist)
	case "show":
		if len(args) < 2 {
			return errors.New("usage: playlist show <file.json>...")
		}
		return runShow(services.Playlist, args[1:])
	case "spotify":
		if len(args) < 4 {
			return errors.New("usage: playlist spotify <items.json> <name> <genre>")
		}
		return runSpotify(services.Playlist, args[1], args[2], args[3])
	default:
		return fmt.Errorf("unknown command %q (expected demo, show or spotify)", args[0])
	}
}

// runDemo создает два плейлиста, выводит их и выгружает один в JSON
func runDemo(ctx context.Context, svc *service.PlaylistService) error {
	if _, err := svc.CreatePlaylist("Rock Classics"); err != nil {
		return err
	}
	if _, err := svc.CreatePlaylist("Tech Podcasts"); err != nil {
		return err
	}

	steps := []error{
		svc.AddSong("Rock Classics", "Bohemian Rhapsody", "Queen", 5.92, "Rock"),
		svc.AddSong("Rock Classics", "Stairway to Heaven", "Led Zeppelin", 8.02, "Rock"),
		svc.AddPodcastEpisode("Tech Podcasts", "AI Today", "Lex Fridman", 120.0, "Artificial Intelligence"),
		svc.AddPodcastEpisode("Tech Podcasts", "Future of Tech", "Joe Rogan", 90.5, "Technology"),
	}
	if err := errors.Join(steps...); err != nil {
		return err
	}

	for _, name := range svc.ListPlaylists() {
		p, _ := svc.GetPlaylist(name)
		if err := p.Render(os.Stdout); err != nil {
			return err
		}
	}

	path, err := svc.Export("Rock Classics")
	if err != nil {
		return err
	}
	fmt.Printf("Exported %q to %s\n", "Rock Classics", path)

	for _, name := range svc.ListPlaylists() {
		if err := svc.Save(ctx, name); err != nil {
			if errors.Is(err, service.ErrStorageDisabled) {
				break
			}
			return err
		}
	}
	return nil
}

// runShow импортирует файлы плейлистов и выводит их
func runShow(svc *service.PlaylistService, paths []string) error {
	for _, path := range paths {
		p, err := svc.Import(path)
		if err != nil {
			return err
		}
		if err := p.Render(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// runSpotify собирает плейлист из сохраненной страницы элементов плейлиста Spotify
func runSpotify(svc *service.PlaylistService, path, name, genre string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read spotify items: %w", err)
	}

	var page spotify.PlaylistItemPage
	if err := json.Unmarshal(data, &page); err != nil {
		return fmt.Errorf("failed to parse spotify items: %w", err)
	}

	p, skipped, err := svc.ImportSpotify(name, page.Items, genre)
	if err != nil {
		return err
	}
	if err := p.Render(os.Stdout); err != nil {
		return err
	}

	exported, err := svc.Export(name)
	if err != nil {
		return err
	}
	fmt.Printf("Skipped %d items, exported %q to %s\n", skipped, name, exported)
	return nil
}
