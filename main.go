package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/OliveiraNt/topicscope/cmd"
	"github.com/OliveiraNt/topicscope/internal/application"
	"github.com/OliveiraNt/topicscope/internal/infrastructure/kafka"
	"github.com/OliveiraNt/topicscope/internal/infrastructure/repository"
	"github.com/OliveiraNt/topicscope/internal/utils"
	"github.com/joho/godotenv"
)

const appDir = "topicscope"

func findConfigPath() string {
	names := []string{"config.yml", "config.yaml"}
	candidates := []string{}

	for _, n := range names {
		candidates = append(candidates, "./"+n)
	}

	home, _ := os.UserHomeDir()
	var dirs []string
	if runtime.GOOS == "windows" {
		dirs = append(dirs, os.Getenv("APPDATA"), os.Getenv("PROGRAMDATA"))
		if home != "" {
			dirs = append(dirs, filepath.Join(home, appDir))
		}
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			dirs = append(dirs, filepath.Join(xdg, appDir))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".config", appDir), filepath.Join(home, "."+appDir))
		}
		dirs = append(dirs, filepath.Join("/etc", appDir))
	}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		for _, n := range names {
			candidates = append(candidates, filepath.Join(d, n))
		}
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	createPath := "./config.yml"
	if err := os.WriteFile(createPath, []byte("# topicscope configuration\nclusters: []\n"), 0644); err == nil {
		return createPath
	}
	return candidates[0]
}

func main() {
	_ = godotenv.Load()
	utils.InitLogger()

	configPath := os.Getenv("TOPICSCOPE_CONFIG")
	if configPath == "" {
		configPath = findConfigPath()
	}

	repo := repository.NewClusterRepository(configPath, kafka.NewFactory())
	defer repo.Close()

	if err := repo.LoadFromFile(); err != nil {
		utils.Logger.Warn("failed to load config file", "path", configPath, "err", err)
	} else {
		utils.Logger.Info("configuration loaded", "path", configPath)
	}

	clusterService := application.NewClusterService(repo)
	topicService := application.NewTopicService(clusterService)

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "describe" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := cmd.Describe(ctx, topicService, args[1:], os.Stdout)
		stop()
		if err != nil {
			repo.Close()
			utils.Logger.Fatal("describe failed", "err", err)
		}
		return
	}
	if len(args) > 0 && args[0] != "web" {
		utils.Logger.Fatal("unknown command", "cmd", args[0], "usage", "topicscope [web | describe <cluster> <topic> [-o json|yaml]]")
	}

	if err := repo.Watch(); err != nil {
		utils.Logger.Fatal("failed to start config watcher", "err", err)
	}
	cmd.StartWeb(clusterService, topicService)
}
