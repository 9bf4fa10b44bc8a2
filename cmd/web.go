// Package cmd holds the topicscope entry points: the HTTP server and the
// one-shot describe command.
package cmd

import (
	"os"

	httpserver "github.com/OliveiraNt/topicscope/internal/adapters/http"
	"github.com/OliveiraNt/topicscope/internal/application"
	"github.com/OliveiraNt/topicscope/internal/utils"
)

// StartWeb serves the HTTP API until the listener fails.
func StartWeb(clusterService *application.ClusterService, topicService *application.TopicService) {
	server := httpserver.New(clusterService, topicService)
	port := os.Getenv("TOPICSCOPE_HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	utils.Logger.Info("HTTP API starting", "port", port)
	if err := server.Run(":" + port); err != nil {
		utils.Logger.Fatal("HTTP API terminated", "err", err)
	}
}
