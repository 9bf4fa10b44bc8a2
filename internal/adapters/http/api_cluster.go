package httpserver

import (
	"net/http"

	"github.com/OliveiraNt/topicscope/internal/utils"
)

func (s *Server) apiListClusters(w http.ResponseWriter, _ *http.Request) {
	clusters := s.clusterService.ListClusters()
	utils.Logger.Debug("api list clusters", "count", len(clusters))
	writeJSON(w, http.StatusOK, clusters)
}
