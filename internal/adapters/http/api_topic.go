package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/OliveiraNt/topicscope/internal/application"
	"github.com/OliveiraNt/topicscope/internal/domain"
	"github.com/OliveiraNt/topicscope/internal/utils"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type describeTopicsRequest struct {
	Topics []string `json:"topics"`
}

type topicsResponse struct {
	Cluster string   `json:"cluster"`
	Topics  []string `json:"topics"`
}

func (s *Server) apiListTopics(w http.ResponseWriter, r *http.Request) {
	clusterName := chi.URLParam(r, "clusterName")
	showInternal := r.URL.Query().Get("showInternal") == "true"

	topics, err := s.topicService.ListTopics(r.Context(), clusterName, showInternal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if topics == nil {
		topics = []string{}
	}
	writeJSON(w, http.StatusOK, topicsResponse{Cluster: clusterName, Topics: topics})
}

func (s *Server) apiDescribeTopic(w http.ResponseWriter, r *http.Request) {
	clusterName := chi.URLParam(r, "clusterName")
	topicName := chi.URLParam(r, "topicName")

	desc, err := s.topicService.DescribeTopic(r.Context(), clusterName, topicName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Logger.Debug("api describe topic", "cluster", clusterName, "topic", desc)
	writeJSON(w, http.StatusOK, desc)
}

func (s *Server) apiDescribeTopics(w http.ResponseWriter, r *http.Request) {
	clusterName := chi.URLParam(r, "clusterName")

	var req describeTopicsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		utils.Logger.Warn("api describe topics bad request", "cluster", clusterName, "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	descs, err := s.topicService.DescribeTopics(r.Context(), clusterName, req.Topics)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, descs)
}

// apiValidateTopicDescription decodes a posted description document and echoes
// it back in normalized form, or reports the offending key.
func (s *Server) apiValidateTopicDescription(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	desc, err := domain.TopicDescriptionFromJSON(doc)
	if err != nil {
		var de *domain.DecodeError
		if errors.As(err, &de) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Key: de.Key})
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, application.ErrClusterNotFound), errors.Is(err, application.ErrTopicNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrInvalidTopicName):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrClusterOffline):
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, err)
}
