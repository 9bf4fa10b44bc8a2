package httpserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OliveiraNt/topicscope/internal/application"
	"github.com/OliveiraNt/topicscope/internal/testutil"
	"github.com/OliveiraNt/topicscope/internal/utils"
)

// buildServer builds a Server backed by an in-memory repository holding a
// single "dev" cluster served by the returned fake client.
func buildServer(t *testing.T) (*Server, *testutil.FakeClusterRepository, *testutil.FakeKafkaClient) {
	t.Helper()
	utils.InitLogger()
	repo := testutil.NewFakeClusterRepository()
	fake := testutil.NewFakeKafkaClient()
	repo.AddCluster("dev", fake)
	clusterSvc := application.NewClusterService(repo)
	topicSvc := application.NewTopicService(clusterSvc)
	return New(clusterSvc, topicSvc), repo, fake
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
