package worker

import (
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPQueue_Enqueue(t *testing.T) {
	var got model.TranscodeTask
	var token string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = r.Header.Get(consts.WorkerTokenHeader)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	q := NewHTTPQueue(srv.URL, "secret")
	err := q.Enqueue(context.Background(), &model.TranscodeTask{VideoID: 3, PublicID: "p", MaxAttempts: 3})
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
	assert.EqualValues(t, 3, got.VideoID)
	assert.Equal(t, 3, got.MaxAttempts)
}

func TestHTTPQueue_WorkerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewHTTPQueue(srv.URL, "").Enqueue(context.Background(), &model.TranscodeTask{VideoID: 1})
	assert.Error(t, err)
}
