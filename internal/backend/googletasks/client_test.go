package googletasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"taskcli/internal/backend/googletasks"
	"taskcli/internal/config"
	"taskcli/internal/remote"
)

// fakeAPI serves the subset of the Tasks REST API used by the client.
type fakeAPI struct {
	lists   []map[string]any
	tasks   map[string][]map[string]any
	created []string
	status  int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		w.WriteHeader(f.status)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": f.status, "message": "nope"}})
		return
	}

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(path, "/users/@me/lists/@default"):
		_ = json.NewEncoder(w).Encode(f.lists[0])
	case strings.HasSuffix(path, "/users/@me/lists"):
		_ = json.NewEncoder(w).Encode(map[string]any{"items": f.lists})
	case strings.Contains(path, "/lists/") && strings.HasSuffix(path, "/tasks"):
		listID := strings.TrimSuffix(path[strings.Index(path, "/lists/")+len("/lists/"):], "/tasks")
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			var t map[string]any
			_ = json.Unmarshal(body, &t)
			f.created = append(f.created, listID+":"+t["title"].(string))
			_ = json.NewEncoder(w).Encode(t)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": f.tasks[listID]})
	default:
		http.NotFound(w, r)
	}
}

func newClient(t *testing.T, api *fakeAPI) *googletasks.Client {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	client, err := googletasks.NewWithHTTPClient(context.Background(), server.Client(), option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)
	return client
}

func testAPI() *fakeAPI {
	return &fakeAPI{
		lists: []map[string]any{
			{"id": "real-default", "title": "My Tasks"},
			{"id": "inbox-id", "title": "Inbox"},
			{"id": "dup-1", "title": "Work"},
			{"id": "dup-2", "title": " work "},
		},
		tasks: map[string][]map[string]any{
			"inbox-id": {
				{"id": "t1", "title": "buy milk", "status": "needsAction"},
			},
		},
	}
}

func TestClient_DefaultList(t *testing.T) {
	client := newClient(t, testAPI())

	list, err := client.DefaultList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, remote.TaskList{ID: "@default", Title: "My Tasks", IsDefault: true}, list)
}

func TestClient_ResolveList(t *testing.T) {
	client := newClient(t, testAPI())
	ctx := context.Background()

	list, err := client.ResolveList(ctx, "  inbox ")
	require.NoError(t, err)
	assert.Equal(t, remote.TaskList{ID: "inbox-id", Title: "Inbox"}, list)

	list, err = client.ResolveList(ctx, "my tasks")
	require.NoError(t, err)
	assert.Equal(t, "@default", list.ID)
	assert.True(t, list.IsDefault)

	_, err = client.ResolveList(ctx, "Nope")
	assert.True(t, errors.Is(err, remote.ErrListNotFound))

	_, err = client.ResolveList(ctx, "work")
	assert.True(t, errors.Is(err, remote.ErrListAmbiguous))
}

func TestClient_ListOpenTasks(t *testing.T) {
	client := newClient(t, testAPI())

	tasks, err := client.ListOpenTasks(context.Background(), "inbox-id", 1)
	require.NoError(t, err)
	assert.Equal(t, []remote.Task{{ID: "t1", Title: "buy milk", Status: "needsAction"}}, tasks)

	// no next page token, so page 2 is past the end
	tasks, err = client.ListOpenTasks(context.Background(), "inbox-id", 2)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClient_CreateTask(t *testing.T) {
	api := testAPI()
	client := newClient(t, api)

	require.NoError(t, client.CreateTask(context.Background(), "inbox-id", "walk dog"))
	assert.Equal(t, []string{"inbox-id:walk dog"}, api.created)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   string
		auth   bool
	}{
		{http.StatusUnauthorized, "auth error: token expired or revoked (run: taskcli login)", true},
		{http.StatusForbidden, "auth error: token expired or revoked (run: taskcli login)", true},
		{http.StatusNotFound, "not found", false},
	}

	for _, tt := range tests {
		api := testAPI()
		api.status = tt.status
		client := newClient(t, api)

		err := client.CreateTask(context.Background(), "inbox-id", "x")
		require.Error(t, err)
		assert.Equal(t, tt.want, err.Error(), "status %d", tt.status)
		assert.Equal(t, tt.auth, errors.Is(err, remote.ErrAuth), "status %d", tt.status)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}

	_, err := googletasks.New(context.Background(), cfg)
	require.ErrorIs(t, err, remote.ErrAuth)
	assert.Contains(t, err.Error(), "oauth_client.json not found")

	require.NoError(t, os.WriteFile(cfg.OAuthClientPath(), []byte("{}"), 0o600))

	_, err = googletasks.New(context.Background(), cfg)
	require.ErrorIs(t, err, remote.ErrAuth)
	assert.Equal(t, "auth error: not logged in (run: taskcli login)", err.Error())

	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte(`{"refresh_token":"r"}`), 0o600))

	_, err = googletasks.New(context.Background(), cfg)
	require.ErrorIs(t, err, remote.ErrAuth)
	assert.Contains(t, err.Error(), "invalid oauth_client.json")
}
