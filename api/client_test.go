package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/fazhza18-web/japanese-game-code/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, func() string { return "test-token" }, zap.NewNop().Sugar())
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(model.User{ID: "u1"})
	})

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(model.AuthResponse{Token: "fresh"})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, func() string { return "" }, zap.NewNop().Sugar())
	if _, err := c.Login(context.Background(), model.Credentials{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q for an unauthenticated call, want none", gotAuth)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.ListPosts(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestClient_RequestErrorCarriesBackendMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"MessageField", `{"message":"content too long"}`, "content too long"},
		{"ErrorField", `{"error":"already friends"}`, "already friends"},
		{"NoBody", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tt.body))
			})

			_, err := c.CreatePost(context.Background(), "hello")
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("err = %v, want *RequestError", err)
			}
			if reqErr.Status != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", reqErr.Status)
			}
			if reqErr.Message != tt.want {
				t.Errorf("message = %q, want %q", reqErr.Message, tt.want)
			}
		})
	}
}

func TestClient_ConnectivityErrorNamesBaseURL(t *testing.T) {
	// A server that is already closed refuses the connection.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := New(baseURL, func() string { return "" }, zap.NewNop().Sugar())
	_, err := c.ListPosts(context.Background())

	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("err = %v, want *ConnectivityError", err)
	}
	if connErr.BaseURL != baseURL {
		t.Errorf("BaseURL = %q, want %q", connErr.BaseURL, baseURL)
	}
	if !strings.Contains(err.Error(), baseURL) {
		t.Errorf("error text %q does not name the base URL", err.Error())
	}
}

func TestClient_ListPosts(t *testing.T) {
	want := []model.Post{
		{ID: "p1", AuthorName: "Alice", Content: "first"},
		{ID: "p2", AuthorName: "Bob", Content: "second"},
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			t.Errorf("path = %q, want /api/posts", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		json.NewEncoder(w).Encode(want)
	})

	got, err := c.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("posts mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ListComments404MeansEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	got, err := c.ListComments(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListComments() error: %v, want nil on 404", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d comments, want 0", len(got))
	}
}

func TestClient_SearchUsersEscapesQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode([]model.SearchResult{})
	})

	if _, err := c.SearchUsers(context.Background(), "a b&c"); err != nil {
		t.Fatalf("SearchUsers() error: %v", err)
	}
	if gotQuery != "a b&c" {
		t.Errorf("server saw q = %q, want %q", gotQuery, "a b&c")
	}
}

func TestClient_React(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts/p1/reactions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body model.ReactionRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Reaction != "love" {
			t.Errorf("reaction = %q, want love", body.Reaction)
		}
		json.NewEncoder(w).Encode(model.ReactionSummary{
			Reactions:    map[string]int{"love": 1},
			UserReaction: "love",
		})
	})

	sum, err := c.React(context.Background(), "p1", "love")
	if err != nil {
		t.Fatalf("React() error: %v", err)
	}
	if sum.UserReaction != "love" || sum.Reactions["love"] != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestClient_SubmitScoreBody(t *testing.T) {
	var got model.GameScore
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/game/scores" || r.Method != http.MethodPost {
			t.Errorf("%s %s, want POST /api/game/scores", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	})

	want := model.GameScore{Score: 150, WordsTyped: 10, Difficulty: "medium"}
	if err := c.SubmitScore(context.Background(), want); err != nil {
		t.Fatalf("SubmitScore() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("score body mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_LeaderboardPaths(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]model.LeaderboardEntry{})
	})

	if _, err := c.Leaderboard(context.Background(), ""); err != nil {
		t.Fatalf("Leaderboard() error: %v", err)
	}
	if gotPath != "/api/game/leaderboard" {
		t.Errorf("overall path = %q", gotPath)
	}

	if _, err := c.Leaderboard(context.Background(), "hard"); err != nil {
		t.Fatalf("Leaderboard(hard) error: %v", err)
	}
	if gotPath != "/api/game/leaderboard/hard" {
		t.Errorf("difficulty path = %q", gotPath)
	}
}

func TestClient_MyBestScore404MeansNone(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	best, err := c.MyBestScore(context.Background())
	if err != nil {
		t.Fatalf("MyBestScore() error: %v, want nil on 404", err)
	}
	if best != nil {
		t.Errorf("best = %+v, want nil", best)
	}
}
