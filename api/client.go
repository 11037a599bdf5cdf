package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/fazhza18-web/japanese-game-code/model"
)

// listPostsTimeout bounds the feed fetch. Other calls rely on the
// transport's default behavior.
const listPostsTimeout = 10 * time.Second

// Client is the gateway to the backend REST API. It attaches the bearer
// token to every request and maps HTTP failures onto the client's error
// taxonomy; it holds no entity state of its own.
type Client struct {
	http    *http.Client
	baseURL string
	token   func() string
	log     *zap.SugaredLogger
}

// New builds a client for the API at baseURL. token is called per request
// so a login/logout mid-session is picked up immediately.
func New(baseURL string, token func() string, log *zap.SugaredLogger) *Client {
	return &Client{
		http:    &http.Client{},
		baseURL: baseURL,
		token:   token,
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("request failed", "method", method, "path", path, "error", err)
		return &ConnectivityError{BaseURL: c.baseURL, Err: err}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode >= 400:
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		msg := payload.Message
		if msg == "" {
			msg = payload.Error
		}
		c.log.Warnw("backend error", "method", method, "path", path, "status", res.StatusCode, "message", msg)
		return &RequestError{Status: res.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// Auth

func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", reg, &out)
	return out, err
}

// Users

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/api/user/me", nil, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, update model.ProfileUpdate) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, "/api/user/"+id, update, &out)
	return out, err
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]model.SearchResult, error) {
	var out []model.SearchResult
	err := c.do(ctx, http.MethodGet, "/api/users/search?q="+url.QueryEscape(query), nil, &out)
	return out, err
}

// Posts

func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, listPostsTimeout)
	defer cancel()

	var out []model.Post
	err := c.do(ctx, http.MethodGet, "/api/posts", nil, &out)
	return out, err
}

func (c *Client) MyPosts(ctx context.Context) ([]model.Post, error) {
	var out []model.Post
	err := c.do(ctx, http.MethodGet, "/api/posts/my", nil, &out)
	return out, err
}

func (c *Client) CreatePost(ctx context.Context, content string) (model.Post, error) {
	var out model.Post
	err := c.do(ctx, http.MethodPost, "/api/posts", model.PostContent{Content: content}, &out)
	return out, err
}

func (c *Client) UpdatePost(ctx context.Context, id, content string) (model.Post, error) {
	var out model.Post
	err := c.do(ctx, http.MethodPut, "/api/posts/"+id, model.PostContent{Content: content}, &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+id, nil, nil)
}

func (c *Client) PostHistory(ctx context.Context, id string) ([]model.EditHistory, error) {
	var out []model.EditHistory
	err := c.do(ctx, http.MethodGet, "/api/posts/"+id+"/history", nil, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return out, err
}

// Comments. A 404 from the list endpoint means the post has none.

func (c *Client) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	var out []model.Comment
	err := c.do(ctx, http.MethodGet, "/api/posts/"+postID+"/comments", nil, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return out, err
}

func (c *Client) AddComment(ctx context.Context, postID, content string) (model.Comment, error) {
	var out model.Comment
	err := c.do(ctx, http.MethodPost, "/api/posts/"+postID+"/comments", model.PostContent{Content: content}, &out)
	return out, err
}

func (c *Client) UpdateComment(ctx context.Context, id, content string) (model.Comment, error) {
	var out model.Comment
	err := c.do(ctx, http.MethodPut, "/api/comments/"+id, model.PostContent{Content: content}, &out)
	return out, err
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+id, nil, nil)
}

// Reactions. The response is the single source of truth for the resulting
// counts and the user's own reaction; the same kind twice toggles it off.

func (c *Client) Reactions(ctx context.Context, postID string) (model.ReactionSummary, error) {
	var out model.ReactionSummary
	err := c.do(ctx, http.MethodGet, "/api/posts/"+postID+"/reactions", nil, &out)
	return out, err
}

func (c *Client) React(ctx context.Context, postID, kind string) (model.ReactionSummary, error) {
	var out model.ReactionSummary
	err := c.do(ctx, http.MethodPost, "/api/posts/"+postID+"/reactions", model.ReactionRequest{Reaction: kind}, &out)
	return out, err
}

// Friends

func (c *Client) SendFriendRequest(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/api/friends/"+userID, nil, nil)
}

func (c *Client) AcceptFriendRequest(ctx context.Context, requestID string) error {
	return c.do(ctx, http.MethodPost, "/api/friends/accept/"+requestID, nil, nil)
}

func (c *Client) RejectFriendRequest(ctx context.Context, requestID string) error {
	return c.do(ctx, http.MethodPost, "/api/friends/reject/"+requestID, nil, nil)
}

func (c *Client) BlockUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/api/friends/block/"+userID, nil, nil)
}

func (c *Client) UnblockUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/api/friends/unblock/"+userID, nil, nil)
}

func (c *Client) RemoveFriend(ctx context.Context, friendID string) error {
	return c.do(ctx, http.MethodDelete, "/api/friends/"+friendID, nil, nil)
}

func (c *Client) Friends(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.do(ctx, http.MethodGet, "/api/friends", nil, &out)
	return out, err
}

func (c *Client) PendingRequests(ctx context.Context) ([]model.FriendRequest, error) {
	var out []model.FriendRequest
	err := c.do(ctx, http.MethodGet, "/api/friends/pending", nil, &out)
	return out, err
}

func (c *Client) BlockedUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.do(ctx, http.MethodGet, "/api/friends/blocked", nil, &out)
	return out, err
}

// Conversations

func (c *Client) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var out []model.Conversation
	err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &out)
	return out, err
}

func (c *Client) StartConversation(ctx context.Context, userID string) (model.Conversation, error) {
	var out model.Conversation
	err := c.do(ctx, http.MethodPost, "/api/conversations/start/"+userID, nil, &out)
	return out, err
}

func (c *Client) Messages(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	var out []model.Message
	path := fmt.Sprintf("/api/conversations/%s/messages?limit=%d", conversationID, limit)
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) SendMessage(ctx context.Context, conversationID, content string) (model.Message, error) {
	var out model.Message
	err := c.do(ctx, http.MethodPost, "/api/conversations/"+conversationID+"/messages", model.PostContent{Content: content}, &out)
	return out, err
}

func (c *Client) MarkRead(ctx context.Context, conversationID string) error {
	return c.do(ctx, http.MethodPost, "/api/conversations/"+conversationID+"/read", nil, nil)
}

// Game

func (c *Client) SubmitScore(ctx context.Context, score model.GameScore) error {
	return c.do(ctx, http.MethodPost, "/api/game/scores", score, nil)
}

// Leaderboard returns the ranked list for a difficulty; an empty
// difficulty means the overall board. Order is decided by the backend.
func (c *Client) Leaderboard(ctx context.Context, difficulty string) ([]model.LeaderboardEntry, error) {
	path := "/api/game/leaderboard"
	if difficulty != "" {
		path += "/" + difficulty
	}
	var out []model.LeaderboardEntry
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// MyBestScore returns nil when the user has no recorded score yet.
func (c *Client) MyBestScore(ctx context.Context) (*model.GameScore, error) {
	var out model.GameScore
	err := c.do(ctx, http.MethodGet, "/api/game/my-best", nil, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
