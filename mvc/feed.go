package mvc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/api"
	"github.com/fazhza18-web/japanese-game-code/feed"
	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

type feedFocus int

const (
	focusList feedFocus = iota
	focusComposer
	focusComment
	focusEdit
)

type FeedPage struct {
	sync     *feed.Synchronizer
	viewport viewport.Model
	composer textarea.Model
	editbox  textarea.Model
	comment  textinput.Model

	focus         feedFocus
	cursor        int
	commentCursor int
	loading       bool
	msg           string

	pickerPost   string
	pickerCursor int
	pickerSeq    int

	confirmDelete string

	historyPost string
	history     []model.EditHistory

	ctx *Ctx
}

func InitialFeedModel(ctx *Ctx) FeedPage {
	m := FeedPage{ctx: ctx}

	m.sync = feed.NewSynchronizer()
	m.loading = true

	m.viewport = viewport.New(80, 16)

	m.composer = textarea.New()
	m.composer.Placeholder = "What's on your mind?"
	m.composer.Prompt = "┃ "
	m.composer.CharLimit = 280
	m.composer.ShowLineNumbers = false
	m.composer.SetHeight(3)
	m.composer.SetWidth(80)

	m.editbox = textarea.New()
	m.editbox.Prompt = "┃ "
	m.editbox.CharLimit = 280
	m.editbox.ShowLineNumbers = false
	m.editbox.SetHeight(3)
	m.editbox.SetWidth(80)

	m.comment = textinput.New()
	m.comment.Placeholder = "Write a comment..."

	return m
}

func (m FeedPage) Init() tea.Cmd {
	return tea.Batch(
		listPostsCmd(m.ctx, false),
		message.SendTimedMessage(message.FeedTickMsg{}, feed.RefreshInterval),
	)
}

func (m FeedPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.focus {
	case focusComposer:
		m.composer, cmd = m.composer.Update(msg)
		cmds = append(cmds, cmd)
	case focusEdit:
		m.editbox, cmd = m.editbox.Update(msg)
		cmds = append(cmds, cmd)
	case focusComment:
		m.comment, cmd = m.comment.Update(msg)
		cmds = append(cmds, cmd)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var next tea.Model
		next, cmd = m.handleKey(msg)
		if next != nil {
			return next, cmd
		}
		cmds = append(cmds, cmd)

	case message.FeedTickMsg:
		cmds = append(cmds,
			listPostsCmd(m.ctx, true),
			message.SendTimedMessage(message.FeedTickMsg{}, feed.RefreshInterval),
		)

	case message.PostsMsg:
		m.loading = false
		replaced := true
		if msg.Silent {
			replaced = m.sync.ApplySilent(msg.Posts)
		} else {
			m.sync.Replace(msg.Posts)
		}
		if replaced {
			if m.cursor >= len(msg.Posts) {
				m.cursor = 0
			}
			for _, p := range msg.Posts {
				cmds = append(cmds, reactionsCmd(m.ctx, p.ID))
			}
		}

	case message.PostCreatedMsg:
		m.sync.Prepend(model.Post(msg))
		m.composer.Reset()
		m.focus = focusList
		m.viewport.GotoTop()
		m.cursor = 0
		m.msg = "posted"

	case message.PostUpdatedMsg:
		m.sync.MergePost(model.Post(msg))
		m.sync.EndPostEdit()
		m.focus = focusList
		m.msg = "post updated"

	case message.PostDeletedMsg:
		m.sync.Remove(msg.ID)
		if m.cursor >= len(m.sync.Posts()) && m.cursor > 0 {
			m.cursor--
		}
		m.msg = "post deleted"

	case message.ReactionsMsg:
		m.sync.SetReactions(msg.PostID, msg.Summary)

	case message.PickerHideMsg:
		if m.pickerPost == msg.PostID && m.pickerSeq == msg.Seq {
			m.pickerPost = ""
		}

	case message.CommentsMsg:
		m.sync.SetComments(msg.PostID, msg.Comments)
		m.commentCursor = 0

	case message.CommentAddedMsg:
		m.sync.AppendComment(model.Comment(msg))
		m.comment.Reset()
		m.focus = focusList

	case message.CommentUpdatedMsg:
		m.sync.MergeComment(model.Comment(msg))
		m.sync.EndCommentEdit()
		m.focus = focusList
		m.msg = "comment updated"

	case message.CommentDeletedMsg:
		m.sync.RemoveComment(msg.PostID, msg.ID)
		if m.commentCursor > 0 {
			m.commentCursor--
		}

	case message.HistoryMsg:
		m.historyPost = msg.PostID
		m.history = msg.Entries

	case message.ErrMsg:
		m.loading = false
		var conn *api.ConnectivityError
		if errors.As(msg.Err, &conn) {
			// Connectivity notice plus an empty list, never stale data.
			m.sync.Replace(nil)
		}
		m.msg = msg.Err.Error()

	case message.AuthExpiredMsg:
		return expireSession(m.ctx)

	case message.ResetMsg:
		m.msg = ""
	}

	m.viewport.SetContent(m.renderPosts())

	if m.msg != "" {
		cmds = append(cmds, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second))
	}

	return m, tea.Batch(cmds...)
}

func (m *FeedPage) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Delete confirmation takes priority over everything else.
	if m.confirmDelete != "" {
		switch key {
		case "y":
			id := m.confirmDelete
			m.confirmDelete = ""
			return nil, deletePostCmd(m.ctx, id)
		case "n", "esc":
			m.confirmDelete = ""
		}
		return nil, nil
	}

	if m.historyPost != "" {
		if key == "esc" || key == "h" || key == "q" {
			m.historyPost = ""
			m.history = nil
		}
		return nil, nil
	}

	switch m.focus {
	case focusComposer:
		switch key {
		case "esc":
			m.focus = focusList
			m.composer.Blur()
		case "ctrl+s":
			content := strings.TrimSpace(m.composer.Value())
			if content == "" {
				break
			}
			return nil, createPostCmd(m.ctx, content)
		}
		return nil, nil

	case focusEdit:
		switch key {
		case "esc":
			m.focus = focusList
			m.editbox.Blur()
			m.sync.EndPostEdit()
			m.sync.EndCommentEdit()
		case "ctrl+s":
			content := strings.TrimSpace(m.editbox.Value())
			if content == "" {
				break
			}
			if edit := m.sync.PostEdit(); edit != nil {
				return nil, updatePostCmd(m.ctx, edit.ID, content)
			}
			if edit := m.sync.CommentEdit(); edit != nil {
				return nil, updateCommentCmd(m.ctx, m.sync.Expanded(), edit.ID, content)
			}
		}
		return nil, nil

	case focusComment:
		switch key {
		case "esc":
			m.focus = focusList
			m.comment.Blur()
		case "enter":
			content := strings.TrimSpace(m.comment.Value())
			if content == "" || m.sync.Expanded() == "" {
				break
			}
			return nil, addCommentCmd(m.ctx, m.sync.Expanded(), content)
		}
		return nil, nil
	}

	// List focus.
	if m.pickerPost != "" {
		switch key {
		case "left":
			if m.pickerCursor > 0 {
				m.pickerCursor--
			}
			return nil, nil
		case "right":
			if m.pickerCursor < len(feed.ReactionKinds)-1 {
				m.pickerCursor++
			}
			return nil, nil
		case "enter":
			postID := m.pickerPost
			m.pickerPost = ""
			return nil, reactCmd(m.ctx, postID, feed.ReactionKinds[m.pickerCursor])
		case "esc", "r":
			// Delayed hide; reopening within the window keeps it up.
			return nil, message.SendTimedMessage(
				message.PickerHideMsg{PostID: m.pickerPost, Seq: m.pickerSeq},
				feed.PickerHideDelay,
			)
		}
	}

	switch key {
	case "ctrl+c":
		return nil, tea.Quit
	case "left":
		return InitialHomeModel(m.ctx), nil
	case "down", "j":
		if m.cursor < len(m.sync.Posts())-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		m.focus = focusComposer
		m.composer.Focus()
	case "ctrl+r":
		m.loading = true
		return nil, listPostsCmd(m.ctx, false)
	case "r":
		if p := m.selected(); p != nil {
			m.pickerPost = p.ID
			m.pickerSeq++
			m.pickerCursor = 0
		}
	case "c":
		if p := m.selected(); p != nil {
			if m.sync.ToggleExpanded(p.ID) {
				return nil, listCommentsCmd(m.ctx, p.ID)
			}
		}
	case "a":
		if m.sync.Expanded() != "" {
			m.focus = focusComment
			m.comment.Focus()
		}
	case "e":
		if p := m.selected(); p != nil && m.ownPost(p) {
			if m.sync.StartPostEdit(p.ID) {
				m.editbox.SetValue(p.Content)
				m.editbox.Focus()
				m.focus = focusEdit
			}
		}
	case "d":
		if p := m.selected(); p != nil && m.ownPost(p) {
			m.confirmDelete = p.ID
		}
	case "h":
		if p := m.selected(); p != nil {
			return nil, historyCmd(m.ctx, p.ID)
		}
	case "J":
		if list, ok := m.expandedComments(); ok && m.commentCursor < len(list)-1 {
			m.commentCursor++
		}
	case "K":
		if m.commentCursor > 0 {
			m.commentCursor--
		}
	case "E":
		if c := m.selectedComment(); c != nil && c.AuthorID == m.ctx.Session.User().ID {
			if m.sync.StartCommentEdit(c.PostID, c.ID) {
				m.editbox.SetValue(c.Content)
				m.editbox.Focus()
				m.focus = focusEdit
			}
		}
	case "D":
		if c := m.selectedComment(); c != nil && c.AuthorID == m.ctx.Session.User().ID {
			return nil, deleteCommentCmd(m.ctx, c.PostID, c.ID)
		}
	}

	return nil, nil
}

func (m *FeedPage) selected() *model.Post {
	posts := m.sync.Posts()
	if m.cursor < 0 || m.cursor >= len(posts) {
		return nil
	}
	return &posts[m.cursor]
}

func (m *FeedPage) ownPost(p *model.Post) bool {
	return p.Author == m.ctx.Session.User().ID
}

func (m *FeedPage) expandedComments() ([]model.Comment, bool) {
	if m.sync.Expanded() == "" {
		return nil, false
	}
	return m.sync.Comments(m.sync.Expanded())
}

func (m *FeedPage) selectedComment() *model.Comment {
	list, ok := m.expandedComments()
	if !ok || m.commentCursor < 0 || m.commentCursor >= len(list) {
		return nil
	}
	return &list[m.commentCursor]
}

func (m *FeedPage) renderPosts() string {
	posts := m.sync.Posts()
	if m.loading {
		return "Loading posts..."
	}
	if len(posts) == 0 {
		return "No posts yet. Press 'n' to write the first one."
	}

	var b strings.Builder
	for i, p := range posts {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("▌") + " "
		}

		header := fmt.Sprintf("%s · %s", p.AuthorName, p.CreatedAt.Format("02 Jan 15:04"))
		if p.Edited() {
			header += " · edited"
		}
		b.WriteString(marker + titleStyle.Render(header) + "\n")
		b.WriteString("  " + p.Content + "\n")

		b.WriteString("  " + renderReactions(p) + fmt.Sprintf(" · %d comments", p.Comments) + "\n")

		if m.pickerPost == p.ID {
			b.WriteString("  " + m.renderPicker() + "\n")
		}

		if m.sync.Expanded() == p.ID {
			b.WriteString(m.renderComments(p.ID))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderReactions(p model.Post) string {
	if len(p.Reactions) == 0 {
		return "no reactions"
	}
	parts := make([]string, 0, len(p.Reactions))
	for _, kind := range feed.ReactionKinds {
		if n := p.Reactions[kind]; n > 0 {
			label := fmt.Sprintf("%s %d", kind, n)
			if kind == p.UserReaction {
				label = cursorStyle.Render(label)
			}
			parts = append(parts, label)
		}
	}
	if len(parts) == 0 {
		return "no reactions"
	}
	return strings.Join(parts, "  ")
}

func (m *FeedPage) renderPicker() string {
	parts := make([]string, len(feed.ReactionKinds))
	for i, kind := range feed.ReactionKinds {
		if i == m.pickerCursor {
			parts[i] = cursorStyle.Render(kind)
		} else {
			parts[i] = kind
		}
	}
	return "react: " + strings.Join(parts, " ")
}

func (m *FeedPage) renderComments(postID string) string {
	list, ok := m.sync.Comments(postID)
	if !ok {
		return "    loading comments...\n"
	}
	if len(list) == 0 {
		return "    no comments\n"
	}
	var b strings.Builder
	for i, c := range list {
		marker := "    "
		if i == m.commentCursor {
			marker = "   " + cursorStyle.Render("▌")
		}
		edited := ""
		if c.UpdatedAt != nil && !c.UpdatedAt.Equal(c.CreatedAt) {
			edited = " (edited)"
		}
		b.WriteString(fmt.Sprintf("%s%s: %s%s\n", marker, c.AuthorName, c.Content, edited))
	}
	return b.String()
}

func (m FeedPage) View() string {
	s := titleStyle.Render("Feed") + "\n"

	s += "_________________________\n"
	s += m.viewport.View() + "\n"
	s += "‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾\n"

	switch m.focus {
	case focusComposer:
		s += fmt.Sprintf("Post as %s:\n", m.ctx.Session.User().Name)
		s += m.composer.View() + "\n"
		s += faintStyle.Render("ctrl+s to post · esc to cancel") + "\n"
	case focusEdit:
		s += "Edit:\n"
		s += m.editbox.View() + "\n"
		s += faintStyle.Render("ctrl+s to save · esc to cancel") + "\n"
	case focusComment:
		s += m.comment.View() + "\n"
		s += faintStyle.Render("enter to comment · esc to cancel") + "\n"
	default:
		s += faintStyle.Render("n new · r react · c comments · a comment · e edit · d delete · h history · left back") + "\n"
	}

	if m.confirmDelete != "" {
		s += errorStyle.Render("Delete this post? y/n") + "\n"
	}

	if m.historyPost != "" {
		s += m.renderHistory()
	}

	if m.msg != "" {
		s += fmt.Sprintf("Info: %s\n", m.msg)
	}

	return s
}

func (m FeedPage) renderHistory() string {
	s := "\n" + titleStyle.Render("Edit history") + "\n"
	if len(m.history) == 0 {
		return s + "  no revisions\n" + faintStyle.Render("esc to close") + "\n"
	}
	for _, h := range m.history {
		s += fmt.Sprintf("  %s: %q → %q\n", h.CreatedAt.Format("02 Jan 15:04"), h.OldContent, h.NewContent)
	}
	return s + faintStyle.Render("esc to close") + "\n"
}

// Commands

func listPostsCmd(ctx *Ctx, silent bool) func() tea.Msg {
	return func() tea.Msg {
		posts, err := ctx.API.ListPosts(bg())
		if err != nil {
			if silent {
				// Background refreshes swallow everything except a
				// rejected token.
				if errors.Is(err, api.ErrUnauthorized) {
					return message.AuthExpiredMsg{}
				}
				return nil
			}
			return errToMsg(err)
		}
		return message.PostsMsg{Posts: posts, Silent: silent}
	}
}

func createPostCmd(ctx *Ctx, content string) func() tea.Msg {
	return func() tea.Msg {
		post, err := ctx.API.CreatePost(bg(), content)
		if err != nil {
			return errToMsg(err)
		}
		return message.PostCreatedMsg(post)
	}
}

func updatePostCmd(ctx *Ctx, id, content string) func() tea.Msg {
	return func() tea.Msg {
		post, err := ctx.API.UpdatePost(bg(), id, content)
		if err != nil {
			return errToMsg(err)
		}
		return message.PostUpdatedMsg(post)
	}
}

func deletePostCmd(ctx *Ctx, id string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.DeletePost(bg(), id); err != nil {
			return errToMsg(err)
		}
		return message.PostDeletedMsg{ID: id}
	}
}

func reactionsCmd(ctx *Ctx, postID string) func() tea.Msg {
	return func() tea.Msg {
		sum, err := ctx.API.Reactions(bg(), postID)
		if err != nil {
			// Reaction fetches ride along with the silent refresh.
			if errors.Is(err, api.ErrUnauthorized) {
				return message.AuthExpiredMsg{}
			}
			return nil
		}
		return message.ReactionsMsg{PostID: postID, Summary: sum}
	}
}

func reactCmd(ctx *Ctx, postID, kind string) func() tea.Msg {
	return func() tea.Msg {
		sum, err := ctx.API.React(bg(), postID, kind)
		if err != nil {
			return errToMsg(err)
		}
		return message.ReactionsMsg{PostID: postID, Summary: sum}
	}
}

func listCommentsCmd(ctx *Ctx, postID string) func() tea.Msg {
	return func() tea.Msg {
		comments, err := ctx.API.ListComments(bg(), postID)
		if err != nil {
			return errToMsg(err)
		}
		return message.CommentsMsg{PostID: postID, Comments: comments}
	}
}

func addCommentCmd(ctx *Ctx, postID, content string) func() tea.Msg {
	return func() tea.Msg {
		comment, err := ctx.API.AddComment(bg(), postID, content)
		if err != nil {
			return errToMsg(err)
		}
		return message.CommentAddedMsg(comment)
	}
}

func updateCommentCmd(ctx *Ctx, postID, id, content string) func() tea.Msg {
	return func() tea.Msg {
		comment, err := ctx.API.UpdateComment(bg(), id, content)
		if err != nil {
			return errToMsg(err)
		}
		if comment.PostID == "" {
			comment.PostID = postID
		}
		return message.CommentUpdatedMsg(comment)
	}
}

func deleteCommentCmd(ctx *Ctx, postID, id string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.DeleteComment(bg(), id); err != nil {
			return errToMsg(err)
		}
		return message.CommentDeletedMsg{PostID: postID, ID: id}
	}
}

func historyCmd(ctx *Ctx, postID string) func() tea.Msg {
	return func() tea.Msg {
		entries, err := ctx.API.PostHistory(bg(), postID)
		if err != nil {
			return errToMsg(err)
		}
		return message.HistoryMsg{PostID: postID, Entries: entries}
	}
}
