package mvc

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

type profileTab int

const (
	tabInfo profileTab = iota
	tabMyPosts
	tabFriends
	tabBlocked
)

var profileTabNames = []string{"My info", "My posts", "Friends", "Blocked"}

type ProfilePage struct {
	tab profileTab

	nameInput   textinput.Model
	editingName bool

	posts   []model.Post
	friends []model.User
	blocked []model.User

	postCursor    int
	friendCursor  int
	blockedCursor int
	confirmDelete bool

	msg string

	ctx *Ctx
}

func InitialProfileModel(ctx *Ctx) ProfilePage {
	m := ProfilePage{ctx: ctx}

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Display name"
	m.nameInput.CharLimit = 64

	return m
}

func (m ProfilePage) Init() tea.Cmd {
	return tea.Batch(
		meCmd(m.ctx),
		myPostsCmd(m.ctx),
		friendListsCmd(m.ctx),
	)
}

func (m ProfilePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.editingName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var next tea.Model
		var cmd tea.Cmd
		next, cmd = m.handleKey(msg)
		if next != nil {
			return next, cmd
		}
		cmds = append(cmds, cmd)

	case message.MeMsg:
		m.ctx.Session.SetUser(model.User(msg))

	case message.MyPostsMsg:
		m.posts = msg
		if m.postCursor >= len(msg) && m.postCursor > 0 {
			m.postCursor = len(msg) - 1
		}

	case message.FriendListsMsg:
		m.friends = msg.Friends
		m.blocked = msg.Blocked
		if m.friendCursor >= len(m.friends) && m.friendCursor > 0 {
			m.friendCursor = len(m.friends) - 1
		}
		if m.blockedCursor >= len(m.blocked) && m.blockedCursor > 0 {
			m.blockedCursor = len(m.blocked) - 1
		}

	case message.PostDeletedMsg:
		kept := m.posts[:0]
		for _, p := range m.posts {
			if p.ID != msg.ID {
				kept = append(kept, p)
			}
		}
		m.posts = kept
		if m.postCursor >= len(m.posts) && m.postCursor > 0 {
			m.postCursor = len(m.posts) - 1
		}

	case message.ProfileSavedMsg:
		m.ctx.Session.SetUser(model.User(msg))
		m.editingName = false
		m.nameInput.Blur()
		m.msg = "profile saved"
		cmds = append(cmds, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second))

	case message.InfoMsg:
		m.msg = string(msg)
		cmds = append(cmds, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second))

	case message.ErrMsg:
		m.msg = msg.Err.Error()
		cmds = append(cmds, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second))

	case message.AuthExpiredMsg:
		return expireSession(m.ctx)

	case message.ResetMsg:
		m.msg = ""
	}

	return m, tea.Batch(cmds...)
}

func (m *ProfilePage) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.editingName {
		switch key {
		case "enter":
			update := model.ProfileUpdate{Name: strings.TrimSpace(m.nameInput.Value())}
			if errs := m.ctx.Val.Struct(update); len(errs) > 0 {
				m.msg = "name " + errs[0].Message
				return nil, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second)
			}
			return nil, saveProfileCmd(m.ctx, m.ctx.Session.User().ID, update)
		case "esc":
			m.editingName = false
			m.nameInput.Blur()
		case "ctrl+c":
			return nil, tea.Quit
		}
		return nil, nil
	}

	if m.confirmDelete {
		switch key {
		case "y":
			m.confirmDelete = false
			if p := m.selectedPost(); p != nil {
				return nil, deleteMyPostCmd(m.ctx, p.ID)
			}
		default:
			m.confirmDelete = false
		}
		return nil, nil
	}

	switch key {
	case "ctrl+c":
		return nil, tea.Quit
	case "left", "esc":
		return InitialHomeModel(m.ctx), nil
	case "tab":
		m.tab = (m.tab + 1) % profileTab(len(profileTabNames))
	case "shift+tab":
		m.tab = (m.tab + profileTab(len(profileTabNames)) - 1) % profileTab(len(profileTabNames))
	case "down":
		m.moveCursor(1)
	case "up":
		m.moveCursor(-1)
	case "e":
		if m.tab == tabInfo {
			m.editingName = true
			m.nameInput.SetValue(m.ctx.Session.User().Name)
			m.nameInput.Focus()
		}
	case "d":
		switch m.tab {
		case tabMyPosts:
			if m.selectedPost() != nil {
				m.confirmDelete = true
			}
		case tabFriends:
			if u := m.selectedFriend(); u != nil {
				return nil, removeFriendCmd(m.ctx, u.ID)
			}
		}
	case "b":
		if m.tab == tabFriends {
			if u := m.selectedFriend(); u != nil {
				return nil, blockUserCmd(m.ctx, u.ID)
			}
		}
	case "u":
		if m.tab == tabBlocked {
			if u := m.selectedBlocked(); u != nil {
				return nil, unblockUserCmd(m.ctx, u.ID)
			}
		}
	case "ctrl+r":
		return nil, tea.Batch(myPostsCmd(m.ctx), friendListsCmd(m.ctx))
	}

	return nil, nil
}

func (m *ProfilePage) moveCursor(delta int) {
	move := func(cursor *int, n int) {
		next := *cursor + delta
		if next >= 0 && next < n {
			*cursor = next
		}
	}
	switch m.tab {
	case tabMyPosts:
		move(&m.postCursor, len(m.posts))
	case tabFriends:
		move(&m.friendCursor, len(m.friends))
	case tabBlocked:
		move(&m.blockedCursor, len(m.blocked))
	}
}

func (m *ProfilePage) selectedPost() *model.Post {
	if m.postCursor < 0 || m.postCursor >= len(m.posts) {
		return nil
	}
	return &m.posts[m.postCursor]
}

func (m *ProfilePage) selectedFriend() *model.User {
	if m.friendCursor < 0 || m.friendCursor >= len(m.friends) {
		return nil
	}
	return &m.friends[m.friendCursor]
}

func (m *ProfilePage) selectedBlocked() *model.User {
	if m.blockedCursor < 0 || m.blockedCursor >= len(m.blocked) {
		return nil
	}
	return &m.blocked[m.blockedCursor]
}

func (m ProfilePage) View() string {
	s := titleStyle.Render("Profile") + "\n\n"

	tabs := make([]string, len(profileTabNames))
	for i, name := range profileTabNames {
		if profileTab(i) == m.tab {
			tabs[i] = cursorStyle.Render(name)
		} else {
			tabs[i] = name
		}
	}
	s += strings.Join(tabs, " | ") + "\n"
	s += "_________________________\n"

	switch m.tab {
	case tabInfo:
		s += m.infoView()
	case tabMyPosts:
		s += m.postsView()
	case tabFriends:
		s += m.friendsView()
	case tabBlocked:
		s += m.blockedView()
	}
	s += "‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾\n"

	if m.msg != "" {
		s += "\nInfo: " + m.msg + "\n"
	}

	s += faintStyle.Render("\ntab to switch · ctrl+r refresh · left back") + "\n"
	return s
}

func (m ProfilePage) infoView() string {
	user := m.ctx.Session.User()
	s := fmt.Sprintf("Name:  %s\n", user.Name)
	s += fmt.Sprintf("Email: %s\n\n", user.Email)

	if m.editingName {
		s += "New name: " + m.nameInput.View() + "\n"
		s += faintStyle.Render("enter to save · esc to cancel") + "\n"
	} else {
		s += faintStyle.Render("'e' to edit your name") + "\n"
	}
	return s
}

func (m ProfilePage) postsView() string {
	if len(m.posts) == 0 {
		return "You have not posted anything yet.\n"
	}

	var s string
	for i, p := range m.posts {
		line := p.Content
		if len(line) > 60 {
			line = line[:57] + "..."
		}
		line += faintStyle.Render("  " + p.CreatedAt.Format("02 Jan 2006"))
		if i == m.postCursor {
			s += cursorStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}
	if m.confirmDelete {
		s += errorStyle.Render("\ndelete this post? y/n") + "\n"
	} else {
		s += faintStyle.Render("\n'd' to delete the selected post") + "\n"
	}
	return s
}

func (m ProfilePage) friendsView() string {
	if len(m.friends) == 0 {
		return "No friends yet. Find people via user search.\n"
	}

	var s string
	for i, u := range m.friends {
		line := fmt.Sprintf("%s <%s>", u.Name, u.Email)
		if i == m.friendCursor {
			s += cursorStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}
	s += faintStyle.Render("\n'd' remove friend · 'b' block") + "\n"
	return s
}

func (m ProfilePage) blockedView() string {
	if len(m.blocked) == 0 {
		return "Nobody is blocked.\n"
	}

	var s string
	for i, u := range m.blocked {
		line := fmt.Sprintf("%s <%s>", u.Name, u.Email)
		if i == m.blockedCursor {
			s += cursorStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}
	s += faintStyle.Render("\n'u' unblock") + "\n"
	return s
}

// Commands

func myPostsCmd(ctx *Ctx) func() tea.Msg {
	return func() tea.Msg {
		posts, err := ctx.API.MyPosts(bg())
		if err != nil {
			return errToMsg(err)
		}
		return message.MyPostsMsg(posts)
	}
}

// friendListsCmd fetches friends and blocked together; blocking moves a
// user between the two, so they refresh as a pair.
func friendListsCmd(ctx *Ctx) func() tea.Msg {
	return func() tea.Msg {
		friends, err := ctx.API.Friends(bg())
		if err != nil {
			return errToMsg(err)
		}
		blocked, err := ctx.API.BlockedUsers(bg())
		if err != nil {
			return errToMsg(err)
		}
		return message.FriendListsMsg{Friends: friends, Blocked: blocked}
	}
}

func saveProfileCmd(ctx *Ctx, userID string, update model.ProfileUpdate) func() tea.Msg {
	return func() tea.Msg {
		user, err := ctx.API.UpdateUser(bg(), userID, update)
		if err != nil {
			return errToMsg(err)
		}
		return message.ProfileSavedMsg(user)
	}
}

func deleteMyPostCmd(ctx *Ctx, postID string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.DeletePost(bg(), postID); err != nil {
			return errToMsg(err)
		}
		return message.PostDeletedMsg{ID: postID}
	}
}

func removeFriendCmd(ctx *Ctx, friendID string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.RemoveFriend(bg(), friendID); err != nil {
			return errToMsg(err)
		}
		return refreshedFriendLists(ctx)
	}
}

func blockUserCmd(ctx *Ctx, userID string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.BlockUser(bg(), userID); err != nil {
			return errToMsg(err)
		}
		return refreshedFriendLists(ctx)
	}
}

func unblockUserCmd(ctx *Ctx, userID string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.UnblockUser(bg(), userID); err != nil {
			return errToMsg(err)
		}
		return refreshedFriendLists(ctx)
	}
}

func refreshedFriendLists(ctx *Ctx) tea.Msg {
	friends, err := ctx.API.Friends(bg())
	if err != nil {
		return errToMsg(err)
	}
	blocked, err := ctx.API.BlockedUsers(bg())
	if err != nil {
		return errToMsg(err)
	}
	return message.FriendListsMsg{Friends: friends, Blocked: blocked}
}
