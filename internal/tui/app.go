package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/financeflow/internal/browser"
	"github.com/naveenspark/financeflow/pkg/client"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewDashboard
	viewAccounts
	viewTransactions
	viewBudgets
	viewAnalytics
	viewAdvisor
)

// protected views need a signed-in session.
func (v view) protected() bool {
	return v >= viewDashboard
}

const (
	sessionExpiredNotice = "Session expired. Please sign in again."
	signedOutNotice      = "Signed out."
)

// openBrowser is replaced in tests.
var openBrowser = browser.Open

// App is the root Bubbletea model.
type App struct {
	gw           Gateway
	client       *client.Client
	webURL       string
	view         view
	gen          int
	login        loginModel
	register     registerModel
	dashboard    dashboardModel
	accounts     accountsModel
	transactions transactionsModel
	budgets      budgetsModel
	analytics    analyticsModel
	advisor      advisorModel
	statusMsg    string
	width        int
	height       int
}

// NewApp creates the TUI. It opens on the dashboard when gw already holds a
// session and on the login view otherwise.
func NewApp(gw Gateway, c *client.Client, webURL string) App {
	a := App{
		gw:       gw,
		client:   c,
		webURL:   webURL,
		login:    newLoginModel(gw),
		register: newRegisterModel(gw),
	}
	a.resetData()
	if gw.IsAuthenticated() {
		a.view = viewDashboard
	}
	return a
}

// resetData drops everything loaded for the previous session and starts a
// new generation, so results of requests still in flight are ignored.
func (a *App) resetData() {
	a.gen++
	a.dashboard = newDashboardModel(a.client, a.gen)
	a.accounts = newAccountsModel(a.client, a.gen)
	a.transactions = newTransactionsModel(a.client, a.gen)
	a.budgets = newBudgetsModel(a.client, a.gen)
	a.analytics = newAnalyticsModel(a.client, a.gen)
	a.advisor = newAdvisorModel(a.client, a.gen)
	if a.height > 0 {
		a.resize()
	}
}

func (a App) Init() tea.Cmd {
	return a.initView(a.view)
}

func (a App) initView(v view) tea.Cmd {
	switch v {
	case viewDashboard:
		return a.dashboard.Init()
	case viewAccounts:
		return a.accounts.Init()
	case viewTransactions:
		return a.transactions.Init()
	case viewBudgets:
		return a.budgets.Init()
	case viewAnalytics:
		return a.analytics.Init()
	case viewAdvisor:
		return a.advisor.Init()
	}
	return nil
}

// show switches to v, redirecting protected views to login while signed out
// and public views to the dashboard while signed in.
func (a App) show(v view) (App, tea.Cmd) {
	authed := a.gw.IsAuthenticated()
	switch {
	case v.protected() && !authed:
		v = viewLogin
	case !v.protected() && authed:
		v = viewDashboard
	}
	if v == a.view {
		return a, nil
	}
	a.view = v
	a.statusMsg = ""
	return a, a.initView(v)
}

func (a *App) resize() {
	// Chrome: header(1) + tabs(1) + help(1)
	body := tea.WindowSizeMsg{Width: a.width, Height: a.height - 3}
	a.dashboard, _ = a.dashboard.Update(body)
	a.transactions, _ = a.transactions.Update(body)
	a.advisor, _ = a.advisor.Update(body)
}

// route delivers a load or save result to the view that asked for it,
// whichever view is showing now.
func (a App) route(msg tea.Msg) (App, tea.Cmd, bool) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case accountsLoadedMsg, accountBalanceMsg:
		a.accounts, cmd = a.accounts.Update(msg)
	case transactionsLoadedMsg:
		a.transactions, cmd = a.transactions.Update(msg)
	case budgetsLoadedMsg:
		a.budgets, cmd = a.budgets.Update(msg)
	case analyticsLoadedMsg:
		a.analytics, cmd = a.analytics.Update(msg)
	case chatReplyMsg:
		a.advisor, cmd = a.advisor.Update(msg)
	case savedMsg:
		switch msg.target {
		case viewAccounts:
			a.accounts, cmd = a.accounts.Update(msg)
		case viewTransactions:
			a.transactions, cmd = a.transactions.Update(msg)
		case viewBudgets:
			a.budgets, cmd = a.budgets.Update(msg)
		}
	default:
		return a, nil, false
	}
	return a, cmd, true
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s, ok := msg.(scoped); ok && s.generation() != a.gen {
		return a, nil
	}
	if next, cmd, ok := a.route(msg); ok {
		return next, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case sessionExpiredMsg:
		a.resetData()
		a.login = newLoginModel(a.gw)
		a.login.notice = sessionExpiredNotice
		a.view = viewLogin
		return a, nil

	case switchViewMsg:
		return a.show(msg.to)

	case loginResultMsg:
		a.login, _ = a.login.Update(msg)
		if msg.err != nil {
			return a, nil
		}
		a.resetData()
		return a.show(viewDashboard)

	case registerResultMsg:
		a.register, _ = a.register.Update(msg)
		if msg.err != nil {
			return a, nil
		}
		a.login.notice = registeredNotice
		a.login.err = ""
		return a.show(viewLogin)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				return a.show(viewDashboard)
			case "2":
				return a.show(viewAccounts)
			case "3":
				return a.show(viewTransactions)
			case "4":
				return a.show(viewBudgets)
			case "5":
				return a.show(viewAnalytics)
			case "6":
				return a.show(viewAdvisor)
			case "r":
				return a, a.initView(a.view)
			case "w":
				url := a.webURL
				return a, func() tea.Msg {
					openBrowser(url) //nolint:errcheck // best-effort browser open
					return nil
				}
			case "L":
				return a.logout()
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewRegister:
		a.register, cmd = a.register.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewAccounts:
		a.accounts, cmd = a.accounts.Update(msg)
	case viewTransactions:
		a.transactions, cmd = a.transactions.Update(msg)
	case viewBudgets:
		a.budgets, cmd = a.budgets.Update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.Update(msg)
	case viewAdvisor:
		a.advisor, cmd = a.advisor.Update(msg)
	}
	return a, cmd
}

func (a App) logout() (App, tea.Cmd) {
	err := a.gw.Logout()
	a.resetData()
	a.login = newLoginModel(a.gw)
	a.login.notice = signedOutNotice
	if err != nil {
		a.login.err = "could not clear saved session: " + err.Error()
	}
	a.view = viewLogin
	return a, nil
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewRegister:
		return true
	case viewAccounts:
		return a.accounts.ed.active()
	case viewTransactions:
		return a.transactions.ed.active()
	case viewBudgets:
		return a.budgets.ed.active()
	case viewAdvisor:
		return a.advisor.inputFocused
	}
	return false
}

type tabEntry struct {
	key  string
	name string
	v    view
}

var (
	privateTabs = []tabEntry{
		{"1", "Dashboard", viewDashboard},
		{"2", "Accounts", viewAccounts},
		{"3", "Transactions", viewTransactions},
		{"4", "Budgets", viewBudgets},
		{"5", "Analytics", viewAnalytics},
		{"6", "Advisor", viewAdvisor},
	}
	publicTabs = []tabEntry{
		{"", "Sign in", viewLogin},
		{"", "Create account", viewRegister},
	}
)

func (a App) tabBar() string {
	tabs := publicTabs
	if a.view.protected() {
		tabs = privateTabs
	}
	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = selectedStyle.Underline(true).Render(t.name)
		} else {
			label = dimStyle.Render(t.name)
		}
		if t.key != "" {
			keyStyle := metaStyle
			if t.v == a.view {
				keyStyle = accentStyle
			}
			label = keyStyle.Render(t.key) + " " + label
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}

func (a App) View() string {
	title := titleStyle.Render(" FinanceFlow")
	who := metaStyle.Render("not signed in")
	if s := a.gw.Current(); s.IsAuthenticated() {
		who = dimStyle.Render(s.User.DisplayName())
	}
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(who)-1, 1)
	header := title + strings.Repeat(" ", gap) + who

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = helpBar("tab", "next", "enter", "sign in", "ctrl+r", "register", "ctrl+c", "quit")
	case viewRegister:
		body = a.register.View()
		help = helpBar("tab", "next", "enter", "submit", "esc", "back", "ctrl+c", "quit")
	case viewDashboard:
		body = a.dashboard.View()
		help = helpBar("1-6", "tabs", "r", "refresh", "w", "web", "L", "sign out", "q", "quit")
	case viewAccounts:
		body = a.accounts.View()
		help = a.accounts.helpKeys()
	case viewTransactions:
		body = a.transactions.View()
		help = a.transactions.helpKeys()
	case viewBudgets:
		body = a.budgets.View()
		help = a.budgets.helpKeys()
	case viewAnalytics:
		body = a.analytics.View()
		help = helpBar("1-6", "tabs", "r", "refresh", "L", "sign out", "q", "quit")
	case viewAdvisor:
		body = a.advisor.View()
		help = a.advisor.helpKeys()
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, a.tabBar(), body, help)
}
