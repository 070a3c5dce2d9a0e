// Package browser holds the end-to-end suite. Setup reads the harness
// configuration: with QUORUM_BASE_URL set the suite drives that deployment,
// otherwise each test gets a fresh stub app instance. The Playwright runtime
// and the identity provider are shared across the run.
package browser

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/quorumhq/quorum-e2e/internal/artifacts"
	"github.com/quorumhq/quorum-e2e/internal/config"
	"github.com/quorumhq/quorum-e2e/internal/idp"
	"github.com/quorumhq/quorum-e2e/internal/pages"
	"github.com/quorumhq/quorum-e2e/internal/session"
	"github.com/quorumhq/quorum-e2e/internal/stubapp"
)

const (
	stubEmail    = "qa@example.com"
	stubPassword = "hunter2!"
	stubName     = "QA Bot"

	// Never introduce a larger timeout anywhere in tests/browser.
	browserMaxTimeout = 5 * time.Second
)

var (
	sharedMu       sync.Mutex
	sharedPW       *playwright.Playwright
	sharedBrowser  playwright.Browser
	sharedProvider *idp.Provider
)

// Env is one test's environment. Against the stub, App and Provider are live
// and the standard account is registered; against a configured deployment
// both are nil and credentials come from the environment.
type Env struct {
	Cfg     *config.Config
	BaseURL string

	App      *stubapp.Server
	Server   *httptest.Server
	Provider *idp.Provider
}

// Setup loads the harness configuration and prepares the target application.
// With QUORUM_BASE_URL set it points the suite at that deployment; otherwise
// it starts a fresh stub app wired to the shared identity provider.
func Setup(t *testing.T) *Env {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load configuration: %v", err)
	}
	if cfg.TargetsRealApp() {
		return &Env{Cfg: cfg, BaseURL: cfg.BaseURL}
	}

	app := stubapp.NewServer(nil)
	app.RegisterUser(stubEmail, stubPassword, stubName)

	mux := http.NewServeMux()
	app.RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	app.SetBaseURL(server.URL)

	provider := sharedIdP(t)
	ssoClient, err := idp.NewClient(t.Context(),
		provider.Issuer(), provider.ClientID(), provider.ClientSecret(),
		server.URL+"/auth/sso/callback")
	if err != nil {
		t.Fatalf("configure sso client: %v", err)
	}
	app.SetSSOClient(ssoClient)

	// The stub is local and throwaway, so credentials are fixed and the
	// timeouts stay tight regardless of what the environment says.
	cfg.BaseURL = server.URL
	cfg.Email = stubEmail
	cfg.Password = stubPassword
	cfg.ActionTimeout = browserMaxTimeout
	cfg.NavTimeout = 2 * browserMaxTimeout

	return &Env{
		Cfg:      cfg,
		BaseURL:  server.URL,
		App:      app,
		Server:   server,
		Provider: provider,
	}
}

// RequireStub skips tests that seed or inspect stub state when the suite
// targets a configured deployment.
func (env *Env) RequireStub(t *testing.T) {
	t.Helper()
	if env.App == nil {
		t.Skipf("test needs the stub app, suite targets %s", env.BaseURL)
	}
}

func sharedChromium(t *testing.T, headless bool) playwright.Browser {
	t.Helper()

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedBrowser == nil {
		pw, err := playwright.Run()
		if err != nil {
			t.Skip("Playwright not available:", err)
		}
		browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(headless),
		})
		if err != nil {
			_ = pw.Stop()
			t.Skip("Could not launch browser:", err)
		}
		sharedPW = pw
		sharedBrowser = browser
	}
	return sharedBrowser
}

func sharedIdP(t *testing.T) *idp.Provider {
	t.Helper()

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedProvider == nil {
		provider, err := idp.Start()
		if err != nil {
			t.Fatalf("start identity provider: %v", err)
		}
		sharedProvider = provider
	}
	return sharedProvider
}

func cleanupSharedRuntime() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedProvider != nil {
		_ = sharedProvider.Shutdown()
		sharedProvider = nil
	}
	if sharedBrowser != nil {
		_ = sharedBrowser.Close()
		sharedBrowser = nil
	}
	if sharedPW != nil {
		_ = sharedPW.Stop()
		sharedPW = nil
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	cleanupSharedRuntime()
	os.Exit(code)
}

// Config returns the harness configuration this environment runs under.
func (env *Env) Config() *config.Config {
	return env.Cfg
}

// NewSession opens a fresh browser context wrapped in a Session.
func (env *Env) NewSession(t *testing.T) *session.Session {
	return env.NewSessionWithOptions(t, playwright.BrowserNewContextOptions{})
}

// NewSessionWithOptions opens a context with caller-provided options, e.g. a
// restored storage state. The shared browser is launched on first use so
// configuration-only tests never need Playwright installed.
func (env *Env) NewSessionWithOptions(t *testing.T, options playwright.BrowserNewContextOptions) *session.Session {
	t.Helper()

	browser := sharedChromium(t, env.Cfg.Headless)
	browserCtx, err := browser.NewContext(options)
	if err != nil {
		t.Fatalf("could not create browser context: %v", err)
	}
	browserCtx.SetDefaultTimeout(float64(env.Cfg.ActionTimeout.Milliseconds()))
	browserCtx.SetDefaultNavigationTimeout(float64(env.Cfg.NavTimeout.Milliseconds()))

	sess := session.New(browserCtx, env.Cfg.NavRate)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

// NewApp opens a page in sess and wraps it in the page-object driver. Failure
// screenshots land in the returned run's directory.
func (env *Env) NewApp(t *testing.T, sess *session.Session) (*pages.App, *artifacts.Run) {
	t.Helper()

	run, err := artifacts.NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("create artifact run: %v", err)
	}
	pw, err := sess.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return pages.New(sess, pw, env.Cfg, run), run
}

// pagesFor wraps an already-open page (a popup or new tab) in the driver.
func pagesFor(env *Env, sess *session.Session, pw playwright.Page, t *testing.T) *pages.App {
	t.Helper()
	return pages.New(sess, pw, env.Cfg, nil)
}

// SignIn drives the password login flow to a ready dashboard using the
// configured account.
func (env *Env) SignIn(t *testing.T, app *pages.App) {
	t.Helper()

	login := app.Login()
	if err := login.Open(t.Context()); err != nil {
		t.Fatalf("open login page: %v", err)
	}
	if err := login.SignIn(t.Context(), env.Cfg.Email, env.Cfg.Password); err != nil {
		t.Fatalf("sign in: %v", err)
	}
}
