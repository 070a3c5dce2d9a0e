// Command stubapp serves the stand-in Quorum application together with a
// local OIDC identity provider, so the browser suite (or a human) can run
// against a hermetic target:
//
//	go run ./cmd/stubapp -addr :8787
//	QUORUM_BASE_URL=http://localhost:8787 go test ./tests/browser/...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quorumhq/quorum-e2e/internal/idp"
	"github.com/quorumhq/quorum-e2e/internal/obs"
	"github.com/quorumhq/quorum-e2e/internal/stubapp"
)

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	baseURL := flag.String("base-url", "", "externally visible URL (default http://localhost<addr>)")
	email := flag.String("email", "qa@example.com", "seeded account email")
	password := flag.String("password", "hunter2!", "seeded account password")
	flag.Parse()

	obs.Init()
	log := obs.Pkg("main")

	if *baseURL == "" {
		*baseURL = "http://localhost" + *addr
	}

	provider, err := idp.Start()
	if err != nil {
		log.Error("start identity provider", "error", err)
		os.Exit(1)
	}
	defer provider.Shutdown()
	// Keep a few federated identities queued for interactive SSO clicks.
	for i := 0; i < 16; i++ {
		provider.QueueUser(*email, "QA Bot")
	}

	srv := stubapp.NewServer(nil)
	srv.SetBaseURL(*baseURL)
	srv.RegisterUser(*email, *password, "QA Bot")
	srv.SeedMeeting("Weekly sync", "30 minutes")
	srv.SeedMeeting("Design review", "60 minutes")
	srv.SeedNotification("mention", "Ana mentioned you in Weekly sync")
	srv.SeedNotification("invite", "Ben invited you to Design review")

	ssoClient, err := idp.NewClient(context.Background(),
		provider.Issuer(), provider.ClientID(), provider.ClientSecret(),
		*baseURL+"/auth/sso/callback")
	if err != nil {
		log.Error("configure sso client", "error", err)
		os.Exit(1)
	}
	srv.SetSSOClient(ssoClient)

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("stub app listening",
			"addr", *addr, "base_url", *baseURL,
			"issuer", provider.Issuer(), "account", *email)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("serve", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Fprintln(os.Stderr, "shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
