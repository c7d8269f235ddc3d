package main

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/joho/godotenv"

	"github.com/nouraliman/kunuz/internal/api"
	"github.com/nouraliman/kunuz/internal/middleware"
	"github.com/nouraliman/kunuz/internal/services"
	"github.com/nouraliman/kunuz/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	addr := utils.SafeEnv("KUNUZ_ADDR", ":8080")

	store, err := openStore()
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	adminHash := os.Getenv("KUNUZ_ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		if pw := os.Getenv("KUNUZ_ADMIN_PASSWORD"); pw != "" {
			adminHash, err = services.HashPassword(pw)
			if err != nil {
				log.Fatalf("hash admin password: %v", err)
			}
		}
	}
	if adminHash == "" {
		log.Printf("no moderator account configured; admin routes will reject all logins")
	}

	mux := http.NewServeMux()
	api.NewRouter(api.Config{
		Store:             store,
		AdminEmail:        os.Getenv("KUNUZ_ADMIN_EMAIL"),
		AdminPasswordHash: adminHash,
		PDFFontPath:       os.Getenv("KUNUZ_PDF_FONT"),
	}).Register(mux)

	// Frontend serving strategy (priority):
	// 1) Static files if KUNUZ_STATIC_DIR is set (fullstack image)
	// 2) Dev proxy if KUNUZ_DEV_FRONTEND_URL is set (proxy / to Vite dev)
	if staticDir := os.Getenv("KUNUZ_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	} else if devURL := os.Getenv("KUNUZ_DEV_FRONTEND_URL"); devURL != "" {
		if u, err := url.Parse(devURL); err == nil {
			mux.Handle("/", httputil.NewSingleHostReverseProxy(u))
		} else {
			log.Printf("invalid KUNUZ_DEV_FRONTEND_URL=%q: %v", devURL, err)
		}
	}

	handler := middleware.CORS(middleware.SecureHeaders(middleware.NoStore(middleware.WithAuth(mux))))

	log.Printf("kunuz server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
