// Package main, eip backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//   1.  Config'i yükle
//   2.  Database'i başlat (kv store tablosu + migration)
//   3.  Upload dizinini oluştur
//   4.  Store ve uygulama state'ini oluştur
//   5.  WebSocket Hub'ı başlat
//   6.  Service'leri oluştur (store + hub ile)
//   7.  Handler'ları oluştur (service'ler ile)
//   8.  Middleware'ları oluştur
//   9.  HTTP router'ı kur, route'ları bağla
//  10.  CORS yapılandır
//  11.  HTTP Server'ı başlat
//  12.  Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/ardaguler/eip/config"
	"github.com/ardaguler/eip/database"
	"github.com/ardaguler/eip/handlers"
	"github.com/ardaguler/eip/middleware"
	"github.com/ardaguler/eip/services"
	"github.com/ardaguler/eip/state"
	"github.com/ardaguler/eip/store"
	"github.com/ardaguler/eip/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] eip server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Upload Dizini ───
	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		log.Fatalf("[main] failed to create upload directory: %v", err)
	}

	// ─── 4. Store + State ───
	//
	// Store, tek tablolu key-value katmanıdır — her koleksiyon JSON
	// olarak tek satırda tutulur. State, kalıcı oturum ve tema gibi
	// uygulama genelindeki ayarları store üzerinden yönetir.
	ctx := context.Background()
	st := store.New(db.Conn)

	appState, err := state.New(ctx, st)
	if err != nil {
		log.Fatalf("[main] failed to restore state: %v", err)
	}
	if session := appState.Session(); session != nil {
		log.Printf("[main] restored session for %s", session.Email)
	}

	// ─── 5. WebSocket Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır.
	// Service'ler hub'a EventPublisher interface'i üzerinden erişir.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 6. Service Layer ───
	userService, err := services.NewUserService(ctx, st)
	if err != nil {
		log.Fatalf("[main] failed to init user service: %v", err)
	}

	fileService, err := services.NewFileService(ctx, st, cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		log.Fatalf("[main] failed to init file service: %v", err)
	}

	tipService, err := services.NewTipService(ctx, st)
	if err != nil {
		log.Fatalf("[main] failed to init tip service: %v", err)
	}
	if err := tipService.SeedDefaults(ctx); err != nil {
		log.Fatalf("[main] failed to seed default tips: %v", err)
	}

	broadcastService, err := services.NewBroadcastService(ctx, st, hub)
	if err != nil {
		log.Fatalf("[main] failed to init broadcast service: %v", err)
	}

	supportService, err := services.NewSupportService(ctx, st, hub)
	if err != nil {
		log.Fatalf("[main] failed to init support service: %v", err)
	}

	activityService := services.NewActivityService(st)

	authService, err := services.NewAuthService(
		userService,
		appState,
		cfg.Admin.Email,
		cfg.Admin.Password,
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
	)
	if err != nil {
		log.Fatalf("[main] failed to init auth service: %v", err)
	}

	// ─── 7. Handler Layer ───
	authHandler := handlers.NewAuthHandler(authService, appState)
	userHandler := handlers.NewUserHandler(userService)
	fileHandler := handlers.NewFileHandler(fileService, activityService, cfg.Upload.MaxSize)
	tipHandler := handlers.NewTipHandler(tipService, activityService)
	broadcastHandler := handlers.NewBroadcastHandler(broadcastService)
	supportHandler := handlers.NewSupportHandler(supportService)
	activityHandler := handlers.NewActivityHandler(activityService, userService)
	statsHandler := handlers.NewStatsHandler(userService, fileService, tipService, supportService)
	themeHandler := handlers.NewThemeHandler(appState)
	wsHandler := ws.NewHandler(hub, authService)

	// ─── 8. Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userService)
	adminMw := middleware.NewAdminMiddleware()

	// ─── 9. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"eip"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	// Theme — kalıcı tercih, auth gerekmez
	mux.HandleFunc("GET /api/theme", themeHandler.Get)
	mux.HandleFunc("PUT /api/theme", themeHandler.Set)

	// Users — tamamı admin
	mux.Handle("GET /api/users", authMw.Require(
		adminMw.Require(http.HandlerFunc(userHandler.List))))
	mux.Handle("POST /api/users/{email}/ban", authMw.Require(
		adminMw.Require(http.HandlerFunc(userHandler.Ban))))
	mux.Handle("POST /api/users/{email}/unban", authMw.Require(
		adminMw.Require(http.HandlerFunc(userHandler.Unban))))

	// Files — listeleme/indirme üyeler, yükleme/silme admin
	mux.Handle("GET /api/files", authMw.Require(
		http.HandlerFunc(fileHandler.List)))
	mux.Handle("GET /api/files/{id}/download", authMw.Require(
		http.HandlerFunc(fileHandler.Download)))
	mux.Handle("POST /api/files", authMw.Require(
		adminMw.Require(http.HandlerFunc(fileHandler.Upload))))
	mux.Handle("DELETE /api/files/{id}", authMw.Require(
		adminMw.Require(http.HandlerFunc(fileHandler.Delete))))

	// Tips — listeleme üyeler, ekleme/silme admin
	mux.Handle("GET /api/tips", authMw.Require(
		http.HandlerFunc(tipHandler.List)))
	mux.Handle("POST /api/tips/{id}/read", authMw.Require(
		http.HandlerFunc(tipHandler.MarkRead)))
	mux.Handle("POST /api/tips", authMw.Require(
		adminMw.Require(http.HandlerFunc(tipHandler.Create))))
	mux.Handle("DELETE /api/tips/{id}", authMw.Require(
		adminMw.Require(http.HandlerFunc(tipHandler.Delete))))

	// Broadcasts — gönderim admin, okuma üyeler
	mux.Handle("POST /api/broadcasts", authMw.Require(
		adminMw.Require(http.HandlerFunc(broadcastHandler.Send))))
	mux.Handle("GET /api/broadcasts", authMw.Require(
		http.HandlerFunc(broadcastHandler.List)))
	mux.Handle("GET /api/broadcasts/unread", authMw.Require(
		http.HandlerFunc(broadcastHandler.Unread)))
	mux.Handle("POST /api/broadcasts/{id}/read", authMw.Require(
		http.HandlerFunc(broadcastHandler.MarkRead)))

	// Support — gönderim anonim de olabilir (Optional), yönetim admin
	mux.Handle("POST /api/support", authMw.Optional(
		http.HandlerFunc(supportHandler.Send)))
	mux.Handle("GET /api/support", authMw.Require(
		adminMw.Require(http.HandlerFunc(supportHandler.List))))
	mux.Handle("GET /api/support/{id}", authMw.Require(
		adminMw.Require(http.HandlerFunc(supportHandler.Get))))
	mux.Handle("POST /api/support/{id}/replies", authMw.Require(
		adminMw.Require(http.HandlerFunc(supportHandler.Reply))))
	mux.Handle("PUT /api/support/{id}/status", authMw.Require(
		adminMw.Require(http.HandlerFunc(supportHandler.UpdateStatus))))

	// Activity — kullanıcının kendi özeti
	mux.Handle("GET /api/activity", authMw.Require(
		http.HandlerFunc(activityHandler.Get)))

	// Stats — admin paneli sayaçları
	mux.Handle("GET /api/stats", authMw.Require(
		adminMw.Require(http.HandlerFunc(statsHandler.Get))))

	// WebSocket — token query parameter ile authenticate edilir
	//
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header
	// gönderemez, bu yüzden JWT token URL query parameter olarak gelir:
	//   ws://server/ws?token=JWT_TOKEN
	mux.HandleFunc("GET /ws", wsHandler.HandleConnection)

	// ─── 10. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(mux)

	// ─── 11. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 12. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat, sonra HTTP server'ı —
	// mevcut request'lerin bitmesi için 5sn tanınır.
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
