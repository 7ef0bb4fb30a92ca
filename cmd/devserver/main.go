package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/unifind/internal/api"
	"github.com/erazemk/unifind/internal/auth"
	"github.com/erazemk/unifind/internal/logging"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/sample"
	"github.com/erazemk/unifind/internal/store"
)

func main() {
	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)

	var addr string
	fs.StringVar(&addr, "addr", ":5000", "")
	fs.StringVar(&addr, "a", ":5000", "")

	var adminEmail string
	fs.StringVar(&adminEmail, "email", "admin@university.edu", "")
	fs.StringVar(&adminEmail, "e", "admin@university.edu", "")

	var jwtSecret string
	fs.StringVar(&jwtSecret, "secret", "", "")
	fs.StringVar(&jwtSecret, "s", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var empty bool
	fs.BoolVar(&empty, "empty", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: devserver [flags]

Serves the lost & found API from memory. Nothing is persisted.

Flags:
  -a, -addr <host:port>   listen address (default: :5000)
  -e, -email <address>    admin account email (default: admin@university.edu)
  -s, -secret <key>       JWT signing key (default: random, tokens die with the process)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -empty              start without the sample reports and claims
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := logging.Setup(logging.Options{Level: slog.LevelInfo, Path: logPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if jwtSecret == "" {
		jwtSecret, err = auth.GenerateSecret()
		if err != nil {
			slog.Error("failed to generate JWT secret", "error", err)
			os.Exit(1)
		}
		slog.Info("JWT secret auto-generated, tokens will be invalidated on restart")
	}

	mem := store.NewMemory()
	if !empty {
		mem.Seed(sample.Items(), sample.Claims())
	}

	password, err := generatePassword(16)
	if err != nil {
		slog.Error("failed to generate admin password", "error", err)
		os.Exit(1)
	}
	if _, err := mem.CreateUser(context.Background(), model.RegisterInput{
		Name:     "Admin",
		Email:    adminEmail,
		Password: password,
		Role:     model.RoleAdmin,
	}); err != nil {
		slog.Error("failed to create admin account", "error", err)
		os.Exit(1)
	}
	printAdmin(adminEmail, password)

	handler := api.LoggingMiddleware(api.NewRouter(mem, jwtSecret))

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr, "seeded", !empty)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// printAdmin prints the admin credentials to stdout.
func printAdmin(email, password string) {
	fmt.Println("Admin account created:")
	fmt.Printf("  Email:    %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Accounts live in memory and are gone when the server stops.")
	fmt.Println()
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
