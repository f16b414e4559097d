// FILE: lixenwraith/logprops/example/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lixenwraith/logprops"
	"github.com/lixenwraith/logprops/threadcontext"
)

// StatusConfig is filled from the log4j2.status.* properties.
type StatusConfig struct {
	Level    string        `property:"level"`
	Interval time.Duration `property:"interval"`
	Entries  int           `property:"entries"`
}

const propertiesPath = "log4j2.component.properties"

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Write a property file to disk for the environment to read.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating initial property file...")

	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.Remove(propertiesPath)
		os.Unsetenv("LOG4J_STATUS_LOGGER_LEVEL")
	}()

	initial := `
log4j2.statusLoggerLevel = INFO
log4j2.status.level = WARN
log4j2.status.interval = 5 s
log4j2.status.entries = 200
log4j2.app.StatusLogger.level = DEBUG
`
	if err := os.WriteFile(propertiesPath, []byte(initial), 0644); err != nil {
		log.Fatalf("❌ Failed to write property file: %v", err)
	}
	log.Printf("✅ Initial properties saved to %s.", propertiesPath)

	// =========================================================================
	// PART 2: BUILDING THE ENVIRONMENT
	// Lower priorities win: system properties, then environment, then file.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Building the environment...")

	os.Setenv("LOG4J_STATUS_LOGGER_LEVEL", "ERROR")
	log.Println("   (Set environment variable LOG4J_STATUS_LOGGER_LEVEL=ERROR)")

	env, err := logprops.NewBuilder().
		WithSystemProperties().
		WithEnvironment().
		WithFile(propertiesPath).
		WithFileOptions(logprops.FileOptions{MaxFileSize: 64 * 1024}).
		WithoutProviders().
		Build()
	if err != nil && !errors.Is(err, logprops.ErrConfigNotFound) {
		log.Fatalf("❌ Builder failed: %v", err)
	}

	// Every spelling resolves to the same property.
	for _, key := range []string{"log4j2.statusLoggerLevel", "log4j.status-logger-level", "LOG4J_STATUS_LOGGER_LEVEL"} {
		log.Printf("   %-28s = %s", key, env.StringOr(key, "<unset>"))
	}

	var status StatusConfig
	if err := env.Scan("log4j2.status", &status); err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}
	log.Printf("✅ Scanned status config: %+v", status)

	level, _ := env.ContextProperty("app", "StatusLogger.level")
	log.Printf("   Context 'app' StatusLogger.level = %s", level)

	// =========================================================================
	// PART 3: RELOADING
	// Pull-based: the file is re-read only when Reload is called.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Modifying the file and reloading...")

	updated := initial + "log4j2.status.entries = 500\n"
	if err := os.WriteFile(propertiesPath, []byte(updated), 0644); err != nil {
		log.Fatalf("❌ Failed to update property file: %v", err)
	}
	log.Printf("   Before reload: entries = %d", env.Int("log4j2.status.entries", 0))
	if err := env.Reload(); err != nil {
		log.Fatalf("❌ Reload failed: %v", err)
	}
	log.Printf("✅ After reload:  entries = %d", env.Int("log4j2.status.entries", 0))

	// =========================================================================
	// PART 4: CONTEXT DATA IN LOG RECORDS
	// Entries attached to a context.Context are added to every record.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 4: Logging with context data...")

	threadcontext.SetEnabled(threadcontext.Enabled(env))
	logger := slog.New(threadcontext.NewHandler(slog.NewTextHandler(os.Stdout, nil)))

	ctx := threadcontext.WithAll(context.Background(), map[string]any{
		"requestId": "r-42",
		"user":      "alice",
	})
	logger.InfoContext(ctx, "Handled request", "status", 200)

	ctx = threadcontext.Without(ctx, "user")
	logger.InfoContext(ctx, "Request finished")

	log.Println("---")
	log.Println("🔍 Environment debug view:")
	log.Print(env.Debug())
}
