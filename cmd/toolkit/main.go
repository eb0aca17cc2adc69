package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/roleplay-toolkit/internal/config"
	"github.com/KirkDiggler/roleplay-toolkit/internal/handlers"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/characters"
	"github.com/KirkDiggler/roleplay-toolkit/internal/repositories/games"
	"github.com/KirkDiggler/roleplay-toolkit/internal/template"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gameManager, err := games.NewManager(&games.ManagerConfig{
		SavesDir: cfg.Storage.SavesDir,
	})
	if err != nil {
		log.Fatalf("Failed to open saves directory: %v", err)
	}

	loader := template.NewLoader(&template.LoaderConfig{
		Dir: cfg.Storage.TemplatesDir,
	})

	toolkitConfig := &handlers.ToolkitConfig{
		Games:     gameManager,
		Templates: loader,
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if URL is provided
	if cfg.Redis.URL != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to file storage for players")
		} else {
			if cfg.Redis.Password != "" {
				opts.Password = cfg.Redis.Password
			}
			if cfg.Redis.DB != 0 {
				opts.DB = cfg.Redis.DB
			}
			redisClient = redis.NewClient(opts)

			// Test connection
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				cancel()
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to file storage for players")
			} else {
				defer cancel()
				log.Println("Using Redis for player storage")

				toolkitConfig.CharacterRepo = func(game string) (characters.Repository, error) {
					return characters.NewRedis(&characters.RedisConfig{
						Client: redisClient,
						Game:   game,
					}), nil
				}
			}
		}
	}

	toolkit := handlers.NewToolkit(toolkitConfig)

	registry := handlers.NewRegistry()
	toolkit.RegisterAll(registry)

	fmt.Println("Welcome to the Roleplaying Toolkit!")
	fmt.Println("Type 'help' for available commands or 'quit' to exit.")
	fmt.Println("Try commands like: roll d20, status, save, load")

	runREPL(context.Background(), registry)

	// Clean up Redis connection if we have one
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}
}

// runREPL reads input lines until quit or EOF. When a command switches
// into a mode (player creation), input routes to the mode until it
// reports done.
func runREPL(ctx context.Context, registry *handlers.Registry) {
	scanner := bufio.NewScanner(os.Stdin)
	var mode handlers.Mode

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()

		if mode != nil {
			resp := mode.HandleInput(ctx, input)
			if resp != "" {
				fmt.Println(resp)
			}
			if mode.Done() {
				mode = nil
			}
			continue
		}

		result := registry.Process(ctx, input)
		if result.Message != "" {
			fmt.Println(result.Message)
		}
		if result.Mode != nil {
			mode = result.Mode
		}
		if result.Exit {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Error reading input: %v", err)
	}
}
