package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tenyyprn/logistics-quote-agent/agent/agents/dispatcher"
	"github.com/tenyyprn/logistics-quote-agent/agent/agents/handlers"
	"github.com/tenyyprn/logistics-quote-agent/agent/classifier"
	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	llmx "github.com/tenyyprn/logistics-quote-agent/agent/llm"
	statex "github.com/tenyyprn/logistics-quote-agent/agent/state"
	costx "github.com/tenyyprn/logistics-quote-agent/freight/cost"
	"github.com/tenyyprn/logistics-quote-agent/freight/docs"
	"github.com/tenyyprn/logistics-quote-agent/freight/freightdata"
	"github.com/tenyyprn/logistics-quote-agent/freight/quotes"
	configx "github.com/tenyyprn/logistics-quote-agent/pkg/config"
	_ "github.com/tenyyprn/logistics-quote-agent/pkg/logger/autoload"
)

type AppConfig struct {
	DatasetPath string `envconfig:"DATASET_PATH" split_words:"true"`
	CustomerID  string `envconfig:"CUSTOMER_ID" split_words:"true"`

	UpstashURL   string `envconfig:"UPSTASH_URL" split_words:"true"`
	UpstashToken string `envconfig:"UPSTASH_TOKEN" split_words:"true"`
}

func main() {
	ctx := context.Background()
	appCfg := configx.MustNew[AppConfig]("")

	provider, err := loadDataset(appCfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load freight dataset")
	}

	engine := costx.NewEngine(provider)
	advisor := docs.NewAdvisor(provider)
	quoteStore := quotes.NewStore()

	registry, err := handlers.NewRegistry(provider, engine, advisor, quoteStore)
	if err != nil {
		log.Fatal().Err(err).Msg("build handler registry")
	}

	sessions := buildSessionStore(*appCfg)
	cls := buildClassifier(ctx)

	agent, err := dispatcher.New(sessions, registry, cls, dispatcher.Config{
		CustomerID: appCfg.CustomerID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build dispatcher")
	}

	sessionID := uuid.NewString()
	log.Info().
		Str("session_id", sessionID).
		Bool("classifier", cls != nil).
		Msg("freight quote agent ready")

	if cls == nil {
		fmt.Println("no classifier configured; set OPENROUTER_API_KEY and OPENROUTER_MODEL for free-text mode")
		return
	}

	runREPL(ctx, agent, sessionID)
}

func loadDataset(path string) (*freightdata.Provider, error) {
	if strings.TrimSpace(path) != "" {
		return freightdata.LoadFile(path)
	}
	return freightdata.Default()
}

func buildSessionStore(cfg AppConfig) statex.Store {
	if strings.TrimSpace(cfg.UpstashURL) == "" {
		return statex.NewMemoryStore()
	}
	store, err := statex.NewUpstashRedisStore(statex.UpstashRedisConfig{
		URL:   cfg.UpstashURL,
		Token: cfg.UpstashToken,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build upstash session store")
	}
	return store
}

func buildClassifier(ctx context.Context) contractx.Classifier {
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if !llmCfg.Enabled() {
		return nil
	}
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid openrouter config")
	}

	orCfg := llmCfg.OpenRouterClassifier()
	chatModel, err := orCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("build chat model")
	}

	cls, err := classifier.New(ctx, chatModel)
	if err != nil {
		log.Fatal().Err(err).Msg("build classifier")
	}
	return cls
}

func runREPL(ctx context.Context, agent *dispatcher.Dispatcher, sessionID string) {
	fmt.Println("freight quote agent. Ask about routes, costs, documents, or quotes. Ctrl-D to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		result, err := agent.HandleText(ctx, sessionID, text)
		if err != nil {
			if errors.Is(err, contractx.ErrUnresolvedIntent) {
				fmt.Println("sorry, I could not work out what you are asking for")
				continue
			}
			fmt.Printf("error: %v\n", err)
			continue
		}

		rendered, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(string(rendered))
	}
}
