// One-shot runner: apply to a single job posting from the terminal.
// During the review window, press Enter to confirm early or Ctrl+C to
// abort before anything is submitted.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"go-greenhouse-autopilot/internal/ai"
	"go-greenhouse-autopilot/internal/applicator"
	"go-greenhouse-autopilot/internal/browser"
	"go-greenhouse-autopilot/internal/config"
	"go-greenhouse-autopilot/internal/database"
	"go-greenhouse-autopilot/internal/profile"
	"go-greenhouse-autopilot/internal/resolver"
)

func main() {
	jobURL := flag.String("url", "", "Greenhouse job posting URL")
	userID := flag.String("user", "", "user ID whose profile to apply with")
	company := flag.String("company", "", "company name for the record")
	title := flag.String("title", "", "job title for the record")
	flag.Parse()

	if *jobURL == "" || *userID == "" || *company == "" || *title == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	policy, err := ai.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatalf("Failed to load answer policy: %v", err)
	}

	llm := ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OptionModel, cfg.AnswerModel, policy)

	factory := func(ctx context.Context) (applicator.Session, error) {
		return browser.NewSession(cfg.Headless, time.Duration(cfg.SettleDelayMs)*time.Millisecond)
	}

	service := applicator.NewService(
		profile.NewLoader(repo),
		repo,
		resolver.New(llm, policy),
		factory,
		applicator.Options{
			SubmitMode:   cfg.SubmitMode,
			ReviewWindow: time.Duration(cfg.ReviewWindowS) * time.Second,
		},
	)

	gate := applicator.NewGate()
	go func() {
		reader := bufio.NewReader(os.Stdin)
		if _, err := reader.ReadString('\n'); err == nil {
			gate.Confirm()
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ApplyTimeoutS)*time.Second)
	defer cancel()

	result := service.ApplyToJob(ctx, applicator.Request{
		JobURL:      *jobURL,
		UserID:      *userID,
		CompanyName: *company,
		JobTitle:    *title,
		Gate:        gate,
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	os.Stdout.Write(append(out, '\n'))

	if !result.Success {
		os.Exit(1)
	}
}
