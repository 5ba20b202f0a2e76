package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"go-greenhouse-autopilot/internal/ai"
	"go-greenhouse-autopilot/internal/applicator"
	"go-greenhouse-autopilot/internal/browser"
	"go-greenhouse-autopilot/internal/config"
	"go-greenhouse-autopilot/internal/database"
	"go-greenhouse-autopilot/internal/profile"
	"go-greenhouse-autopilot/internal/reporter"
	"go-greenhouse-autopilot/internal/resolver"

	"github.com/gin-gonic/gin"
)

type applyRequest struct {
	JobURL      string `json:"jobUrl"`
	UserID      string `json:"userId"`
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
}

type applicationView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	JobTitle   string `json:"jobTitle"`
	Status     string `json:"status"`
	LastUpdate string `json:"lastUpdate"`
}

// mapStatus collapses pipeline statuses into the dashboard codes.
func mapStatus(status string) string {
	switch strings.ToLower(status) {
	case "rejected":
		return "R"
	case "interview", "interviewing":
		return "CF"
	case "accepted", "offer":
		return "S"
	case "applied", "pending", "submitted":
		return "RM"
	default:
		return "NA"
	}
}

func main() {
	cfg := config.Load()

	ctx := context.Background()
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

	var notifier applicator.Notifier
	if cfg.TelegramToken != "" {
		tg, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to init telegram reporter: %v", err)
		}
		notifier = tg
	}

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
			Notifier:     notifier,
		},
	)

	applyTimeout := time.Duration(cfg.ApplyTimeoutS) * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Greenhouse Autopilot API is running!",
			"status":  "healthy",
		})
	})

	r.POST("/api/applications", func(c *gin.Context) {
		var req applyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.JobURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing job URL"})
			return
		}
		if req.CompanyName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing company name"})
			return
		}
		if req.JobTitle == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing job title"})
			return
		}
		if req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), applyTimeout)
		defer cancel()

		result := service.ApplyToJob(ctx, applicator.Request{
			JobURL:      req.JobURL,
			UserID:      req.UserID,
			CompanyName: req.CompanyName,
			JobTitle:    req.JobTitle,
		})
		c.JSON(http.StatusOK, result)
	})

	r.GET("/api/applications", func(c *gin.Context) {
		userID := c.Query("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user id"})
			return
		}

		records, err := repo.ListApplications(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications: " + err.Error()})
			return
		}

		views := make([]applicationView, 0, len(records))
		for _, rec := range records {
			views = append(views, applicationView{
				ID:         rec.ID,
				Name:       rec.CompanyName,
				JobTitle:   rec.JobTitle,
				Status:     mapStatus(string(rec.Status)),
				LastUpdate: rec.CreatedAt.Format(time.RFC3339),
			})
		}
		c.JSON(http.StatusOK, views)
	})

	log.Printf("Server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
