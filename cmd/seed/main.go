package main

import (
	"context"
	"fmt"
	"time"

	"recipemarket/internal/config"
	"recipemarket/internal/database"
	"recipemarket/internal/domain"
	"recipemarket/internal/pkg/logger"
	"recipemarket/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("", "info").WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migrate failed")
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Info("Cleaning old data...")
	for _, table := range []string{"favorites", "offer_orders", "recipes", "companies", "clients", "accounts"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.WithError(err).Fatalf("cleanup %s failed", table)
		}
	}

	ctx := context.Background()
	accounts := repository.NewAccountRepository(db)
	recipes := repository.NewRecipeRepository(db)
	offers := repository.NewOfferOrderRepository(db)
	favorites := repository.NewFavoriteRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("hash password")
	}

	// ================== CLIENTS ==================
	clientNames := []string{"Ana", "Luis", "Marta"}
	clients := make([]*domain.Client, 0, len(clientNames))
	for i, name := range clientNames {
		c := &domain.Client{Name: name, Location: "Madrid", RegisteredAt: time.Now()}
		acc := &domain.Account{Email: fmt.Sprintf("client%d@recipes.test", i+1), PasswordHash: string(hash)}
		if err := accounts.RegisterClient(ctx, acc, c); err != nil {
			log.WithError(err).Fatal("create client")
		}
		clients = append(clients, c)
	}

	// ================== COMPANIES ==================
	companyNames := []string{"Cocina Central", "La Olla"}
	companies := make([]*domain.Company, 0, len(companyNames))
	for i, name := range companyNames {
		c := &domain.Company{Name: name, Description: "Catering and meal prep", Location: "Valencia", RegisteredAt: time.Now()}
		acc := &domain.Account{Email: fmt.Sprintf("company%d@recipes.test", i+1), PasswordHash: string(hash)}
		if err := accounts.RegisterCompany(ctx, acc, c); err != nil {
			log.WithError(err).Fatal("create company")
		}
		companies = append(companies, c)
	}

	// ================== RECIPES ==================
	recipeNames := []string{"Gazpacho", "Paella valenciana", "Tortilla de patatas", "Salmorejo"}
	created := make([]*domain.Recipe, 0, len(recipeNames))
	for i, name := range recipeNames {
		r := &domain.Recipe{
			ClientID:    clients[i%len(clients)].ID,
			Name:        name,
			Description: "Family recipe",
			Ingredients: "see steps",
			Steps:       "1. Prepare. 2. Cook. 3. Serve.",
		}
		if err := recipes.Create(ctx, r); err != nil {
			log.WithError(err).Fatal("create recipe")
		}
		created = append(created, r)
	}

	// ================== OFFERS ==================
	for i, r := range created {
		company := companies[i%len(companies)]
		o, err := domain.NewOffer(company.ID, r.ID, decimal.NewFromInt(int64(8+i*3)), true, "Delivered within 48h")
		if err != nil {
			log.WithError(err).Fatal("build offer")
		}
		if err := offers.CreateOffer(ctx, domain.NewOfferOrder(o)); err != nil {
			log.WithError(err).Fatal("create offer")
		}
	}

	// ================== FAVORITES ==================
	for i, c := range clients {
		if _, err := favorites.Toggle(ctx, c.ID, created[(i+1)%len(created)].ID); err != nil {
			log.WithError(err).Fatal("toggle favorite")
		}
	}

	log.WithFields(logrus.Fields{
		"clients":   len(clients),
		"companies": len(companies),
		"recipes":   len(created),
	}).Info("seed completed; password for every account: password123")
}
