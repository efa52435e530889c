package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"hivewatch/classify"
	"hivewatch/decide"
	"hivewatch/geocode"
	"hivewatch/media"
	"hivewatch/models"
	"hivewatch/store"
)

type App struct {
	cfg        Config
	mongo      *mongo.Client
	db         *mongo.Database
	admins     *mongo.Collection
	reports    store.ReportStore
	contacts   store.ContactStore
	media      *media.Store
	classifier *classify.Handle
	engine     *decide.Engine
	geocoder   *geocode.Client
}

func newApp(ctx context.Context, cfg Config) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	local, err := store.NewFileReports(cfg.ReportsFile)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		mongo:  client,
		db:     db,
		admins: db.Collection("admins"),
		reports: store.NewFallback(
			store.NewMongoReports(db),
			local,
			store.NewMongoProbe(client),
		),
		contacts:   store.NewMongoContacts(db),
		media:      media.NewStore(cfg.UploadDir),
		classifier: classify.NewHandle(classify.NewClient(cfg.ClassifierURL)),
		engine:     decide.New(cfg.Verify.Policy),
		geocoder:   geocode.NewClient(),
	}

	// Index and admin seeding are best-effort: the service still runs on
	// the file fallback when Mongo is down at boot.
	if _, err := app.admins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		slog.Warn("admin index not created", slog.String("error", err.Error()))
	}
	if err := app.ensureAdmin(ctx); err != nil {
		slog.Warn("admin account not seeded", slog.String("error", err.Error()))
	}

	return app, nil
}

// ensureAdmin seeds the configured researcher account on first boot.
func (a *App) ensureAdmin(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	email := strings.ToLower(a.cfg.AdminEmail)
	n, err := a.admins.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(a.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = a.admins.InsertOne(ctx, &models.Admin{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
	return err
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
