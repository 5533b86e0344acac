package router

import (
	"net/http"

	authsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/auth"
	lesvc "github.com/badaskaptan/kargomarket-sub002/internal/application/listingevents"
	listsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/listings"
	mktsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/marketplace"
	msgsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/messages"
	offersvc "github.com/badaskaptan/kargomarket-sub002/internal/application/offers"
	transportsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/transport"
	uploadsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/uploads"
	usersvc "github.com/badaskaptan/kargomarket-sub002/internal/application/user"
	"github.com/badaskaptan/kargomarket-sub002/internal/config"
	"github.com/badaskaptan/kargomarket-sub002/internal/health"
	"github.com/badaskaptan/kargomarket-sub002/internal/infrastructure/database"
	authhandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/auth"
	cataloghandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/catalog"
	lehandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/listingevents"
	listhandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/listings"
	mkthandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/marketplace"
	msghandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/messages"
	offerhandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/offers"
	transporthandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/transport"
	uploadhandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/uploads"
	userhandler "github.com/badaskaptan/kargomarket-sub002/internal/interfaces/handlers/user"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, redisClient, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redisClient
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &health.Handlers{Rdb: rdb, StorageURL: cfg.StorageURL}
	app.Get("/health/json", hh.JSON)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	if db != nil && rdb != nil {
		us := &usersvc.Service{DB: db, Rdb: rdb}

		var verifier authsvc.TokenVerifier
		if cfg.GoogleClientID != "" {
			verifier = &authsvc.HTTPTokenVerifier{ClientID: cfg.GoogleClientID}
		}
		ah := &authhandler.Handlers{
			DB:       db,
			Users:    us,
			Verifier: verifier,
			Rdb:      rdb,
			Config:   sessionCfg,
		}
		authGroup := app.Group("/api/v1/auth")
		authGroup.Post("/register", ah.Register)
		authGroup.Post("/login", ah.Login)
		authGroup.Post("/google", ah.Google)
		authGroup.Get("/me", ah.Me)
		authGroup.Delete("/logout", ah.Logout)

		// Users
		uh := &userhandler.Handlers{Service: us}
		ug := app.Group("/api/v1/users", middleware.RequireAuth())
		ug.Get("/profile", uh.GetProfile)
		ug.Put("/profile", uh.UpdateProfile)

		// Uploads
		sc := &uploadsvc.HTTPClient{BaseURL: cfg.StorageURL, SecretKey: cfg.StorageSecretKey}
		upsvc := &uploadsvc.Service{Client: sc, StorageURL: cfg.StorageURL}
		uph := &uploadhandler.Handlers{Service: upsvc}
		upg := app.Group("/api/v1/uploads", middleware.RequireAuth(), middleware.AuthorizePermission(constants.UploadDocument))
		upg.Post("/listing-document", uph.UploadListingDocuments)

		// Listings
		ls := &listsvc.Service{DB: db, Uploads: upsvc}
		lh := &listhandler.Handlers{Service: ls}
		lg := app.Group("/api/v1/listings", middleware.RequireAuth())
		lg.Post("/create-listing", middleware.AuthorizePermission(constants.CreateListing), lh.CreateListing)
		lg.Get("/get-my-listings", lh.GetMyListings)
		lg.Get("/get-listing/:listing_id", lh.GetListingByID)
		lg.Put("/edit-listing", middleware.AuthorizePermission(constants.EditListing), lh.EditListing)
		lg.Delete("/delete-listing/:listing_id", middleware.AuthorizePermission(constants.CancelListing), lh.DeleteListing)
		lg.Post("/update-status", middleware.AuthorizePermission(constants.EditListing), lh.UpdateStatus)
		lg.Post("/attach-documents", middleware.AuthorizePermission(constants.UploadDocument), lh.AttachDocuments)

		// Marketplace
		ms := &mktsvc.Service{DB: db}
		mh := &mkthandler.Handlers{Service: ms, Listings: ls}
		mg := app.Group("/api/v1/marketplace", middleware.RequireAuth())
		mg.Get("/listings", mh.SearchListings)
		mg.Get("/listings/:listing_id", mh.GetListing)

		// Catalog
		ch := &cataloghandler.Handlers{}
		cg := app.Group("/api/v1/catalog", middleware.RequireAuth())
		cg.Get("/options/:mode", ch.GetOptions)

		// Transport services
		ts := &transportsvc.Service{DB: db}
		th := &transporthandler.Handlers{Service: ts}
		tg := app.Group("/api/v1/transport-services", middleware.RequireAuth())
		tg.Post("/create-service", middleware.AuthorizePermission(constants.CreateListing), th.CreateService)
		tg.Get("/get-my-services", th.GetMyServices)
		tg.Get("/get-service/:service_id", th.GetServiceByID)
		tg.Put("/edit-service", middleware.AuthorizePermission(constants.EditListing), th.EditService)
		tg.Delete("/delete-service/:service_id", middleware.AuthorizePermission(constants.CancelListing), th.DeleteService)

		// Offers
		os := &offersvc.Service{DB: db}
		oh := &offerhandler.Handlers{Service: os}
		og := app.Group("/api/v1/offers", middleware.RequireAuth())
		og.Post("/create-offer", middleware.AuthorizePermission(constants.MakeOffer), oh.CreateOffer)
		og.Get("/get-listing-offers/:listing_id", oh.GetListingOffers)
		og.Get("/get-my-offers", oh.GetMyOffers)
		og.Post("/accept-offer", middleware.AuthorizePermission(constants.ManageOffers), oh.AcceptOffer)
		og.Post("/reject-offer", middleware.AuthorizePermission(constants.ManageOffers), oh.RejectOffer)
		og.Post("/withdraw-offer", middleware.AuthorizePermission(constants.MakeOffer), oh.WithdrawOffer)

		// Messages
		msgs := &msgsvc.Service{DB: db}
		msgh := &msghandler.Handlers{Service: msgs}
		msgg := app.Group("/api/v1/messages", middleware.RequireAuth())
		msgg.Post("/send-message", middleware.AuthorizePermission(constants.SendMessage), msgh.SendMessage)
		msgg.Get("/get-conversation/:user_id", msgh.GetConversation)
		msgg.Post("/mark-read", msgh.MarkRead)

		// Listing events
		les := &lesvc.Service{DB: db}
		leh := &lehandler.Handlers{Service: les}
		leg := app.Group("/api/v1/listing-events", middleware.RequireAuth())
		leg.Get("/get-listing-events/:listing_id", leh.GetListingEvents)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
