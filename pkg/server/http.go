package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/webstats/crm/app/api/routes"
	"github.com/webstats/crm/pkg/config"
	"github.com/webstats/crm/pkg/database"
	"github.com/webstats/crm/pkg/importer"
	"github.com/webstats/crm/pkg/scraper"
	"github.com/webstats/crm/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/webstats/crm/pkg/domains/auth"
	"github.com/webstats/crm/pkg/domains/matches"
	"github.com/webstats/crm/pkg/domains/notify"
	"github.com/webstats/crm/pkg/domains/roster"
	"github.com/webstats/crm/pkg/domains/scrape"
	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func LaunchHttpServer(configs *config.Config) {
	log.Println("Starting HTTP Server...")
	gin.SetMode(gin.DebugMode)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.NewCustomValidator(engine)
	}

	app := gin.New()
	app.Use(gin.LoggerWithFormatter(func(log gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] - %s \"%s %s %s %d %s\"\n",
			log.TimeStamp.Format("2006-01-02 15:04:05"),
			log.ClientIP,
			log.Method,
			log.Path,
			log.Request.Proto,
			log.StatusCode,
			log.Latency,
		)
	}))
	app.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	app.Use(gin.Recovery())
	app.Use(otelgin.Middleware(configs.App.Name))
	app.Use(middleware.ClaimIp())
	corsConfig := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", "Origin", "Accept"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(configs.Allows.Methods) > 0 {
		corsConfig.AllowMethods = configs.Allows.Methods
	}
	if len(configs.Allows.Headers) > 0 {
		corsConfig.AllowHeaders = configs.Allows.Headers
	}
	if len(configs.Allows.Origins) > 0 {
		corsConfig.AllowOrigins = configs.Allows.Origins
	}
	app.Use(cors.New(corsConfig))

	p := ginprom.New(
		ginprom.Engine(app),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/swagger/*any"),
	)
	app.Use(p.Instrument())

	db := database.DBClient()
	api := app.Group("/api/v1")

	// Auth Routes
	auth_repo := auth.NewRepo(db)
	auth_service := auth.NewService(auth_repo)
	routes.AuthRoutes(api.Group("/auth"), auth_service)

	// Standings + scraping
	standings_repo := standings.NewRepo(db)
	standings_service := standings.NewService(standings_repo)

	fetcher := scraper.NewFetcher()
	fetcher.ParseExcel = importer.ParseWorkbookRows

	league := standings.LeagueRef{
		Competition: configs.Club.Competition,
		Season:      configs.Club.Season,
		Group:       configs.Club.Group,
	}
	scrape_repo := scrape.NewRepo(db)
	scrape_service := scrape.NewService(scrape_repo, fetcher, standings_service, league)
	if configs.Scrape.URL != "" {
		if err := scrape_service.RegisterSource(context.Background(), configs.Scrape.SourceName, configs.Scrape.URL); err != nil {
			log.Printf("[error] register scrape source: %v", err)
		}
	}

	matches_repo := matches.NewRepo(db)
	matches_service := matches.NewService(matches_repo)

	routes.DashboardRoutes(api.Group("/dashboard"), standings_service, scrape_service, matches_service)
	routes.MatchRoutes(api.Group("/matches"), matches_service)

	// Roster + WhatsApp announcements
	roster_repo := roster.NewRepo(db)
	roster_service := roster.NewService(roster_repo, fetcher)
	routes.RosterRoutes(api.Group("/roster"), roster_service)

	notify_service := notify.NewService(db, roster_repo)
	routes.NotifyRoutes(api.Group("/notify"), notify_service)

	fmt.Println("Server is running on port " + configs.App.Port)
	if err := app.Run(net.JoinHostPort(configs.App.Host, configs.App.Port)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
