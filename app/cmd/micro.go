package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"
	"github.com/webstats/crm/pkg/bootstrap"
	"github.com/webstats/crm/pkg/config"
	"github.com/webstats/crm/pkg/database"
	"github.com/webstats/crm/pkg/domains/roster"
	"github.com/webstats/crm/pkg/domains/scrape"
	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/importer"
	"github.com/webstats/crm/pkg/scraper"
	"github.com/webstats/crm/pkg/server"
	"github.com/webstats/crm/pkg/utils"
)

// StartApp builds the command tree and dispatches os.Args.
func StartApp() {
	app := cli.NewApp()
	app.Name = "crm"
	app.Usage = "Club CRM: standings scraping, match stats and squad announcements"

	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "generate the legacy site project and patch its settings (safe to re-run)",
			Action: handlerInit,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "dir", Value: ".", Usage: "target directory"},
			},
		},
		{
			Name:   "serve",
			Usage:  "start the HTTP API",
			Action: handlerServe,
		},
		{
			Name:   "scrape",
			Usage:  "scrape every registered standings source once",
			Action: handlerScrape,
		},
		{
			Name:   "import-standings",
			Usage:  "import a standings CSV export",
			Action: handlerImportStandings,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "source", Value: "Importación manual", Usage: "source label recorded with the run"},
			},
		},
		{
			Name:   "import-report",
			Usage:  "import a match report workbook (BD_EVENTOS sheet)",
			Action: handlerImportReport,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("[error] %v", err)
	}
}

func handlerInit(c *cli.Context) error {
	runner := bootstrap.NewRunner(c.String("dir"))
	return runner.Run(context.Background())
}

func handlerServe(c *cli.Context) error {
	configs := config.InitConfig()
	utils.LoadEnv()
	database.InitDB(configs.Database)
	server.LaunchHttpServer(configs)
	return nil
}

func handlerScrape(c *cli.Context) error {
	configs := config.InitConfig()
	utils.LoadEnv()
	database.InitDB(configs.Database)
	db := database.DBClient()

	standings_service := standings.NewService(standings.NewRepo(db))
	fetcher := scraper.NewFetcher()
	fetcher.ParseExcel = importer.ParseWorkbookRows
	scrape_service := scrape.NewService(scrape.NewRepo(db), fetcher, standings_service, leagueRef(configs))

	ctx := context.Background()
	if configs.Scrape.URL != "" {
		if err := scrape_service.RegisterSource(ctx, configs.Scrape.SourceName, configs.Scrape.URL); err != nil {
			return err
		}
	}

	runs, err := scrape_service.Refresh(ctx)
	if err != nil {
		return err
	}
	for _, run := range runs {
		log.Printf("[info] %s: %s (%s)", run.Source, run.Status, run.Message)
	}
	return nil
}

func handlerImportStandings(c *cli.Context) error {
	if len(c.Args()) != 1 {
		return fmt.Errorf("usage: crm import-standings <file.csv>")
	}

	configs := config.InitConfig()
	utils.LoadEnv()
	database.InitDB(configs.Database)
	db := database.DBClient()

	svc := importer.NewService(db, standings.NewService(standings.NewRepo(db)), roster.NewRepo(db))
	applied, err := svc.ImportStandingsCSV(context.Background(), c.Args()[0], leagueRef(configs), c.String("source"))
	if err != nil {
		return err
	}
	log.Printf("[info] imported %d standings rows", applied)
	return nil
}

func handlerImportReport(c *cli.Context) error {
	if len(c.Args()) != 1 {
		return fmt.Errorf("usage: crm import-report <file.xlsx>")
	}

	configs := config.InitConfig()
	utils.LoadEnv()
	database.InitDB(configs.Database)
	db := database.DBClient()

	svc := importer.NewService(db, standings.NewService(standings.NewRepo(db)), roster.NewRepo(db))
	imported, err := svc.ImportMatchWorkbook(context.Background(), c.Args()[0], leagueRef(configs))
	if err != nil {
		return err
	}
	log.Printf("[info] imported %d match events", imported)
	return nil
}

func leagueRef(configs *config.Config) standings.LeagueRef {
	return standings.LeagueRef{
		Competition: configs.Club.Competition,
		Season:      configs.Club.Season,
		Group:       configs.Club.Group,
	}
}
