package main

import (
	"github.com/webstats/crm/app/cmd"
)

// @title Club CRM API
// @version 1.0
// @description Standings scraping, match statistics and squad announcements for a football club.

// @host  localhost:8000
// @BasePath /api/v1

func main() {
	cmd.StartApp()
}
