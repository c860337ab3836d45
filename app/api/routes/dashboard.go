package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/webstats/crm/pkg/domains/matches"
	"github.com/webstats/crm/pkg/domains/scrape"
	"github.com/webstats/crm/pkg/domains/standings"
	"github.com/webstats/crm/pkg/middleware"
)

func DashboardRoutes(r *gin.RouterGroup, st standings.Service, sc scrape.Service, m matches.Service) {
	r.GET("", dashboardData(st, sc, m))
	r.POST("/refresh", middleware.CheckAuth(), refreshScraping(sc))
	r.GET("/history", scrapeHistory(sc))
}

// @Summary Dashboard data
// @Description Standings table, next fixture and recent scrape runs
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /dashboard [get]
func dashboardData(st standings.Service, sc scrape.Service, m matches.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		table, err := st.Table(c)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		next, err := m.NextMatch(c)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		history, err := sc.History(c, 5)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"standings":  table,
			"next_match": next,
			"scrapes":    history,
		})
	}
}

func refreshScraping(sc scrape.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		// Detach from the request context: the refresh outlives slow clients.
		runs, err := sc.Refresh(context.Background())
		if err != nil {
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"runs": runs})
	}
}

func scrapeHistory(sc scrape.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		history, err := sc.History(c, 20)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"runs": history})
	}
}
