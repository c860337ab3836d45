package routes

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/webstats/crm/pkg/constant"
	"github.com/webstats/crm/pkg/domains/roster"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/middleware"
)

func RosterRoutes(r *gin.RouterGroup, s roster.Service) {
	r.GET("/teams", listTeams(s))
	r.GET("/teams/:id/players", teamPlayers(s))
	r.GET("/players/:id", playerDetail(s))
	r.GET("/convocation", currentConvocation(s))

	r.POST("/convocation", middleware.CheckAuth(), saveConvocation(s))
	r.GET("/rival", middleware.CheckAuth(), rivalAnalysis(s))
}

func listTeams(s roster.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		teams, err := s.Teams(c)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"teams": teams})
	}
}

func teamPlayers(s roster.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		teamID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}
		players, err := s.TeamPlayers(c, uint(teamID))
		if err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"players": players})
	}
}

func playerDetail(s roster.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		playerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}
		player, err := s.Player(c, uint(playerID))
		if err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, player)
	}
}

func currentConvocation(s roster.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		convocation, err := s.CurrentConvocation(c)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if convocation == nil {
			c.JSON(200, gin.H{"convocation": nil})
			return
		}
		c.JSON(200, gin.H{"convocation": convocation})
	}
}

func rivalAnalysis(s roster.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		teamURL := c.Query("url")
		if teamURL == "" {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}
		analysis, err := s.RivalAnalysis(c, teamURL)
		if err != nil {
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"analysis": analysis})
	}
}

func saveConvocation(s roster.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.ConvocationDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}

		result, err := s.SaveConvocation(c, req)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, result)
	}
}
