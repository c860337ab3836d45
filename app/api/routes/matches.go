package routes

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/webstats/crm/pkg/constant"
	"github.com/webstats/crm/pkg/domains/matches"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/middleware"
)

func MatchRoutes(r *gin.RouterGroup, s matches.Service) {
	r.GET("", listMatches(s))
	r.GET("/:id/events", matchEvents(s))
	r.GET("/metrics", playerMetrics(s))

	authGroup := r.Group("", middleware.CheckAuth())
	{
		authGroup.POST("/actions", recordAction(s))
		authGroup.DELETE("/actions/:id", deleteAction(s))
		authGroup.POST("/finalize", finalizeMatch(s))
	}
}

func listMatches(s matches.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		page := 0
		if raw := c.Query("page"); raw != "" {
			var err error
			if page, err = strconv.Atoi(raw); err != nil || page <= 0 {
				c.JSON(400, gin.H{"error": constant.INVALID_PAGE_NUMBER})
				return
			}
		}

		list, totalPages, err := s.ListMatches(c, page)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"matches": list, "total_pages": totalPages})
	}
}

func matchEvents(s matches.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}
		events, err := s.MatchEvents(c, uint(matchID))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"events": events})
	}
}

func playerMetrics(s matches.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		metrics, err := s.PlayerMetrics(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"players": metrics})
	}
}

func recordAction(s matches.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.MatchActionDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}

		event, err := s.RecordAction(c, req)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, event)
	}
}

func deleteAction(s matches.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}
		if err := s.DeleteAction(c, uint(eventID)); err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"message": constant.DELETED, "deleted": eventID})
	}
}

func finalizeMatch(s matches.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.FinalizeMatchDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}

		result, err := s.Finalize(c, req)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, result)
	}
}
