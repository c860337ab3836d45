package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/webstats/crm/pkg/constant"
	"github.com/webstats/crm/pkg/domains/notify"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/middleware"
	"github.com/webstats/crm/pkg/state"
)

func NotifyRoutes(r *gin.RouterGroup, s notify.Service) {
	authGroup := r.Group("", middleware.CheckAuth())
	{
		authGroup.GET("/pair", pairDevice(s))
		authGroup.POST("/connect", connectDevice(s))
		authGroup.POST("/disconnect", disconnectDevice(s))
		authGroup.GET("/status", deviceStatus(s))
		authGroup.POST("/broadcast", broadcastAnnouncement(s))
	}
}

func pairDevice(s notify.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		code, err := s.Pair(c, state.CurrentUser(c))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"qr_code": code})
	}
}

func connectDevice(s notify.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		if err := s.Connect(c, state.CurrentUser(c)); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"message": "connected"})
	}
}

func disconnectDevice(s notify.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		if err := s.Disconnect(c, state.CurrentUser(c)); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"message": "disconnected"})
	}
}

func deviceStatus(s notify.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(200, s.Status(c, state.CurrentUser(c)))
	}
}

func broadcastAnnouncement(s notify.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.AnnouncementDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_REQUEST})
			return
		}

		result, err := s.Broadcast(c, state.CurrentUser(c), req)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, result)
	}
}
