package router

import (
	"github.com/gin-gonic/gin"

	"leados.app/inbox/internal/http/handler"
)

func ConversationRouter(rg *gin.RouterGroup, h *handler.ConversationHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.GET("/:id/summary", h.Summary)
	rg.POST("/:id/summary", h.RequestSummary)
}

func LeadRouter(rg *gin.RouterGroup, h *handler.LeadHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/booking", h.SetBooking)
}

func MessageRouter(rg *gin.RouterGroup, h *handler.MessageHandler) {
	rg.POST("/:endpoint", h.Send)
}

func AppointmentRouter(rg *gin.RouterGroup, h *handler.AppointmentHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
}
