package main

import (
	"crs/src/db"
	"crs/src/models"
	"crs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func membershipHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/membership", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var membership models.Membership
			err := db.
				Where(&models.Membership{UserID: userId}).
				FirstOrInit(&membership, &models.Membership{UserID: userId, Level: types.MEMBERSHIP_BRONZE}).
				Error
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": membership})
		}).
		GET("/membership/history", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var history []models.PointHistory
			err := db.
				Model(&models.PointHistory{}).
				Where(&models.PointHistory{UserID: userId}).
				Order("created_at DESC").
				Limit(50).
				Find(&history).
				Error
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": history, "count": len(history)})
		})
	return g
}
