package main

import (
	"crs/src/db"
	awslib "crs/src/lib/aws"
	"crs/src/models"
	"crs/src/models/scopes"
	"crs/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func carRoutes(g *gin.Engine) {
	g.
		GET("/cars", func(ctx *gin.Context) {
			var filters types.CarQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			query := db.Model(&models.Car{}).Scopes(scopes.AvailableCars)
			if filters.Brand != "" {
				query = query.Where("brand = ?", filters.Brand)
			}
			if filters.Seats > 0 {
				query = query.Where("seats >= ?", filters.Seats)
			}
			if filters.MaxPrice > 0 {
				query = query.Where("daily_price <= ?", filters.MaxPrice)
			}
			var cars []models.Car
			if err := query.Order("daily_price ASC").Find(&cars).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": cars, "count": len(cars)})
		}).
		GET("/cars/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var car models.Car
			db := db.GetDb()
			if err := db.Scopes(scopes.WithID(params.ID)).First(&car).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrCarNotFound.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": car})
		})
}

func adminCarHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/cars", func(ctx *gin.Context) {
			var body models.Car
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			body.ID = 0
			if body.Status == "" {
				body.Status = types.CAR_AVAILABLE
			}
			db := db.GetDb()
			if err := db.Create(&body).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": body})
		}).
		POST("/cars/:id/photo", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var car models.Car
			db := db.GetDb()
			if err := db.Scopes(scopes.WithID(params.ID)).First(&car).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrCarNotFound.Error()})
				return
			}
			fileHeader, err := ctx.FormFile("photo")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			defer file.Close()
			key, err := awslib.S3UploadCarPhoto(car.ID, file, fileHeader.Header.Get("Content-Type"))
			if err != nil {
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "Could not store photo"})
				return
			}
			if err := db.Model(&car).Update("photo_key", key).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			url, err := awslib.S3PresignPhoto(key)
			if err != nil {
				log.Printf("Could not presign photo %s: %s\n", key, err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"photo_key": key, "photo_url": url}})
		})
	return g
}
