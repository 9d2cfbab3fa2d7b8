package main

import (
	"crs/src/db"
	"crs/src/models"
	"crs/src/types"
	"crs/src/utils"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			result, err := utils.ConfirmBooking(ctx.Request.Context(), userId, &body, ctx.ClientIP(), ctx.Request.Host)
			if err != nil {
				log.Printf("Error confirming booking for user %d: %s\n", userId, err.Error())
				switch {
				case errors.Is(err, types.ErrCarNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrCarNotAvailable):
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrInvalidDateRange), errors.Is(err, types.ErrUnsupportedGateway):
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrGatewayUnreachable):
					ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				default:
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				}
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": result.Hold, "payment_url": result.PaymentURL})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var bookings []models.Booking
			db := db.GetDb()
			err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{UserID: userId}).
				Preload("Car").
				Preload("Transaction").
				Order("created_at DESC").
				Limit(20).
				Find(&bookings).
				Error
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:code", func(ctx *gin.Context) {
			var params struct {
				Code string `uri:"code" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			var booking models.Booking
			db := db.GetDb()
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{Code: params.Code, UserID: userId}).
				Preload("Car").
				Preload("Transaction").
				First(&booking).
				Error; err != nil {
				err := errors.New("booking not found")
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}

func adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		PATCH("/bookings/:id/pickup", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			booking, err := utils.PickupCar(params.ID)
			if err != nil {
				log.Printf("Could not complete pickup for booking %d: %s\n", params.ID, err.Error())
				if errors.Is(err, types.ErrBookingNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PATCH("/bookings/:id/return", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			booking, err := utils.ReturnCar(params.ID)
			if err != nil {
				log.Printf("Could not complete return for booking %d: %s\n", params.ID, err.Error())
				if errors.Is(err, types.ErrBookingNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}
