package main

import (
	"crs/src/common"
	"crs/src/db"
	"crs/src/lib"
	"crs/src/lib/mailer"
	"crs/src/models"
	"crs/src/types"
	"crs/src/utils"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// paymentWebhookRoutes registers the gateway notification endpoints. Gateways
// retry on non-2xx, so these handlers always answer 200 and log failures for
// the operator instead of surfacing them to the PSP.
func paymentWebhookRoutes(g *gin.Engine) {
	handler := func(ctx *gin.Context) {
		gatewayName := ctx.Param("gateway")
		gateway, err := lib.GetGateway(gatewayName)
		if err != nil {
			log.Printf("Callback for unknown gateway %s ignored\n", gatewayName)
			ctx.Status(http.StatusOK)
			return
		}
		req := &lib.CallbackRequest{
			Signature: ctx.GetHeader("Stripe-Signature"),
			Params:    map[string]string{},
		}
		for key, values := range ctx.Request.URL.Query() {
			if len(values) > 0 {
				req.Params[key] = values[0]
			}
		}
		if ctx.Request.Method == http.MethodPost {
			body, err := io.ReadAll(ctx.Request.Body)
			if err != nil {
				log.Printf("Could not read %s callback body: %s\n", gatewayName, err.Error())
				ctx.Status(http.StatusOK)
				return
			}
			req.Body = body
		}
		data, err := gateway.ParseCallback(req)
		if err != nil {
			log.Printf("Rejected %s callback: %s\n", gatewayName, err.Error())
			ctx.Status(http.StatusOK)
			return
		}
		handlePaymentCallback(ctx, gatewayName, data)
	}
	g.POST("/payments/:gateway/callback", handler)
	g.GET("/payments/:gateway/callback", handler)
}

func handlePaymentCallback(ctx *gin.Context, gatewayName string, data *lib.CallbackData) {
	hold, err := lib.GetHold(ctx.Request.Context(), data.OrderCode)
	if err != nil {
		log.Printf("Could not load hold for order %s: %s\n", data.OrderCode, err.Error())
		ctx.Status(http.StatusOK)
		return
	}
	if hold == nil {
		// Already settled by an earlier delivery, or expired before the
		// gateway notified us. Either way there is nothing left to do.
		log.Printf("No hold for order %s, callback ignored\n", data.OrderCode)
		ctx.Status(http.StatusOK)
		return
	}
	if !data.Success {
		// The hold stays: the user may still retry payment before the expiry
		// worker reclaims it.
		log.Printf("Payment for order %s did not complete (status %s)\n", data.OrderCode, data.RawStatus)
		ctx.Status(http.StatusOK)
		return
	}
	booking, err := utils.CommitBooking(ctx.Request.Context(), hold, data.ReferenceID)
	if err != nil {
		log.Printf("Could not commit booking %s: %s\n", data.OrderCode, err.Error())
		ctx.Status(http.StatusOK)
		return
	}
	log.Printf("Booking %s confirmed via %s\n", booking.Code, gatewayName)
	go func() {
		if _, err := utils.CreditForBooking(booking.Code, hold.TotalPrice); err != nil {
			log.Printf("Could not credit points for booking %s: %s\n", booking.Code, err.Error())
		}
	}()
	go sendBookingReceipt(booking)
	common.NotifyUser(hold.UserID, "booking-confirmed", types.JSONB{
		"booking_code": booking.Code,
		"car_id":       hold.CarID,
	})
	common.TrackActivity("booking.confirmed", types.JSONB{
		"booking_code": booking.Code,
		"car_id":       hold.CarID,
		"user_id":      hold.UserID,
		"gateway":      gatewayName,
	})
	ctx.Status(http.StatusOK)
}

func sendBookingReceipt(booking *models.Booking) {
	var user models.User
	if err := db.GetDb().First(&user, booking.UserID).Error; err != nil {
		log.Printf("Could not load user %d for receipt: %s\n", booking.UserID, err.Error())
		return
	}
	if err := mailer.NewMailerMessage(mailer.BookingReceipt(&user, booking)); err != nil {
		log.Printf("Could not send receipt for booking %s: %s\n", booking.Code, err.Error())
	}
}
