package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/middleware"
	"github.com/kelechieze/rentwheels/internal/paystack"
	"github.com/kelechieze/rentwheels/internal/services"
)

type InitializePaymentRequest struct {
	Email     string            `json:"email" binding:"required,email"`
	Amount    int64             `json:"amount" binding:"required,min=1"`
	Reference string            `json:"reference"`
	Metadata  paystack.Metadata `json:"metadata"`
}

// InitializePayment is a thin proxy to the gateway's initialize operation.
// Missing email or amount is rejected before the gateway is called.
func InitializePayment(c *gin.Context) {
	var req InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Email and a positive amount are required.")
		return
	}

	gateway := middleware.GetPaystackGateway(c)
	if gateway == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway not configured.")
		return
	}

	reference := req.Reference
	if reference == "" {
		reference = helpers.NewPaymentReference("RWP")
	}

	authURL, err := gateway.Initialize(req.Email, req.Amount, reference, req.Metadata)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadGateway, "Failed to initialize payment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":         reference,
		"authorization_url": authURL,
	})
}

// VerifyPayment finalizes a transaction by reference: it confirms the state
// with the gateway and applies booking/wallet side effects exactly once.
func VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Payment reference is required.")
		return
	}

	finishVerification(c, reference)
}

// PaymentCallback is the redirect target the gateway sends the payer back
// to. It carries the reference as a query parameter.
func PaymentCallback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}
	if reference == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Payment reference is required.")
		return
	}

	finishVerification(c, reference)
}

func finishVerification(c *gin.Context, reference string) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	svc := services.NewPaymentService(gormDB, middleware.GetPaystackGateway(c))
	result, err := svc.VerifyPayment(reference)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadGateway, "Failed to verify payment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference": result.Reference,
		"status":    result.Status,
		"amount":    result.Amount,
		"applied":   result.Applied,
	})
}
