package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/kelechieze/rentwheels/internal/paystack"
)

func PaystackMiddleware(gateway paystack.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("paystack", gateway)
		c.Next()
	}
}

func GetPaystackGateway(c *gin.Context) paystack.Gateway {
	gateway, exists := c.Get("paystack")
	if !exists {
		return nil
	}
	return gateway.(paystack.Gateway)
}
