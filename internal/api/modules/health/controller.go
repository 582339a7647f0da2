package health

import (
	"log"
	"net/http"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/gin-gonic/gin"
)

// Return status of the API and its fun fact store
func getStatus(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pinger != nil {
			if err := pinger.Ping(c.Request.Context()); err != nil {
				log.Printf("[HEALTH]: Fun fact store unreachable: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  api_types.StatusError,
					"message": "Fun fact store unreachable",
				})
				return
			}
		}

		res := api_types.NewSuccessResponse("OK", nil)
		c.JSON(res.AsGinResponse())
	}
}
