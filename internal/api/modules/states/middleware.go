package states_module

import (
	"github.com/ethanbaker/states/pkg/states"
	"github.com/gin-gonic/gin"
)

const stateCodeKey = "stateCode"

// VerifyState normalizes the :code path parameter and rejects codes that are not in the dataset
func VerifyState(service *states.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := service.Validate(c.Param("code"))
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set(stateCodeKey, code)
		c.Next()
	}
}

// stateCode returns the code stored by VerifyState
func stateCode(c *gin.Context) string {
	return c.GetString(stateCodeKey)
}
