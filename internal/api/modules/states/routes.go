package states_module

import (
	"github.com/ethanbaker/states/pkg/states"
	"github.com/gin-gonic/gin"
)

// Register routes for the states module
func RegisterRoutes(g *gin.RouterGroup, service *states.Service) {
	ctl := &Controller{service: service}

	// Create base group for states routes
	group := g.Group("/states")
	group.GET("", ctl.GetAllStates)

	// Every route with a state code runs the validation gate first
	state := group.Group("/:code")
	state.Use(VerifyState(service))

	state.GET("", ctl.GetState)
	state.GET("/capital", ctl.GetCapital)
	state.GET("/nickname", ctl.GetNickname)
	state.GET("/population", ctl.GetPopulation)
	state.GET("/admission", ctl.GetAdmission)

	state.GET("/funfact", ctl.GetFunFact)
	state.POST("/funfact", ctl.CreateFunFacts)
	state.PATCH("/funfact", ctl.UpdateFunFact)
	state.DELETE("/funfact", ctl.DeleteFunFact)
}
