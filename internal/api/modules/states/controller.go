package states_module

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/ethanbaker/states/internal/api/middleware"
	"github.com/ethanbaker/states/pkg/sdk"
	"github.com/ethanbaker/states/pkg/states"
	"github.com/gin-gonic/gin"
)

// Controller serves the states routes
type Controller struct {
	service *states.Service
}

// GetAllStates handles GET requests for every state, optionally filtered by ?contig=
func (ctl *Controller) GetAllStates(c *gin.Context) {
	filter := states.ContigAll
	if contig, ok := c.GetQuery("contig"); ok {
		if strings.ToLower(contig) == "true" {
			filter = states.ContigOnly
		} else {
			filter = states.NonContigOnly
		}
	}

	views, err := ctl.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetState handles GET requests for a single merged state
func (ctl *Controller) GetState(c *gin.Context) {
	view, err := ctl.service.Resolve(c.Request.Context(), stateCode(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetCapital handles GET requests for a state's capital
func (ctl *Controller) GetCapital(c *gin.Context) {
	record, ok := ctl.record(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sdk.CapitalResponse{State: record.State, Capital: record.CapitalCity})
}

// GetNickname handles GET requests for a state's nickname
func (ctl *Controller) GetNickname(c *gin.Context) {
	record, ok := ctl.record(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sdk.NicknameResponse{State: record.State, Nickname: record.Nickname})
}

// GetPopulation handles GET requests for a state's population
func (ctl *Controller) GetPopulation(c *gin.Context) {
	record, ok := ctl.record(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sdk.PopulationResponse{State: record.State, Population: states.FormatPopulation(record.Population)})
}

// GetAdmission handles GET requests for a state's admission date
func (ctl *Controller) GetAdmission(c *gin.Context) {
	record, ok := ctl.record(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sdk.AdmissionResponse{State: record.State, Admitted: record.AdmissionDate})
}

// GetFunFact handles GET requests for a random fun fact
func (ctl *Controller) GetFunFact(c *gin.Context) {
	fact, err := ctl.service.RandomFact(c.Request.Context(), stateCode(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sdk.FunFactResponse{FunFact: fact})
}

// CreateFunFacts handles POST requests that append fun facts
func (ctl *Controller) CreateFunFacts(c *gin.Context) {
	var req sdk.AddFunFactsRequest
	if !bindBody(c, &req) {
		return
	}

	overlay, err := ctl.service.AddFacts(c.Request.Context(), stateCode(c), req.FunFacts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overlay)
}

// UpdateFunFact handles PATCH requests that replace a fun fact
func (ctl *Controller) UpdateFunFact(c *gin.Context) {
	var req sdk.UpdateFunFactRequest
	if !bindBody(c, &req) {
		return
	}

	overlay, err := ctl.service.UpdateFact(c.Request.Context(), stateCode(c), req.Index, req.FunFact)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overlay)
}

// DeleteFunFact handles DELETE requests that remove a fun fact
func (ctl *Controller) DeleteFunFact(c *gin.Context) {
	var req sdk.DeleteFunFactRequest
	if !bindBody(c, &req) {
		return
	}

	overlay, err := ctl.service.DeleteFact(c.Request.Context(), stateCode(c), req.Index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overlay)
}

/** ---- HELPERS ---- */

// record loads the reference record for the validated code, writing the error response on failure
func (ctl *Controller) record(c *gin.Context) (states.StateRecord, bool) {
	record, err := ctl.service.Record(c.Request.Context(), stateCode(c))
	if err != nil {
		respondError(c, err)
		return states.StateRecord{}, false
	}
	return record, true
}

// bindBody decodes an optional JSON body. An empty body leaves req at its zero value
func bindBody(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, sdk.MessageResponse{Message: "Could not parse request body"})
		return false
	}
	return true
}

// respondError writes a single-field message response. Store failures are logged and their details withheld
func respondError(c *gin.Context, err error) {
	kind := states.KindOf(err)
	if kind == states.StoreFailure {
		log.Printf("[STATES]: %s %s failed (request %s): %v", c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
	}

	c.JSON(states.HTTPStatus(kind), sdk.MessageResponse{Message: states.MessageOf(err)})
}
