package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PackagesHandler struct {
	catalogService CatalogServicer
}

func NewPackagesHandler(catalogService CatalogServicer) *PackagesHandler {
	return &PackagesHandler{catalogService: catalogService}
}

// Index public catalog, optionally filtered by `?service=` and `?tier=`.
func (p *PackagesHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	packages, err := p.catalogService.ListPublic(ctx, repoargs.PackageFilter{
		Service: c.Query("service"),
		Tier:    c.Query("tier"),
	})
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newPackageResponses(packages))
}

type upsertPackageParams struct {
	ID           *uuid.UUID `json:"id"`
	SellerID     *uuid.UUID `json:"sellerId"`
	Service      string     `json:"service" binding:"max_bytes=200"`
	Tier         string     `json:"tier" binding:"max_bytes=200"`
	Title        string     `json:"title" binding:"max_bytes=500"`
	Price        int64      `json:"price" binding:"lte=1000000000"`
	DeliveryDays *int32     `json:"deliveryDays"`
	Hours        string     `json:"hours" binding:"max_bytes=200"`
	Locations    string     `json:"locations" binding:"max_bytes=2000"`
	Revisions    string     `json:"revisions" binding:"max_bytes=200"`
	Includes     string     `json:"includes" binding:"max_bytes=4000"`
	Addons       string     `json:"addons" binding:"max_bytes=4000"`
	Active       *bool      `json:"active"`
}

// Upsert creates a package of the current user when id is empty, otherwise updates it.
func (p *PackagesHandler) Upsert(c *gin.Context) {
	var params upsertPackageParams
	if !bindJSON(c, &params) {
		return
	}
	if !checkActorField(c, params.SellerID) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	pkg, err := p.catalogService.Upsert(ctx, service.UpsertPackageArgs{
		ID:       params.ID,
		SellerID: getUserIDFromContext(c),
		Fields: repoargs.PackageFields{
			Service:      params.Service,
			Tier:         params.Tier,
			Title:        params.Title,
			Price:        params.Price,
			DeliveryDays: params.DeliveryDays,
			Hours:        params.Hours,
			Locations:    params.Locations,
			Revisions:    params.Revisions,
			Includes:     params.Includes,
			Addons:       params.Addons,
		},
		Active: params.Active,
	})
	if err != nil {
		abortWithErr(c, err)
		return
	}

	status := http.StatusOK
	if params.ID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, newPackageResponse(pkg))
}

func (p *PackagesHandler) Deactivate(c *gin.Context) {
	packageID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	pkg, err := p.catalogService.Deactivate(ctx, getUserIDFromContext(c), packageID)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newPackageResponse(pkg))
}

// Delete removes a package, or only deactivates it when bookings reference it.
func (p *PackagesHandler) Delete(c *gin.Context) {
	packageID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	removal, err := p.catalogService.Remove(ctx, getUserIDFromContext(c), packageID)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": removal})
}
