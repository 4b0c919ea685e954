package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SellersHandler struct {
	catalogService CatalogServicer
	recordsService RecordsServicer
}

func NewSellersHandler(catalogService CatalogServicer, recordsService RecordsServicer) *SellersHandler {
	return &SellersHandler{catalogService: catalogService, recordsService: recordsService}
}

// Packages all packages of the seller, inactive included.
func (s *SellersHandler) Packages(c *gin.Context) {
	sellerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	packages, err := s.catalogService.ListBySeller(ctx, sellerID)
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newPackageResponses(packages))
}

func (s *SellersHandler) Reviews(c *gin.Context) {
	sellerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	reviews, err := s.recordsService.SellerReviews(ctx, sellerID, limitQuery(c))
	if err != nil {
		abortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SellerReviewsResponse{
		Count:   reviews.Count,
		Average: reviews.Average.StringFixed(2),
		Reviews: newReviewResponses(reviews.Reviews),
	})
}
