package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/printshop/internal/catalog/app"
	"github.com/dwikikusuma/printshop/internal/catalog/domain"
	"github.com/dwikikusuma/printshop/pkg/httpx"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

// Register mounts the catalog routes on a locale-scoped group.
func (s *Server) Register(rg *gin.RouterGroup) {
	rg.GET("/products", s.ListProducts)
	rg.GET("/products/:slug", s.GetProduct)
}

type listResponse struct {
	Products   []domain.Product `json:"products"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

func (s *Server) ListProducts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.BadRequest(c, "limit must be a number")
			return
		}
		limit = n
	}

	products, next, err := s.svc.ListProducts(c.Request.Context(), c.Query("q"), limit, c.Query("cursor"))
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}

	c.JSON(http.StatusOK, listResponse{Products: products, NextCursor: next})
}

func (s *Server) GetProduct(c *gin.Context) {
	p, err := s.svc.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, p)
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, "product not found")
	}
	return status.Error(codes.Internal, err.Error())
}
