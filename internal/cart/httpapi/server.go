package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/printshop/internal/cart/app"
	"github.com/dwikikusuma/printshop/internal/cart/domain"
	"github.com/dwikikusuma/printshop/pkg/httpx"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(rg *gin.RouterGroup) {
	rg.GET("/cart", s.GetCart)
	rg.POST("/cart/items", s.AddItem)
	rg.PATCH("/cart/items/:itemId", s.UpdateItemQuantity)
	rg.DELETE("/cart/items/:itemId", s.RemoveItem)
	rg.DELETE("/cart", s.ClearCart)
}

type configurationRequest struct {
	Format     string   `json:"format" binding:"required"`
	Paper      string   `json:"paper" binding:"required"`
	Colors     string   `json:"colors" binding:"required"`
	Finishings []string `json:"finishings" binding:"max=10"`
}

type addItemRequest struct {
	Slug          string               `json:"slug" binding:"required"`
	Quantity      int                  `json:"quantity" binding:"required,min=1,max=10000"`
	Configuration configurationRequest `json:"configuration"`
	OrderName     string               `json:"orderName" binding:"max=120"`
}

type updateQuantityRequest struct {
	// Zero or negative removes the line.
	Quantity *int `json:"quantity" binding:"required"`
}

type cartResponse struct {
	domain.State
	TotalQuantity int `json:"totalQuantity"`
}

func toResponse(st domain.State) cartResponse {
	return cartResponse{State: st, TotalQuantity: st.TotalQuantity()}
}

func (s *Server) GetCart(c *gin.Context) {
	st, err := s.svc.GetCart(c.Request.Context(), httpx.SessionID(c))
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(st))
}

func (s *Server) AddItem(c *gin.Context) {
	var req addItemRequest
	if !httpx.Bind(c, &req) {
		return
	}

	st, err := s.svc.AddItem(c.Request.Context(), httpx.SessionID(c), app.AddItemInput{
		Slug:     req.Slug,
		Quantity: req.Quantity,
		Configuration: domain.Configuration{
			Format:     req.Configuration.Format,
			Paper:      req.Configuration.Paper,
			Colors:     req.Configuration.Colors,
			Finishings: req.Configuration.Finishings,
		},
		OrderName: req.OrderName,
	})
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(st))
}

func (s *Server) UpdateItemQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if !httpx.Bind(c, &req) {
		return
	}

	st, err := s.svc.UpdateItemQuantity(c.Request.Context(), httpx.SessionID(c), c.Param("itemId"), *req.Quantity)
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(st))
}

func (s *Server) RemoveItem(c *gin.Context) {
	st, err := s.svc.RemoveItem(c.Request.Context(), httpx.SessionID(c), c.Param("itemId"))
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(st))
}

func (s *Server) ClearCart(c *gin.Context) {
	if err := s.svc.ClearCart(c.Request.Context(), httpx.SessionID(c)); err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrInvalidConfiguration):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrUnknownProduct):
		return status.Error(codes.NotFound, "product not found")
	default:
		return status.Errorf(codes.Unavailable, "cart storage: %v", err)
	}
}
