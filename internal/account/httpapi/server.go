package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/printshop/internal/account/app"
	"github.com/dwikikusuma/printshop/internal/account/domain"
	"github.com/dwikikusuma/printshop/pkg/httpx"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(rg *gin.RouterGroup) {
	rg.GET("/addresses", s.ListAddresses)
	rg.POST("/addresses", s.CreateAddress)
	rg.DELETE("/addresses/:id", s.DeleteAddress)
	rg.GET("/invoices", s.ListInvoices)
	rg.GET("/messages", s.ListMessages)
}

type addressRequest struct {
	Label      string `json:"label" binding:"max=64"`
	FullName   string `json:"fullName" binding:"required,max=255"`
	Street     string `json:"street" binding:"required,max=255"`
	City       string `json:"city" binding:"required,max=128"`
	PostalCode string `json:"postalCode" binding:"required,max=16"`
	Country    string `json:"country" binding:"required,iso3166_1_alpha2"`
	Phone      string `json:"phone" binding:"max=32"`
}

func (s *Server) ListAddresses(c *gin.Context) {
	out, err := s.svc.ListAddresses(c.Request.Context(), httpx.SessionID(c))
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": out})
}

func (s *Server) CreateAddress(c *gin.Context) {
	var req addressRequest
	if !httpx.Bind(c, &req) {
		return
	}

	a, err := s.svc.CreateAddress(c.Request.Context(), httpx.SessionID(c), domain.Address{
		Label:      req.Label,
		FullName:   req.FullName,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
	})
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) DeleteAddress(c *gin.Context) {
	if err := s.svc.DeleteAddress(c.Request.Context(), httpx.SessionID(c), c.Param("id")); err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListInvoices(c *gin.Context) {
	out, err := s.svc.ListInvoices(c.Request.Context(), httpx.SessionID(c))
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": out})
}

func (s *Server) ListMessages(c *gin.Context) {
	out, notice, err := s.svc.ListMessages(c.Request.Context(), httpx.SessionID(c))
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": out, "notice": notice})
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Errorf(codes.Internal, "account: %v", err)
	}
}
