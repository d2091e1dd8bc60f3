package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/printshop/internal/checkout/app"
	"github.com/dwikikusuma/printshop/internal/checkout/domain"
	"github.com/dwikikusuma/printshop/pkg/httpx"
)

// multipartOverhead is allowed on top of the file size limit for the form
// envelope.
const multipartOverhead = 1 << 20

type Server struct {
	svc      *app.Service
	maxBytes int64
}

func NewServer(svc *app.Service, maxUploadBytes int64) *Server {
	return &Server{svc: svc, maxBytes: maxUploadBytes}
}

func (s *Server) Register(rg *gin.RouterGroup) {
	rg.GET("/order/:step", s.View)
	rg.POST("/order/upload", s.Upload)
	rg.POST("/order/shipment", s.SetShipment)
	rg.POST("/order/payment", s.SetPayment)
	rg.POST("/order/summary", s.PlaceOrder)
	rg.DELETE("/order", s.Reset)
}

type addressRequest struct {
	FullName   string `json:"fullName" binding:"required,max=255"`
	Street     string `json:"street" binding:"required,max=255"`
	City       string `json:"city" binding:"required,max=128"`
	PostalCode string `json:"postalCode" binding:"required,max=16"`
	Country    string `json:"country" binding:"required,iso3166_1_alpha2"`
	Phone      string `json:"phone" binding:"max=32"`
}

type shipmentRequest struct {
	AddressID      string          `json:"addressId" binding:"omitempty,uuid"`
	Address        *addressRequest `json:"address" binding:"required_without=AddressID"`
	ShippingOption string          `json:"shippingOption" binding:"required,oneof=standard express pickup"`
}

type paymentRequest struct {
	Method string `json:"method" binding:"required,oneof=bank_transfer card cash_on_delivery"`
}

func (s *Server) View(c *gin.Context) {
	step, err := domain.ParseStep(c.Param("step"))
	if err != nil {
		httpx.Abort(c, status.Error(codes.NotFound, err.Error()))
		return
	}

	v, err := s.svc.View(c.Request.Context(), httpx.SessionID(c), step)
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Abort(c, status.Error(codes.ResourceExhausted, "file is too large"))
			return
		}
		httpx.BadRequest(c, "file is required")
		return
	}
	itemID := c.PostForm("itemId")
	if itemID == "" {
		httpx.BadRequest(c, "itemId is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httpx.Abort(c, status.Errorf(codes.Internal, "open upload: %v", err))
		return
	}
	defer f.Close()

	ref, err := s.svc.AttachFile(c.Request.Context(), httpx.SessionID(c), app.FileInput{
		ItemID: itemID,
		Name:   fh.Filename,
		Size:   fh.Size,
		Body:   f,
	})
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusCreated, ref)
}

func (s *Server) SetShipment(c *gin.Context) {
	var req shipmentRequest
	if !httpx.Bind(c, &req) {
		return
	}

	in := app.ShipmentInput{AddressID: req.AddressID, Option: req.ShippingOption}
	if req.Address != nil && req.AddressID == "" {
		in.Address = &domain.Address{
			FullName:   req.Address.FullName,
			Street:     req.Address.Street,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
			Phone:      req.Address.Phone,
		}
	}

	v, err := s.svc.SetShipment(c.Request.Context(), httpx.SessionID(c), in)
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) SetPayment(c *gin.Context) {
	var req paymentRequest
	if !httpx.Bind(c, &req) {
		return
	}

	v, err := s.svc.SetPayment(c.Request.Context(), httpx.SessionID(c), req.Method)
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) PlaceOrder(c *gin.Context) {
	order, err := s.svc.PlaceOrder(c.Request.Context(), httpx.SessionID(c))
	if err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) Reset(c *gin.Context) {
	if err := s.svc.Reset(c.Request.Context(), httpx.SessionID(c)); err != nil {
		httpx.Abort(c, mapErr(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrFileRejected):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrEmptyCart):
		return status.Error(codes.NotFound, "cart is empty")
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, app.ErrStepLocked), errors.Is(err, app.ErrCurrencyMismatch):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Errorf(codes.Internal, "checkout: %v", err)
	}
}
