package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/alperendnc/jewelery-app-sub000/internal/apierror"
	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CustomersHandler) List(c *gin.Context) {
	if tc := c.Query("tc"); tc != "" {
		resp, err := h.svc.GetByTC(c.Request.Context(), tc)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, []dto.CustomerResponse{*resp})
		return
	}
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream pushes registry changes as server-sent events. The connection
// stays open until the client disconnects; comment heartbeats keep
// proxies from timing out idle streams.
func (h *CustomersHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	var mu sync.Mutex
	writeFrame := func(frame string) error {
		mu.Lock()
		defer mu.Unlock()
		if _, err := io.WriteString(c.Writer, frame); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	ctx := c.Request.Context()
	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := writeFrame(": keepalive\n\n"); err != nil {
					return
				}
			}
		}
	}()

	err := h.svc.Stream(ctx, func(event dto.CustomerEvent) error {
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return writeFrame("data: " + string(data) + "\n\n")
	})
	if err != nil && ctx.Err() == nil {
		_ = c.Error(err)
	}
}
