package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	"github.com/polkiloo/smartxerox/internal/domain/model"
	"github.com/polkiloo/smartxerox/internal/server/http/dto"
)

// Options tune handler behaviour.
type Options struct {
	// DetailedErrors exposes internal error text in 500 responses.
	DetailedErrors bool
	MaxUploadSize  int64
}

var now = time.Now

// respondError maps domain errors onto HTTP statuses. notFound is the
// message used for ErrNotFound.
func respondError(c *gin.Context, opts Options, err error, notFound string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domainErrors.ErrValidation), errors.Is(err, domainErrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail(notFound))
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Fail("Invalid credentials"))
	case errors.Is(err, domainErrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Fail("Access denied"))
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.Fail("Already exists"))
	default:
		msg := "Internal server error"
		switch {
		case errors.Is(err, domainErrors.ErrStorage):
			msg = "Failed to upload file"
		case errors.Is(err, domainErrors.ErrPersistence):
			msg = "Failed to save order"
		}
		if opts.DetailedErrors {
			msg += ": " + err.Error()
		}
		c.JSON(http.StatusInternalServerError, dto.Fail(msg))
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Fail(message))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		StudentName:   order.StudentName,
		PhoneNumber:   order.PhoneNumber,
		FileURL:       order.FileURL,
		Copies:        order.Copies,
		ColorType:     string(order.ColorType),
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
		ExpiresAt:     order.ExpiresAt(),
		TimeRemaining: model.RemainingLabel(order.CreatedAt, now()),
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toStudentResponse(s *model.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
	}
}

// Health handles GET /. It answers 503 while the database is unreachable.
func Health(facade HealthFacade, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := dto.HealthResponse{
			Success:   true,
			Message:   "SmartXerox API is running",
			Database:  "ok",
			Timestamp: now().UTC().Format(time.RFC3339),
		}
		if err := facade.Health(c.Request.Context()); err != nil {
			logger.Warn("health check failed", slog.Any("error", err))
			resp.Success = false
			resp.Message = "Database unavailable"
			resp.Database = "unavailable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
